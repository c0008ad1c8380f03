package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"prep-backend/internal/readiness"
)

var batchExtensions = map[string]bool{
	".txt": true, ".md": true, ".html": true, ".htm": true, ".pdf": true, ".docx": true,
}

type batchOptions struct {
	concurrency int
	company     string
	role        string
	outDir      string
	failFast    bool
}

// batchLine is one NDJSON record written per input file.
type batchLine struct {
	File           string `json:"file"`
	ID             string `json:"id,omitempty"`
	ReadinessScore int    `json:"readinessScore,omitempty"`
	Band           string `json:"band,omitempty"`
	Skills         int    `json:"skills,omitempty"`
	Saved          bool   `json:"saved"`
	Output         string `json:"output,omitempty"`
	Error          string `json:"error,omitempty"`
}

func newBatchCmd(global *globalOptions) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze every job description file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := listBatchFiles(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no job description files in %s", args[0])
			}
			if opts.outDir != "" {
				if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}

			svc, closeFn, err := openService(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer closeFn()

			lines := make([]batchLine, len(files))
			var mu sync.Mutex
			failed := 0

			g, gCtx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(opts.concurrency, 1))
			for i, path := range files {
				i, path := i, path
				g.Go(func() error {
					line := batchLine{File: path}
					result, err := analyzeFile(gCtx, svc, path, opts.company, opts.role)
					if err != nil {
						line.Error = err.Error()
						mu.Lock()
						failed++
						mu.Unlock()
						lines[i] = line
						if opts.failFast {
							return err
						}
						return nil
					}
					a := result.Analysis
					line.ID = a.ID
					line.ReadinessScore = a.ReadinessScore
					line.Band = readiness.ReadinessBand(a.ReadinessScore)
					line.Skills = len(a.ExtractedSkills.All())
					line.Saved = global.save && result.Saved
					if opts.outDir != "" {
						line.Output = reportPath(opts.outDir, path)
						if err := writeAnalysisFile(line.Output, a, global.pretty); err != nil {
							return err
						}
					}
					lines[i] = line
					return nil
				})
			}
			waitErr := g.Wait()

			out := cmd.OutOrStdout()
			for _, line := range lines {
				if line.File == "" {
					continue
				}
				if err := writeJSON(out, line, false); err != nil {
					return err
				}
			}
			if waitErr != nil {
				return waitErr
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "n", 4, "Files analyzed in parallel")
	cmd.Flags().StringVarP(&opts.company, "company", "c", "", "Company name applied to every file")
	cmd.Flags().StringVarP(&opts.role, "role", "r", "", "Role title applied to every file")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Write each full analysis to <out>/<file name>.json")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing file")
	return cmd
}

// reportPath keeps the source extension so a.txt and a.md do not collide.
func reportPath(outDir, source string) string {
	return filepath.Join(outDir, filepath.Base(source)+".json")
}

func listBatchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !batchExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func writeAnalysisFile(path string, v any, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeJSON(f, v, pretty); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
