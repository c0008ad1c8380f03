package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prep-backend/internal/analyses"
	"prep-backend/internal/ingest"
)

type analyzeOptions struct {
	file    string
	url     string
	text    string
	company string
	role    string
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one job description",
		Long:  "Analyze one job description given as a file (txt, md, html, pdf, docx), a posting URL, or inline text.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources := 0
			for _, s := range []string{opts.file, opts.url, opts.text} {
				if s != "" {
					sources++
				}
			}
			if sources != 1 {
				return fmt.Errorf("exactly one of --file, --url or --text is required")
			}

			ctx := cmd.Context()
			svc, closeFn, err := openService(ctx, global)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := runAnalyze(ctx, svc, opts)
			if err != nil {
				return err
			}
			if global.save && !result.Saved {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: analysis was not saved to history")
			}
			return writeJSON(cmd.OutOrStdout(), result.Analysis, global.pretty)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to a job description file")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "URL of a job posting")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Job description text")
	cmd.Flags().StringVarP(&opts.company, "company", "c", "", "Company name")
	cmd.Flags().StringVarP(&opts.role, "role", "r", "", "Role title")
	return cmd
}

func runAnalyze(ctx context.Context, svc *analyses.Service, opts *analyzeOptions) (analyses.AnalyzeResult, error) {
	switch {
	case opts.url != "":
		return svc.AnalyzeURL(ctx, opts.company, opts.role, opts.url)
	case opts.file != "":
		return analyzeFile(ctx, svc, opts.file, opts.company, opts.role)
	default:
		return svc.Analyze(ctx, analyses.AnalyzeRequest{Company: opts.company, Role: opts.role, JDText: opts.text})
	}
}

func analyzeFile(ctx context.Context, svc *analyses.Service, path, company, role string) (analyses.AnalyzeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analyses.AnalyzeResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	text, err := ingest.ExtractText(ctx, data, "", filepath.Base(path))
	if err != nil {
		return analyses.AnalyzeResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return svc.Analyze(ctx, analyses.AnalyzeRequest{Company: company, Role: role, JDText: strings.TrimSpace(text)})
}
