package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prep-backend/internal/analyses"
	"prep-backend/internal/bootstrap"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/storage/db"
)

type globalOptions struct {
	save   bool
	pretty bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "prepctl",
		Short:         "Interview readiness analyzer",
		Long:          "prepctl extracts skills from job descriptions and prints readiness reports: score, round mapping, checklist, 7-day plan and questions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.save, "save", false, "Persist analyses to DATABASE_URL history")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")

	root.AddCommand(newAnalyzeCmd(opts), newBatchCmd(opts))
	return root
}

// openService builds a Service backed by Postgres when --save is set, or by
// a throwaway in-memory history otherwise.
func openService(ctx context.Context, opts *globalOptions) (*analyses.Service, func(), error) {
	cfg := config.Load()
	if !opts.save {
		return analyses.NewService(analyses.NewMemoryRepo(cfg.HistoryLimit), nil), func() {}, nil
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("--save requires DATABASE_URL")
	}
	sqlDB, err := bootstrap.ConnectDB(ctx, cfg, db.DefaultCLIOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if sqlDB == nil {
		// Dev-like envs fall back to memory on connect failure; --save must not.
		return nil, nil, fmt.Errorf("connect database: unavailable")
	}
	svc := analyses.NewService(bootstrap.BuildRepo(sqlDB, cfg.HistoryLimit), nil)
	return svc, func() { _ = sqlDB.Close() }, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
