package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/analyses"
	"prep-backend/internal/ingest"
	"prep-backend/internal/readiness"
	"prep-backend/internal/services/health"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/server"
	"prep-backend/internal/shared/storage/db"
	"prep-backend/internal/shared/storage/object"
	localstore "prep-backend/internal/shared/storage/object/local"
	s3store "prep-backend/internal/shared/storage/object/s3"
	"prep-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	AnalysesRepo    analyses.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.SetLevel(cfg.LogLevel)

	sqlDB, err := buildDB(ctx, cfg, db.DefaultServerOptions())
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	app.AnalysesRepo = BuildRepo(sqlDB, cfg.HistoryLimit)

	svc := analyses.NewService(app.AnalysesRepo, readiness.NewAnalyzer(readiness.DefaultTaxonomy(), readiness.DefaultCompanyLists()))
	svc.Store = store
	svc.Fetcher = ingest.NewFetcher(cfg.FetchTimeout)
	app.AnalysesService = svc
	app.AnalysisHandler = analyses.NewHandler(svc, cfg.MaxUploadBytes)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		Health:          health.NewService(pinger(sqlDB)),
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildRepo picks the Postgres repo when a database is available.
func BuildRepo(sqlDB *sql.DB, limit int) analyses.Repo {
	if sqlDB != nil {
		return &analyses.PGRepo{DB: sqlDB, Limit: limit}
	}
	return analyses.NewMemoryRepo(limit)
}

// ConnectDB opens the database and applies migrations. An empty DATABASE_URL
// in a dev-like environment yields a nil *sql.DB.
func ConnectDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	return buildDB(ctx, cfg, opts)
}

func buildDB(ctx context.Context, cfg config.Config, defaults db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_history", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(defaults))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_history", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// pinger keeps a nil *sql.DB from becoming a non-nil interface.
func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
