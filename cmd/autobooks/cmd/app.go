package cmd

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	infraredis "github.com/midwestsb/autobooks/internal/infra/redis"

	"github.com/midwestsb/autobooks/internal/infra/postgres"
	"github.com/midwestsb/autobooks/internal/ledger"
	"github.com/midwestsb/autobooks/internal/llm"
	"github.com/midwestsb/autobooks/internal/pipeline"
	"github.com/midwestsb/autobooks/pkg/config"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// app holds the wired application graph shared by all commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *postgres.DB
	redis    *goredis.Client
	pipeline *pipeline.Service
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewDefault(cfg.Env)

	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	a := &app{cfg: cfg, log: log, db: db}

	bankRepo := postgres.NewBankRepository(db.Pool)
	ledgerRepo := postgres.NewLedgerRepository(db.Pool)
	ledgerSvc := ledger.NewService(ledgerRepo, log)
	hints := postgres.NewVendorMapRepository(db.Pool)

	// Progress is optional. A dead Redis downgrades to a silent pass.
	var progress pipeline.ProgressSink
	if cfg.RedisURL != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, progress events disabled")
			client.Close()
		} else {
			a.redis = client
			progress = infraredis.NewProgressPublisher(client, cfg.ProgressChannel, log)
			log.Info("Redis connection established")
		}
	}

	var ai pipeline.AIClassifier = llm.Disabled{}
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(ctx, llm.Config{
			APIKey:       cfg.GeminiAPIKey,
			ModelDefault: cfg.ModelDefault,
			ModelRetry:   cfg.ModelRetry,
		}, log)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		costs := postgres.NewCostLogRepository(db.Pool)
		ai = llm.NewClassifier(client, ledgerSvc, costs, log)
	} else {
		log.Warn("GEMINI_API_KEY not set, running rules-only")
	}

	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.PendingLimit = cfg.PendingLimit
	pipeCfg.BatchSize = cfg.BatchSize
	pipeCfg.ConfidenceFloor = cfg.ConfidenceFloor
	pipeCfg.PollInterval = cfg.PollInterval
	pipeCfg.MinPendingForAuto = cfg.MinPendingForAuto

	svc, err := pipeline.NewService(pipeCfg, bankRepo, ai, ledgerSvc, hints, progress, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	a.pipeline = svc

	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
