package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/database/seeder"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/routes"
	"resume-match/internal/domain/account"
	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/usage"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/infrastructure/persistence/file"
	"resume-match/internal/infrastructure/persistence/memory"
	pgrepo "resume-match/internal/infrastructure/persistence/postgres"
	"resume-match/internal/infrastructure/scraper"
	"resume-match/internal/infrastructure/storage"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/pkg/logging"
	"resume-match/internal/usecase"
	ucauth "resume-match/internal/usecase/auth"
	"resume-match/internal/ws"
)

// Container owns every long-lived dependency. It is built once at boot and
// handed to the HTTP layer.
type Container struct {
	Config config.Config
	Logger *logging.Logger

	DB    database.DB
	Redis *cache.Redis
	Hub   *ws.Hub

	Accounts account.Repository
	Usage    usage.Counter
	Batches  batch.Repository

	AuthService *ucauth.Service
	Auth        usecase.AuthUsecase
	Scoring     usecase.ScoringUsecase
	BatchUC     usecase.BatchUsecase

	Routes *routes.Registry
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.connectStores(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	var err error
	if c.Accounts, err = c.buildAccounts(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if c.Usage, err = c.buildUsage(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Batches = c.buildBatches()

	archiver, err := storage.New(ctx, cfg.Upload)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	extractor := matching.NewExtractor(nil, similarityFor(cfg.Matching), cfg.Matching.Threshold)
	c.Hub = ws.NewHub(logger)

	c.AuthService = ucauth.NewService(c.Accounts, cfg.App.BcryptCost)
	c.Auth = usecase.NewAuthUsecase(c.AuthService, jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL), c.Usage)
	c.Scoring = usecase.NewScoringUsecase(extractor, c.Usage, scraper.NewJDFetcher(cfg.Fetch, logger), logger)
	scorer := pipeline.NewBatchScorer(extractor, archiver, cfg.Upload.Workers, c.Hub.NotifyBatchProgress, logger)
	c.BatchUC = usecase.NewBatchUsecase(extractor, scorer, c.Batches, logger)

	if cfg.Storage.SeedDemoAccount {
		if err := (seeder.Runner{Seeders: []seeder.Seeder{seeder.DemoAccountSeeder{Auth: c.AuthService}}}).Run(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Routes = routes.NewRegistry(
		handler.NewAuthHandler(c.Auth, handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}),
		handler.NewScoreHandler(c.Scoring),
		handler.NewUploadHandler(c.BatchUC),
		ws.NewHandler(c.Hub, logger),
	)

	logger.Info("container ready",
		"usage_backend", cfg.Usage.Backend,
		"account_backend", cfg.Storage.AccountBackend,
		"batch_backend", cfg.Storage.BatchBackend,
		"archive", cfg.Upload.Archive,
		"similarity", cfg.Matching.Similarity,
	)
	return c, nil
}

func (c *Container) connectStores(ctx context.Context) error {
	cfg := c.Config

	if cfg.Usage.Backend == config.UsageBackendPostgres || cfg.Storage.AccountBackend == config.BackendPostgres {
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(cctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db

		applied, err := migration.Runner{}.Run(cctx, db.SQLDB())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		for _, m := range applied {
			c.Logger.Info("migration applied", "version", m.Version, "name", m.Name)
		}
	}

	if cfg.Usage.Backend == config.UsageBackendRedis || cfg.Storage.BatchBackend == config.BackendRedis {
		c.Redis = cache.NewRedis(cfg.Redis, c.Logger)
	}
	return nil
}

func (c *Container) buildAccounts() (account.Repository, error) {
	if c.Config.Storage.AccountBackend == config.BackendPostgres {
		return pgrepo.NewAccountRepository(c.DB)
	}
	return memory.NewAccountRepository(), nil
}

func (c *Container) buildUsage() (usage.Counter, error) {
	cfg := c.Config.Usage
	switch cfg.Backend {
	case config.UsageBackendPostgres:
		return pgrepo.NewUsageCounter(c.DB, cfg.Limit)
	case config.UsageBackendRedis:
		if c.Redis.Available() {
			return cache.NewUsageCounter(c.Redis, cfg.Limit), nil
		}
		c.Logger.Warn("usage counter falling back to memory", "backend", cfg.Backend)
		return memory.NewUsageCounter(cfg.Limit), nil
	case config.UsageBackendMemory:
		return memory.NewUsageCounter(cfg.Limit), nil
	default:
		return file.NewUsageStore(cfg.File, cfg.Limit)
	}
}

func (c *Container) buildBatches() batch.Repository {
	ttl := c.Config.Storage.BatchTTL
	if c.Config.Storage.BatchBackend == config.BackendRedis {
		if c.Redis.Available() {
			return cache.NewBatchRepository(c.Redis, ttl)
		}
		c.Logger.Warn("batch store falling back to memory", "backend", config.BackendRedis)
	}
	return memory.NewBatchRepository(ttl)
}

func similarityFor(cfg config.MatchingConfig) matching.Similarity {
	if cfg.Similarity == config.SimilarityLevenshtein {
		return matching.LevenshteinPartial{}
	}
	return matching.PartialRatio{}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
