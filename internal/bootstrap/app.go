package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	appsvc "sentinel-ds/internal/app"
	"sentinel-ds/internal/cache"
	"sentinel-ds/internal/config"
	"sentinel-ds/internal/lawapi"
	"sentinel-ds/internal/lawtext"
	mysqlClient "sentinel-ds/internal/platform/mysql"
	rabbitmqClient "sentinel-ds/internal/platform/rabbitmq"
	redisClient "sentinel-ds/internal/platform/redis"
	sqliteClient "sentinel-ds/internal/platform/sqlite"
	"sentinel-ds/internal/pkg/pdfextract"
	"sentinel-ds/internal/repository"
	"sentinel-ds/internal/worker"
)

type App struct {
	Config        *config.Config
	Log           *logrus.Logger
	DB            *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	RefreshWorker *worker.RefreshWorker

	Ingest    *appsvc.IngestService
	Documents *appsvc.DocumentService
	Search    *appsvc.SearchService
	Auth      *appsvc.AuthService

	StartedAt time.Time
}

type Options struct {
	// StartWorker consumes refresh jobs from RabbitMQ when it is enabled.
	StartWorker bool
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := NewLogger(cfg.App.Env, cfg.App.LogLevel)
	a := &App{Config: cfg, Log: log, StartedAt: time.Now()}
	if err := a.init(ctx, opts); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, opts Options) error {
	cfg := a.Config

	db, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	a.DB = db
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	catalog, err := config.LoadCatalog(cfg.Catalog.LawsFile)
	if err != nil {
		return err
	}

	deps := appsvc.IngestDeps{
		Documents: repository.NewDocumentRepository(db),
		Runs:      repository.NewIngestRunRepository(db),
		Extractor: pdfextract.New(),
		Fetcher: lawapi.NewClient(lawapi.Config{
			APIKey:         cfg.LawAPI.APIKey,
			LawEndpoint:    cfg.LawAPI.LawEndpoint,
			AdmRulEndpoint: cfg.LawAPI.AdmRulEndpoint,
			UserAgent:      cfg.LawAPI.UserAgent,
			Timeout:        time.Duration(cfg.LawAPI.TimeoutSeconds) * time.Second,
			RatePerSecond:  cfg.LawAPI.RatePerSecond,
			Burst:          cfg.LawAPI.Burst,
		}, nil),
		Catalog: catalog,
		Segmenter: &lawtext.Segmenter{
			Markers:       lawtext.DefaultMarkers,
			MinBodyLength: cfg.Ingest.MinArticleLength,
		},
		Timeout: cfg.IngestTimeout(),
		Log:     a.Log,
	}

	var (
		invalidator appsvc.SearchInvalidator
		resultCache appsvc.SearchResultCache
	)
	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		searchCache := cache.NewSearchCache(a.Redis, cfg.SearchCacheTTL())
		invalidator = searchCache
		resultCache = searchCache
	}
	deps.Cache = invalidator

	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.RefreshQueue)
		if err != nil {
			return err
		}
		deps.Publisher = rabbitmqClient.NewJobPublisher(a.MQConn, cfg.RabbitMQ.RefreshQueue)
	}

	a.Ingest = appsvc.NewIngestService(deps)
	a.Documents = appsvc.NewDocumentService(deps.Documents, invalidator, a.Log)
	a.Search = appsvc.NewSearchService(deps.Documents, resultCache, a.Log)
	a.Auth, err = appsvc.NewAuthService(
		cfg.Auth.OperatorPINHash,
		cfg.Auth.OperatorPIN,
		cfg.Auth.JWTSecret,
		cfg.JWTExpiration(),
	)
	if err != nil {
		return err
	}

	if opts.StartWorker && a.MQConn != nil {
		a.RefreshWorker = worker.NewRefreshWorker(a.MQConn, a.Ingest, cfg.RabbitMQ.RefreshQueue, a.Log)
		if err := a.RefreshWorker.Start(ctx); err != nil {
			return fmt.Errorf("start refresh worker failed: %w", err)
		}
	}

	a.Log.WithFields(logrus.Fields{
		"storage":  cfg.Storage.Driver,
		"redis":    a.Redis != nil,
		"rabbitmq": a.MQConn != nil,
		"laws":     len(catalog.Laws),
	}).Info("application initialized")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return sqliteClient.New(ctx, cfg.Storage.SQLitePath)
	default:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.RefreshWorker != nil {
		a.RefreshWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
