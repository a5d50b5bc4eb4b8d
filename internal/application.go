package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/chrislara01/tic-tac-toe-fullstack/internal/config"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/repository"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/repository/storage"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/strategy"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/telemetry"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/transport/gemini"
	"github.com/chrislara01/tic-tac-toe-fullstack/internal/usecase"
	"github.com/chrislara01/tic-tac-toe-fullstack/transport/rest"
)

// RunApp - runs the application until SIGINT/SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, conf.AppName, conf.Environment, conf.OTel.Endpoint)
	if err != nil {
		return fmt.Errorf("could not set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Error("could not flush traces", "error", err)
		}
	}()

	gameRepo, closer, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	strategyOpts, err := newStrategyOptions(logger, conf)
	if err != nil {
		return err
	}

	gameManager := usecase.NewGameManager(logger, gameRepo, strategyOpts)
	router := rest.NewRouter(logger, gameManager, conf.CORSOrigins)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return rest.Start(groupCtx, log, conf.HTTPPort, router)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, io.Closer, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		client, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     conf.Redis.GetRedisAddr(),
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis storage", "addr", conf.Redis.GetRedisAddr())
		repo := repository.NewRedisGameRepository(client,
			repository.WithGameTTL(conf.Redis.GameTTL),
			repository.WithLockTTL(conf.Redis.LockTTL),
		)

		return repo, client, nil

	case config.StorageSQLite, config.StoragePostgres:
		var (
			sqlStorage *storage.Storage
			err        error
		)
		if conf.Storage.Driver == config.StorageSQLite {
			sqlStorage, err = storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		} else {
			sqlStorage, err = storage.NewPostgresStorage(ctx, conf.Storage.DatabaseURL)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("could not open %s storage: %w", conf.Storage.Driver, err)
		}

		if err = sqlStorage.Init(ctx); err != nil {
			_ = sqlStorage.Close()
			return nil, nil, fmt.Errorf("could not init %s storage: %w", conf.Storage.Driver, err)
		}

		log.Info("Using SQL storage", "driver", conf.Storage.Driver)

		return repository.NewSQLGameRepository(sqlStorage.Connection, sqlStorage.Dialect), sqlStorage, nil

	default:
		log.Info("Using in-memory storage")

		return repository.NewMemoryGameRepository(), io.NopCloser(nil), nil
	}
}

// newStrategyOptions - the remote model client exists only when an api key is configured.
func newStrategyOptions(logger *slog.Logger, conf *config.Config) (strategy.Options, error) {
	opts := strategy.Options{
		Logger:        logger,
		RemoteTimeout: conf.Gemini.Timeout,
	}

	if conf.Gemini.APIKey == "" {
		return opts, nil
	}

	client, err := gemini.New(logger, gemini.Options{
		APIKey:   conf.Gemini.APIKey,
		Model:    conf.Gemini.Model,
		Endpoint: conf.Gemini.Endpoint,
		Timeout:  conf.Gemini.Timeout,
	})
	if err != nil {
		return opts, fmt.Errorf("could not create gemini client: %w", err)
	}
	opts.RemoteClient = client

	return opts, nil
}
