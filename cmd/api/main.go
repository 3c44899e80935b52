package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/talentconnect-backend/api/routes"
	"github.com/angelmondragon/talentconnect-backend/internal/auth"
	"github.com/angelmondragon/talentconnect-backend/internal/contact"
	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/angelmondragon/talentconnect-backend/internal/freelancers"
	"github.com/angelmondragon/talentconnect-backend/internal/locations"
	"github.com/angelmondragon/talentconnect-backend/internal/media"
	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/internal/owners"
	"github.com/angelmondragon/talentconnect-backend/internal/search"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/env"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/metrics"
	"github.com/angelmondragon/talentconnect-backend/pkg/migrate"
	"github.com/angelmondragon/talentconnect-backend/pkg/redis"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage/gcs"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage/minio"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	opts := logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	}
	if cfg.App.LogFile != "" {
		opts.File = &logger.FileOptions{
			Path:       cfg.App.LogFile,
			MaxSizeMB:  cfg.App.LogMaxSizeMB,
			MaxBackups: cfg.App.LogMaxBackups,
			MaxAgeDays: cfg.App.LogMaxAgeDays,
			Compress:   true,
		}
	}
	logg = logger.New(opts)

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		_ = logg.Close()
		os.Exit(1)
	}
	_ = logg.Close()
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}
	if cfg.FeatureFlags.SeedLocations {
		if err := locations.Seed(ctx, dbClient, logg); err != nil {
			return err
		}
	}
	hierarchy, err := locations.Load(ctx, dbClient, logg)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	store, err := newMediaStore(ctx, cfg, logg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Sender:      notifications.NewSender(cfg.SMTP, logg),
		Metrics:     metrics.NewEmailMetrics(registry),
		Logger:      logg,
		SendTimeout: cfg.SMTP.Timeout,
	})
	if err != nil {
		return err
	}

	deps, err := buildServices(cfg, logg, dbClient, hierarchy, store, dispatcher)
	if err != nil {
		return err
	}
	deps.DB = dbClient
	deps.Redis = redisClient
	deps.Gatherer = registry
	deps.HTTPMetrics = metrics.NewHTTPMetrics(registry)
	if _, disabled := store.(storage.Disabled); !disabled {
		deps.MediaStore = store
	}

	server := &http.Server{
		Addr:              ":" + env.Get("PORT", cfg.App.Port),
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": server.Addr, "media_backend": cfg.Media.Backend})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	err = multierr.Append(err, server.Shutdown(shutdownCtx))
	err = multierr.Append(err, dispatcher.Drain(shutdownCtx))
	return err
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, hierarchy *locations.Hierarchy, store storage.Store, notifier notifications.Notifier) (routes.Dependencies, error) {
	var deps routes.Dependencies
	var err error

	if deps.Auth, err = auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Notifier:       notifier,
		Logger:         logg,
	}); err != nil {
		return deps, err
	}
	if deps.Users, err = users.NewService(users.ServiceParams{DB: dbClient, PasswordConfig: cfg.Password}); err != nil {
		return deps, err
	}
	if deps.Freelancers, err = freelancers.NewService(freelancers.ServiceParams{
		DB:       dbClient,
		Media:    store,
		Notifier: notifier,
		Logger:   logg,
	}); err != nil {
		return deps, err
	}
	if deps.Owners, err = owners.NewService(owners.ServiceParams{DB: dbClient}); err != nil {
		return deps, err
	}
	if deps.Equipment, err = equipment.NewService(equipment.ServiceParams{
		DB:        dbClient,
		Locations: hierarchy,
		Notifier:  notifier,
		Logger:    logg,
	}); err != nil {
		return deps, err
	}
	if deps.Contact, err = contact.NewService(contact.ServiceParams{DB: dbClient, Notifier: notifier, Logger: logg}); err != nil {
		return deps, err
	}
	if deps.Search, err = search.NewService(search.ServiceParams{DB: dbClient, Locations: hierarchy}); err != nil {
		return deps, err
	}
	if deps.Media, err = media.NewService(media.ServiceParams{
		Store:    store,
		Logger:   logg,
		MaxBytes: cfg.Media.MaxUploadBytes(),
	}); err != nil {
		return deps, err
	}
	return deps, nil
}

func newMediaStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Media.Backend)) {
	case "gcs":
		return gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	case "minio":
		return minio.NewClient(ctx, cfg.MinIO, logg)
	default:
		logg.Warn(ctx, "media backend disabled, uploads will be rejected")
		return storage.Disabled{}, nil
	}
}
