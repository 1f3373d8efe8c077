package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	announcementhandler "samiti/internal/announcement/handler"
	announcementservice "samiti/internal/announcement/service"
	announcementstore "samiti/internal/announcement/store"
	authhandler "samiti/internal/auth/handler"
	"samiti/internal/auth/lockout"
	authmetrics "samiti/internal/auth/metrics"
	authservice "samiti/internal/auth/service"
	"samiti/internal/auth/store/user"
	httpapi "samiti/internal/http"
	jwttoken "samiti/internal/jwt_token"
	"samiti/internal/platform/config"
	"samiti/internal/platform/database"
	"samiti/internal/platform/database/migrate"
	"samiti/internal/platform/httpserver"
	"samiti/internal/platform/logger"
	"samiti/internal/platform/metrics"
	"samiti/internal/platform/otel"
	platformredis "samiti/internal/platform/redis"
	registryhandler "samiti/internal/registry/handler"
	registrymetrics "samiti/internal/registry/metrics"
	registryservice "samiti/internal/registry/service"
	"samiti/internal/registry/store/agency"
	"samiti/internal/registry/store/district"
	"samiti/internal/registry/store/state"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/audit/publisher"
	"samiti/pkg/platform/audit/publishers/kafka"
	"samiti/pkg/platform/audit/publishers/logsink"
	"samiti/pkg/platform/tx"
)

const auditBufferSize = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires infrastructure, services and handlers, then serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	shutdownTracing, err := otel.Setup(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("otel shutdown failed", "error", err)
		}
	}()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrate.Run(ctx, cfg.Database, db, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	health := []httpapi.HealthCheck{{Name: "database", Check: db.PingContext}}

	lockoutStore, closeRedis, err := newLockoutStore(ctx, cfg.Redis, &health)
	if err != nil {
		return err
	}
	defer closeRedis()

	platformMetrics := metrics.New()
	auditStore, closeAuditSink, err := newAuditStore(ctx, cfg.Kafka, log, &health)
	if err != nil {
		return err
	}
	defer closeAuditSink()
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithMetrics(platformMetrics),
		publisher.WithLogger(log),
		publisher.WithCloseTimeout(cfg.Server.ShutdownTimeout),
	)
	defer func() {
		if err := auditPublisher.Close(); err != nil {
			log.Warn("audit publisher close failed", "error", err)
		}
	}()

	loginLockout, err := lockout.New(lockoutStore, lockout.Config{
		MaxFailures: cfg.Lockout.MaxFailures,
		Window:      cfg.Lockout.Window,
	})
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer)
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	states := state.NewSQL(db)
	users := user.NewSQL(db)

	registry := registryservice.New(states, district.NewSQL(db), agency.NewSQL(db),
		registryservice.WithLogger(log),
		registryservice.WithAuditPublisher(auditPublisher),
		registryservice.WithMetrics(registrymetrics.New()),
	)
	auth := authservice.New(users, jwtService, registry,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithMetrics(authmetrics.New()),
		authservice.WithLockout(loginLockout),
		authservice.WithTokenTTL(cfg.Auth.TokenTTL),
	)
	announcements := announcementservice.New(announcementstore.NewSQL(db),
		announcementservice.WithLogger(log),
		announcementservice.WithAuditPublisher(auditPublisher),
	)

	if cfg.Bootstrap.Enabled() {
		inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
			return tx.Run(ctx, db, fn)
		}
		if err := bootstrap(ctx, cfg.Bootstrap, states, users, inTx, log); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        platformMetrics,
		AdminToken:     cfg.Server.AdminToken,
		RequestTimeout: cfg.Server.WriteTimeout,
		Health:         health,
		Modules: []httpapi.RouteRegistrar{
			registryhandler.New(registry, log),
			authhandler.New(auth, log, jwtValidator, cfg.Server.CookieSecure),
			announcementhandler.New(announcements, log, jwtValidator),
		},
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting registry api", "addr", cfg.Server.Addr, "env", cfg.Env, "db_driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newLockoutStore prefers Redis so lockouts hold across replicas, falling back
// to process memory when no URL is configured.
func newLockoutStore(ctx context.Context, cfg config.RedisConfig, health *[]httpapi.HealthCheck) (lockout.Store, func(), error) {
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return lockout.NewInMemoryStore(), func() {}, nil
	}
	*health = append(*health, httpapi.HealthCheck{Name: "redis", Check: client.Health})
	return lockout.NewRedisStore(client.Client), func() { _ = client.Close() }, nil
}

func newAuditStore(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, health *[]httpapi.HealthCheck) (audit.Store, func(), error) {
	if !cfg.Enabled() {
		return logsink.New(log), func() {}, nil
	}
	sink, err := kafka.New(cfg.BrokerList(), cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	topicCtx, cancel := context.WithTimeout(ctx, kafka.DefaultDeliveryTimeout)
	defer cancel()
	if err := sink.EnsureTopic(topicCtx, 1, 1); err != nil {
		sink.Close()
		return nil, nil, err
	}
	*health = append(*health, httpapi.HealthCheck{Name: "kafka", Check: sink.Ping})
	return sink, sink.Close, nil
}
