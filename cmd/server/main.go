package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	account_service "notes-blog-service/internal/application/service/account"
	post_service "notes-blog-service/internal/application/service/post"
	post_port "notes-blog-service/internal/domain/ports/input/post"
	ports "notes-blog-service/internal/domain/ports/output"
	"notes-blog-service/internal/domain/ports/output/cache"
	post_repository "notes-blog-service/internal/domain/ports/output/post"
	"notes-blog-service/internal/domain/ports/output/store"
	"notes-blog-service/internal/domain/ports/output/uow"
	user_repository "notes-blog-service/internal/domain/ports/output/user"
	"notes-blog-service/internal/infrastructure/config"
	delivery_grpc "notes-blog-service/internal/infrastructure/inbound/grpc"
	"notes-blog-service/internal/infrastructure/inbound/grpc/middleware"
	notes_grpc "notes-blog-service/internal/infrastructure/inbound/grpc/notes"
	metrics_server "notes-blog-service/internal/infrastructure/inbound/metrics"
	"notes-blog-service/internal/infrastructure/logger"
	memory_cache "notes-blog-service/internal/infrastructure/outbound/cache/memory"
	redis_cache "notes-blog-service/internal/infrastructure/outbound/cache/redis"
	"notes-blog-service/internal/infrastructure/outbound/hasher"
	prometheus_metrics "notes-blog-service/internal/infrastructure/outbound/metrics/prometheus"
	"notes-blog-service/internal/infrastructure/outbound/repository/postgres"
	"notes-blog-service/internal/infrastructure/outbound/repository/recordstore"
	file_store "notes-blog-service/internal/infrastructure/outbound/store/file"
	memory_store "notes-blog-service/internal/infrastructure/outbound/store/memory"
	minio_store "notes-blog-service/internal/infrastructure/outbound/store/minio"
	mongo_store "notes-blog-service/internal/infrastructure/outbound/store/mongo"
	"notes-blog-service/internal/infrastructure/outbound/tokens"
)

type storage struct {
	unitOfWork uow.UnitOfWork
	posts      post_repository.Repository
	users      user_repository.Repository
	close      func()
}

func recordStorage(s store.RecordStore, log ports.Logger, metrics ports.MetricsProvider, closeFn func()) *storage {
	db := recordstore.NewDatabase(s, log, metrics)
	return &storage{
		unitOfWork: db,
		posts:      db.PostRepository(),
		users:      db.UserRepository(),
		close:      closeFn,
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics ports.MetricsProvider) (*storage, error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return recordStorage(memory_store.NewStore(log, metrics), log, metrics, noop), nil

	case config.BackendFile:
		s, err := file_store.NewStore(cfg.Storage.DataDir, log, metrics)
		if err != nil {
			return nil, err
		}
		return recordStorage(s, log, metrics, noop), nil

	case config.BackendMongo:
		client, err := mongo_store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, err
		}
		col := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return recordStorage(mongo_store.NewStore(col, log, metrics), log, metrics, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error("Failed to disconnect from MongoDB", slog.String("error", err.Error()))
			}
		}), nil

	case config.BackendMinIO:
		s, err := minio_store.NewStore(ctx, cfg.MinIO, log, metrics)
		if err != nil {
			return nil, err
		}
		return recordStorage(s, log, metrics, noop), nil

	case config.BackendPostgres:
		dsn := cfg.Database.DSN()
		if err := postgres.RunMigrations(dsn, log); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, dsn, cfg.Database.MaxConns)
		if err != nil {
			return nil, err
		}
		unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
		return &storage{
			unitOfWork: unitOfWork,
			posts:      unitOfWork.PostRepository(),
			users:      unitOfWork.UserRepository(),
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func main() {
	os.Exit(run())
}

// serverExit turns a server's Run result into the reason it stopped.
func serverExit(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return fmt.Errorf("%s server stopped", name)
}

// waitForStop blocks until a shutdown signal arrives, returning nil, or until a
// server stops on its own, returning why.
func waitForStop(quit <-chan os.Signal, stopped <-chan error) error {
	select {
	case <-quit:
		return nil
	case err := <-stopped:
		return err
	}
}

// run owns every resource main opens; returning instead of exiting lets the
// deferred closes run.
func run() int {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	log.Info("Opening storage", slog.String("backend", cfg.Storage.Backend))
	st, err := openStorage(ctx, cfg, log, metrics)
	if err != nil {
		log.Error("Failed to open storage", slog.String("backend", cfg.Storage.Backend), slog.String("error", err.Error()))
		return 1
	}
	defer st.close()

	accountService := account_service.NewAccountService(
		st.unitOfWork,
		st.users,
		hasher.NewBcryptHasher(bcrypt.DefaultCost),
		log,
		metrics,
	)

	var postService post_port.Service = post_service.NewPostService(
		st.posts,
		st.unitOfWork,
		log,
		metrics,
		cfg.Pagination.PageSize,
	)

	var blacklist cache.TokenBlacklist = memory_cache.NewTokenBlacklist()
	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		blacklist = redis_cache.NewTokenBlacklist(redisClient, log)
		postService = post_service.NewPostServiceCacheDecorator(
			postService,
			redis_cache.NewPostCache(redisClient, log),
			log,
			metrics,
		)
	}

	issuer := tokens.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	notesGRPCApi := notes_grpc.NewNotesGRPCService(accountService, postService, issuer, blacklist, log)
	grpcServer := delivery_grpc.NewServer(notesGRPCApi, cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, delivery_grpc.Options{
		Tokens:    issuer,
		Blacklist: blacklist,
		RateLimit: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Metrics:   metrics,
	})

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	const servers = 2
	stopped := make(chan error, servers)

	go func() {
		stopped <- serverExit("gRPC", grpcServer.Run())
	}()

	go func() {
		stopped <- serverExit("metrics", metricsServer.Run())
	}()

	exitCode := 0
	running := servers
	if err := waitForStop(quit, stopped); err != nil {
		log.Error("Server stopped unexpectedly", slog.String("error", err.Error()))
		exitCode = 1
		running--
	}
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Shutdown(); err != nil {
		log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	for ; running > 0; running-- {
		<-stopped
	}

	log.Info("Server exited")
	return exitCode
}
