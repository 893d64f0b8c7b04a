package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmorate/filmorate-backend/internal/api"
	"github.com/filmorate/filmorate-backend/internal/cache"
	"github.com/filmorate/filmorate-backend/internal/config"
	"github.com/filmorate/filmorate-backend/internal/db"
	"github.com/filmorate/filmorate-backend/internal/logger"
	"github.com/filmorate/filmorate-backend/internal/metrics"
	"github.com/filmorate/filmorate-backend/internal/repository"
	"github.com/filmorate/filmorate-backend/internal/repository/memory"
	"github.com/filmorate/filmorate-backend/internal/repository/postgres"
	"github.com/filmorate/filmorate-backend/internal/services"
	"github.com/filmorate/filmorate-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		log.Error("storage init", "err", err)
		os.Exit(1)
	}
	defer closeStorage()

	// The popularity cache is optional; a missing or unreachable Redis
	// leaves the popular listing on its SQL path.
	var pop *cache.Popularity
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, popularity cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			pop = cache.NewPopularity(rdb)
		}
		defer rdb.Close()
	}

	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users, log)
	filmSvc := services.NewFilmService(repos.Films, repos.Genres, repos.Mpa, pop, wp, log)
	lookupSvc := services.NewLookupService(repos.Genres, repos.Mpa)

	if pop != nil {
		if err := filmSvc.RebuildPopularity(ctx); err != nil {
			log.Warn("popularity cache rebuild", "err", err)
		}
	}

	metrics.Init()
	r := api.NewRouter(cfg, userSvc, filmSvc, lookupSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// buildRepositories wires the configured storage tier. The memory tier exists
// for running without a database; data does not survive a restart.
func buildRepositories(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Repositories, func(), error) {
	if cfg.Storage == "memory" {
		log.Warn("using in-memory storage, data is not persisted")
		users := memory.NewUsers()
		return repository.Repositories{
			Users:  users,
			Films:  memory.NewFilms(users),
			Genres: memory.NewGenres(),
			Mpa:    memory.NewMpaRatings(),
		}, func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repository.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
