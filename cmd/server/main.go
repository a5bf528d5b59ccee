package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombooking/config"
	"roombooking/internal/adapters/cache"
	deliveryhttp "roombooking/internal/delivery/http"
	"roombooking/internal/delivery/http/controllers"
	"roombooking/internal/delivery/http/middleware"
	"roombooking/internal/domain"
	"roombooking/internal/repository/postgres"
	"roombooking/internal/services"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

// @title Room Booking API
// @version 1.0
// @description Rooms and hour-slot event bookings. A room can hold at most one event per hour.
// @BasePath /
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	eventCache, closeCache := newEventCache(ctx, cfg, logger)
	defer closeCache()

	roomRepo := postgres.NewRoomRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	roomSvc := services.NewRoomService(roomRepo, eventCache, logger, cfg.ContextTimeout)
	eventSvc := services.NewEventService(eventRepo, eventCache, logger, cfg.Location, cfg.ContextTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewRoomController(logger, roomSvc),
		controllers.NewEventController(logger, eventSvc, cfg.Location),
		controllers.NewHealthController(logger, db, cfg.ContextTimeout),
	)
	handler := middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "timezone", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server shut down gracefully")
	return nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newEventCache returns the Redis listing cache, or a pass-through cache when
// REDIS_ADDR is unset. An unreachable Redis is logged, not fatal: RedisCache
// falls back to the database per request.
func newEventCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.ListCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("event cache disabled")
		return cache.Nop{}, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, serving listings from the database", "addr", cfg.RedisAddr, "err", err)
	}
	return cache.NewRedisCache(client, logger, "roombooking:events", cfg.CacheTTL), func() { _ = client.Close() }
}
