package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"recipe_backend/internal/app/config"
	"recipe_backend/internal/app/di"
	"recipe_backend/internal/app/router"
	authadapters "recipe_backend/internal/feature/auth/adapters"
	authentity "recipe_backend/internal/feature/auth/domain/entity"
	authhandler "recipe_backend/internal/feature/auth/transport/handler"
	authusecase "recipe_backend/internal/feature/auth/usecase"
	recipeentity "recipe_backend/internal/feature/recipes/domain/entity"
	recipehandler "recipe_backend/internal/feature/recipes/transport/handler"
	recipeusecase "recipe_backend/internal/feature/recipes/usecase"
	"recipe_backend/internal/platform/db"
	platformhandler "recipe_backend/internal/platform/http/handler"
	jwtmw "recipe_backend/internal/platform/jwt"
	"recipe_backend/internal/platform/logging"
	"recipe_backend/internal/platform/password"
	infraredis "recipe_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// db
	gdb, err := db.Open(cfg.DB(), &authentity.User{}, &recipeentity.Recipe{})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close DB", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(context.Background(), infraredis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserRepository(gdb)
	recipeRepo := di.NewRecipeRepository(rdb, gdb, cfg.CacheTTL)

	// Usecase
	issuer := jwtmw.NewIssuer(cfg.JWTSecret)
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewHasher(cfg.BcryptCost), issuer)
	recipeUC := recipeusecase.NewRecipeUsecase(recipeRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cfg.MaxPictureBytes)
	recipeH := recipehandler.NewRecipeHandler(recipeUC)
	healthH := platformhandler.NewHealthHandler(readinessChecks(gdb, rdb))

	engine := router.NewRouter(router.Deps{
		Auth:        authH,
		Recipes:     recipeH,
		Health:      healthH,
		Verifier:    issuer,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func readinessChecks(gdb *gorm.DB, rdb *redisv9.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
