package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	grpclib "google.golang.org/grpc"

	"github.com/weiawesome/amigos-chat/internal/cache"
	"github.com/weiawesome/amigos-chat/internal/config"
	"github.com/weiawesome/amigos-chat/internal/domain"
	amigosgrpc "github.com/weiawesome/amigos-chat/internal/grpc"
	"github.com/weiawesome/amigos-chat/internal/handler"
	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/internal/service"
	"github.com/weiawesome/amigos-chat/pkg/database"
	pkglog "github.com/weiawesome/amigos-chat/pkg/log"
	"github.com/weiawesome/amigos-chat/pkg/middleware"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Initialize structured logger
	pkglog.Init(cfg.Log)
	logger := pkglog.L()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Init DB and migrate
	db, err := database.New(cfg.Database.ToDatabaseConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn().Err(err).Msg("error closing database")
		}
	}()

	if err := database.AutoMigrate(db, domain.Models()...); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database migration completed")

	// 4. Optional Redis lookup cache
	var lookupCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		lookupCache = redisCache
		logger.Info().Str("addr", cfg.Redis.Address).Dur("ttl", cfg.Cache.TTL).Msg("redis lookup cache enabled")
	}

	// 5. Create repos and services
	userRepo := repository.NewGormUserRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	userService := service.NewUserService(userRepo, lookupCache, cfg.Cache.TTL)
	groupService := service.NewGroupService(groupRepo, userRepo, lookupCache, cfg.Cache.TTL)
	messageService := service.NewMessageService(messageRepo, userRepo, groupRepo, lookupCache, cfg.Cache.TTL)

	// 6. Optional gRPC server
	var grpcServer *grpclib.Server
	if cfg.GRPC.Enabled {
		grpcServer, err = amigosgrpc.StartGRPCServer(cfg.GRPC.Address(), userService, groupService, messageService, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start grpc server")
		}
	}

	// 7. Setup Gin router + HTTP server
	httpHandler := handler.NewHandler(userService, groupService, messageService, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	r.Use(middleware.CORS(cfg.CORS))
	httpHandler.RegisterRoutes(r)

	addr := cfg.Server.Address()
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("amigos-chat starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// 8. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		if grpcServer != nil {
			grpcServer.GracefulStop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
		}
	}()

	select {
	case <-shutdownDone:
		logger.Info().Msg("amigos-chat stopped")
	case <-time.After(30 * time.Second):
		logger.Warn().Msg("shutdown timed out after 30s")
	}
}
