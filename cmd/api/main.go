package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studytrack/task-system/internal/api"
	"github.com/studytrack/task-system/internal/core/service"
	mongodb "github.com/studytrack/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/studytrack/task-system/internal/infrastructure/db/redis"
	"github.com/studytrack/task-system/internal/infrastructure/queue"
	"github.com/studytrack/task-system/internal/pkg/config"
	"github.com/studytrack/task-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Backing stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	moduleRepo := mongodb.NewModuleRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := moduleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("module indexes failed")
	}
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("task indexes failed")
	}

	// --- Activity pipeline ---
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, redisdb.NewLoginLimiter(rdb), dispatcher, log)
	moduleService := service.NewModuleService(moduleRepo, taskRepo, dispatcher, log)
	taskService := service.NewTaskService(taskRepo, moduleRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:    authService,
		Modules: moduleService,
		Tasks:   taskService,
		Tokens:  tokenService,
		Mongo:   db,
		Redis:   rdb,
		Logger:  log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server running")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
