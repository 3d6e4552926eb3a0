package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"trainingcenter_backend/internals/configs"
	database "trainingcenter_backend/internals/databases"
	middlewares "trainingcenter_backend/internals/middlewares"
	routes "trainingcenter_backend/internals/route"
)

func main() {
	cfg := configs.LoadEnv()
	logger := configs.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.RequestContext(5 * time.Second))
	middlewares.SetupMiddlewares(app, cfg)

	// DB connect + pool + schema + warm-up
	database.ConnectDB()
	database.TunePool()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(database.DB); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}
	database.WarmUpQueries()

	rdb := configs.ConnectRedis(cfg.RedisAddr)

	routes.SetupRoutes(app, routes.Deps{DB: database.DB, Redis: rdb, Cfg: cfg})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("shutdown complete")
}
