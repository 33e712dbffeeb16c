package main

import (
	"context"

	"daylog/config"
	"daylog/routes"
	"daylog/services"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogFile)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set; all API requests will be rejected")
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}

	if cfg.SeedDemo {
		if err := services.SeedDemo(context.Background(), services.NewDayService(db)); err != nil {
			logger.Fatalw("demo seed failed", "error", err)
		}
	}

	estimator := services.NewEstimatorService(cfg.EstimatorURL)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(db, estimator, hub, logger)
	logger.Infow("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
