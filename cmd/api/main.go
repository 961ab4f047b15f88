package main

import (
	"os"

	"portfolio-backend/internal/config"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env cho local, production dùng system environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	logger.Init(cfg.App.Environment)
	if envErr != nil {
		log.Warn().Msg("⚠️  No .env file found, using system environment variables")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.App.Environment).Msg("🌍 Environment")

	if err := Serve(cfg); err != nil {
		log.Error().Err(err).Msg("❌ Server stopped with error")
		os.Exit(1)
	}
}
