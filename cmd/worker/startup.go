// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices chạy health checks rồi mở health endpoint
func startServices(c *container.Container, cfg *config.Config) error {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Portfolio Worker Starting...")
	log.Info().Msg("============================================")

	checks := []healthCheck{
		{"Redis Connection", c.Redis.HealthCheck},
		{"Object Storage", c.Storage.HealthCheck},
	}
	if err := checkAll(checks); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.Worker.HealthPort, checks)
	return nil
}

func checkAll(checks []healthCheck) error {
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("❌ Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("✓ OK")
	}
	return nil
}

// startHealthCheckServer: /health luôn UP, /ready chạy lại các check
func startHealthCheckServer(port string, checks []healthCheck) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "portfolio-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		if err := checkAll(checks); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
