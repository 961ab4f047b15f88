package main

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cli giữ config đã load cho các subcommand
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "cmsctl",
		Short: "Operator tooling for the portfolio backend",
		Long: `cmsctl runs maintenance tasks against the portfolio database.

Configuration is read from the environment (and .env when present),
the same variables the API server uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger.Init(cfg.App.Environment)
			app.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		app.newMigrateCmd(),
		app.newProfileCmd(),
		app.newTokenCmd(),
		app.newBooksCmd(),
	)
	return root
}

// connectDB mở pool ngắn hạn cho một lệnh, caller phải Close
func (a *cli) connectDB(ctx context.Context) (*database.PostgresDB, error) {
	db := database.NewPostgresDB(a.cfg.DBConfig())

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	return db, nil
}
