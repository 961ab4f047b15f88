package main

import (
	"fmt"

	"portfolio-backend/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func (a *cli) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	withMigrator := func(fn func(cmd *cobra.Command, mg *database.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			mg, err := database.NewMigrator(a.cfg.DBConfig().DSN(), a.cfg.Database.MigrationsPath)
			if err != nil {
				return err
			}
			defer mg.Close()
			return fn(cmd, mg)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, mg *database.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, mg *database.Migrator) error {
				if err := mg.Down(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, mg *database.Migrator) error {
				version, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			}),
		},
	)
	return cmd
}
