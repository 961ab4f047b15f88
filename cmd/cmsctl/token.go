package main

import (
	"fmt"
	"time"

	"portfolio-backend/pkg/jwt"

	"github.com/spf13/cobra"
)

func (a *cli) newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development access tokens",
	}

	var (
		subject string
		email   string
		ttl     time.Duration
	)

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token with JWT_SECRET",
		Example: `  cmsctl token issue --sub 'idp|123' --email me@example.com
  cmsctl token issue --sub 'idp|123' --email me@example.com --ttl 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}
			token, err := jwt.NewManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.Issuer).
				GenerateAccessToken(subject, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&subject, "sub", "", "identity id (token subject)")
	issue.Flags().StringVar(&email, "email", "", "email claim")
	issue.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = issue.MarkFlagRequired("sub")
	_ = issue.MarkFlagRequired("email")

	cmd.AddCommand(issue)
	return cmd
}
