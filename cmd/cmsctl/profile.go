package main

import (
	"fmt"

	profileRepo "portfolio-backend/internal/domains/profile/repository"
	profileService "portfolio-backend/internal/domains/profile/service"
	"portfolio-backend/internal/shared/authz"

	"github.com/spf13/cobra"
)

func (a *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "grant <email> <role>",
		Short: "Set the role of a profile by email",
		Long: `Set the role (admin, editor, member) of the profile with the given email.

If nobody with that email has signed in yet, a pending profile is created
and picked up on their first authenticated request.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := profileService.NewProfileService(
				profileRepo.NewPostgresRepository(db.Pool),
				authz.NewRoleAuthorizer(),
				a.cfg.Auth.AdminEmails,
			)

			p, err := svc.GrantRole(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Email, p.Role)
			return nil
		},
	})
	return cmd
}
