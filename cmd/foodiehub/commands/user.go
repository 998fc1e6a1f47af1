package commands

import (
	"fmt"

	"github.com/foodiehub/foodiehub/database"
	"github.com/foodiehub/foodiehub/services/identity"
	"github.com/spf13/cobra"
)

func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Args:  cobra.NoArgs,
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUserCreateCommand())
	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var (
		email    string
		password string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Args:  cobra.NoArgs,
		Short: "Register a user with one or more roles",
		Example: `  foodiehub user create --email owner@example.com --password secret1 --role RestaurantOwner
  foodiehub user create --email both@example.com --password secret1 --role Reviewer --role RestaurantOwner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, logger, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			if err := identity.SeedRoles(ctx, db); err != nil {
				return err
			}

			users := identity.NewService(db, cfg.Auth, logger.Named("identity"))
			user, err := users.Register(ctx, email, password, roles)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "plain-text password")
	cmd.Flags().StringSliceVar(&roles, "role", []string{identity.RoleReviewer}, "role name, repeatable")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
