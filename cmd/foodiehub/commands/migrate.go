package commands

import (
	"github.com/foodiehub/foodiehub/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewMigrateCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:     "migrate",
		Aliases: []string{"m"},
		Args:    cobra.NoArgs,
		Short:   "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, logger, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			if seed {
				if err := database.Seed(ctx, db); err != nil {
					return err
				}
			}

			logger.Info("database migrated", zap.Bool("seeded", seed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "insert the default roles, cities and price ranges")
	return cmd
}
