package commands

import (
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/database"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "foodiehub",
		Short:        "FoodieHub restaurant directory API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewMigrateCommand(),
		NewUserCommand(),
		NewOpenAPICommand(),
	)

	return rootCmd
}

// openDatabase loads the environment config and opens the configured
// database together with a logger built from the same config.
func openDatabase() (*config.Config, *gorm.DB, *logging.Service, error) {
	cfg := &config.Config{}
	if err := config.LoadConfig(cfg); err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.NewLoggingService(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(cfg.Database, logger.Named("database"))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, db, logger, nil
}
