package commands

import (
	"github.com/foodiehub/foodiehub/app"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Args:    cobra.NoArgs,
		Short:   "Run the HTTP API",
		Long:    `Load configuration from the environment (and .env), migrate and seed the database when enabled, then serve until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewApp().WithAutoConfig().Build()
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}
