package commands

import (
	"fmt"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/handlers"
	"github.com/foodiehub/foodiehub/openapi"
	"github.com/spf13/cobra"
)

// NewOpenAPICommand prints the API document without starting the server or
// requiring token key material.
func NewOpenAPICommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "openapi",
		Aliases: []string{"docs"},
		Args:    cobra.NoArgs,
		Short:   "Print the OpenAPI 3 document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var appCfg struct {
				App config.AppConfig `envPrefix:"APP_"`
			}
			if err := config.LoadConfig(&appCfg); err != nil {
				return err
			}

			doc := openapi.ProvideOpenAPI(&config.Config{App: appCfg.App})
			handlers.Describe(doc)
			if err := doc.Validate(cmd.Context()); err != nil {
				return err
			}

			var (
				out []byte
				err error
			)
			switch format {
			case "json":
				out, err = doc.JSON()
			case "yaml", "yml":
				out, err = doc.YAML()
			default:
				return fmt.Errorf("unsupported format %q (supported: json, yaml)", format)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")
	return cmd
}
