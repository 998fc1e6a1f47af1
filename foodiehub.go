// Package foodiehub assembles the restaurant directory API.
package foodiehub

import (
	"github.com/foodiehub/foodiehub/app"
	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/internal/options"
	"go.uber.org/fx"
)

type App = app.App

// New builds the application. Without WithConfig the configuration is read
// from the environment.
func New(opts ...options.Option) (*App, error) {
	o := options.Apply(opts...)

	b := app.NewApp()
	if o.Config != nil {
		b.WithConfig(o.Config)
	} else {
		b.WithAutoConfig()
	}
	return b.WithFxOptions(o.FxOptions...).Build()
}

func WithConfig(cfg *config.Config) options.Option {
	return options.WithConfig(cfg)
}

func WithFxOptions(fxOpts ...fx.Option) options.Option {
	return options.WithFxOptions(fxOpts...)
}
