package main

import (
	"os"

	"github.com/foodiehub/foodiehub/cmd/foodiehub/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
