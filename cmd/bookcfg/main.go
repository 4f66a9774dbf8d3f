package main

import (
	"context"
	"os"

	"github.com/yndnr/bookcfg-go/internal/cli/command"
)

func main() {
	if err := run(); err != nil {
		command.PrintError("%v", err)
		os.Exit(1)
	}
}

func run() error {
	app := command.App()
	return app.RunContext(context.Background(), os.Args)
}
