// Package main provides the beancomplete CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "beancomplete",
		Version: version,
		Usage:   "Member-chain completion for scripts over bean types",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: nearest .beancomplete.yaml)",
				Sources: cli.EnvVars("BEANCOMPLETE_CONFIG"),
			},
			&cli.StringSliceFlag{
				Name:    "beans",
				Aliases: []string{"b"},
				Usage:   "bean description files, directories or globs (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log at debug level",
				Sources: cli.EnvVars("BEANCOMPLETE_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			completeCommand(),
			typesCommand(),
			checkCommand(),
			tryCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
