package main

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/rlch/beancomplete/tui"
)

var errNotTerminal = errors.New("try needs an interactive terminal")

func tryCommand() *cli.Command {
	return &cli.Command{
		Name:   "try",
		Usage:  "Type expressions and watch completions in an interactive playground",
		Action: runTry,
	}
}

func runTry(_ context.Context, cmd *cli.Command) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	ws, err := openWorkspace(cmd, ".", logger)
	if err != nil {
		return err
	}

	_, err = tui.Run(ws.NewSession(), os.Stdin, os.Stdout)

	return err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
