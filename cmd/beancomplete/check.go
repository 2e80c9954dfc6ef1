package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
	"github.com/rlch/beancomplete/workspace"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate bean description files (exit 1 on errors)",
		ArgsUsage: "[files, directories or globs...]",
		Action:    runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}

	if cmd.Args().Present() {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		cfg = &beancomplete.Config{Dir: wd, Beans: cmd.Args().Slice()}
	}

	files, err := workspace.BeanFiles(cfg)
	if err != nil {
		return err
	}

	if failed := check(os.Stdout, files, logger); failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

// check adds every file to one registry and reports each failure. It returns the number of
// files that failed.
func check(w io.Writer, files []string, logger *zap.Logger) int {
	b := beans.NewBuilder(logger)
	failed := 0

	for _, f := range files {
		err := b.AddFile(f)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s: %v\n", f, err)
			failed++
		}
	}

	reg := b.Build()

	if failed == 0 {
		_, _ = fmt.Fprintf(w, "ok: %d types in %d files\n", reg.Len(), len(files))
	}

	return failed
}
