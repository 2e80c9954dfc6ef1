package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
)

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:      "types",
		Usage:     "List bean types, or the members of one type (- for top-level entries)",
		ArgsUsage: "[type|-]",
		Action:    runTypes,
	}
}

func runTypes(_ context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	ws, err := openWorkspace(cmd, ".", logger)
	if err != nil {
		return err
	}

	if cmd.Args().Present() {
		return printMembers(os.Stdout, ws.Registry, cmd.Args().First())
	}

	printTypes(os.Stdout, ws.Registry)

	return nil
}

func printTypes(w io.Writer, reg *beans.Registry) {
	for _, name := range reg.TypeNames() {
		def, _ := reg.Describe(name)

		kind := "type"

		switch {
		case def.Enum:
			kind = "enum"
		case def.TopLevel:
			kind = "toplevel"
		}

		_, _ = fmt.Fprintf(w, "%-9s %-24s %s\n", kind, name, def.Source())
	}
}

func printMembers(w io.Writer, reg *beans.Registry, name string) error {
	if name == "-" {
		name = beancomplete.TopLevel
	} else if !reg.IsTypeName(name) {
		return fmt.Errorf("%w: unknown type %q", beancomplete.ErrInvalidArgument, name)
	}

	if def, ok := reg.Describe(name); ok {
		header := def.Name
		if len(def.Extends) > 0 {
			header += " extends " + strings.Join(def.Extends, ", ")
		}

		_, _ = fmt.Fprintln(w, header)

		if def.Description != "" {
			_, _ = fmt.Fprintln(w, "  "+def.Description)
		}
	}

	for _, e := range reg.EntriesForType(name) {
		line := fmt.Sprintf("  %-9s %s", e.Kind, e.Label())

		if e.Owner != "" && e.Owner != name {
			line += "  (from " + e.Owner + ")"
		}

		if e.Deprecated {
			line += "  [deprecated]"
		}

		_, _ = fmt.Fprintln(w, line)
	}

	return nil
}
