package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/rlch/beancomplete"
)

var errNoFile = errors.New("expected exactly one script file (or - for stdin)")

func completeCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Print the completions at a position in a script",
		ArgsUsage: "<file|->",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "line",
				Aliases: []string{"l"},
				Usage:   "1-based line of the cursor (default: last line)",
			},
			&cli.IntFlag{
				Name:  "col",
				Usage: "1-based column of the cursor in characters (default: end of line)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output the result as JSON",
			},
		},
		Action: runComplete,
	}
}

// completion is the JSON form of a result.
type completion struct {
	Offset  int                  `json:"offset"`
	Entries []beancomplete.Entry `json:"entries"`
}

func runComplete(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errNoFile
	}

	path := cmd.Args().First()

	text, dir, err := readScript(path)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	ws, err := openWorkspace(cmd, dir, logger)
	if err != nil {
		return err
	}

	buf := beancomplete.NewStringBuffer(text)

	line, col, err := cursorPosition(buf, int(cmd.Int("line")), int(cmd.Int("col")))
	if err != nil {
		return err
	}

	a := ws.NewSession()
	a.ScanLines(buf, 0, line)

	stream, err := beancomplete.NewBackwardStream(buf, line, col)
	if err != nil {
		return err
	}

	result, err := a.EntriesForIncompleteString(col, stream)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(os.Stdout, result)
	}

	for _, e := range result.Entries {
		_, _ = fmt.Fprintf(os.Stdout, "%-9s %s\n", e.Kind, e.Label())
	}

	return nil
}

func readScript(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}

		return string(data), ".", nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", "", err
	}

	return string(data), filepath.Dir(path), nil
}

// cursorPosition converts 1-based flags to a 0-based position in buf. Zero selects the end
// of the buffer or line.
func cursorPosition(buf *beancomplete.StringBuffer, line, col int) (int, int, error) {
	l := buf.LineCount() - 1
	if line > 0 {
		l = line - 1
	}

	if l < 0 || l >= buf.LineCount() {
		return 0, 0, fmt.Errorf("%w: line %d of %d", beancomplete.ErrInvalidArgument, line, buf.LineCount())
	}

	c := buf.LineLength(l)
	if col > 0 {
		c = col - 1
	}

	if c > buf.LineLength(l) {
		return 0, 0, fmt.Errorf("%w: column %d past the end of line %d", beancomplete.ErrInvalidArgument, col, l+1)
	}

	return l, c, nil
}

func writeJSON(w io.Writer, result beancomplete.Result) error {
	out := completion{Offset: result.Offset, Entries: result.Entries}
	if out.Entries == nil {
		out.Entries = []beancomplete.Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
