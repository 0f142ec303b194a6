// Package outwriter has output and writer logic for responses, dataset
// listings and the query log.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/tabletalk/tabletalk/internal/contract"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// writeWithFile runs a writer function against the configured output file,
// defaulting to stdout.
func writeWithFile(filePath string, write func(w io.Writer) error, doneMsg string) error {
	f, err := contract.SelectOutputFile(filePath)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	if f != os.Stdout {
		defer func() { _ = f.Close() }()
	}
	if err := write(f); err != nil {
		return err
	}
	if f != os.Stdout && doneMsg != "" {
		fmt.Printf("%s to %s\n", doneMsg, filePath)
	}
	return nil
}

// terminalWidth returns the configured or detected terminal width with a
// conservative default for CI and narrow terminals.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// truncate shortens a string to fit a column, marking the cut with an
// ellipsis.
func truncate(s string, width int) string {
	if width < 4 || len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}
