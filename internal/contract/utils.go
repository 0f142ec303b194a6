package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Emphasis colors for console output.
var (
	AnswerColor  = color.New(color.FgCyan, color.Bold) // emphasized answer values
	HeaderColor  = color.New(color.FgGreen, color.Bold)
	WarningColor = color.New(color.FgYellow)
)

// RenderEmphasis converts **bold** answer markers into terminal bold text.
// With colorize false the markers are stripped instead.
func RenderEmphasis(s string, colorize bool) string {
	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "**")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start+2:], "**")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		inner := rest[start+2 : start+2+end]
		if colorize {
			b.WriteString(AnswerColor.Sprint(inner))
		} else {
			b.WriteString(inner)
		}
		rest = rest[start+2+end+2:]
	}
	return b.String()
}

// ResolveCandidates expands a data source name into the resolution attempts a
// store should try, in order: exact, +.csv, spaces-to-underscore (+.csv),
// spaces-to-hyphen (+.csv). The case-insensitive fallback is store-side.
func ResolveCandidates(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	underscored := strings.ReplaceAll(name, " ", "_")
	hyphened := strings.ReplaceAll(name, " ", "-")

	candidates := []string{name, name + ".csv"}
	if underscored != name {
		candidates = append(candidates, underscored, underscored+".csv")
	}
	if hyphened != name {
		candidates = append(candidates, hyphened, hyphened+".csv")
	}
	return candidates
}

// SelectOutputFile returns the file handle for output, falling back to
// stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
