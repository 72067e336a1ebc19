package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar names the environment variable holding a log spec.
const EnvVar = "IPA_LOG"

// Format is the log output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses "text" or "json". Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %q", s)
	}
}

// Options configures New. The first non-empty of CLISpec, EnvSpec
// and ConfigSpec is used.
type Options struct {
	CLISpec    string
	EnvSpec    string
	ConfigSpec string
	Format     Format
	// Output defaults to os.Stderr so command output on stdout stays
	// parseable.
	Output io.Writer
}

// New creates a logger with per-component filtering.
func New(opts Options) (*slog.Logger, error) {
	var specStr string
	switch {
	case opts.CLISpec != "":
		specStr = opts.CLISpec
	case opts.EnvSpec != "":
		specStr = opts.EnvSpec
	default:
		specStr = opts.ConfigSpec
	}

	spec, err := ParseSpec(specStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log spec: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	// The filtering handler decides; the inner handler passes
	// everything.
	handlerOpts := &slog.HandlerOptions{Level: LevelTrace.ToSlog()}

	var inner slog.Handler
	switch opts.Format {
	case FormatJSON:
		inner = slog.NewJSONHandler(out, handlerOpts)
	default:
		inner = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(NewFilteringHandler(inner, &spec)), nil
}

// FromEnv creates a text logger from $IPA_LOG.
func FromEnv() (*slog.Logger, error) {
	return New(Options{EnvSpec: os.Getenv(EnvVar)})
}
