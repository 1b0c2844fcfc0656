package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

var utcTimestamps sync.Once

type options struct {
	output io.Writer
	format string
}

type Option func(*options)

// WithOutput sends log lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithFormat selects FormatJSON (default) or FormatConsole, a human readable
// layout for local runs.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// New creates a new zerolog logger based on the provided log level string.
// Returns an error if the log level or format cannot be parsed.
func New(level string, opts ...Option) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	o := options{output: os.Stdout, format: FormatJSON}
	for _, opt := range opts {
		opt(&o)
	}

	output := o.output
	switch o.format {
	case FormatJSON, "":
	case FormatConsole:
		output = zerolog.ConsoleWriter{Out: o.output, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", o.format)
	}

	utcTimestamps.Do(func() {
		zerolog.TimestampFunc = func() time.Time {
			return time.Now().UTC()
		}
	})

	logger := zerolog.New(output).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Ctx extracts a logger from the context.
// Returns a disabled logger if none was attached.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
