// Package logging builds the process-wide zerolog logger. Console output goes
// to stderr; when a log directory is configured, a rotating JSON file is
// written alongside it.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options control logger construction.
type Options struct {
	Level   string // debug | info | warn | error; defaults to info
	LogDir  string // empty disables the rotating file
	Console bool   // pretty console writer instead of raw JSON on stderr
}

// New constructs a logger from opts. The returned closer releases the rotating
// file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(levelOrDefault(opts.Level))
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var console io.Writer = os.Stderr
	if opts.Console {
		console = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		})
	}

	if opts.LogDir == "" {
		logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.LogDir, "shortsmith.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	logger := zerolog.New(io.MultiWriter(console, file)).Level(level).With().Timestamp().Logger()
	return logger, file, nil
}

func levelOrDefault(s string) string {
	if s == "" {
		return "info"
	}
	return s
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
