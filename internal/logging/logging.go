// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file created inside the log directory.
const FileName = "stargazer.log"

// Options select where logs go and how verbose they are.
type Options struct {
	// Dir receives stargazer.log. Empty writes to Stderr instead, which is
	// only safe when no TUI owns the terminal.
	Dir    string
	Debug  bool
	Stderr io.Writer
}

// Setup builds the logger and returns a cleanup func that closes the file.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if opts.Debug {
		level = slog.LevelDebug
	}

	var (
		out     io.Writer = opts.Stderr
		cleanup           = func() error { return nil }
	)
	if out == nil {
		out = os.Stderr
	}

	if dir := strings.TrimSpace(opts.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		cleanup = f.Close
	}

	h := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05"))
			}
			return a
		},
	})
	return slog.New(h).With("service", "stargazer"), cleanup, nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
