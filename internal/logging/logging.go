// Package logging builds the process logger: terse console output plus a
// rotating debug log under the arcli home directory.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/atomic-reactor/arcli/internal/branding"
)

// Options configures New.
type Options struct {
	// Console receives message-only lines. Nil disables console output.
	Console io.Writer
	// File is the log file path. Empty disables file logging.
	File string
	// Debug enables debug records on the console.
	Debug bool
}

// Logger is a slog.Logger that owns its log file.
type Logger struct {
	*slog.Logger
	file io.Closer
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// DebugEnabled reports whether ARCLI_DEBUG (or DEBUG) is set.
func DebugEnabled() bool {
	return os.Getenv(branding.EnvVar("DEBUG")) != "" || os.Getenv("DEBUG") != ""
}

// New builds a logger fanning out to a console handler and, when
// opts.File is set, a lumberjack-rotated text handler.
func New(opts Options) (*Logger, error) {
	var handlers []slog.Handler
	if opts.Console != nil {
		handlers = append(handlers, &consoleHandler{w: opts.Console, debug: opts.Debug})
	}

	l := &Logger{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		rotator := newRotator(opts.File)
		l.file = rotator
		handlers = append(handlers, slog.NewTextHandler(rotator, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	l.Logger = slog.New(&fanout{handlers: handlers})
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(&fanout{})
}

func newRotator(path string) *lumberjack.Logger {
	r := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if n, ok := envInt("LOG_MAX_SIZE"); ok && n > 0 {
		r.MaxSize = n
	}
	if n, ok := envInt("LOG_MAX_BACKUPS"); ok && n >= 0 {
		r.MaxBackups = n
	}
	if n, ok := envInt("LOG_MAX_AGE"); ok && n > 0 {
		r.MaxAge = n
	}
	return r
}

func envInt(name string) (int, bool) {
	v := os.Getenv(branding.EnvVar(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// consoleHandler prints the record message alone.
type consoleHandler struct {
	w     io.Writer
	debug bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < slog.LevelInfo {
		return h.debug
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	_, err := fmt.Fprintln(h.w, r.Message)
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

type fanout struct {
	handlers []slog.Handler
}

func (h *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithAttrs(attrs)
	}
	return &fanout{handlers: out}
}

func (h *fanout) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithGroup(name)
	}
	return &fanout{handlers: out}
}
