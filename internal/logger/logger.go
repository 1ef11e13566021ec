// Package logger builds the slog logger shared by the server, the
// terminal preview and the typewriter drivers.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type options struct {
	debug  bool
	format string
	writer io.Writer
	quiet  bool
}

// Option configures New.
type Option func(*options)

// WithDebug lowers the level to debug and records the call site.
func WithDebug() Option {
	return func(o *options) { o.debug = true }
}

// WithFormat selects "text" (default) or "json" output.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithWriter adds a second destination, typically a log file.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithQuiet drops the stderr destination.
func WithQuiet() Option {
	return func(o *options) { o.quiet = true }
}

// New returns a logger that fans out to stderr and, if configured, to an
// extra writer.
func New(opts ...Option) *slog.Logger {
	o := &options{format: "text"}
	for _, opt := range opts {
		opt(o)
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: o.debug,
	}

	var handlers []slog.Handler
	if !o.quiet {
		handlers = append(handlers, newHandler(os.Stderr, o.format, handlerOpts))
	}
	if o.writer != nil {
		handlers = append(handlers, newHandler(o.writer, o.format, handlerOpts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

type loggerKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// WithValues returns a context whose logger carries the given attributes.
func WithValues(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}
