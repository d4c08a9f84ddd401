package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

const AppName = "cmlabs-payroll"

type Options struct {
	Level   slog.Level
	Env     string
	Version string
}

// New returns a JSON logger whose attribute keys follow the ECS schema used by the request logger.
func New(w io.Writer, opts Options) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	version := opts.Version
	if version == "" {
		version = "v1.0.0"
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", version),
		slog.String("env", opts.Env),
	)
}
