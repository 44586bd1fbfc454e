package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
// Extra handlers (the PostgreSQL error sink) receive the same records.
func Setup(extra ...slog.Handler) {
	slog.SetDefault(New(os.Stdout, slog.LevelInfo, extra...))
}

func New(w io.Writer, level slog.Level, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}
	return slog.New(handler)
}
