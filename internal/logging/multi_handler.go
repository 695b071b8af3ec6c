// ABOUTME: Tee handler sending every record to the console and the rotating log file.
// ABOUTME: Each side keeps its own level check, attrs, and groups.

package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler writes to the console handler and the file handler.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

func newTeeHandler(console, file slog.Handler) *teeHandler {
	return &teeHandler{console: console, file: file}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle reports failures from both sides; a broken log file never hides
// console output.
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error
	for _, side := range []slog.Handler{h.console, h.file} {
		if !side.Enabled(ctx, r.Level) {
			continue
		}
		if err := side.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTeeHandler(h.console.WithAttrs(attrs), h.file.WithAttrs(attrs))
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return newTeeHandler(h.console.WithGroup(name), h.file.WithGroup(name))
}
