package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output, for wiring the
// storefront services in tests without log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
