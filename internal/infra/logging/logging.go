// Package logging configures the process-wide structured logger shared
// by the api and migrator binaries.
package logging

import (
	"log/slog"
	"os"
)

// SetupJSON installs a JSON slog handler on stdout as the default
// logger. Everything in this repo logs through slog's package-level
// functions, so this runs once at startup, right after config loads.
func SetupJSON(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
