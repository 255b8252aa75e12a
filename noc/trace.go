package noc

import (
	"context"
	"log/slog"
)

// LevelTrace sits just above Info so watched-flit lines survive the default
// handler level.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace emits one trace line for a watched flit.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
