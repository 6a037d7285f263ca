// Package logging assembles structured slog loggers and formatting helpers used
// across collabtopo.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so pipeline code tags log lines with
// the run ID and the window being processed. A no-op logger is provided for
// tests and for wiring code that cannot fail.
package logging
