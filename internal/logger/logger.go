// Package logger builds the process-wide zerolog logger. Combat
// outcomes never depend on it; it exists for operators of the tooling,
// not for the simulation.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a structured logger writing to stdout at the given level.
// Unparseable level strings fall back to info.
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}

// NewConsole returns a human-readable console logger for interactive
// runs of the report tool.
func NewConsole(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}
