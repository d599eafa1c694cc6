// Package log builds the zap loggers used by every component of the synchronizer.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ConsoleEncoder represents logging with plain text.
	ConsoleEncoder = "console"
	// JSONEncoder represents logging with JSON.
	JSONEncoder = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// DefaultLevel is used for components without a configured level.
func DefaultLevel() zapcore.Level {
	return zapcore.InfoLevel
}

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewEncoder returns an encoder for the given kind, console is used for unknown kinds.
func NewEncoder(kind string) zapcore.Encoder {
	if kind == JSONEncoder {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// ParseLevel parses a textual level, empty text yields the default level.
func ParseLevel(text string) (zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevelAt(DefaultLevel())
	if text == "" {
		return lvl, nil
	}
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("parse log level %q: %w", text, err)
	}
	return lvl, nil
}
