// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Verbose bool
	// Output is "stderr", "stdout" or a file path.
	Output string
}

// New returns a console-encoded sugared logger. Only warnings and errors
// are written unless Verbose is set.
func New(opts Options) (*zap.SugaredLogger, error) {
	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	out := opts.Output
	if out == "" {
		out = "stderr"
	}
	config := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().Named("bingo"), nil
}

// Nop discards everything.
func Nop() *zap.SugaredLogger { return zap.NewNop().Sugar() }
