package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// quietLevel raises level to warn when logs would share stderr with the
// progress view.
func quietLevel(level string, file string, progress bool) string {
	if !progress || file != "" {
		return level
	}

	switch level {
	case "debug", "info":
		return "warn"
	}

	return level
}

func newLogger(level string, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl

	if level == "debug" {
		cfg.Development = true
	}

	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	return cfg.Build()
}
