// Package logging configures the shared zap logger for the pipeline binaries.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger writing human-readable output to stderr.
// The pipeline tools are run by hand, so the console encoder is the default.
func New(debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// Build only fails on bad config; panic is fine for a hand-run tool.
		panic(err)
	}
	return logger.Sugar()
}
