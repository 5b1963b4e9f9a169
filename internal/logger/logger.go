// Package logger builds the zap logger shared by the server and its
// components.
package logger

import (
    "fmt"
    "strings"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New returns a logger for the given environment.  Production uses the JSON
// encoder; anything else gets the console encoder with coloured levels.
// level overrides the default (info in production, debug elsewhere) when
// non-empty.
func New(env, level string) (*zap.Logger, error) {
    var cfg zap.Config
    if IsProduction(env) {
        cfg = zap.NewProductionConfig()
        cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
    } else {
        cfg = zap.NewDevelopmentConfig()
        cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
        cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    }
    if level != "" {
        lvl, err := zapcore.ParseLevel(level)
        if err != nil {
            return nil, fmt.Errorf("parse log level %q: %w", level, err)
        }
        cfg.Level = zap.NewAtomicLevelAt(lvl)
    }
    log, err := cfg.Build()
    if err != nil {
        return nil, fmt.Errorf("build logger: %w", err)
    }
    return log, nil
}

// IsProduction reports whether env names a production deployment.
func IsProduction(env string) bool {
    switch strings.ToLower(env) {
    case "prod", "production":
        return true
    }
    return false
}
