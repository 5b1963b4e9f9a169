package logger

import (
    "testing"

    "go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
    log, err := New("production", "warn")
    if err != nil {
        t.Fatalf("expected nil error, got %v", err)
    }
    if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.WarnLevel) {
        t.Fatal("expected warn level: debug off, warn on")
    }

    dev, err := New("dev", "")
    if err != nil {
        t.Fatalf("expected nil error, got %v", err)
    }
    if !dev.Core().Enabled(zapcore.DebugLevel) {
        t.Fatal("expected debug logging in development")
    }
}

func TestNewRejectsUnknownLevel(t *testing.T) {
    if _, err := New("dev", "chatty"); err == nil {
        t.Fatal("expected error for unknown level")
    }
}

func TestIsProduction(t *testing.T) {
    for env, want := range map[string]bool{"prod": true, "Production": true, "dev": false, "": false} {
        if got := IsProduction(env); got != want {
            t.Fatalf("IsProduction(%q): expected %v, got %v", env, want, got)
        }
    }
}
