package config

import (
    "strings"
    "testing"
    "time"
)

func TestLoadDefaults(t *testing.T) {
    t.Setenv("JWT_SECRET", "test-secret")

    cfg, err := Load()
    if err != nil {
        t.Fatalf("expected nil error, got %v", err)
    }
    if cfg.Port != "8080" || cfg.Env != "dev" {
        t.Fatalf("unexpected server defaults %q %q", cfg.Port, cfg.Env)
    }
    b := cfg.Booking
    if b.RowCount != 10 || b.SeatsPerRow != 12 || b.Occupancy != 0.3 || b.ServiceFee != 25 {
        t.Fatalf("unexpected booking defaults %+v", b)
    }
    if b.LoginDelay != time.Second || b.PaymentDelay != 2*time.Second {
        t.Fatalf("unexpected delays %v %v", b.LoginDelay, b.PaymentDelay)
    }
    if cfg.AMQP.Enabled || cfg.AMQP.Queue != "ticket.issued" {
        t.Fatalf("unexpected amqp defaults %+v", cfg.AMQP)
    }
    if !cfg.Cache.Methods["GET"] || cfg.Cache.TTL != 30*time.Second {
        t.Fatalf("unexpected cache defaults %+v", cfg.Cache)
    }
    if cfg.RateLimit.Capacity != 60 || cfg.RateLimit.KeyStrategy != "flow_route" {
        t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
    }
}

func TestLoadFromEnvironment(t *testing.T) {
    t.Setenv("JWT_SECRET", "test-secret")
    t.Setenv("APP_PORT", "9090")
    t.Setenv("SEAT_ROWS", "a, B ,C")
    t.Setenv("SEATS_PER_ROW", "8")
    t.Setenv("SEAT_SEED", "42")
    t.Setenv("PAYMENT_DELAY", "500ms")
    t.Setenv("RABBITMQ_URL", "amqp://u:p@broker:5672/")
    t.Setenv("REDIS_HOST", "cache")
    t.Setenv("REDIS_PORT", "6380")
    t.Setenv("CACHE_METHODS", "get, head")
    t.Setenv("RATE_LIMIT_BURST", "5")
    t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")

    cfg, err := Load()
    if err != nil {
        t.Fatalf("expected nil error, got %v", err)
    }
    if cfg.Port != "9090" {
        t.Fatalf("expected port 9090, got %s", cfg.Port)
    }
    if got := strings.Join(cfg.Booking.Rows, ""); got != "ABC" {
        t.Fatalf("expected rows ABC, got %v", cfg.Booking.Rows)
    }
    if cfg.Booking.SeatsPerRow != 8 || cfg.Booking.Seed != 42 || cfg.Booking.PaymentDelay != 500*time.Millisecond {
        t.Fatalf("unexpected booking config %+v", cfg.Booking)
    }
    if cfg.AMQP.URL != "amqp://u:p@broker:5672/" {
        t.Fatalf("expected RABBITMQ_URL to win, got %s", cfg.AMQP.URL)
    }
    if cfg.Redis.Addr != "cache:6380" {
        t.Fatalf("expected host:port address, got %s", cfg.Redis.Addr)
    }
    if !cfg.Cache.Methods["HEAD"] || !cfg.Cache.Methods["GET"] {
        t.Fatalf("expected GET and HEAD cached, got %v", cfg.Cache.Methods)
    }
    rl := cfg.RateLimit
    if rl.Capacity != 5 || rl.RefillTokens != 1 || rl.RefillInterval != 2*time.Second || rl.TTL < 10*time.Second {
        t.Fatalf("unexpected rate limit config %+v", rl)
    }
}

func TestLoadValidation(t *testing.T) {
    t.Setenv("JWT_SECRET", "")
    if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
        t.Fatalf("expected missing secret error, got %v", err)
    }

    t.Setenv("JWT_SECRET", "test-secret")
    t.Setenv("SEAT_OCCUPANCY", "1.5")
    if _, err := Load(); err == nil {
        t.Fatal("expected occupancy out of range error")
    }
}

func TestLoadRejectsAmbiguousRowLabels(t *testing.T) {
    t.Setenv("JWT_SECRET", "test-secret")
    for _, rows := range []string{"A,A1", "A,B,A", "A,B-C"} {
        t.Setenv("SEAT_ROWS", rows)
        if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SEAT_ROWS") {
            t.Fatalf("expected SEAT_ROWS error for %q, got %v", rows, err)
        }
    }

    t.Setenv("SEAT_ROWS", "a,b")
    cfg, err := Load()
    if err != nil {
        t.Fatalf("expected lower-case labels to load, got %v", err)
    }
    if got := strings.Join(cfg.Booking.Rows, ","); got != "A,B" {
        t.Fatalf("expected upper-cased rows A,B, got %s", got)
    }
}

func TestRateLimitNormalized(t *testing.T) {
    rl := RateLimitConfig{RefillInterval: 0, TTL: 0}.normalized()
    if rl.Capacity != 1 || rl.RefillTokens != 1 || rl.RefillInterval != time.Second || rl.TTL != 5*time.Second {
        t.Fatalf("unexpected normalized config %+v", rl)
    }
}
