package main // Entry point package

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
    "github.com/iliyamo/cinema-ticket-booking/internal/config"
    "github.com/iliyamo/cinema-ticket-booking/internal/handler"
    "github.com/iliyamo/cinema-ticket-booking/internal/logger"
    "github.com/iliyamo/cinema-ticket-booking/internal/middleware"
    "github.com/iliyamo/cinema-ticket-booking/internal/queue"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
    "github.com/iliyamo/cinema-ticket-booking/internal/router"
    "github.com/iliyamo/cinema-ticket-booking/internal/service"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        fmt.Fprintln(os.Stderr, "config:", err)
        os.Exit(1)
    }
    log, err := logger.New(cfg.Env, cfg.LogLevel)
    if err != nil {
        fmt.Fprintln(os.Stderr, "logger:", err)
        os.Exit(1)
    }
    defer func() { _ = log.Sync() }()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    rdb := config.NewRedisClient(cfg.Redis)
    if rdb == nil {
        log.Warn("redis unavailable, response cache disabled and rate limiting is per process", zap.String("addr", cfg.Redis.Addr))
    } else {
        defer func() { _ = rdb.Close() }()
    }

    catalog := repository.NewCatalogRepo()
    reviews := repository.NewReviewRepo(catalog)
    stats := repository.NewStatsRepo()
    clk := clock.Real()

    flows := booking.NewRegistry(catalog, clk, bookingSettings(cfg.Booking), cfg.Booking.Seed, log)
    flows.OnTicketIssued(stats.Record)

    if cfg.AMQP.Enabled {
        pub := &service.TicketPublisher{URL: cfg.AMQP.URL, Queue: cfg.AMQP.Queue, Timeout: 5 * time.Second, Log: log}
        flows.OnTicketIssued(pub.OnTicketIssued)

        consumer := &queue.Consumer{URL: cfg.AMQP.URL, Queue: cfg.AMQP.Queue, LogFile: cfg.AMQP.LogFile, Log: log}
        go func() {
            if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                log.Error("ticket consumer stopped", zap.Error(err))
            }
        }()
    }

    go sweep(ctx, flows, cfg.SweepInterval, cfg.FlowIdleTTL)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.CORS())
    e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:   true,
        LogURI:      true,
        LogStatus:   true,
        LogLatency:  true,
        LogRemoteIP: true,
        LogError:    true,
        HandleError: true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            fields := []zap.Field{
                zap.String("method", v.Method),
                zap.String("uri", v.URI),
                zap.Int("status", v.Status),
                zap.Duration("latency", v.Latency),
                zap.String("remote_ip", v.RemoteIP),
            }
            if id := middleware.FlowID(c); id != "" {
                fields = append(fields, zap.String("flow_id", id))
            }
            if v.Error != nil {
                log.Error("request", append(fields, zap.Error(v.Error))...)
                return nil
            }
            log.Info("request", fields...)
            return nil
        },
    }))

    public := &handler.PublicHandler{Catalog: catalog, Reviews: reviews, Stats: stats, Flows: flows}
    flow := &handler.FlowHandler{
        Flows:    flows,
        Reviews:  reviews,
        Secret:   cfg.JWTSecret,
        TokenTTL: cfg.FlowTokenTTL,
        Clock:    clk,
        Log:      log,
    }
    router.RegisterRoutes(e, public)
    router.RegisterPublic(e, public, middleware.NewRedisCache(cfg.Cache, rdb, log))
    router.RegisterFlow(e, flow, cfg.JWTSecret, middleware.NewTokenBucket(cfg.RateLimit, rdb, log))

    addr := ":" + cfg.Port
    serveErr := make(chan error, 1)
    go func() {
        log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            serveErr <- err
        }
    }()

    select {
    case <-ctx.Done():
        log.Info("shutting down")
    case err := <-serveErr:
        log.Error("server stopped", zap.Error(err))
        stop()
    }
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Error("graceful shutdown failed", zap.Error(err))
    }
    log.Info("closed flows", zap.Int("count", flows.CloseAll()))
}

// bookingSettings maps the environment configuration onto the flow settings.
func bookingSettings(b config.BookingConfig) booking.Settings {
    rows := b.Rows
    if len(rows) == 0 {
        rows = booking.RowLabels(b.RowCount)
    }
    return booking.Settings{
        Rows:         rows,
        SeatsPerRow:  b.SeatsPerRow,
        Occupancy:    b.Occupancy,
        ServiceFee:   b.ServiceFee,
        LoginDelay:   b.LoginDelay,
        PaymentDelay: b.PaymentDelay,
    }
}

// sweep closes flows idle longer than ttl every interval until ctx ends.
func sweep(ctx context.Context, flows *booking.Registry, interval, ttl time.Duration) {
    t := time.NewTicker(interval)
    defer t.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-t.C:
            flows.Sweep(ttl)
        }
    }
}
