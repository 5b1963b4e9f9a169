package middleware

import (
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "sync"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "github.com/iliyamo/cinema-ticket-booking/internal/config"
)

// tokenBucketScript refills and takes one token atomically.  It returns
// {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])
    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + intervals * refill_tokens)
            last_refill = last_refill + intervals * interval_ms
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
    end

    redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)
    return { allowed, tokens, retry_after_ms }
`)

// NewTokenBucket limits requests per key built from cfg.KeyStrategy.  With
// a Redis client the bucket is shared by every server instance; without
// one each process keeps its own golang.org/x/time/rate limiters.  Redis
// errors fail open.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    if log == nil {
        log = zap.NewNop()
    }
    if rdb == nil {
        return newLocalBucket(cfg, log)
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            args := []interface{}{
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL / time.Second),
            }
            vals, err := tokenBucketScript.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
            if err != nil {
                log.Warn("rate limit script failed", zap.String("key", key), zap.Error(err))
                return next(c)
            }
            arr, ok := vals.([]interface{})
            if !ok || len(arr) != 3 {
                log.Warn("unexpected rate limit result", zap.String("key", key), zap.Any("result", vals))
                return next(c)
            }
            allowed := fmt.Sprint(arr[0]) == "1"
            remaining, retryMs := asInt64(arr[1]), asInt64(arr[2])

            setLimitHeaders(c, cfg, remaining)
            if !allowed {
                if cfg.Debug {
                    log.Debug("rate limited", zap.String("key", key), zap.Int64("retry_ms", retryMs))
                }
                return tooManyRequests(c, time.Duration(retryMs)*time.Millisecond)
            }
            if cfg.Debug {
                c.Response().Header().Set("X-RateLimit-Key", key)
            }
            return next(c)
        }
    }
}

// localBucket keeps one limiter per key, forgetting keys idle for cfg.TTL.
type localBucket struct {
    cfg       config.RateLimitConfig
    limit     rate.Limit
    mu        sync.Mutex
    limiters  map[string]*localEntry
    lastPrune time.Time
}

type localEntry struct {
    limiter  *rate.Limiter
    lastSeen time.Time
}

func newLocalBucket(cfg config.RateLimitConfig, log *zap.Logger) echo.MiddlewareFunc {
    b := &localBucket{
        cfg:      cfg,
        limit:    rate.Every(cfg.RefillInterval / time.Duration(cfg.RefillTokens)),
        limiters: make(map[string]*localEntry),
    }
    log.Info("rate limiting with in-process buckets", zap.Int("capacity", cfg.Capacity))
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            lim := b.get(key, time.Now())
            ok := lim.Allow()
            setLimitHeaders(c, cfg, int64(math.Max(0, math.Floor(lim.Tokens()))))
            if !ok {
                return tooManyRequests(c, b.cfg.RefillInterval/time.Duration(b.cfg.RefillTokens))
            }
            return next(c)
        }
    }
}

func (b *localBucket) get(key string, now time.Time) *rate.Limiter {
    b.mu.Lock()
    defer b.mu.Unlock()
    if now.Sub(b.lastPrune) > b.cfg.TTL {
        for k, e := range b.limiters {
            if now.Sub(e.lastSeen) > b.cfg.TTL {
                delete(b.limiters, k)
            }
        }
        b.lastPrune = now
    }
    e, ok := b.limiters[key]
    if !ok {
        e = &localEntry{limiter: rate.NewLimiter(b.limit, b.cfg.Capacity)}
        b.limiters[key] = e
    }
    e.lastSeen = now
    return e.limiter
}

func setLimitHeaders(c echo.Context, cfg config.RateLimitConfig, remaining int64) {
    c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
    c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
}

func tooManyRequests(c echo.Context, retry time.Duration) error {
    secs := int(math.Ceil(retry.Seconds()))
    if secs < 0 {
        secs = 0
    }
    c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
    return c.JSON(http.StatusTooManyRequests, echo.Map{
        "error":       "too_many_requests",
        "message":     "rate limit exceeded",
        "retry_after": secs,
    })
}

func asInt64(v interface{}) int64 {
    switch t := v.(type) {
    case int64:
        return t
    case int:
        return int64(t)
    case float64:
        return int64(t)
    case string:
        if n, err := strconv.ParseInt(t, 10, 64); err == nil {
            return n
        }
    }
    return 0
}

// buildRateKey joins the request parts selected by cfg.KeyStrategy.
// Unknown strategies use ip, flow and route together.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    flow := flowOrAnon(c)
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "flow":
        parts = append(parts, "flow", flow)
    case "route":
        parts = append(parts, "route", route)
    case "ip_flow":
        parts = append(parts, "ip", ip, "flow", flow)
    case "ip_route":
        parts = append(parts, "ip", ip, "route", route)
    case "flow_route":
        parts = append(parts, "flow", flow, "route", route)
    default:
        parts = append(parts, "ip", ip, "flow", flow, "route", route)
    }
    return strings.Join(parts, ":")
}
