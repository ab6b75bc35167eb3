package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"event-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Token bucket di Redis. Satu script Lua supaya refill + consume
// atomik; tanpa ini dua request bersamaan bisa sama-sama lolos
// dengan sisa token satu.
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
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + (intervals * refill_tokens))
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    local until_next = interval_ms - (now_ms - last_refill)
    if until_next < 0 then until_next = 0 end
    retry_after_ms = until_next
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimit membatasi request per user (fallback per IP) dengan token
// bucket di Redis. Kalau Redis mati, request diloloskan: limiter tidak
// boleh jadi single point of failure.
func RateLimit(cfg utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := buildRateKey(cfg.Prefix, r)

			args := []interface{}{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}

			vals, err := tokenBucketScript.Run(r.Context(), rdb, []string{key}, args...).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable, allowing request",
					zap.Error(err),
					zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			arr, ok := vals.([]interface{})
			if !ok || len(arr) != 3 {
				logger.Warn("Unexpected rate limiter script result",
					zap.Any("result", vals),
					zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			allowed := asInt64(arr[0]) == 1
			remaining := asInt64(arr[1])
			retryMs := asInt64(arr[2])

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(retryMs) / 1000.0))
				if secs < 0 {
					secs = 0
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.Int("retry_after_secs", secs))
				utils.ResponseTooManyRequests(w, "Rate limit exceeded, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func buildRateKey(prefix string, r *http.Request) string {
	parts := []string{prefix}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		parts = append(parts, "user", userID.String())
	} else {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}
		parts = append(parts, "ip", ip)
	}

	parts = append(parts, "route", r.Method+" "+r.URL.Path)
	return strings.Join(parts, ":")
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
