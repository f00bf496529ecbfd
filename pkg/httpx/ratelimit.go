package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token-bucket rate limit over a time window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles for the endpoint classes we expose. Credential endpoints get the
// strict profile to slow down brute forcing.
var (
	StrictLimit   = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}
	LenientLimit  = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
)

// KeyExtractor derives the bucket key for a request (IP, form field, ...).
type KeyExtractor func(*http.Request) string

// IPKey extracts the client IP, honouring X-Forwarded-For and X-Real-IP for
// proxied requests.
func IPKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// FormFieldKey keys buckets by a form field combined with the client IP, so
// one attacker cannot exhaust a victim's login budget from many addresses
// without also naming the victim.
func FormFieldKey(field string) KeyExtractor {
	return func(r *http.Request) string {
		_ = r.ParseForm()
		return IPKey(r) + ":" + r.FormValue(field)
	}
}

type limiterRegistry struct {
	limiters sync.Map // key -> *rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (reg *limiterRegistry) get(key string) *rate.Limiter {
	if l, ok := reg.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := reg.limiters.LoadOrStore(key, rate.NewLimiter(reg.rate, reg.burst))
	reg.maybeCleanup()
	return l.(*rate.Limiter)
}

// maybeCleanup drops idle buckets (full token count) so ephemeral keys don't
// accumulate forever.
func (reg *limiterRegistry) maybeCleanup() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if time.Since(reg.lastCleanup) < 5*time.Minute {
		return
	}
	reg.lastCleanup = time.Now()

	reg.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(reg.burst) {
			reg.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit returns a middleware limiting requests per extracted key.
// Requests over the limit get 429 with a Retry-After hint.
func RateLimit(cfg RateLimitConfig, key KeyExtractor) Middleware {
	reg := &limiterRegistry{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			limiter := reg.get(k)
			if !limiter.Allow() {
				res := limiter.Reserve()
				delay := res.Delay()
				res.Cancel()

				retryAfter := int(delay.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
