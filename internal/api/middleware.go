package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/smesner/contactsweb/internal/pkg/httputil"
	"github.com/smesner/contactsweb/internal/pkg/logger"
)

// IPRateLimiter applies a token-bucket limit per client IP. It sits in
// front of the submit endpoint to shed scripted floods before any
// database work happens; the per-address cooldown inside the pipeline
// still governs duplicates that get through.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorIdleTTL is how long a client's bucket survives without
// traffic before it is dropped.
const visitorIdleTTL = 10 * time.Minute

// NewIPRateLimiter creates a limiter allowing perSecond requests with
// the given burst per client IP. Idle entries are pruned as new clients
// arrive, so the map cannot grow without bound and no background
// goroutine is needed.
func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		l.pruneLocked()
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// pruneLocked drops visitors idle past the TTL. Caller holds mu.
func (l *IPRateLimiter) pruneLocked() {
	cutoff := time.Now().Add(-visitorIdleTTL)
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// Middleware rejects requests over the per-IP budget with 429.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RealIP middleware may have replaced RemoteAddr with a
			// bare address from X-Forwarded-For.
			ip = r.RemoteAddr
		}
		if !l.allow(ip) {
			logger.Warn("request over per-ip budget", "ip", ip, "path", r.URL.Path)
			httputil.Error(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
