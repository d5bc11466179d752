package handlers

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"marketplace-web/config"
	apperrors "marketplace-web/pkg/errors"
)

type RateLimiter struct {
	ViewLimit   *IPRateLimiter
	ActionLimit *IPRateLimiter
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	trusted, err := config.ParseProxies(cfg.TrustedProxies)
	if err != nil {
		log.Printf("⚠️ Ignoring trusted proxies: %v", err)
		trusted = nil
	}
	views := NewIPRateLimiter(cfg.ViewsPerMinute, time.Minute)
	actions := NewIPRateLimiter(cfg.ActionsPerMinute, time.Minute)
	views.trusted, actions.trusted = trusted, trusted
	return &RateLimiter{ViewLimit: views, ActionLimit: actions}
}

// IPRateLimiter allows limit requests per client IP in a sliding window.
type IPRateLimiter struct {
	ips       map[string][]time.Time
	mu        sync.Mutex
	limit     int
	window    time.Duration
	trusted   []*net.IPNet
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *IPRateLimiter) isTrusted(ip net.IP) bool {
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP keys a request by its socket peer. X-Forwarded-For is only read
// when the peer is a trusted proxy, and then the rightmost untrusted hop wins.
func (l *IPRateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)
	if peer == nil || !l.isTrusted(peer) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := net.ParseIP(strings.TrimSpace(hops[i]))
		if hop == nil {
			break
		}
		if !l.isTrusted(hop) {
			return hop.String()
		}
	}
	return host
}

// Allow records a request from ip and reports whether it is within the limit.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(windowStart)
		l.lastSweep = now
	}

	valid := l.ips[ip][:0]
	for _, req := range l.ips[ip] {
		if req.After(windowStart) {
			valid = append(valid, req)
		}
	}

	if len(valid) >= l.limit {
		l.ips[ip] = valid
		return false
	}
	l.ips[ip] = append(valid, now)
	return true
}

// sweep drops clients with no request inside the window. Callers hold mu.
func (l *IPRateLimiter) sweep(windowStart time.Time) {
	for ip, reqs := range l.ips {
		if len(reqs) == 0 || !reqs[len(reqs)-1].After(windowStart) {
			delete(l.ips, ip)
		}
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.limit > 0 && !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			apperrors.HandleError(w, apperrors.New(apperrors.ErrRateLimited, "Rate limit exceeded", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
