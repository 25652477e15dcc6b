package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LoginRateLimiter provides rate limiting specifically for login attempts
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.RWMutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter creates a new login rate limiter allowing maxAttempts
// per client IP within window
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// IsAllowed checks if a login attempt from the given IP is allowed
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.recent(ip)
	if len(valid) == 0 {
		delete(rl.attempts, ip)
	} else {
		rl.attempts[ip] = valid
	}
	return len(valid) < rl.maxAttempts
}

// RecordAttempt records a login attempt for the given IP
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.attempts[ip], rl.now())
}

// GetTimeUntilAllowed returns the time until the next login attempt is allowed
func (rl *LoginRateLimiter) GetTimeUntilAllowed(ip string) time.Duration {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	valid := rl.recent(ip)
	if len(valid) < rl.maxAttempts {
		return 0
	}
	// attempts are recorded in order, so the oldest one frees a slot first
	return valid[len(valid)-rl.maxAttempts].Add(rl.window).Sub(rl.now())
}

// recent returns the attempts of ip inside the window. Callers hold the lock.
func (rl *LoginRateLimiter) recent(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)

	var valid []time.Time
	for _, attempt := range rl.attempts[ip] {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}
	return valid
}

// cleanup removes old entries periodically
func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mutex.Lock()
		for ip := range rl.attempts {
			if valid := rl.recent(ip); len(valid) == 0 {
				delete(rl.attempts, ip)
			} else {
				rl.attempts[ip] = valid
			}
		}
		rl.mutex.Unlock()
	}
}

// LoginRateLimit provides rate limiting middleware for login endpoints
func LoginRateLimit(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only POST requests are login attempts
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)

			if !rateLimiter.IsAllowed(ip) {
				wait := rateLimiter.GetTimeUntilAllowed(ip).Round(time.Second)
				w.Header().Set("Retry-After", formatSeconds(wait))
				if IsHTMXRequest(r) {
					renderAlert(w, http.StatusTooManyRequests, "登入嘗試次數過多，請於 "+wait.String()+" 後再試")
				} else {
					http.Error(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
				}
				return
			}

			rateLimiter.RecordAttempt(ip)

			next.ServeHTTP(w, r)
		})
	}
}

func formatSeconds(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
