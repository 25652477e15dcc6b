package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter_IsAllowed(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Stop()

	ip := "192.168.1.1"

	for i := 0; i < 3; i++ {
		assert.True(t, rl.IsAllowed(ip), "attempt %d should be allowed", i+1)
		rl.RecordAttempt(ip)
	}

	assert.False(t, rl.IsAllowed(ip), "4th attempt should be blocked")
	assert.True(t, rl.IsAllowed("192.168.1.2"), "different IP should be allowed")
}

func TestLoginRateLimiter_WindowExpires(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := testNow
	rl.now = func() time.Time { return now }

	ip := "192.168.1.1"
	rl.RecordAttempt(ip)
	now = now.Add(10 * time.Second)
	rl.RecordAttempt(ip)

	assert.False(t, rl.IsAllowed(ip))
	assert.Equal(t, 50*time.Second, rl.GetTimeUntilAllowed(ip))

	now = now.Add(51 * time.Second)
	assert.True(t, rl.IsAllowed(ip))
	assert.Zero(t, rl.GetTimeUntilAllowed(ip))
}

func TestLoginRateLimit_Middleware(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Stop()
	handler := LoginRateLimit(rl)(okHandler())

	post := func(htmx bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		if htmx {
			req.Header.Set("HX-Request", "true")
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, post(false).Code)
	assert.Equal(t, http.StatusOK, post(false).Code)

	blocked := post(false)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	htmx := post(true)
	assert.Equal(t, http.StatusTooManyRequests, htmx.Code)
	assert.Contains(t, htmx.Body.String(), "登入嘗試次數過多")

	// GET renders the form and is never limited
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
