package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"tickets-go-admin/internal/auth"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestStore() sessions.Store {
	return sessions.NewCookieStore([]byte("test-secret-key"))
}

// lastCookies keeps the last cookie of each name set on rr, as a browser would
func lastCookies(rr *httptest.ResponseRecorder) []*http.Cookie {
	latest := make(map[string]*http.Cookie)
	var order []string
	for _, c := range rr.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	out := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		out = append(out, latest[name])
	}
	return out
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// signedIn returns the cookies of a browser holding cred
func signedIn(t *testing.T, store sessions.Store, cred auth.Credential) []*http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, auth.NewCredentialStore(store).Save(rr, req, cred))
	return lastCookies(rr)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})
}
