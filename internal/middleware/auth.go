package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/gateway"
)

type contextKey string

const (
	SessionIDContextKey contextKey = "sid"
	CSRFTokenContextKey contextKey = "csrf_token"
)

// PublicPaths are reachable without a credential. Entries ending in "/"
// match by prefix.
var PublicPaths = []string{"/static/", "/favicon.ico", "/health", "/home", "/login", "/brand"}

// LandingPath is where the route gate sends anonymous visitors
const LandingPath = "/home"

// AuthMiddleware attaches the operator credential to each request and
// gates private routes on it
type AuthMiddleware struct {
	session *auth.Session
	clock   clock.Clock
	logger  *zap.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(session *auth.Session, clk clock.Clock, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{session: session, clock: clk, logger: logger}
}

// LoadCredential makes sure the browser session has an id, then puts the
// session id and, when still valid, the credential and its bearer token in
// the request context. An expired credential is treated as absent.
func (m *AuthMiddleware) LoadCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sid, err := m.session.Init(w, r)
		if err != nil {
			m.logger.Warn("failed to start browser session", zap.Error(err))
		}
		ctx = context.WithValue(ctx, SessionIDContextKey, sid)

		if cred, ok := m.session.Credentials().Load(r); ok && cred.Valid(m.clock.Now()) {
			ctx = auth.WithCredential(ctx, cred)
			ctx = gateway.ContextWithToken(ctx, cred.Token)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RouteGate redirects requests without a credential to the landing route,
// except for the public paths. It must run after LoadCredential.
func RouteGate(public []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, public) {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := auth.FromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			redirectAnonymous(w, r)
		})
	}
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// redirectAnonymous sends the browser to the landing route. HTMX requests
// get an HX-Redirect header since a 303 would be swapped into the page.
func redirectAnonymous(w http.ResponseWriter, r *http.Request) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", LandingPath)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, LandingPath, http.StatusSeeOther)
}

// GetSessionID returns the browser session id from ctx
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(SessionIDContextKey).(string)
	return sid
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
