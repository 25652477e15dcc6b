package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"tickets-go-admin/internal/navigation"
)

const navigationContextKey contextKey = "navigation"

// Navigation restores the navigation store from its cookies and puts it in
// the request context. The first request of a browser session mounts the
// shell, which starts it with an empty breadcrumb.
func Navigation(cookies *navigation.Cookies, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, mounted := cookies.Load(r)
			if mounted {
				if err := cookies.Mount(w, r); err != nil {
					logger.Warn("failed to mount navigation shell", zap.Error(err))
				}
			}
			ctx := context.WithValue(r.Context(), navigationContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetNavigation returns the navigation store placed in ctx by Navigation
func GetNavigation(ctx context.Context) *navigation.Store {
	store, _ := ctx.Value(navigationContextKey).(*navigation.Store)
	return store
}
