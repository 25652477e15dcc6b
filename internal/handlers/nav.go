package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/navigation"
)

// NavHandler applies menu clicks to the navigation store
type NavHandler struct {
	cookies *navigation.Cookies
	logger  *zap.Logger
}

// NewNavHandler creates a new navigation handler
func NewNavHandler(cookies *navigation.Cookies, logger *zap.Logger) *NavHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavHandler{cookies: cookies, logger: logger}
}

// Select handles a menu item click: it selects key, recomputes the
// breadcrumb from keyPath and goes to the item's route. Items without a
// route stay on the current page.
func (h *NavHandler) Select(w http.ResponseWriter, r *http.Request) {
	store := middleware.GetNavigation(r.Context())
	if store == nil {
		http.Error(w, "Navigation unavailable", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	key := q.Get("key")
	keyPath := q["keyPath"]
	if key == "" {
		http.Error(w, "Missing menu key", http.StatusBadRequest)
		return
	}
	if len(keyPath) == 0 {
		keyPath = []string{key}
	}

	store.Select(key, keyPath)
	if err := h.cookies.Save(w, r, store); err != nil {
		h.logger.Warn("failed to save navigation", zap.Error(err))
	}

	if node, _, ok := store.Menu().Find(key); ok && node.Route != "" {
		redirect(w, r, node.Route)
		return
	}
	redirect(w, r, backTo(r))
}

// Open replaces the set of expanded submenus
func (h *NavHandler) Open(w http.ResponseWriter, r *http.Request) {
	store := middleware.GetNavigation(r.Context())
	if store == nil {
		http.Error(w, "Navigation unavailable", http.StatusInternalServerError)
		return
	}

	store.SetExpanded(r.URL.Query()["keys"])
	if err := h.cookies.Save(w, r, store); err != nil {
		h.logger.Warn("failed to save navigation", zap.Error(err))
	}
	redirect(w, r, backTo(r))
}

// backTo returns the same-site page the request came from, else "/"
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
