package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/web/templates/components"
)

// Messages shown to the operator
const (
	msgFailed       = "操作失敗，請稍後再試"
	msgDeleteFailed = "刪除失敗，請稍後再試"
	msgLoadFailed   = "資料載入失敗，請稍後再試"
	msgDraftExpired = "編輯已逾時，請重新開啟"
	msgSubmitting   = "資料送出中，請稍候"
)

// render writes c with status. The page is buffered so a template error
// never leaves a half-written response.
func render(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logger.Error("failed to render page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect sends the browser to location after a successful action
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// pageParam reads the 1-based page query parameter
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

const (
	flashSuccessKey = "_flash_success"
	flashErrorKey   = "_flash_error"
)

// Flashes keeps one-off messages in the session cookie until the next page
type Flashes struct {
	store  sessions.Store
	logger *zap.Logger
}

// NewFlashes creates a new flash message store
func NewFlashes(store sessions.Store, logger *zap.Logger) *Flashes {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flashes{store: store, logger: logger}
}

func (f *Flashes) Success(w http.ResponseWriter, r *http.Request, message string) {
	f.add(w, r, flashSuccessKey, message)
}

func (f *Flashes) Error(w http.ResponseWriter, r *http.Request, message string) {
	f.add(w, r, flashErrorKey, message)
}

func (f *Flashes) add(w http.ResponseWriter, r *http.Request, key, message string) {
	session, err := f.store.Get(r, auth.SessionName)
	if err != nil && session == nil {
		f.logger.Warn("failed to load session for flash", zap.Error(err))
		return
	}
	session.AddFlash(message, key)
	if err := session.Save(r, w); err != nil {
		f.logger.Warn("failed to save flash", zap.Error(err))
	}
}

// Pop returns and clears the pending messages. It must run before the
// response body is written.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []components.Flash {
	session, err := f.store.Get(r, auth.SessionName)
	if err != nil && session == nil {
		return nil
	}

	var out []components.Flash
	for _, v := range session.Flashes(flashSuccessKey) {
		if msg, ok := v.(string); ok {
			out = append(out, components.Flash{Message: msg})
		}
	}
	for _, v := range session.Flashes(flashErrorKey) {
		if msg, ok := v.(string); ok {
			out = append(out, components.Flash{Message: msg, Error: true})
		}
	}
	if len(out) > 0 {
		if err := session.Save(r, w); err != nil {
			f.logger.Warn("failed to clear flashes", zap.Error(err))
		}
	}
	return out
}

// shell builds the page frame, consuming pending flash messages
func (f *Flashes) shell(w http.ResponseWriter, r *http.Request, title string, extra ...components.Flash) components.Shell {
	flashes := append(f.Pop(w, r), extra...)
	return components.NewShell(r.Context(), title, flashes...)
}
