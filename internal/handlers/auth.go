package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/navigation"
	"tickets-go-admin/internal/services"
	"tickets-go-admin/web/templates/pages"
)

const (
	msgEmailRequired    = "請輸入電子郵件"
	msgPasswordRequired = "請輸入密碼"
	msgLoginFailed      = "登入失敗：帳號或密碼錯誤"
)

// AuthHandler handles sign in, sign out and the brand link
type AuthHandler struct {
	auth    Authenticator
	session *auth.Session
	nav     *navigation.Cookies
	flashes *Flashes
	logger  *zap.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authenticator Authenticator, session *auth.Session, nav *navigation.Cookies, flashes *Flashes, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: authenticator, session: session, nav: nav, flashes: flashes, logger: logger}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, h.logger, http.StatusOK, pages.LoginPage(h.flashes.shell(w, r, "登入"), pages.LoginForm{}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := pages.LoginForm{Email: strings.TrimSpace(r.FormValue("email")), Errors: map[string]string{}}
	password := r.FormValue("password")
	if form.Email == "" {
		form.Errors["email"] = msgEmailRequired
	}
	if password == "" {
		form.Errors["password"] = msgPasswordRequired
	}
	if len(form.Errors) > 0 {
		render(w, r, h.logger, http.StatusUnprocessableEntity, pages.LoginPage(h.flashes.shell(w, r, "登入"), form))
		return
	}

	cred, err := h.auth.Login(r.Context(), form.Email, password)
	if err != nil {
		status := http.StatusBadGateway
		form.Error = msgFailed
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrMissingCredentials) {
			status = http.StatusUnauthorized
			form.Error = msgLoginFailed
		} else {
			h.logger.Error("login failed", zap.Error(err))
		}
		render(w, r, h.logger, status, pages.LoginPage(h.flashes.shell(w, r, "登入"), form))
		return
	}

	if err := h.session.Credentials().Save(w, r, cred); err != nil {
		h.logger.Error("failed to store credential", zap.Error(err))
		form.Error = msgFailed
		render(w, r, h.logger, http.StatusInternalServerError, pages.LoginPage(h.flashes.shell(w, r, "登入"), form))
		return
	}

	h.logger.Info("operator signed in", zap.String("username", cred.Username))
	redirect(w, r, "/")
}

// Logout signs the operator out and resets everything the browser session
// accumulated
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())

	if err := h.session.Reset(w, r); err != nil {
		h.logger.Warn("session reset incomplete", zap.Error(err))
	}
	redirect(w, r, "/login")
}

// Brand clears the menu selection, expansion and breadcrumb and goes home.
// The credential is kept.
func (h *AuthHandler) Brand(w http.ResponseWriter, r *http.Request) {
	if store := middleware.GetNavigation(r.Context()); store != nil {
		store.Reset()
		if err := h.nav.Save(w, r, store); err != nil {
			h.logger.Warn("failed to reset navigation", zap.Error(err))
		}
	}
	redirect(w, r, middleware.LandingPath)
}
