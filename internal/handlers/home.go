package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"tickets-go-admin/web/templates/pages"
)

// HomeHandler serves the landing, welcome and member pages
type HomeHandler struct {
	members MemberLister
	flashes *Flashes
	logger  *zap.Logger
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(members MemberLister, flashes *Flashes, logger *zap.Logger) *HomeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomeHandler{members: members, flashes: flashes, logger: logger}
}

// Landing is the public home page
func (h *HomeHandler) Landing(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.HomePage(h.flashes.shell(w, r, "首頁")))
}

// Welcome is the signed-in start page
func (h *HomeHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.WelcomePage(h.flashes.shell(w, r, "")))
}

// Members lists platform members
func (h *HomeHandler) Members(w http.ResponseWriter, r *http.Request) {
	shell := h.flashes.shell(w, r, "會員列表")

	rows, err := h.members.List(r.Context(), pageParam(r))
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		render(w, r, h.logger, http.StatusBadGateway, pages.MembersPage(shell, pages.MembersView{Error: msgLoadFailed}))
		return
	}
	render(w, r, h.logger, http.StatusOK, pages.MembersPage(shell, pages.MembersView{Rows: rows}))
}

// Health reports that the console is up
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
