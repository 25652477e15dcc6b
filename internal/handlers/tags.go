package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/web/templates/components"
	"tickets-go-admin/web/templates/pages"
)

const (
	msgTagCreated      = "標籤已新增"
	msgTagUpdated      = "標籤已更新"
	msgTagDeleted      = "標籤已刪除"
	msgTagMissing      = "找不到標籤"
	msgTagNameRequired = "請輸入標籤名稱"
)

// TagHandler serves the tag table and the tag modal
type TagHandler struct {
	tags    TagManager
	flashes *Flashes
	logger  *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags TagManager, flashes *Flashes, logger *zap.Logger) *TagHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagHandler{tags: tags, flashes: flashes, logger: logger}
}

// List renders the tag table
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pages.TagsView{})
}

func (h *TagHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, v pages.TagsView) {
	var extra []components.Flash
	rows, err := h.tags.List(r.Context(), pageParam(r))
	if err != nil {
		h.logger.Error("failed to list tags", zap.Error(err))
		extra = append(extra, components.Flash{Message: msgLoadFailed, Error: true})
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	}
	v.Rows = rows
	render(w, r, h.logger, status, pages.TagsPage(h.flashes.shell(w, r, "標籤管理", extra...), v))
}

func (h *TagHandler) renderModal(w http.ResponseWriter, r *http.Request, status int, modal pages.TagModalView) {
	modal.CSRFToken = middleware.GetCSRFToken(r.Context())
	if middleware.IsHTMXRequest(r) {
		render(w, r, h.logger, status, pages.TagModal(modal))
		return
	}
	h.renderPage(w, r, status, pages.TagsView{Modal: &modal})
}

// New opens the create modal; new tags start enabled
func (h *TagHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderModal(w, r, http.StatusOK, pages.TagModalView{Title: "新增標籤", Active: true})
}

// Create handles the create modal
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	modal := pages.TagModalView{Title: "新增標籤", Name: strings.TrimSpace(r.PostFormValue("tagName")), Active: true}
	if modal.Name == "" {
		modal.Error = msgTagNameRequired
		h.renderModal(w, r, http.StatusUnprocessableEntity, modal)
		return
	}

	if err := h.tags.Create(r.Context(), modal.Name); err != nil {
		h.logger.Error("failed to create tag", zap.Error(err))
		modal.Message = msgFailed
		h.renderModal(w, r, http.StatusBadGateway, modal)
		return
	}
	h.flashes.Success(w, r, msgTagCreated)
	redirect(w, r, "/tags")
}

// Edit opens the edit modal filled from the API
func (h *TagHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tag, err := h.tags.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			h.flashes.Error(w, r, msgTagMissing)
		} else {
			h.logger.Error("failed to load tag", zap.String("tag_id", id), zap.Error(err))
			h.flashes.Error(w, r, msgFailed)
		}
		redirect(w, r, "/tags")
		return
	}
	h.renderModal(w, r, http.StatusOK, pages.TagModalView{Title: "編輯標籤", TagID: id, Name: tag.Name, Active: tag.Status})
}

// Update handles the edit modal
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	modal := pages.TagModalView{
		Title:  "編輯標籤",
		TagID:  id,
		Name:   strings.TrimSpace(r.PostFormValue("tagName")),
		Active: checked(r.PostForm, "tagStatus"),
	}
	if modal.Name == "" {
		modal.Error = msgTagNameRequired
		h.renderModal(w, r, http.StatusUnprocessableEntity, modal)
		return
	}

	if err := h.tags.Update(r.Context(), id, modal.Name, modal.Active); err != nil {
		h.logger.Error("failed to update tag", zap.String("tag_id", id), zap.Error(err))
		modal.Message = msgFailed
		h.renderModal(w, r, http.StatusBadGateway, modal)
		return
	}
	h.flashes.Success(w, r, msgTagUpdated)
	redirect(w, r, "/tags")
}

// DeleteConfirm asks before deleting a tag
func (h *TagHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirm := pages.ConfirmView{
		Title:     "確認刪除",
		Message:   "您確定要刪除此標籤嗎？",
		Action:    "/tags/" + url.PathEscape(id) + "/delete",
		CancelURL: "/tags",
		CSRFToken: middleware.GetCSRFToken(r.Context()),
	}
	if middleware.IsHTMXRequest(r) {
		render(w, r, h.logger, http.StatusOK, pages.ConfirmDialog(confirm))
		return
	}
	h.renderPage(w, r, http.StatusOK, pages.TagsView{Confirm: &confirm})
}

// Delete deletes a tag and goes back to the refreshed table
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.tags.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete tag", zap.String("tag_id", id), zap.Error(err))
		h.flashes.Error(w, r, msgDeleteFailed)
	} else {
		h.flashes.Success(w, r, msgTagDeleted)
	}
	redirect(w, r, "/tags")
}

// checked reports whether a checkbox posted alongside its hidden empty
// fallback was ticked
func checked(values url.Values, field string) bool {
	for _, v := range values[field] {
		if v == "on" {
			return true
		}
	}
	return false
}
