package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tickets-go-admin/internal/drafts"
	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/internal/services"
	"tickets-go-admin/web/templates/components"
	"tickets-go-admin/web/templates/pages"
)

const (
	msgEventCreated = "活動已新增"
	msgEventUpdated = "活動已更新"
	msgEventDeleted = "活動已刪除"
	msgEventMissing = "找不到活動"
)

// Image file fields of the event form
const (
	introFileField  = "intro_file"
	bannerFileField = "banner_file"
)

// EventHandler serves the event table and the event modal
type EventHandler struct {
	events    EventLister
	editor    EventEditing
	tags      TagManager
	flashes   *Flashes
	logger    *zap.Logger
	maxUpload int64
}

// NewEventHandler creates a new event handler. maxUpload caps the multipart
// body of a submission.
func NewEventHandler(events EventLister, editor EventEditing, tags TagManager, flashes *Flashes, logger *zap.Logger, maxUpload int64) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &EventHandler{events: events, editor: editor, tags: tags, flashes: flashes, logger: logger, maxUpload: maxUpload}
}

// List renders the event table
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pages.EventsView{})
}

// renderPage renders the table with v's modal or dialog on top
func (h *EventHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, v pages.EventsView) {
	var extra []components.Flash
	rows, err := h.events.List(r.Context(), pageParam(r))
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		extra = append(extra, components.Flash{Message: msgLoadFailed, Error: true})
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	}
	v.Rows = rows
	render(w, r, h.logger, status, pages.EventsPage(h.flashes.shell(w, r, "活動總覽", extra...), v))
}

// renderModal sends the modal alone to HTMX and the whole page otherwise
func (h *EventHandler) renderModal(w http.ResponseWriter, r *http.Request, status int, modal pages.EventModalView) {
	if middleware.IsHTMXRequest(r) {
		render(w, r, h.logger, status, pages.EventModal(modal))
		return
	}
	h.renderPage(w, r, status, pages.EventsView{Modal: &modal})
}

// New opens a draft for a new event
func (h *EventHandler) New(w http.ResponseWriter, r *http.Request) {
	d, err := h.editor.Open(r.Context(), middleware.GetSessionID(r.Context()), "")
	if err != nil {
		h.logger.Error("failed to open event draft", zap.Error(err))
		h.flashes.Error(w, r, msgFailed)
		redirect(w, r, "/events")
		return
	}
	h.renderModal(w, r, http.StatusOK, h.modal(r, d, nil, ""))
}

// Edit opens a draft for an existing event
func (h *EventHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.editor.Open(r.Context(), middleware.GetSessionID(r.Context()), id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			h.flashes.Error(w, r, msgEventMissing)
		} else {
			h.logger.Error("failed to open event draft", zap.String("event_id", id), zap.Error(err))
			h.flashes.Error(w, r, msgFailed)
		}
		redirect(w, r, "/events")
		return
	}
	h.renderModal(w, r, http.StatusOK, h.modal(r, d, nil, ""))
}

// Action applies a list action (add, duplicate or remove a session or seat
// tier, or just keep the edits) to a draft and re-renders the modal
func (h *EventHandler) Action(w http.ResponseWriter, r *http.Request) {
	values, err := h.formValues(w, r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	index := -1
	if raw := values.Get("index"); raw != "" {
		if index, err = strconv.Atoi(raw); err != nil {
			http.Error(w, "Invalid row index", http.StatusBadRequest)
			return
		}
	}

	sid := middleware.GetSessionID(r.Context())
	draftID := chi.URLParam(r, "draft")
	d, fieldErrors, err := h.editor.Apply(r.Context(), sid, draftID, chi.URLParam(r, "action"), index, values)
	switch {
	case err == nil:
		h.renderModal(w, r, http.StatusOK, h.modal(r, d, fieldErrors, ""))
	case errors.Is(err, drafts.ErrDraftNotFound):
		h.draftExpired(w, r)
	case errors.Is(err, services.ErrUnknownAction):
		http.NotFound(w, r)
	case errors.Is(err, forms.ErrIndexOutOfRange):
		http.Error(w, "Row does not exist", http.StatusBadRequest)
	default:
		h.logger.Error("failed to apply draft action", zap.String("draft_id", draftID), zap.Error(err))
		http.Error(w, msgFailed, http.StatusInternalServerError)
	}
}

// Submit sends the draft to the API
func (h *EventHandler) Submit(w http.ResponseWriter, r *http.Request) {
	values, err := h.formValues(w, r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	pending, err := pendingImages(r)
	if err != nil {
		http.Error(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	sid := middleware.GetSessionID(r.Context())
	draftID := chi.URLParam(r, "draft")
	d, result, err := h.editor.Submit(r.Context(), sid, draftID, values, pending)
	if err == nil {
		if result.Created {
			h.flashes.Success(w, r, msgEventCreated)
		} else {
			h.flashes.Success(w, r, msgEventUpdated)
		}
		redirect(w, r, "/events")
		return
	}

	var verr *forms.ValidationError
	switch {
	case errors.Is(err, drafts.ErrDraftNotFound):
		h.draftExpired(w, r)
	case errors.Is(err, services.ErrSubmitInProgress):
		http.Error(w, msgSubmitting, http.StatusConflict)
	case errors.As(err, &verr):
		h.renderModal(w, r, http.StatusUnprocessableEntity, h.modal(r, d, verr.Fields, services.SubmitFailedMessage))
	case d != nil:
		h.renderModal(w, r, http.StatusBadGateway, h.modal(r, d, nil, services.SubmitFailedMessage))
	default:
		h.logger.Error("failed to submit draft", zap.String("draft_id", draftID), zap.Error(err))
		h.flashes.Error(w, r, services.SubmitFailedMessage)
		redirect(w, r, "/events")
	}
}

// Cancel discards the draft and closes the modal
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draft")
	if err := h.editor.Cancel(r.Context(), middleware.GetSessionID(r.Context()), draftID); err != nil {
		h.logger.Warn("failed to discard draft", zap.String("draft_id", draftID), zap.Error(err))
	}
	redirect(w, r, "/events")
}

// DeleteConfirm asks before deleting an event
func (h *EventHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirm := pages.ConfirmView{
		Title:     "確認刪除",
		Message:   "您確定要刪除此活動嗎？",
		Action:    "/events/" + url.PathEscape(id) + "/delete",
		CancelURL: "/events",
		CSRFToken: middleware.GetCSRFToken(r.Context()),
	}
	if middleware.IsHTMXRequest(r) {
		render(w, r, h.logger, http.StatusOK, pages.ConfirmDialog(confirm))
		return
	}
	h.renderPage(w, r, http.StatusOK, pages.EventsView{Confirm: &confirm})
}

// Delete deletes an event and goes back to the refreshed table
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.events.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete event", zap.String("event_id", id), zap.Error(err))
		h.flashes.Error(w, r, msgDeleteFailed)
	} else {
		h.flashes.Success(w, r, msgEventDeleted)
	}
	redirect(w, r, "/events")
}

func (h *EventHandler) draftExpired(w http.ResponseWriter, r *http.Request) {
	h.flashes.Error(w, r, msgDraftExpired)
	redirect(w, r, "/events")
}

// modal builds the modal view for d
func (h *EventHandler) modal(r *http.Request, d *forms.EventDraft, fieldErrors map[string]string, message string) pages.EventModalView {
	title := "新增活動"
	if d.IsEdit() {
		title = "編輯活動"
	}
	return pages.EventModalView{
		Title:      title,
		Draft:      d,
		Errors:     fieldErrors,
		Message:    message,
		CSRFToken:  middleware.GetCSRFToken(r.Context()),
		Places:     forms.Places,
		TagOptions: h.tagOptions(r, d),
		Payments:   models.Payments,
	}
}

// tagOptions lists the enabled tags plus any tag the draft already has
func (h *EventHandler) tagOptions(r *http.Request, d *forms.EventDraft) []string {
	names, err := h.tags.ActiveNames(r.Context())
	if err != nil {
		h.logger.Warn("failed to load tag choices", zap.Error(err))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, t := range d.Tags {
		if !seen[t] {
			names = append(names, t)
			seen[t] = true
		}
	}
	return names
}

// formValues parses urlencoded and multipart bodies alike and returns the
// posted values
func (h *EventHandler) formValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return r.PostForm, nil
}

// pendingImages reads the image files posted with a submission
func pendingImages(r *http.Request) (forms.PendingImages, error) {
	var pending forms.PendingImages
	if r.MultipartForm == nil {
		return pending, nil
	}

	var err error
	if pending.Intro, err = readImage(r.MultipartForm, introFileField); err != nil {
		return pending, err
	}
	if pending.Banner, err = readImage(r.MultipartForm, bannerFileField); err != nil {
		return pending, err
	}
	return pending, nil
}

func readImage(form *multipart.Form, field string) (*forms.ImageFile, error) {
	headers := form.File[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}
	fh := headers[0]

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return &forms.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
