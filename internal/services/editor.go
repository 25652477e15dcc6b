package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/drafts"
	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/gateway"
	"tickets-go-admin/internal/models"
)

var (
	ErrSubmitInProgress = errors.New("draft is already being submitted")
	ErrUnknownAction    = errors.New("unknown draft action")
)

// SubmitFailedMessage is the only message shown when a submission fails
const SubmitFailedMessage = "操作失敗，請稍後再試"

// Draft actions posted by the event modal
const (
	ActionAddSession       = "add-session"
	ActionDuplicateSession = "duplicate-session"
	ActionRemoveSession    = "remove-session"
	ActionAddSeat          = "add-seat"
	ActionDuplicateSeat    = "duplicate-seat"
	ActionRemoveSeat       = "remove-seat"
	ActionUpdate           = "update"
)

// SubmitResult tells whether a submission created or updated an event
type SubmitResult struct {
	Created bool
	EventID string
}

// EventAPIWithImages is everything the editor needs from the ticketing API
type EventAPIWithImages interface {
	EventAPI
	ImageAPI
}

// EventEditor runs the create and edit event modal: it opens drafts,
// applies list actions and submits finished drafts.
type EventEditor struct {
	api    EventAPIWithImages
	drafts drafts.Store
	images *ImagePreparer
	clock  clock.Clock
	logger *zap.Logger
}

// NewEventEditor creates a new event editor
func NewEventEditor(api EventAPIWithImages, store drafts.Store, images *ImagePreparer, clk clock.Clock, logger *zap.Logger) *EventEditor {
	return &EventEditor{api: api, drafts: store, images: images, clock: clk, logger: logger}
}

// Open starts a draft owned by owner. An empty eventID opens a new event;
// otherwise the event is fetched and the draft hydrated from it.
func (e *EventEditor) Open(ctx context.Context, owner, eventID string) (*forms.EventDraft, error) {
	now := e.clock.Now()

	var d *forms.EventDraft
	if eventID == "" {
		d = forms.NewEventDraft(owner, now)
	} else {
		detail, err := e.api.GetEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
		}
		d = forms.HydrateDraft(owner, detail, now.Location(), now)
	}

	if err := e.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Draft returns a draft of owner. Drafts of other sessions are not found.
func (e *EventEditor) Draft(ctx context.Context, owner, id string) (*forms.EventDraft, error) {
	d, err := e.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Owner != owner {
		return nil, drafts.ErrDraftNotFound
	}
	return d, nil
}

// Apply copies the posted form into the draft, runs action on the row at
// index and stores the result. Field errors from the form are returned
// alongside the draft.
func (e *EventEditor) Apply(ctx context.Context, owner, id, action string, index int, values url.Values) (*forms.EventDraft, map[string]string, error) {
	d, err := e.Draft(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}

	fieldErrors := d.ApplyForm(values)

	switch action {
	case ActionAddSession:
		d.AddSession()
	case ActionDuplicateSession:
		err = d.DuplicateSessionAt(index)
	case ActionRemoveSession:
		err = d.RemoveSessionAt(index)
	case ActionAddSeat:
		d.AddSeatTier()
	case ActionDuplicateSeat:
		err = d.DuplicateSeatTierAt(index)
	case ActionRemoveSeat:
		err = d.RemoveSeatTierAt(index)
	case ActionUpdate:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := e.drafts.Save(ctx, d); err != nil {
		return nil, nil, err
	}
	return d, fieldErrors, nil
}

// Submit sends a finished draft to the API. Pending images are uploaded
// first for both new and existing events, then one create or update call
// is made. On success the draft is deleted. On failure the draft is kept
// with the posted edits and any image already uploaded.
func (e *EventEditor) Submit(ctx context.Context, owner, id string, values url.Values, pending forms.PendingImages) (*forms.EventDraft, *SubmitResult, error) {
	unlock, err := e.drafts.Lock(ctx, id)
	if errors.Is(err, drafts.ErrLocked) {
		return nil, nil, ErrSubmitInProgress
	}
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			e.logger.Warn("failed to release draft lock", zap.String("draft_id", id), zap.Error(err))
		}
	}()

	d, err := e.Draft(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}

	fieldErrors := d.ApplyForm(values)
	if len(fieldErrors) > 0 {
		e.keep(ctx, d)
		return d, nil, &forms.ValidationError{Fields: fieldErrors}
	}
	if err := d.Validate(); err != nil {
		e.keep(ctx, d)
		return d, nil, err
	}

	if err := e.uploadPending(ctx, d, pending); err != nil {
		e.keep(ctx, d)
		e.logger.Error("failed to upload event images", zap.String("draft_id", d.ID), zap.Error(err))
		return d, nil, err
	}

	payload, err := forms.BuildPayload(d, e.clock.Now())
	if err != nil {
		e.keep(ctx, d)
		return d, nil, err
	}
	if missing := missingImages(payload); len(missing) > 0 {
		e.keep(ctx, d)
		return d, nil, &forms.ValidationError{Fields: missing}
	}

	result := &SubmitResult{Created: !d.IsEdit(), EventID: d.EventID}
	if d.IsEdit() {
		err = e.api.UpdateEvent(ctx, d.EventID, payload)
	} else {
		err = e.api.CreateEvent(ctx, payload)
	}
	if err != nil {
		e.keep(ctx, d)
		e.logger.Error("failed to save event",
			zap.String("draft_id", d.ID),
			zap.String("event_id", d.EventID),
			zap.Error(err),
		)
		return d, nil, err
	}

	e.deleteReplaced(ctx, d)
	if err := e.drafts.Delete(ctx, d.ID); err != nil {
		e.logger.Warn("failed to delete submitted draft", zap.String("draft_id", d.ID), zap.Error(err))
	}
	return d, result, nil
}

// deleteReplaced removes the images a saved edit stopped using. The event
// is already saved, so failures are only logged.
func (e *EventEditor) deleteReplaced(ctx context.Context, d *forms.EventDraft) {
	for _, imgURL := range d.ReplacedImages() {
		if err := e.api.DeleteImage(ctx, imgURL); err != nil {
			e.logger.Warn("failed to delete replaced image",
				zap.String("event_id", d.EventID),
				zap.String("url", imgURL),
				zap.Error(err),
			)
		}
	}
}

// Cancel discards a draft
func (e *EventEditor) Cancel(ctx context.Context, owner, id string) error {
	if _, err := e.Draft(ctx, owner, id); err != nil {
		if errors.Is(err, drafts.ErrDraftNotFound) {
			return nil
		}
		return err
	}
	return e.drafts.Delete(ctx, id)
}

// uploadPending uploads the intro image, then the banner, replacing the
// draft's URL for each one uploaded
func (e *EventEditor) uploadPending(ctx context.Context, d *forms.EventDraft, pending forms.PendingImages) error {
	uploads := []struct {
		file *forms.ImageFile
		slot string
		dst  *string
	}{
		{pending.Intro, gateway.SlotIntro, &d.IntroImage},
		{pending.Banner, gateway.SlotBanner, &d.BannerImage},
	}

	for _, u := range uploads {
		if u.file == nil {
			continue
		}
		file, err := e.images.Prepare(u.file)
		if err != nil {
			return err
		}
		imgURL, err := e.api.UploadEventImage(ctx, u.slot, file)
		if err != nil {
			return fmt.Errorf("failed to upload %s image: %w", u.slot, err)
		}
		*u.dst = imgURL
	}
	return nil
}

// keep stores the draft after a failed submission
func (e *EventEditor) keep(ctx context.Context, d *forms.EventDraft) {
	if err := e.drafts.Save(ctx, d); err != nil {
		e.logger.Warn("failed to keep draft", zap.String("draft_id", d.ID), zap.Error(err))
	}
}

func missingImages(p *models.EventWrite) map[string]string {
	missing := make(map[string]string)
	if p.HasImages() {
		return missing
	}
	if strings.TrimSpace(p.IntroImage) == "" {
		missing[forms.FieldIntroImage] = forms.ImageMessages[forms.FieldIntroImage]
	}
	if strings.TrimSpace(p.BannerImage) == "" {
		missing[forms.FieldBannerImage] = forms.ImageMessages[forms.FieldBannerImage]
	}
	return missing
}
