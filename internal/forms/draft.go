// Package forms is the editable model of an event with its sessions and
// seat tiers, and its conversion into the API write payload.
package forms

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tickets-go-admin/internal/models"
)

// Layouts of the values the draft holds as the browser posts them
const (
	DateTimeLayout = "2006-01-02T15:04"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value")
)

// SessionDraft is one session being edited. Key only identifies the row
// while editing and is never sent to the API.
type SessionDraft struct {
	Key       string `json:"key"`
	Date      string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" form:"start" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" form:"end" validate:"required,datetime=15:04"`
	Place     string `json:"place" form:"place" validate:"required"`
}

// SeatTierDraft is one seat price tier being edited. ID only identifies the
// row while editing.
type SeatTierDraft struct {
	ID       int     `json:"id"`
	AreaName string  `json:"areaName" form:"area" validate:"required"`
	Price    float64 `json:"price" form:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" form:"quantity" validate:"gte=0"`
}

// EventDraft is an event being created or edited. EventID is empty for a
// new event.
type EventDraft struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	EventID   string    `json:"eventId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Name        string           `json:"name" form:"name" validate:"required"`
	Intro       string           `json:"intro" form:"intro" validate:"required"`
	Content     string           `json:"content" form:"content" validate:"required"`
	Organizer   string           `json:"organizer" form:"organizer" validate:"required"`
	IntroImage  string           `json:"introImage"`
	BannerImage string           `json:"bannerImage"`
	SaleStart   string           `json:"saleStart" form:"sale_start" validate:"required,datetime=2006-01-02T15:04"`
	SaleEnd     string           `json:"saleEnd" form:"sale_end" validate:"required,datetime=2006-01-02T15:04"`
	Tags        []string         `json:"tags" form:"tags" validate:"min=1"`
	Payments    []models.Payment `json:"payments" form:"payments" validate:"min=1"`

	Sessions  []SessionDraft  `json:"sessions" form:"sessions" validate:"dive"`
	SeatTiers []SeatTierDraft `json:"seatTiers" form:"seats" validate:"dive"`

	// NextTierID is the id the next added or duplicated tier gets
	NextTierID int `json:"nextTierId"`

	// StoredImages are the image URLs the event had when the draft opened
	StoredImages []string `json:"storedImages,omitempty"`
}

// IsEdit reports whether the draft edits an existing event
func (d *EventDraft) IsEdit() bool {
	return d.EventID != ""
}

// ReplacedImages lists the stored image URLs the draft no longer uses
func (d *EventDraft) ReplacedImages() []string {
	var out []string
	for _, u := range d.StoredImages {
		if u != d.IntroImage && u != d.BannerImage {
			out = append(out, u)
		}
	}
	return out
}

// NewEventDraft starts a draft for a new event with the default venue's
// seating plan and no sessions
func NewEventDraft(owner string, now time.Time) *EventDraft {
	seats := DefaultSeats(DefaultPlace())
	next := 0
	for _, s := range seats {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return &EventDraft{
		ID:         uuid.NewString(),
		Owner:      owner,
		CreatedAt:  now,
		Sessions:   []SessionDraft{},
		SeatTiers:  seats,
		NextTierID: next,
	}
}

// HydrateDraft starts a draft editing detail. Sessions keep the server's
// session ids as keys; tiers come from the first session's prices with an
// unknown quantity of zero.
func HydrateDraft(owner string, detail *models.EventDetail, loc *time.Location, now time.Time) *EventDraft {
	ev := detail.Event
	d := &EventDraft{
		ID:          uuid.NewString(),
		Owner:       owner,
		EventID:     ev.ID,
		CreatedAt:   now,
		Name:        ev.Name,
		Intro:       ev.Intro,
		Content:     ev.Content,
		Organizer:   ev.Organizer,
		IntroImage:  ev.IntroImage,
		BannerImage: ev.BannerImage,
		Tags:        append([]string(nil), ev.Tags...),
		Payments:    append([]models.Payment(nil), ev.Payments...),
		Sessions:    make([]SessionDraft, 0, len(detail.Sessions)),
		SeatTiers:   []SeatTierDraft{},
	}
	if !ev.StartDate.IsZero() {
		d.SaleStart = ev.StartDate.In(loc).Format(DateTimeLayout)
	}
	if !ev.EndDate.IsZero() {
		d.SaleEnd = ev.EndDate.In(loc).Format(DateTimeLayout)
	}

	for _, s := range detail.Sessions {
		key := s.ID
		if key == "" {
			key = uuid.NewString()
		}
		sd := SessionDraft{
			Key:       key,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Place:     s.Place,
		}
		if !s.StartDate.IsZero() {
			sd.Date = s.StartDate.In(loc).Format(DateLayout)
		}
		d.Sessions = append(d.Sessions, sd)
	}

	if len(detail.Sessions) > 0 {
		for i, p := range detail.Sessions[0].Prices {
			d.SeatTiers = append(d.SeatTiers, SeatTierDraft{ID: i, AreaName: p.Area, Price: p.Price})
		}
	}
	d.NextTierID = len(d.SeatTiers)

	for _, u := range []string{ev.IntroImage, ev.BannerImage} {
		if u != "" {
			d.StoredImages = append(d.StoredImages, u)
		}
	}
	return d
}

// ImageFile is an image chosen in the browser and not uploaded yet
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PendingImages are the files chosen for a draft on submit
type PendingImages struct {
	Intro  *ImageFile
	Banner *ImageFile
}
