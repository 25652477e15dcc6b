package services

import (
	"context"
	"fmt"
	"time"

	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/models"
)

// EventRow is one line of the events table
type EventRow struct {
	ID         string
	Name       string
	SaleWindow string
	Tags       []string
	Active     bool
	UpdatedAt  string
}

// EventService lists and deletes events
type EventService struct {
	api   EventAPI
	clock clock.Clock
}

// NewEventService creates a new event service
func NewEventService(api EventAPI, clk clock.Clock) *EventService {
	return &EventService{api: api, clock: clk}
}

// List fetches every event and returns one page of table rows
func (s *EventService) List(ctx context.Context, page int) (Page[EventRow], error) {
	events, err := s.api.ListEvents(ctx)
	if err != nil {
		return Page[EventRow]{}, fmt.Errorf("failed to list events: %w", err)
	}

	now := s.clock.Now()
	loc := now.Location()
	p := Paginate(events, page, DefaultPageSize)
	rows := make([]EventRow, 0, len(p.Items))
	for i := range p.Items {
		ev := &p.Items[i]
		rows = append(rows, EventRow{
			ID:         ev.ID,
			Name:       ev.Name,
			SaleWindow: ev.SaleWindow(loc),
			Tags:       ev.Tags,
			Active:     ev.IsActive(now),
			UpdatedAt:  formatEditTime(ev.UpdatedAt, loc),
		})
	}
	return Page[EventRow]{
		Items:      rows,
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}, nil
}

// Get returns one event
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	detail, err := s.api.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &detail.Event, nil
}

// Delete deletes one event
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteEvents(ctx, []string{id}); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

func formatEditTime(ts *models.Timestamp, loc *time.Location) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format("2006-01-02 15:04:05")
}
