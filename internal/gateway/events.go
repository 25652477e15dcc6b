package gateway

import (
	"context"
	"net/http"
	"net/url"

	"tickets-go-admin/internal/models"
)

// ListEvents returns every event; the console paginates locally
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.doJSON(ctx, http.MethodGet, "event/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns an event with its sessions
func (c *Client) GetEvent(ctx context.Context, id string) (*models.EventDetail, error) {
	var detail models.EventDetail
	if err := c.doJSON(ctx, http.MethodGet, "event/"+url.PathEscape(id), nil, &detail); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// CreateEvent creates an event
func (c *Client) CreateEvent(ctx context.Context, event *models.EventWrite) error {
	return c.doJSON(ctx, http.MethodPost, "event", event, nil)
}

// UpdateEvent replaces an existing event
func (c *Client) UpdateEvent(ctx context.Context, id string, event *models.EventWrite) error {
	return c.doJSON(ctx, http.MethodPut, "event/"+url.PathEscape(id), event, nil)
}

// DeleteEvents deletes the given events in one call
func (c *Client) DeleteEvents(ctx context.Context, ids []string) error {
	req := struct {
		EventID []string `json:"eventId"`
	}{EventID: ids}
	return c.doJSON(ctx, http.MethodDelete, "event/events", req, nil)
}
