package gateway

import (
	"context"
	"net/http"
	"net/url"

	"tickets-go-admin/internal/models"
)

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := c.doJSON(ctx, http.MethodGet, "tag/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := c.doJSON(ctx, http.MethodGet, "tag/"+url.PathEscape(id), nil, &tag); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, models.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag sends only the name; the API enables new tags
func (c *Client) CreateTag(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodPost, "tag", models.TagWrite{Name: name}, nil)
}

func (c *Client) UpdateTag(ctx context.Context, id string, tag models.TagWrite) error {
	return c.doJSON(ctx, http.MethodPut, "tag/"+url.PathEscape(id), tag, nil)
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "tag/"+url.PathEscape(id), nil, nil)
}
