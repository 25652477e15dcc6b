package services

import (
	"context"
	"fmt"
	"strings"

	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/models"
)

// TagRow is one line of the tags table
type TagRow struct {
	ID        string
	Name      string
	Active    bool
	UpdatedAt string
}

// TagService manages event tags
type TagService struct {
	api   TagAPI
	clock clock.Clock
}

// NewTagService creates a new tag service
func NewTagService(api TagAPI, clk clock.Clock) *TagService {
	return &TagService{api: api, clock: clk}
}

// List returns one page of tag rows
func (s *TagService) List(ctx context.Context, page int) (Page[TagRow], error) {
	tags, err := s.api.ListTags(ctx)
	if err != nil {
		return Page[TagRow]{}, fmt.Errorf("failed to list tags: %w", err)
	}

	loc := s.clock.Now().Location()
	p := Paginate(tags, page, DefaultPageSize)
	rows := make([]TagRow, 0, len(p.Items))
	for _, t := range p.Items {
		rows = append(rows, TagRow{
			ID:        t.ID,
			Name:      t.Name,
			Active:    t.Status,
			UpdatedAt: formatEditTime(t.UpdatedAt, loc),
		})
	}
	return Page[TagRow]{Items: rows, Page: p.Page, PageSize: p.PageSize, Total: p.Total, TotalPages: p.TotalPages}, nil
}

// ActiveNames returns the names of enabled tags, for the event form
func (s *TagService) ActiveNames(ctx context.Context) ([]string, error) {
	tags, err := s.api.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Status {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	return s.api.GetTag(ctx, id)
}

// Create creates an enabled tag
func (s *TagService) Create(ctx context.Context, name string) error {
	req := models.TagWrite{Name: strings.TrimSpace(name)}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.api.CreateTag(ctx, req.Name); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Update renames a tag and sets whether it is enabled
func (s *TagService) Update(ctx context.Context, id, name string, active bool) error {
	req := models.TagWrite{Name: strings.TrimSpace(name), Status: &active}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.api.UpdateTag(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update tag %s: %w", id, err)
	}
	return nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", id, err)
	}
	return nil
}

