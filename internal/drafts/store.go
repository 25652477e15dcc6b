// Package drafts keeps event drafts between requests while the edit modal
// is open.
package drafts

import (
	"context"
	"errors"

	"tickets-go-admin/internal/forms"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrLocked        = errors.New("draft is locked")
)

// Store holds drafts keyed by draft id and indexed by owner session
type Store interface {
	Save(ctx context.Context, d *forms.EventDraft) error
	Get(ctx context.Context, id string) (*forms.EventDraft, error)
	Delete(ctx context.Context, id string) error
	DeleteOwner(ctx context.Context, owner string) error
	// Lock takes the submit lock of a draft. The returned func releases it.
	Lock(ctx context.Context, id string) (func() error, error)
}
