package handlers

import (
	"context"
	"net/url"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/internal/services"
)

// Authenticator signs operators in and out
type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.Credential, error)
	Logout(ctx context.Context)
}

// EventLister backs the event table
type EventLister interface {
	List(ctx context.Context, page int) (services.Page[services.EventRow], error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventEditing backs the create and edit event modal
type EventEditing interface {
	Open(ctx context.Context, owner, eventID string) (*forms.EventDraft, error)
	Apply(ctx context.Context, owner, id, action string, index int, values url.Values) (*forms.EventDraft, map[string]string, error)
	Submit(ctx context.Context, owner, id string, values url.Values, pending forms.PendingImages) (*forms.EventDraft, *services.SubmitResult, error)
	Cancel(ctx context.Context, owner, id string) error
}

// TagManager backs the tag table and the event form's tag choices
type TagManager interface {
	List(ctx context.Context, page int) (services.Page[services.TagRow], error)
	ActiveNames(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.Tag, error)
	Create(ctx context.Context, name string) error
	Update(ctx context.Context, id, name string, active bool) error
	Delete(ctx context.Context, id string) error
}

// MemberLister backs the member table
type MemberLister interface {
	List(ctx context.Context, page int) (services.Page[models.User], error)
}

var (
	_ Authenticator = (*services.AuthService)(nil)
	_ EventLister   = (*services.EventService)(nil)
	_ EventEditing  = (*services.EventEditor)(nil)
	_ TagManager    = (*services.TagService)(nil)
	_ MemberLister  = (*services.MemberService)(nil)
)
