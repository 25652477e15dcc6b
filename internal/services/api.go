package services

import (
	"context"

	"tickets-go-admin/internal/gateway"
	"tickets-go-admin/internal/models"
)

// AuthAPI is the part of the ticketing API used to sign operators in and out
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	Logout(ctx context.Context) error
}

// EventAPI is the part of the ticketing API that manages events
type EventAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.EventDetail, error)
	CreateEvent(ctx context.Context, event *models.EventWrite) error
	UpdateEvent(ctx context.Context, id string, event *models.EventWrite) error
	DeleteEvents(ctx context.Context, ids []string) error
}

// ImageAPI uploads and deletes event images
type ImageAPI interface {
	UploadEventImage(ctx context.Context, slot string, file gateway.Upload) (string, error)
	DeleteImage(ctx context.Context, imgURL string) error
}

// TagAPI is the part of the ticketing API that manages tags
type TagAPI interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id string) (*models.Tag, error)
	CreateTag(ctx context.Context, name string) error
	UpdateTag(ctx context.Context, id string, tag models.TagWrite) error
	DeleteTag(ctx context.Context, id string) error
}

// UserAPI lists platform members
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

var (
	_ AuthAPI  = (*gateway.Client)(nil)
	_ EventAPI = (*gateway.Client)(nil)
	_ ImageAPI = (*gateway.Client)(nil)
	_ TagAPI   = (*gateway.Client)(nil)
	_ UserAPI  = (*gateway.Client)(nil)
)
