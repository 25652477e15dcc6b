package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tickets-go-admin/internal/gateway"
	"tickets-go-admin/internal/models"
)

// MockAPI is a mock of the ticketing API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.LoginResult), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockAPI) GetEvent(ctx context.Context, id string) (*models.EventDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventDetail), args.Error(1)
}

func (m *MockAPI) CreateEvent(ctx context.Context, event *models.EventWrite) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAPI) UpdateEvent(ctx context.Context, id string, event *models.EventWrite) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

func (m *MockAPI) DeleteEvents(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockAPI) UploadEventImage(ctx context.Context, slot string, file gateway.Upload) (string, error) {
	args := m.Called(ctx, slot, file)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) DeleteImage(ctx context.Context, imgURL string) error {
	args := m.Called(ctx, imgURL)
	return args.Error(0)
}

func (m *MockAPI) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockAPI) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockAPI) CreateTag(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAPI) UpdateTag(ctx context.Context, id string, tag models.TagWrite) error {
	args := m.Called(ctx, id, tag)
	return args.Error(0)
}

func (m *MockAPI) DeleteTag(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
