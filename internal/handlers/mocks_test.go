package handlers

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/internal/services"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (auth.Credential, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Credential), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context) {
	m.Called(ctx)
}

type MockEventLister struct {
	mock.Mock
}

func (m *MockEventLister) List(ctx context.Context, page int) (services.Page[services.EventRow], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(services.Page[services.EventRow]), args.Error(1)
}

func (m *MockEventLister) Get(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventLister) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventEditing struct {
	mock.Mock
}

func (m *MockEventEditing) Open(ctx context.Context, owner, eventID string) (*forms.EventDraft, error) {
	args := m.Called(ctx, owner, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forms.EventDraft), args.Error(1)
}

func (m *MockEventEditing) Apply(ctx context.Context, owner, id, action string, index int, values url.Values) (*forms.EventDraft, map[string]string, error) {
	args := m.Called(ctx, owner, id, action, index, values)
	var d *forms.EventDraft
	if v := args.Get(0); v != nil {
		d = v.(*forms.EventDraft)
	}
	var fields map[string]string
	if v := args.Get(1); v != nil {
		fields = v.(map[string]string)
	}
	return d, fields, args.Error(2)
}

func (m *MockEventEditing) Submit(ctx context.Context, owner, id string, values url.Values, pending forms.PendingImages) (*forms.EventDraft, *services.SubmitResult, error) {
	args := m.Called(ctx, owner, id, values, pending)
	var d *forms.EventDraft
	if v := args.Get(0); v != nil {
		d = v.(*forms.EventDraft)
	}
	var res *services.SubmitResult
	if v := args.Get(1); v != nil {
		res = v.(*services.SubmitResult)
	}
	return d, res, args.Error(2)
}

func (m *MockEventEditing) Cancel(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

type MockTagManager struct {
	mock.Mock
}

func (m *MockTagManager) List(ctx context.Context, page int) (services.Page[services.TagRow], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(services.Page[services.TagRow]), args.Error(1)
}

func (m *MockTagManager) ActiveNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagManager) Get(ctx context.Context, id string) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagManager) Create(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTagManager) Update(ctx context.Context, id, name string, active bool) error {
	args := m.Called(ctx, id, name, active)
	return args.Error(0)
}

func (m *MockTagManager) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMemberLister struct {
	mock.Mock
}

func (m *MockMemberLister) List(ctx context.Context, page int) (services.Page[models.User], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(services.Page[models.User]), args.Error(1)
}
