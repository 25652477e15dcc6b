package services

import (
	"context"
	"fmt"

	"tickets-go-admin/internal/models"
)

// MemberService lists platform members
type MemberService struct {
	api UserAPI
}

// NewMemberService creates a new member service
func NewMemberService(api UserAPI) *MemberService {
	return &MemberService{api: api}
}

// List returns one page of members
func (s *MemberService) List(ctx context.Context, page int) (Page[models.User], error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return Page[models.User]{}, fmt.Errorf("failed to list members: %w", err)
	}
	return Paginate(users, page, DefaultPageSize), nil
}
