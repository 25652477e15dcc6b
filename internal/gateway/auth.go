package gateway

import (
	"context"
	"errors"
	"net/http"

	"tickets-go-admin/internal/models"
)

// LoginResult is the data of a successful auth/login
type LoginResult struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges operator credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &ParseError{Method: http.MethodPost, Path: "auth/login", Err: errors.New("missing accessToken")}
	}
	return &resp, nil
}

// Logout tells the API the token is no longer in use
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "auth/logout", nil, nil)
}

// ListUsers returns the platform members
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
