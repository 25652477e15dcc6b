package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tickets-go-admin/internal/models"
	"tickets-go-admin/internal/services"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rr := app.browser(t).get("/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestLanding(t *testing.T) {
	app := newTestApp(t)

	rr := app.browser(t).get("/home")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/login"`)
}

func TestWelcome_ShowsUser(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.signIn()

	rr := b.get("/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Amy")
	assert.Contains(t, rr.Body.String(), `action="/logout"`)
}

func TestMembers(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	users := []models.User{{ID: "7", Name: "Bob", Email: "bob@example.com"}}
	app.members.On("List", mock.Anything, 1).Return(services.Paginate(users, 1, services.DefaultPageSize), nil)

	rr := b.get("/members")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "bob@example.com")
}

func TestMembers_APIError(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	app.members.On("List", mock.Anything, 2).Return(services.Page[models.User]{}, errors.New("boom"))

	rr := b.get("/members?page=2")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), msgLoadFailed)
}
