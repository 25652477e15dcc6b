package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/services"
)

func TestLoginPage(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rr := b.get("/login")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="email"`)
	assert.Contains(t, rr.Body.String(), `name="password"`)

	b.signIn()
	rr = b.get("/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestLogin_MissingFields(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rr := b.postForm("/login", "email=&password=")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), msgEmailRequired)
	assert.Contains(t, rr.Body.String(), msgPasswordRequired)
	app.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	app.auth.On("Login", mock.Anything, "amy@example.com", "wrong").
		Return(auth.Credential{}, services.ErrInvalidCredentials)

	rr := b.postForm("/login", "email=amy%40example.com&password=wrong")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), msgLoginFailed)
	assert.Contains(t, rr.Body.String(), `value="amy@example.com"`)
	assert.Equal(t, "false", b.probe()["signed_in"])
}

func TestLogin_UpstreamFailure(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	app.auth.On("Login", mock.Anything, "amy@example.com", "secret").
		Return(auth.Credential{}, errors.New("connection refused"))

	rr := b.postForm("/login", "email=amy%40example.com&password=secret")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), msgFailed)
}

func TestLogin_StoresCredential(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	b.signIn()

	state := b.probe()
	assert.Equal(t, "true", state["signed_in"])
	assert.Equal(t, "Amy", state["user"])

	rr := b.get("/")
	assert.Contains(t, rr.Body.String(), "Amy")
	assert.Contains(t, rr.Body.String(), "登出")
}

func TestLogout_ResetsSession(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.signIn()
	b.get("/nav/open?keys=sub1")
	b.get("/nav/select?key=1&keyPath=1&keyPath=sub1")

	before := b.probe()
	require.Equal(t, "1", before["selected"])

	app.auth.On("Logout", mock.Anything).Once()
	rr := b.postForm("/logout", "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	after := b.probe()
	assert.Equal(t, "false", after["signed_in"])
	assert.Empty(t, after["selected"])
	assert.Empty(t, after["open"])
	assert.Empty(t, after["crumbs"])
	assert.NotEmpty(t, after["sid"])
	assert.NotEqual(t, before["sid"], after["sid"])

	// drafts of the old session are dropped
	assert.Equal(t, []string{before["sid"]}, app.resets)
}

func TestLogout_HTMX(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.signIn()
	app.auth.On("Logout", mock.Anything).Once()

	rr := b.htmx(http.MethodPost, "/logout", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("HX-Redirect"))
}

func TestBrand_ResetsNavigationOnly(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.signIn()
	b.get("/nav/open?keys=sub1&keys=sub2")
	b.get("/nav/select?key=3&keyPath=3&keyPath=sub2")

	rr := b.get("/brand")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/home", rr.Header().Get("Location"))

	state := b.probe()
	assert.Equal(t, "true", state["signed_in"])
	assert.Empty(t, state["selected"])
	assert.Empty(t, state["open"])
	assert.Empty(t, state["crumbs"])
}
