package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tickets-go-admin/internal/navigation"
)

func TestNavSelect_GoesToRoute(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rr := b.get("/nav/select?key=2&keyPath=2&keyPath=sub1")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/tags", rr.Header().Get("Location"))
	state := b.probe()
	assert.Equal(t, "2", state["selected"])
	assert.Equal(t, "活動管理,標籤管理", state["crumbs"])
}

func TestNavSelect_NoRouteStaysOnPage(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	req := httptest.NewRequest(http.MethodGet, "/nav/select?key=4&keyPath=4&keyPath=sub3", nil)
	req.Header.Set("Referer", "http://example.com/members?page=2")
	rr := b.do(req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/members?page=2", rr.Header().Get("Location"))
	assert.Equal(t, "訂單管理,訂單列表", b.probe()["crumbs"])
}

func TestNavSelect_UnknownKeysGiveEmptyTitles(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	b.get("/nav/select?key=zzz&keyPath=zzz&keyPath=sub1")

	state := b.probe()
	assert.Equal(t, "zzz", state["selected"])
	assert.Equal(t, "活動管理,", state["crumbs"])
}

func TestNavSelect_MissingKey(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rr := b.get("/nav/select")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNavOpen(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	req := httptest.NewRequest(http.MethodGet, "/nav/open?keys=sub1&keys=sub3", nil)
	req.Header.Set("Referer", "http://evil.example.org/phish")
	rr := b.do(req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Equal(t, "sub1,sub3", b.probe()["open"])

	b.get("/nav/open")
	assert.Empty(t, b.probe()["open"])
}

func TestNav_ReloadKeepsSelectionDropsBreadcrumb(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.get("/nav/open?keys=sub1")
	b.get("/nav/select?key=1&keyPath=1&keyPath=sub1")

	// the browser was closed: session cookies are gone, persistent ones stay
	delete(b.cookies, navigation.ShellCookie)

	state := b.probe()
	assert.Equal(t, "1", state["selected"])
	assert.Equal(t, "sub1", state["open"])
	assert.Empty(t, state["crumbs"])
}
