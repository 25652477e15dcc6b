package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/navigation"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// testApp wires the handlers behind the session and navigation middleware,
// without the CSRF check and route gate which have their own tests
type testApp struct {
	router  chi.Router
	auth    *MockAuthenticator
	events  *MockEventLister
	editor  *MockEventEditing
	tags    *MockTagManager
	members *MockMemberLister
	resets  []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{
		auth:    new(MockAuthenticator),
		events:  new(MockEventLister),
		editor:  new(MockEventEditing),
		tags:    new(MockTagManager),
		members: new(MockMemberLister),
	}
	t.Cleanup(func() {
		app.auth.AssertExpectations(t)
		app.events.AssertExpectations(t)
		app.editor.AssertExpectations(t)
		app.tags.AssertExpectations(t)
		app.members.AssertExpectations(t)
	})

	var store sessions.Store = sessions.NewCookieStore([]byte("test-secret-key"))
	navCookies := navigation.NewCookies(store, navigation.DefaultMenu(), nil)
	session := auth.NewSession(auth.NewCredentialStore(store), navCookies,
		auth.ResetterFunc(func(w http.ResponseWriter, r *http.Request, sid string) error {
			app.resets = append(app.resets, sid)
			return nil
		}),
	)
	flashes := NewFlashes(store, nil)

	authHandler := NewAuthHandler(app.auth, session, navCookies, flashes, nil)
	homeHandler := NewHomeHandler(app.members, flashes, nil)
	navHandler := NewNavHandler(navCookies, nil)
	eventHandler := NewEventHandler(app.events, app.editor, app.tags, flashes, nil, 1<<20)
	tagHandler := NewTagHandler(app.tags, flashes, nil)

	r := chi.NewRouter()
	r.Use(middleware.NewAuthMiddleware(session, clock.NewFixed(testNow), nil).LoadCredential)
	r.Use(middleware.Navigation(navCookies, nil))

	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		nav := middleware.GetNavigation(r.Context())
		cred, signedIn := auth.FromContext(r.Context())
		var crumbs []string
		for _, c := range nav.Breadcrumb() {
			crumbs = append(crumbs, c.Title)
		}
		fmt.Fprintf(w, "sid=%s\nuser=%s\nsigned_in=%t\nselected=%s\nopen=%s\ncrumbs=%s\n",
			middleware.GetSessionID(r.Context()), cred.Username, signedIn,
			strings.Join(nav.SelectedKeys(), ","), strings.Join(nav.OpenKeys(), ","), strings.Join(crumbs, ","))
	})

	r.Get("/health", homeHandler.Health)
	r.Get("/home", homeHandler.Landing)
	r.Get("/", homeHandler.Welcome)
	r.Get("/members", homeHandler.Members)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/brand", authHandler.Brand)
	r.Get("/nav/select", navHandler.Select)
	r.Get("/nav/open", navHandler.Open)

	r.Get("/events", eventHandler.List)
	r.Get("/events/new", eventHandler.New)
	r.Get("/events/{id}/edit", eventHandler.Edit)
	r.Get("/events/{id}/delete", eventHandler.DeleteConfirm)
	r.Post("/events/{id}/delete", eventHandler.Delete)
	r.Post("/events/drafts/{draft}/submit", eventHandler.Submit)
	r.Post("/events/drafts/{draft}/cancel", eventHandler.Cancel)
	r.Post("/events/drafts/{draft}/{action}", eventHandler.Action)

	r.Get("/tags", tagHandler.List)
	r.Get("/tags/new", tagHandler.New)
	r.Post("/tags/new", tagHandler.Create)
	r.Get("/tags/{id}/edit", tagHandler.Edit)
	r.Post("/tags/{id}/edit", tagHandler.Update)
	r.Get("/tags/{id}/delete", tagHandler.DeleteConfirm)
	r.Post("/tags/{id}/delete", tagHandler.Delete)

	app.router = r
	return app
}

// browser keeps cookies between requests, last write of each name winning
type browser struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (app *testApp) browser(t *testing.T) *browser {
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.app.router.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) htmx(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("HX-Request", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return b.do(req)
}

func (b *browser) postForm(path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// probe returns the session state as seen by the next request
func (b *browser) probe() map[string]string {
	b.t.Helper()
	rr := b.get("/probe")
	require.Equal(b.t, http.StatusOK, rr.Code)
	out := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(rr.Body.String()), "\n") {
		k, v, _ := strings.Cut(line, "=")
		out[k] = v
	}
	return out
}

// signIn logs the browser in as Amy
func (b *browser) signIn() {
	b.t.Helper()
	b.app.auth.On("Login", mock.Anything, "amy@example.com", "secret").
		Return(auth.Credential{Token: "tok", Username: "Amy", ExpiresAt: testNow.Add(time.Hour)}, nil).Once()
	rr := b.postForm("/login", "email=amy%40example.com&password=secret")
	require.Equal(b.t, http.StatusSeeOther, rr.Code)
}
