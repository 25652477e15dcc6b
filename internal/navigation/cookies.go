package navigation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Cookie names
const (
	PrefsCookie = "prefs"
	ShellCookie = "shell"
)

const shellTrailKey = "trail"

// Cookies persists navigation state in browser cookies: selection and
// expansion in the long-lived prefs cookie, the breadcrumb in the shell
// cookie that the browser drops when it closes.
type Cookies struct {
	store  sessions.Store
	menu   Menu
	logger *zap.Logger
}

// NewCookies creates a new cookie persistence for navigation state
func NewCookies(store sessions.Store, menu Menu, logger *zap.Logger) *Cookies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cookies{store: store, menu: menu, logger: logger}
}

func (c *Cookies) get(r *http.Request, name string) *sessions.Session {
	session, err := c.store.Get(r, name)
	if err != nil {
		c.logger.Debug("discarding unreadable navigation cookie", zap.String("cookie", name), zap.Error(err))
	}
	if session == nil {
		session = sessions.NewSession(c.store, name)
		session.IsNew = true
	}
	return session
}

// Load builds the store for r. mounted is true when the request starts a
// new shell, in which case the breadcrumb is empty.
func (c *Cookies) Load(r *http.Request) (store *Store, mounted bool) {
	prefs := c.get(r, PrefsCookie)
	store = NewStore(c.menu, NewSessionStorage(prefs), c.logger)

	shell := c.get(r, ShellCookie)
	if shell.IsNew {
		return store, true
	}
	if raw, ok := shell.Values[shellTrailKey].(string); ok && raw != "" {
		var trail []Crumb
		if err := json.Unmarshal([]byte(raw), &trail); err == nil {
			store.RestoreTrail(trail)
		}
	}
	return store, false
}

// Save writes the store back to both cookies. store must come from Load on
// the same request, so its storage is the prefs session itself.
func (c *Cookies) Save(w http.ResponseWriter, r *http.Request, store *Store) error {
	prefs := c.get(r, PrefsCookie)
	prefs.Options = c.prefsOptions(prefs.Options)
	if err := prefs.Save(r, w); err != nil {
		return fmt.Errorf("failed to save navigation prefs: %w", err)
	}
	return c.saveShell(w, r, store.trail)
}

// Mount marks the shell as started so later requests keep their breadcrumb
func (c *Cookies) Mount(w http.ResponseWriter, r *http.Request) error {
	return c.saveShell(w, r, nil)
}

func (c *Cookies) saveShell(w http.ResponseWriter, r *http.Request, trail []Crumb) error {
	shell := c.get(r, ShellCookie)
	opts := *c.defaultOptions(shell.Options)
	opts.MaxAge = 0
	shell.Options = &opts

	if trail == nil {
		trail = []Crumb{}
	}
	b, _ := json.Marshal(trail)
	shell.Values[shellTrailKey] = string(b)
	if err := shell.Save(r, w); err != nil {
		return fmt.Errorf("failed to save navigation shell: %w", err)
	}
	return nil
}

// ResetSession clears all navigation state; it is run on logout
func (c *Cookies) ResetSession(w http.ResponseWriter, r *http.Request, _ string) error {
	store, _ := c.Load(r)
	store.Reset()
	return c.Save(w, r, store)
}

func (c *Cookies) defaultOptions(opts *sessions.Options) *sessions.Options {
	if opts == nil {
		return &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	}
	return opts
}

func (c *Cookies) prefsOptions(opts *sessions.Options) *sessions.Options {
	o := *c.defaultOptions(opts)
	o.MaxAge = 365 * 24 * 60 * 60
	return &o
}
