// Package components holds the view models shared by every page: the
// shell around each screen with its menu, breadcrumb and flash messages.
package components

import (
	"context"
	"net/url"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/middleware"
	"tickets-go-admin/internal/navigation"
)

// MenuItem is one rendered menu entry
type MenuItem struct {
	Key      string
	Label    string
	Selected bool
	Open     bool
	// Href selects a leaf; for a submenu it toggles expansion
	Href     string
	Children []MenuItem
}

// Flash is a one-off message shown at the top of the next page
type Flash struct {
	Message string
	Error   bool
}

// Shell is everything the page frame needs
type Shell struct {
	Title     string
	SignedIn  bool
	Username  string
	CSRFToken string
	Menu      []MenuItem
	Trail     []navigation.Crumb
	Flashes   []Flash
}

// NewShell builds the shell for the request behind ctx
func NewShell(ctx context.Context, title string, flashes ...Flash) Shell {
	shell := Shell{
		Title:     title,
		CSRFToken: middleware.GetCSRFToken(ctx),
		Flashes:   flashes,
	}

	if cred, ok := auth.FromContext(ctx); ok {
		shell.SignedIn = true
		shell.Username = cred.Username
	}

	if store := middleware.GetNavigation(ctx); store != nil {
		shell.Menu = MenuItems(store)
		shell.Trail = store.Trail()
	} else {
		shell.Trail = []navigation.Crumb{{Title: navigation.RootCrumb}}
	}
	return shell
}

// MenuItems renders the menu tree with the store's selection and expansion
func MenuItems(store *navigation.Store) []MenuItem {
	menu := store.Menu()
	open := store.OpenKeys()

	items := make([]MenuItem, 0, len(menu))
	for _, top := range menu {
		item := MenuItem{
			Key:      top.Key,
			Label:    top.Label,
			Selected: store.IsSelected(top.Key),
			Open:     store.IsOpen(top.Key),
		}
		if len(top.Children) == 0 {
			item.Href = SelectURL(top.Key, menu.KeyPath(top.Key))
		} else {
			item.Href = OpenURL(toggle(open, top.Key))
		}
		for _, child := range top.Children {
			item.Children = append(item.Children, MenuItem{
				Key:      child.Key,
				Label:    child.Label,
				Selected: store.IsSelected(child.Key),
				Href:     SelectURL(child.Key, menu.KeyPath(child.Key)),
			})
		}
		items = append(items, item)
	}
	return items
}

// SelectURL is the link selecting key with its key path
func SelectURL(key string, keyPath []string) string {
	q := url.Values{"key": {key}}
	for _, k := range keyPath {
		q.Add("keyPath", k)
	}
	return "/nav/select?" + q.Encode()
}

// OpenURL is the link setting the expanded submenus to keys
func OpenURL(keys []string) string {
	if len(keys) == 0 {
		return "/nav/open"
	}
	q := url.Values{"keys": keys}
	return "/nav/open?" + q.Encode()
}

// toggle returns keys with key added, or removed when already present
func toggle(keys []string, key string) []string {
	out := make([]string, 0, len(keys)+1)
	found := false
	for _, k := range keys {
		if k == key {
			found = true
			continue
		}
		out = append(out, k)
	}
	if !found {
		out = append(out, key)
	}
	return out
}
