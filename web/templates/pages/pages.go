package pages

import (
	"github.com/a-h/templ"

	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/internal/services"
	"tickets-go-admin/web/templates/components"
)

// LoginForm is the state of the login form
type LoginForm struct {
	Email  string
	Error  string
	Errors map[string]string
}

// ConfirmView asks before a destructive action
type ConfirmView struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
	CSRFToken string
}

// EventModalView is the create or edit event modal
type EventModalView struct {
	Title      string
	Draft      *forms.EventDraft
	Errors     map[string]string
	Message    string
	CSRFToken  string
	Places     []string
	TagOptions []string
	Payments   []models.Payment
}

// EventsView is the event list with an optional open modal
type EventsView struct {
	Rows    services.Page[services.EventRow]
	Modal   *EventModalView
	Confirm *ConfirmView
}

// TagModalView is the create or edit tag modal
type TagModalView struct {
	Title     string
	TagID     string
	Name      string
	Active    bool
	Error     string
	Message   string
	CSRFToken string
}

// TagsView is the tag list with an optional open modal
type TagsView struct {
	Rows    services.Page[services.TagRow]
	Modal   *TagModalView
	Confirm *ConfirmView
}

// MembersView is the member list
type MembersView struct {
	Rows  services.Page[models.User]
	Error string
}

// HomePage is the public landing page
func HomePage(shell components.Shell) templ.Component {
	return page(pageHome, shell, nil)
}

// WelcomePage greets a signed-in operator
func WelcomePage(shell components.Shell) templ.Component {
	return page(pageWelcome, shell, nil)
}

func LoginPage(shell components.Shell, form LoginForm) templ.Component {
	return page(pageLogin, shell, form)
}

func EventsPage(shell components.Shell, v EventsView) templ.Component {
	return page(pageEvents, shell, v)
}

// EventModal renders only the modal, for HTMX swaps
func EventModal(v EventModalView) templ.Component {
	return fragment("event_modal", v)
}

func TagsPage(shell components.Shell, v TagsView) templ.Component {
	return page(pageTags, shell, v)
}

// TagModal renders only the modal, for HTMX swaps
func TagModal(v TagModalView) templ.Component {
	return fragment("tag_modal", v)
}

func MembersPage(shell components.Shell, v MembersView) templ.Component {
	return page(pageMembers, shell, v)
}

// ConfirmDialog renders only the confirmation dialog
func ConfirmDialog(v ConfirmView) templ.Component {
	return fragment("confirm", v)
}
