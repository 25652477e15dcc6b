// Package pages renders the console screens. Each page is an html/template
// set sharing the layout and partials, exposed as a templ.Component.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/models"
	"tickets-go-admin/web/templates/components"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"field": func(errors map[string]string, key string) string {
		return errors[key]
	},
	"rowKey": forms.RowKey,
	"contains": func(list []string, v string) bool {
		for _, s := range list {
			if s == v {
				return true
			}
		}
		return false
	},
	"hasPayment": func(list []models.Payment, p models.Payment) bool {
		for _, q := range list {
			if q == p {
				return true
			}
		}
		return false
	},
	"price": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"join": strings.Join,
	"add": func(a, b int) int {
		return a + b
	},
	"last": func(i, n int) bool {
		return i == n-1
	},
	"dict": func(values ...any) map[string]any {
		d := make(map[string]any)
		for i := 0; i < len(values)-1; i += 2 {
			d[fmt.Sprintf("%v", values[i])] = values[i+1]
		}
		return d
	},
}

// page names; each has html/<name>.html defining "content"
const (
	pageHome    = "home"
	pageWelcome = "welcome"
	pageLogin   = "login"
	pageEvents  = "events"
	pageTags    = "tags"
	pageMembers = "members"
)

var (
	partials = template.Must(template.New("partials").Funcs(funcs).ParseFS(files, "html/layout.html", "html/partials.html"))
	sets     = mustParsePages(pageHome, pageWelcome, pageLogin, pageEvents, pageTags, pageMembers)
)

func mustParsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(partials.Clone())
		out[name] = template.Must(t.ParseFS(files, "html/"+name+".html"))
	}
	return out
}

// view is the data of a full page
type view struct {
	Shell components.Shell
	Body  any
}

// page renders a full page in the layout
func page(name string, shell components.Shell, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := sets[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", view{Shell: shell, Body: body})
	})
}

// fragment renders one partial, for HTMX swaps
func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return partials.ExecuteTemplate(w, name, data)
	})
}
