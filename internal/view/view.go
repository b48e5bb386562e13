// Package view renders pages and htmx fragments. Domain types stay free of
// markup; each view type wraps what it shows and names its template.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	dom "todoapp/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderable is anything the handlers can hand to gin's HTML renderer.
type Renderable interface {
	TemplateName() string
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static serves the embedded assets rooted at /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Item is one todo as shown in lists.
type Item struct {
	dom.Todo
}

func (Item) TemplateName() string { return "todo_item" }

// DOMID is the element id htmx targets for this item.
func (i Item) DOMID() string { return "todo-" + strconv.FormatInt(i.ID, 10) }

func Items(list []dom.Todo) []Item {
	out := make([]Item, len(list))
	for i := range list {
		out[i] = Item{Todo: list[i]}
	}
	return out
}

type LoginPage struct{}

func (LoginPage) TemplateName() string { return "login_page" }

type ListPage struct {
	Username string
	Items    []Item
}

func (ListPage) TemplateName() string { return "list_page" }

// ItemList is the inner content of the sortable list, returned after a reorder.
type ItemList struct {
	Items []Item
}

func (ItemList) TemplateName() string { return "todo_items" }

// Added is the response to a successful add: the new item plus an
// out-of-band replacement that clears the title input.
type Added struct {
	Item Item
}

func (Added) TemplateName() string { return "todo_added" }

// AddRejected carries the reason an add was refused.
type AddRejected struct {
	Message string
}

func (AddRejected) TemplateName() string { return "add_rejected" }

// Detail shows a single todo. Fragment selects the bare htmx fragment.
type Detail struct {
	Item     Item
	Fragment bool
}

func (d Detail) TemplateName() string {
	if d.Fragment {
		return "todo_detail"
	}
	return "todo_page"
}

type NotFoundPage struct{}

func (NotFoundPage) TemplateName() string { return "not_found_page" }

type ErrorPage struct{}

func (ErrorPage) TemplateName() string { return "error_page" }
