package handler

import (
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

// Result is what a page handler asks the dispatcher to do: render a template
// or redirect to another page.
type Result interface {
	result()
}

type Render struct {
	Template types.Template
	Data     map[string]any
}

type Redirect struct {
	Page types.Page
}

func (Render) result()   {}
func (Redirect) result() {}

func render(tpl types.Template, data map[string]any) Render {
	if data == nil {
		data = map[string]any{}
	}
	return Render{Template: tpl, Data: data}
}

func redirect(page types.Page) Redirect {
	return Redirect{Page: page}
}

// PageURL returns the URL of the page endpoint for page.
func PageURL(page types.Page) string {
	return "/?page=" + page.String()
}
