package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

// Request is the part of an HTTP request page handlers see.
type Request struct {
	Method string
	Query  url.Values
	Form   url.Values // request body fields
}

// IsSubmit reports whether the request carries submitted form data.
func (r Request) IsSubmit() bool {
	return r.Method == http.MethodPost
}

// PageFunc handles one page. It may mutate the session and returns what to show next.
type PageFunc func(ctx context.Context, req Request, sess *models.Session) Result

// Router maps page names to handlers. Missing and unknown pages resolve to
// the fallback page instead of failing.
type Router struct {
	routes   map[types.Page]PageFunc
	fallback types.Page
}

func NewRouter(fallback types.Page) *Router {
	return &Router{
		routes:   make(map[types.Page]PageFunc),
		fallback: fallback,
	}
}

func (r *Router) Handle(page types.Page, fn PageFunc) {
	r.routes[page] = fn
}

// Resolve returns the page that will handle the raw selector and its handler.
func (r *Router) Resolve(raw string) (types.Page, PageFunc) {
	if fn, ok := r.routes[types.Page(raw)]; ok {
		return types.Page(raw), fn
	}
	return r.fallback, r.routes[r.fallback]
}
