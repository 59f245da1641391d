package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/internal/service/session"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

const maxFormBytes = 64 << 10

type (
	SessionManager interface {
		Load(ctx context.Context, token string) (*models.Session, error)
		Commit(ctx context.Context, sess *models.Session) (session.Cookie, error)
	}

	Renderer interface {
		Render(w io.Writer, tpl types.Template, data map[string]any) error
	}
)

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// SiteInfo is bound into every rendered page.
type SiteInfo struct {
	AppName    string
	Identifier types.IdentifierKind
}

// Site is the page endpoint: it loads the visitor session, dispatches the
// `page` selector, persists the session and renders or redirects.
type Site struct {
	router   *Router
	sessions SessionManager
	view     Renderer
	cookie   CookieOptions
	info     SiteInfo
	log      logger.Logger
}

func NewSite(router *Router, sessions SessionManager, view Renderer, cookie CookieOptions, info SiteInfo, log logger.Logger) *Site {
	return &Site{
		router:   router,
		sessions: sessions,
		view:     view,
		cookie:   cookie,
		info:     info,
		log:      log,
	}
}

// ServeHTTP handles GET and POST on the page endpoint.
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "malformed form data", http.StatusBadRequest)
		return
	}

	page, fn := s.router.Resolve(r.URL.Query().Get("page"))
	ctx = wrap.WithPage(ctx, page.String())
	metrics.PageViewsTotal.WithLabelValues(page.String(), r.Method).Inc()

	sess, err := s.sessions.Load(ctx, s.token(r))
	if err != nil {
		s.log.Error(wrap.ErrorCtx(ctx, err), "failed to load session", err)
		s.internalError(w)
		return
	}
	ctx = wrap.WithSessionID(ctx, sess.ID)

	req := Request{
		Method: r.Method,
		Query:  r.URL.Query(),
		Form:   r.PostForm,
	}
	res := fn(ctx, req, sess)

	// Render before committing so a broken template never half-writes a response.
	var body bytes.Buffer
	if rd, ok := res.(Render); ok {
		s.bindCommon(rd.Data, sess)
		if err := s.view.Render(&body, rd.Template, rd.Data); err != nil {
			ctx = wrap.WithAction(ctx, types.ActionRenderFailed)
			s.log.Error(ctx, "failed to render page", err, "template", rd.Template.String())
			s.internalError(w)
			return
		}
	}

	cookie, err := s.sessions.Commit(ctx, sess)
	if err != nil {
		s.log.Error(wrap.ErrorCtx(ctx, err), "failed to commit session", err)
		s.internalError(w)
		return
	}
	s.writeCookie(w, cookie)

	switch res := res.(type) {
	case Redirect:
		http.Redirect(w, r, PageURL(res.Page), http.StatusSeeOther)
	case Render:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := body.WriteTo(w); err != nil {
			s.log.Warn(ctx, "failed to write page", "error", err.Error())
		}
	}
}

func (s *Site) token(r *http.Request) string {
	c, err := r.Cookie(s.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Site) writeCookie(w http.ResponseWriter, c session.Cookie) {
	switch {
	case c.Clear:
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	case c.Set:
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookie.Name,
			Value:    c.Token,
			Path:     "/",
			Expires:  c.Expires,
			HttpOnly: true,
			Secure:   s.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *Site) bindCommon(data map[string]any, sess *models.Session) {
	data["appName"] = s.info.AppName
	data["identifierField"] = s.info.Identifier.FormField()
	data["identifierLabel"] = s.info.Identifier.Label()
	if _, ok := data["sessionUser"]; !ok && !sess.IsDestroyed() {
		data["sessionUser"] = sess.User()
	}
}

func (s *Site) internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
