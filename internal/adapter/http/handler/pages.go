package handler

import (
	"context"

	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	"github.com/Temutjin2k/kart-laptimes/pkg/validator"
)

type LapService interface {
	Submit(ctx context.Context, sess *models.Session, sector1, sector2, sector3 float64) models.LapRecord
	Rejected(ctx context.Context, reason string)
	List(sess *models.Session, order types.LapOrder) []models.LapEntry
	Delete(ctx context.Context, sess *models.Session, rawIndex string) error
}

type UserService interface {
	Register(ctx context.Context, sess *models.Session, name, class, identifier string) *models.User
	Profile(sess *models.Session) models.Profile
	UpdateProfile(ctx context.Context, sess *models.Session, name, class, identifier string) models.Profile
}

// Pages holds the page handlers of the site.
type Pages struct {
	laps       LapService
	users      UserService
	identifier types.IdentifierKind
	l          logger.Logger
}

func NewPages(laps LapService, users UserService, identifier types.IdentifierKind, l logger.Logger) *Pages {
	return &Pages{
		laps:       laps,
		users:      users,
		identifier: identifier,
		l:          l,
	}
}

// Router returns a router with every page registered and home as the fallback.
func (h *Pages) Router() *Router {
	r := NewRouter(types.PageHome)
	r.Handle(types.PageHome, h.Home)
	r.Handle(types.PageAddUser, h.AddUser)
	r.Handle(types.PageUserCreated, h.UserCreated)
	r.Handle(types.PageUserProfile, h.UserProfile)
	r.Handle(types.PageLapTimeForm, h.LapTimeForm)
	r.Handle(types.PageLeaderboard, h.Leaderboard)
	r.Handle(types.PageDeleteLap, h.DeleteLap)
	r.Handle(types.PageLogout, h.Logout)
	return r
}

func (h *Pages) Home(ctx context.Context, req Request, sess *models.Session) Result {
	return render(types.TemplateHome, map[string]any{
		"user": sess.User(),
	})
}

func (h *Pages) AddUser(ctx context.Context, req Request, sess *models.Session) Result {
	if !req.IsSubmit() {
		return render(types.TemplateUserCreate, map[string]any{
			"form_action": PageURL(types.PageAddUser),
		})
	}

	form := dto.NewUserForm(req.Form, h.identifier)
	h.users.Register(ctx, sess, form.Name, form.Class, form.Identifier)

	return redirect(types.PageUserCreated)
}

func (h *Pages) UserCreated(ctx context.Context, req Request, sess *models.Session) Result {
	return render(types.TemplateUserCreated, map[string]any{
		"user":   sess.User(),
		"driver": sess.Driver(),
	})
}

func (h *Pages) UserProfile(ctx context.Context, req Request, sess *models.Session) Result {
	if req.IsSubmit() {
		form := dto.NewUserForm(req.Form, h.identifier)
		h.users.UpdateProfile(ctx, sess, form.Name, form.Class, form.Identifier)
		return redirect(types.PageUserProfile)
	}

	return render(types.TemplateUserProfile, map[string]any{
		"user":        h.users.Profile(sess),
		"form_action": PageURL(types.PageUserProfile),
	})
}

func (h *Pages) LapTimeForm(ctx context.Context, req Request, sess *models.Session) Result {
	ctx = wrap.WithAction(ctx, "lap_time_form")

	data := map[string]any{
		"form_action": PageURL(types.PageLapTimeForm),
	}

	if !req.IsSubmit() {
		return render(types.TemplateLapForm, data)
	}

	form := dto.NewLapForm(req.Form)
	v := validator.New()
	dto.ValidateLapForm(v, form)

	if !v.Valid() {
		msg := dto.FirstError(v)
		h.laps.Rejected(ctx, msg)
		data["error"] = msg
		data["form"] = form
		return render(types.TemplateLapForm, data)
	}

	s1, s2, s3 := form.Sectors()
	lap := h.laps.Submit(ctx, sess, s1, s2, s3)

	data["confirmation"] = dto.MsgLapAdded
	data["lap"] = lap
	data["laps"] = sess.Laps()
	return render(types.TemplateLapForm, data)
}

func (h *Pages) Leaderboard(ctx context.Context, req Request, sess *models.Session) Result {
	order := types.ParseLapOrder(req.Query.Get("order"))

	return render(types.TemplateLeaderboard, map[string]any{
		"laps":  h.laps.List(sess, order),
		"order": string(order),
	})
}

func (h *Pages) DeleteLap(ctx context.Context, req Request, sess *models.Session) Result {
	// Unknown indexes are a silent no-op; the leaderboard is shown either way.
	if err := h.laps.Delete(ctx, sess, req.Form.Get("lapIndex")); err != nil {
		h.l.Debug(wrap.WithAction(ctx, "delete_lap"), "lap not deleted", "reason", err.Error())
	}

	return h.Leaderboard(ctx, req, sess)
}

func (h *Pages) Logout(ctx context.Context, req Request, sess *models.Session) Result {
	sess.Destroy()
	h.l.Info(wrap.WithAction(ctx, "logout"), "session destroyed by visitor")

	return render(types.TemplateLogout, nil)
}
