package handler

import (
	"net/http"

	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
)

// API exposes the visitor's lap log as JSON. It reads the session cookie
// but never creates a session.
type API struct {
	laps     LapService
	sessions SessionManager
	cookie   CookieOptions
	log      logger.Logger
}

func NewAPI(laps LapService, sessions SessionManager, cookie CookieOptions, log logger.Logger) *API {
	return &API{
		laps:     laps,
		sessions: sessions,
		cookie:   cookie,
		log:      log,
	}
}

// ListLaps godoc
// @Summary      List laps
// @Description  Returns the lap log of the session identified by the session cookie
// @Tags         Laps
// @Produce      json
// @Param        order  query     string  false  "insertion (default) or fastest"
// @Success      200    {object}  dto.LapsResponse
// @Failure      500    {object}  map[string]string
// @Router       /api/laps [get]
func (a *API) ListLaps(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "api_list_laps")

	var token string
	if c, err := r.Cookie(a.cookie.Name); err == nil {
		token = c.Value
	}

	sess, err := a.sessions.Load(ctx, token)
	if err != nil {
		a.log.Error(wrap.ErrorCtx(ctx, err), "failed to load session", err)
		internalErrorResponse(w, "failed to load session")
		return
	}

	entries := a.laps.List(sess, types.ParseLapOrder(r.URL.Query().Get("order")))

	if err := writeJSON(w, http.StatusOK, dto.NewLapsResponse(entries), nil); err != nil {
		a.log.Error(ctx, "failed to write response", err)
	}
}
