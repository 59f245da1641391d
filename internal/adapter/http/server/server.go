package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Temutjin2k/kart-laptimes/config"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/middleware"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.HTTPConfig
	log  logger.Logger
}

type handlers struct {
	site   *handler.Site
	api    *handler.API
	health *handler.Health
}

func New(
	cfg config.Config,
	site *handler.Site,
	api *handler.API,
	health *handler.Health,
	log logger.Logger,
) (*API, error) {
	if site == nil || api == nil || health == nil {
		return nil, errors.New("all http handlers are required")
	}

	a := &API{
		mux: http.NewServeMux(),
		routes: &handlers{
			site:   site,
			api:    api,
			health: health,
		},
		m:    middleware.NewMiddleware(cfg.App.Name, log),
		addr: cfg.HTTP.Addr(),
		cfg:  cfg.HTTP,
		log:  log,
	}

	a.setupRoutes()

	a.server = &http.Server{
		Addr:         a.addr,
		Handler:      a.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return a, nil
}

// Handler returns the routed mux wrapped in the middleware chain.
func (a *API) Handler() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}
