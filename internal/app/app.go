package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/kart-laptimes/config"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler"
	httpserver "github.com/Temutjin2k/kart-laptimes/internal/adapter/http/server"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/view"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/memory"
	repo "github.com/Temutjin2k/kart-laptimes/internal/adapter/postgres"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/internal/service/laps"
	"github.com/Temutjin2k/kart-laptimes/internal/service/session"
	"github.com/Temutjin2k/kart-laptimes/internal/service/users"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
	wrap "github.com/Temutjin2k/kart-laptimes/pkg/logger/wrapper"
	postgresclient "github.com/Temutjin2k/kart-laptimes/pkg/postgres"
)

var ErrServiceNotInitialized = errors.New("service not initialized")

type App struct {
	postgresDB *postgresclient.PostgreDB // nil with the memory backend
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

// NewApplication wires the session store, services and HTTP server.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	ctx = wrap.WithAction(ctx, "init_application")

	a := &App{
		cfg: cfg,
		log: log,
	}

	store, err := a.initStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init session store: %w", err)
	}

	// services
	tokens := session.NewTokenService(cfg.Session.Secret, cfg.Session.TTL)
	sessions := session.NewManager(store, tokens, cfg.Session.TTL, log)
	lapSvc := laps.NewService(log)
	userSvc := users.NewService(log)

	renderer, err := view.New()
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	cookie := handler.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
	}
	info := handler.SiteInfo{
		AppName:    cfg.App.Name,
		Identifier: cfg.App.Identifier,
	}

	pages := handler.NewPages(lapSvc, userSvc, cfg.App.Identifier, log)
	site := handler.NewSite(pages.Router(), sessions, renderer, cookie, info, log)
	api := handler.NewAPI(lapSvc, sessions, cookie, log)
	health := handler.NewHealth(cfg.App.Name, string(cfg.Session.Backend), log)

	server, err := httpserver.New(cfg, site, api, health, log)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}
	a.httpServer = server

	return a, nil
}

func (a *App) initStore(ctx context.Context) (session.Store, error) {
	switch a.cfg.Session.Backend {
	case types.MemoryBackend:
		a.log.Info(ctx, "using in-memory session store")
		return memory.NewSessionStore(), nil

	case types.PostgresBackend:
		db, err := postgresclient.New(ctx, a.cfg.Database)
		if err != nil {
			return nil, err
		}
		a.postgresDB = db

		if err := repo.Migrate(ctx, db.Pool); err != nil {
			a.closeDB()
			return nil, err
		}

		sessionRepo := repo.NewSessionRepo(db.Pool)
		n, err := sessionRepo.DeleteExpired(ctx)
		if err != nil {
			a.log.Warn(ctx, "failed to purge expired sessions", "error", err.Error())
		} else if n > 0 {
			a.log.Info(ctx, "purged expired sessions", "count", n)
		}

		a.log.Info(ctx, "using postgres session store")
		return sessionRepo, nil

	default:
		return nil, types.ErrInvalidSessionBackend
	}
}

// Run serves HTTP until the process is signalled or the server fails.
func (a *App) Run(ctx context.Context) error {
	if a.httpServer == nil {
		return ErrServiceNotInitialized
	}

	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "application started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	a.closeDB()
}

func (a *App) closeDB() {
	if a.postgresDB != nil {
		a.postgresDB.Close()
		a.postgresDB = nil
	}
}
