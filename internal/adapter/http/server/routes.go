package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Temutjin2k/kart-laptimes/docs"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	// Page endpoint. Both the bare root and the legacy script path dispatch on ?page=.
	a.mux.Handle("GET /{$}", a.routes.site)
	a.mux.Handle("POST /{$}", a.routes.site)
	a.mux.Handle("GET /index.php", a.routes.site)
	a.mux.Handle("POST /index.php", a.routes.site)

	a.mux.HandleFunc("GET /api/laps", a.routes.api.ListLaps)

	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("laptimes")))
	a.mux.Handle("/metrics", promhttp.Handler())
}
