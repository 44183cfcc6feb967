package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hello-upstream/internal/config"
	"hello-upstream/internal/metrics"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
// Every route is an exact GET; anything else falls through to 404.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, hello *HelloHandler, health *HealthHandler) {
	get(e, "/", hello.Hello)
	get(e, "/healthz", health.Healthz)
	get(e, "/status", health.Status)

	if cfg.Metrics.On() && cfg.Metrics.Path != "" && m != nil {
		get(e, cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
}

// get registers an exact GET route. OPTIONS is claimed as well, otherwise
// echo answers it for any known path with 204 and an Allow header.
func get(e *echo.Echo, path string, h echo.HandlerFunc) {
	e.GET(path, h)
	e.OPTIONS(path, notFound)
}

func notFound(echo.Context) error {
	return echo.ErrNotFound
}
