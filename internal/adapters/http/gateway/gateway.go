// Package gateway serves the built single-page application and forwards
// /api traffic to the API process.
package gateway

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/metrics"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// ServerName identifies the gateway in /_health
	ServerName = "roilux-gateway"

	probeTimeout = 2 * time.Second
	proxyTimeout = 30 * time.Second
	assetMaxAge  = 365 * 24 * time.Hour
)

// backend states reported by /_health
const (
	backendUnknown  = "unknown"
	backendUp       = "up"
	backendDown     = "down"
	backendDisabled = "disabled"
)

// Gateway holds the static/proxy configuration and the last probe result
type Gateway struct {
	staticDir  string
	backendURL string
	log        *zap.SugaredLogger

	backend atomic.Value // string
}

// New creates a gateway.  An empty backendURL disables proxying.
func New(staticDir, backendURL string, log *zap.SugaredLogger) *Gateway {
	g := &Gateway{staticDir: staticDir, backendURL: backendURL, log: log}
	if backendURL == "" {
		g.backend.Store(backendDisabled)
	} else {
		g.backend.Store(backendUnknown)
	}
	return g
}

// Register mounts health, metrics, the /api proxy and the SPA on app
func (g *Gateway) Register(app *fiber.App) {
	app.Get("/health", g.Health)
	app.Get("/_health", g.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// exact segment match: /apiary belongs to the SPA
	app.All("/api", g.Proxy)
	app.All("/api/*", g.Proxy)

	app.Use(middleware.StaticAssetCache(assetMaxAge))
	app.Static("/", g.staticDir, fiber.Static{
		Compress: true,
		Index:    "index.html",
	})

	// client-side routes
	app.Get("*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(g.staticDir, "index.html"))
	})
}

// Proxy forwards the request to the backend, or answers 404 when no
// backend is configured
func (g *Gateway) Proxy(c *fiber.Ctx) error {
	if g.backendURL == "" {
		return response.NotFound(c, "Not found")
	}

	target := g.backendURL + c.OriginalURL()
	if err := proxy.DoTimeout(c, target, proxyTimeout); err != nil {
		g.log.Warnw("proxy error", "target", target, "err", err)
		return response.BadGateway(c, "Backend service unavailable", err.Error())
	}

	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}

// Health reports the gateway itself and the last backend probe
func (g *Gateway) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"server":    ServerName,
		"backend":   g.BackendState(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// BackendState returns the last probe outcome
func (g *Gateway) BackendState() string {
	return g.backend.Load().(string)
}

// Probe checks the backend's /_health with a short timeout and records
// the outcome
func (g *Gateway) Probe(ctx context.Context) error {
	if g.backendURL == "" {
		return nil
	}

	err := g.probe(ctx)
	if err != nil {
		if g.BackendState() != backendDown {
			g.log.Warnw("❌ Backend unreachable", "backend", g.backendURL, "err", err)
		}
		g.backend.Store(backendDown)
		metrics.BackendUp.Set(0)
		return err
	}

	if g.BackendState() != backendUp {
		g.log.Infow("✅ Backend reachable", "backend", g.backendURL)
	}
	g.backend.Store(backendUp)
	metrics.BackendUp.Set(1)
	return nil
}

func (g *Gateway) probe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Get(g.backendURL + "/_health")
	agent.Timeout(probeTimeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, errs[0])
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, code)
	}
	return nil
}

// StartProbe runs Probe now and then on schedule (a cron spec such as
// "@every 15s").  The caller stops the returned scheduler.
func (g *Gateway) StartProbe(schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { _ = g.Probe(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}

	_ = g.Probe(context.Background())
	c.Start()
	return c, nil
}
