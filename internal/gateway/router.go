// Package gateway is the request-routing edge of the platform: a reverse
// proxy that authenticates every /api request against the token authority
// and applies the role matrix before anything reaches an upstream service.
package gateway

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Upstreams holds the base URLs of the services the gateway fronts.
type Upstreams struct {
	Authority string
	Records   string
	Audit     string
}

// NewRouter builds the gateway's Echo instance.
//
// Routing:
//   - /auth/*  → authority, prefix stripped, no enforcement (login and
//     registration must work without a token).
//   - /api/patients* → records service, /api stripped, enforcement filter
//     plus the RBAC matrix.
//   - /api/audit* → audit service, /api stripped, enforcement filter only
//     (authenticated, no matrix check since it is not under the protected prefix).
func NewRouter(validator TokenValidator, up Upstreams, log zerolog.Logger) (*echo.Echo, error) {
	authorityURL, err := url.Parse(up.Authority)
	if err != nil {
		return nil, fmt.Errorf("gateway: authority url: %w", err)
	}
	recordsURL, err := url.Parse(up.Records)
	if err != nil {
		return nil, fmt.Errorf("gateway: records url: %w", err)
	}
	auditURL, err := url.Parse(up.Audit)
	if err != nil {
		return nil, fmt.Errorf("gateway: audit url: %w", err)
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	enforce := Enforce(validator, log)

	auth := e.Group("/auth")
	auth.Use(proxyTo(authorityURL, map[string]string{"/auth/*": "/$1"}))

	patients := e.Group("/api/patients", enforce)
	patients.Use(proxyTo(recordsURL, map[string]string{"/api/*": "/$1"}))

	audit := e.Group("/api/audit", enforce)
	audit.Use(proxyTo(auditURL, map[string]string{"/api/*": "/$1"}))

	return e, nil
}

// proxyTo returns a proxy middleware for a single upstream with the given
// path rewrite rules. Requests are forwarded unmodified beyond the prefix
// strip; the filter has already decided by the time the proxy runs.
func proxyTo(target *url.URL, rewrite map[string]string) echo.MiddlewareFunc {
	return echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
			{URL: target},
		}),
		Rewrite: rewrite,
	})
}
