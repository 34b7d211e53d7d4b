package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/api/metrics"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

// apiPrefix is stripped from proxied paths before they reach an upstream;
// the RBAC check runs against the stripped path so it matches what the
// upstream actually serves.
const apiPrefix = "/api"

// protectedPrefix is the resource subtree gated by the authorization matrix.
// Authenticated paths outside it are forwarded without a matrix check.
const protectedPrefix = "/patients"

// TokenValidator is the gateway's view of the token authority. The concrete
// implementation is authclient.Client; tests substitute their own.
type TokenValidator interface {
	Validate(ctx context.Context, authHeader string) (ports.ValidationResult, error)
}

// Enforce returns the per-request enforcement filter. For every request it:
//
//  1. Rejects immediately (401) when the Authorization header is absent or
//     not a Bearer scheme; the authority is never called in that case.
//  2. Validates the token remotely. Transport failure, timeout, or a
//     negative verdict all reject with 401: an unreachable authority is
//     never treated as allow.
//  3. Resolves the role (legacy fallback applies) and, for paths under the
//     protected prefix, consults the method/role matrix; a miss rejects
//     with 403.
//
// Rejections short-circuit: no upstream call is made. The validation call is
// never retried; one failure is terminal for the request.
func Enforce(validator TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !isBearer(header) {
				metrics.GatewayDecisionsTotal.WithLabelValues("unauthorized", "missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			start := time.Now()
			result, err := validator.Validate(c.Request().Context(), header)
			metrics.ValidationCallDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				// Fail closed.
				log.Warn().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Msg("token validation call failed")
				metrics.GatewayDecisionsTotal.WithLabelValues("unauthorized", "authority_unreachable").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication unavailable")
			}
			if !result.Valid {
				metrics.GatewayDecisionsTotal.WithLabelValues("unauthorized", "invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role := result.Role.Resolve()
			path := strings.TrimPrefix(c.Request().URL.Path, apiPrefix)
			if strings.HasPrefix(path, protectedPrefix) && !Allowed(c.Request().Method, role) {
				metrics.GatewayDecisionsTotal.WithLabelValues("forbidden", "rbac_denied").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}

			metrics.GatewayDecisionsTotal.WithLabelValues("forward", "ok").Inc()
			return next(c)
		}
	}
}

func isBearer(header string) bool {
	if header == "" {
		return false
	}
	parts := strings.SplitN(header, " ", 2)
	return len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != ""
}
