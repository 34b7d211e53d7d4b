package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/patient-platform/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler serves the read side of the audit trail.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns the most recent audit events, newest first.
//
// @Summary      List recent audit events
// @Tags         audit
// @Produce      json
// @Param        limit  query    int  false  "Max entries (default 50)"
// @Success      200    {array}  domain.AuditEvent
// @Router       /audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.repo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
