package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/patient-platform/internal/api/metrics"
	"github.com/carebridge/patient-platform/internal/core/domain"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

// AuthHandler exposes the token authority's HTTP surface.
type AuthHandler struct {
	tokens ports.TokenService
}

func NewAuthHandler(tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Login authenticates an account and returns a signed bearer token.
//
// @Summary      Generate token on login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.tokens.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Register creates a new account with the least-privileged role.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.tokens.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		Role:    string(account.Role),
		Message: "account registered successfully",
	})
}

// Validate verifies the bearer token presented in the Authorization header.
// Other services call this endpoint for every request they gate, so it must
// stay side-effect free.
//
// @Summary      Validate token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.ValidationResult
// @Failure      401  {object}  map[string]string
// @Router       /validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		metrics.TokenValidationsTotal.WithLabelValues("malformed_header").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
	}

	result := h.tokens.ValidateToken(c.Request().Context(), token)
	if !result.Valid {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, result)
}

// ListUsers returns all accounts. ADMIN only: the role check here is
// deliberate duplication of the gateway's gating, since /users is not under
// the patient prefix the RBAC matrix covers.
//
// @Summary      List accounts (ADMIN only)
// @Tags         auth
// @Produce      json
// @Success      200  {array}   accountView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	role, err := h.requesterRole(c)
	if err != nil {
		return err
	}

	accounts, err := h.tokens.ListAccounts(c.Request().Context(), role)
	if err != nil {
		return err
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toAccountView(a))
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateRole changes an account's role. ADMIN only, same in-handler check.
//
// @Summary      Update account role (ADMIN only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  accountView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/role [put]
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	role, err := h.requesterRole(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	newRole, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	updated, err := h.tokens.UpdateRole(c.Request().Context(), role, c.Param("id"), newRole)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountView(updated))
}

// requesterRole authenticates the caller of an admin endpoint from its own
// bearer token and returns the resolved role.
func (h *AuthHandler) requesterRole(c echo.Context) (domain.Role, error) {
	token, ok := bearerToken(c)
	if !ok {
		return domain.RoleUnspecified, echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
	}

	result := h.tokens.ValidateToken(c.Request().Context(), token)
	if !result.Valid {
		return domain.RoleUnspecified, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return result.Role.Resolve(), nil
}
