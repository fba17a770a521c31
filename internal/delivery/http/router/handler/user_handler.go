package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"userhub/internal/delivery/http/middleware"
	"userhub/internal/delivery/http/response"
	"userhub/internal/usecase"
)

// UserHandler serves the user administration endpoints.
type UserHandler struct {
	users usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(users usecase.UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

type updateStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type availabilityResponse struct {
	Username *bool `json:"username_taken,omitempty"`
	Email    *bool `json:"email_taken,omitempty"`
}

// List handles GET /users with limit/offset query parameters.
func (h *UserHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := h.users.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserListResponse(users), "")
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid user id")
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "")
}

// Me handles GET /users/me, resolving the authenticated identity.
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "not authenticated")
	}

	user, err := h.users.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "")
}

// Availability handles GET /users/availability?username=&email=.
func (h *UserHandler) Availability(c echo.Context) error {
	username := c.QueryParam("username")
	email := c.QueryParam("email")
	if username == "" && email == "" {
		return response.BadRequest(c, "VALIDATION_FAILED", "username or email query parameter required")
	}

	var out availabilityResponse

	if username != "" {
		taken, err := h.users.UsernameExists(c.Request().Context(), username)
		if err != nil {
			return response.DomainError(c, err)
		}
		out.Username = &taken
	}

	if email != "" {
		taken, err := h.users.EmailExists(c.Request().Context(), email)
		if err != nil {
			return response.DomainError(c, err)
		}
		out.Email = &taken
	}

	return response.Success(c, http.StatusOK, out, "")
}

// UpdateStatus handles PUT /users/:id/status.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid user id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	user, err := h.users.UpdateUserStatus(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "user status updated")
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid user id")
	}

	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "user deleted")
}

// HealthCheck handles GET /health.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
