package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"userhub/internal/delivery/http/response"
	"userhub/internal/usecase"
)

// AuthHandler serves the registration, login and logout endpoints.
type AuthHandler struct {
	credentials usecase.CredentialUsecase
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(credentials usecase.CredentialUsecase) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Age      *int   `json:"age" validate:"omitempty,min=1,max=150"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required,min=1,max=255"`
	Password        string `json:"password" validate:"required,min=1,max=128"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	user, err := h.credentials.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user), "user registered")
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	token, err := h.credentials.Login(c.Request().Context(), strings.TrimSpace(req.UsernameOrEmail), req.Password)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, loginResponse{Token: token}, "login successful")
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// acknowledges; the client discards its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.credentials.Logout(c.Request().Context(), token); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "logged out")
}
