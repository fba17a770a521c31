package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"userhub/internal/delivery/http/response"
	"userhub/internal/domain/service"
	"userhub/internal/usecase"
)

// Context keys for the authenticated identity.
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "userID"
	ContextKeyRoles  = "roles"
)

// AuthMiddleware provides middleware for token authentication and authorization.
type AuthMiddleware struct {
	credentials usecase.CredentialUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(credentials usecase.CredentialUsecase) *AuthMiddleware {
	return &AuthMiddleware{credentials: credentials}
}

// Authenticate is the core middleware function that validates the bearer
// token and establishes the request identity. A request is either anonymous
// (rejected here) or authenticated with the verified claims on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.credentials.VerifyToken(c.Request().Context(), tokenString)
		if err != nil {
			return response.DomainError(c, err)
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRoles, claims.Roles)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKeyClaims).(*service.Claims)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !claims.HasRole(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified claims set by Authenticate.
func ClaimsFromContext(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*service.Claims)

	return claims, ok
}
