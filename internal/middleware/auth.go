package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/models"
	"reviewhub/internal/service"
	"reviewhub/pkg/apperror"
	"reviewhub/pkg/response"
)

const principalKey = "principal"

const sessionCookie = "session_token"

// Authenticate parses a Bearer token when present and stores the
// resolved principal in the request context. The browsing surface
// carries the same token in a cookie instead of a header. Requests
// without a token pass through anonymously; route guards decide
// whether that is enough.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.AbortError(c, apperror.New(401, "invalid authorization header", apperror.ErrUnauthorized))
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie(sessionCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.Next()
			return
		}

		principal, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			response.AbortError(c, apperror.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose principal lacks admin access.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.AbortError(c, apperror.ErrUnauthorized)
			return
		}
		if !principal.HasAdminAccess() {
			response.AbortError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal, if any.
func GetPrincipal(c *gin.Context) (*models.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := val.(*models.Principal)
	return principal, ok && principal != nil
}

// SetPrincipal is used by tests to inject an authenticated identity.
func SetPrincipal(c *gin.Context, p *models.Principal) {
	c.Set(principalKey, p)
}
