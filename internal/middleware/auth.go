package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/pkg/auth"
	"github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const ContextPrincipal = "principal"

type AuthMiddleware struct {
	tokens auth.JWTService
}

func NewAuthMiddleware(tokens auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and stores the principal in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, errors.Unauthorized("missing authorization header", nil))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, errors.Unauthorized("invalid authorization format", nil))
			return
		}

		claims, err := m.tokens.ValidateSessionToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized("invalid token", err))
			return
		}

		c.Set(ContextPrincipal, model.Principal{ID: claims.PrincipalID, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

// RequireAdmin lets only admin principals through.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httputil.RespondWithError(c, errors.Unauthorized("", nil))
			return
		}
		if !principal.IsAdmin {
			httputil.RespondWithError(c, errors.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets through admins and the principal whose id is in the
// named path parameter.
func (m *AuthMiddleware) RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httputil.RespondWithError(c, errors.Unauthorized("", nil))
			return
		}
		if principal.IsAdmin {
			c.Next()
			return
		}
		id, err := uuid.Parse(c.Param(param))
		if err != nil || id != principal.ID {
			httputil.RespondWithError(c, errors.Forbidden("you can only access your own account"))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal stored by Authenticate.
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}
