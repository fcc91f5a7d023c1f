package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware requires a valid bearer token and stores the resulting
// Actor in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeader(c, authService)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth resolves an Actor when a token is present and lets anonymous
// requests through. Read-open surfaces with gated writes use this.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, err := actorFromHeader(c, authService); err == nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin actors. Must run after AuthMiddleware or
// OptionalAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.IsAdmin(GetActor(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the request's actor, anonymous when unauthenticated.
func GetActor(c *gin.Context) policy.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(policy.Actor); ok {
			return actor
		}
	}
	return policy.Anonymous
}

func actorFromHeader(c *gin.Context, authService service.AuthService) (policy.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Anonymous, service.ErrInvalidToken
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return policy.Anonymous, err
	}

	return policy.Actor{
		ID:            claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
		Authenticated: true,
	}, nil
}
