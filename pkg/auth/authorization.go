package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"
)

const claimsKey = "claims"

// AuthMiddleware verifies the bearer token and attaches the decoded claims
// to the request context.
func AuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is missing"})
			c.Abort()
			return
		}
		bearer := strings.TrimPrefix(authHeader, "Bearer ")
		if bearer == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is not a bearer token"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(bearer)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		// Attach claims to the context
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// RequireCapability gates a route on a single capability. Must run after
// AuthMiddleware.
func RequireCapability(cap roles.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil || !roles.Has(claims.Role, claims.SecondaryRoles, cap) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claims returns the claims attached by AuthMiddleware, or nil.
func Claims(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
