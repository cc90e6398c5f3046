package middlewares

import (
	"net/http"
	"strings"

	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/Ludvin7x/lemon-api/utils"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// CurrentPrincipal returns the caller resolved by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}

// AuthMiddleware validates the bearer token and resolves the caller into a
// Principal. Group membership is loaded from the database each request, not
// trusted from the token.
func AuthMiddleware(users *repository.UserRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		userID, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		user, err := users.FindWithGroups(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unknown user"})
			c.Abort()
			return
		}

		c.Set(principalKey, services.ResolvePrincipal(user))
		c.Next()
	}
}

// RequireManager gates routes reserved for the Admin/Manager tier.
// Must sit behind AuthMiddleware.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			c.Abort()
			return
		}
		if !p.CanManageMenu() {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
