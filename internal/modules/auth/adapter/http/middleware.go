package http

import (
	"net/http"
	"strings"

	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/billyz31/slot_arcade/pkg/service"
	"github.com/gin-gonic/gin"
)

// Gin context keys populated by AuthRequired
const (
	PlayerIDKey = "player_id"
	RoleKey     = "role"
)

// AuthRequired validates the Bearer token and stores the player identity on
// the gin context. The token's cryptographic format is opaque to downstream
// handlers; they only ever see the player identifier.
func AuthRequired(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		playerID, role, _, err := authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn(c.Request.Context()).Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		c.Set(PlayerIDKey, playerID)
		c.Set(RoleKey, role)
		c.Next()
	}
}
