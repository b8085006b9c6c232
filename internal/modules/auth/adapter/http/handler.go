package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/billyz31/slot_arcade/internal/modules/auth/usecase"
	walletdomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the auth module
type Handler struct {
	authUC *usecase.AuthUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(authUC *usecase.AuthUseCase) *Handler {
	return &Handler{authUC: authUC}
}

// RegisterRoutes registers the public login route
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers routes behind the auth middleware
func (h *Handler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
}

type loginRequest struct {
	PlayerID string `json:"playerId"`
	Secret   string `json:"secret"`
}

type loginData struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing playerId or secret"})
		return
	}

	token, player, err := h.authUC.Login(c.Request.Context(), req.PlayerID, req.Secret)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing playerId or secret"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Str("player_id", req.PlayerID).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	logger.Info(c.Request.Context()).
		Str("player_id", player.PlayerID).
		Str("role", player.Role).
		Msg("login succeeded")

	c.JSON(http.StatusOK, gin.H{"success": true, "data": loginData{
		Token:    token,
		PlayerID: player.PlayerID,
		Role:     player.Role,
	}})
}

// Me handles GET /me
func (h *Handler) Me(c *gin.Context) {
	playerID := c.GetString(PlayerIDKey)

	player, err := h.authUC.Me(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, walletdomain.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Player not found"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Str("player_id", playerID).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"playerId":   player.PlayerID,
		"role":       player.Role,
		"serverTime": time.Now().Format(time.RFC3339),
	}})
}
