package http

import (
	"errors"
	"fmt"
	"net/http"

	slotdomain "github.com/billyz31/slot_arcade/internal/modules/slot/domain"
	"github.com/billyz31/slot_arcade/internal/modules/slot/usecase"
	walletdomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/gin-gonic/gin"
)

// PlayerIDKey is the gin context key set by the auth middleware
const PlayerIDKey = "player_id"

// Handler handles HTTP requests for the slot module
type Handler struct {
	slotUC *usecase.SlotUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(slotUC *usecase.SlotUseCase) *Handler {
	return &Handler{slotUC: slotUC}
}

// RegisterPublicRoutes registers routes that need no authentication
func (h *Handler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/config", h.Config)
}

// RegisterRoutes registers routes on the given (authenticated) group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/spin", h.Spin)
}

// Bet is a pointer so an absent field can default to the minimum bet while
// an explicit zero still reaches the bounds check and is rejected.
type spinRequest struct {
	Bet *int64 `json:"bet"`
}

type spinData struct {
	Reels   []string `json:"reels"`
	Bet     int64    `json:"bet"`
	Win     int64    `json:"win"`
	Balance int64    `json:"balance"`
	RoundID string   `json:"roundId"`
}

type configData struct {
	MinBet   int64    `json:"minBet"`
	MaxBet   int64    `json:"maxBet"`
	Symbols  []string `json:"symbols"`
	Paylines int      `json:"paylines"`
	Reels    int      `json:"reels"`
}

// Config handles GET /slot/config
func (h *Handler) Config(c *gin.Context) {
	cfg := h.slotUC.Config()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": configData{
		MinBet:   cfg.MinBet,
		MaxBet:   cfg.MaxBet,
		Symbols:  cfg.Symbols,
		Paylines: cfg.Paylines,
		Reels:    cfg.Reels,
	}})
}

// Spin handles POST /slot/spin
func (h *Handler) Spin(c *gin.Context) {
	playerID := c.GetString(PlayerIDKey)

	var req spinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("spin: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	bet := h.slotUC.Config().MinBet
	if req.Bet != nil {
		bet = *req.Bet
	}

	outcome, err := h.slotUC.Spin(c.Request.Context(), playerID, bet)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": spinData{
		Reels:   outcome.Reels,
		Bet:     outcome.Bet,
		Win:     outcome.Win,
		Balance: outcome.Balance,
		RoundID: outcome.RoundID,
	}})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	cfg := h.slotUC.Config()

	var status int
	var message string
	switch {
	case errors.Is(err, slotdomain.ErrInvalidBet):
		status = http.StatusBadRequest
		message = fmt.Sprintf("Bet must be between %d and %d", cfg.MinBet, cfg.MaxBet)
	case errors.Is(err, walletdomain.ErrInsufficientFunds):
		status = http.StatusBadRequest
		message = "Insufficient balance"
	case errors.Is(err, walletdomain.ErrPlayerNotFound):
		status = http.StatusNotFound
		message = "Player not found"
	case errors.Is(err, walletdomain.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		message = "Service temporarily unavailable"
	default:
		status = http.StatusInternalServerError
		message = "Internal error"
		logger.Error(c.Request.Context()).Err(err).Msg("spin failed")
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}
