package http

import (
	"errors"
	"net/http"

	"github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/billyz31/slot_arcade/internal/modules/wallet/usecase"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/gin-gonic/gin"
)

// PlayerIDKey is the gin context key under which the auth middleware stores
// the authenticated player identifier.
const PlayerIDKey = "player_id"

// Handler handles HTTP requests for the wallet module
type Handler struct {
	walletUC *usecase.WalletUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(walletUC *usecase.WalletUseCase) *Handler {
	return &Handler{walletUC: walletUC}
}

// RegisterRoutes registers wallet routes on the given (authenticated) group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/balance", h.Balance)
	router.POST("/credit", h.Credit)
	router.POST("/debit", h.Debit)
}

// DTOs
type adjustRequest struct {
	Amount int64  `json:"amount"`
	Ref    string `json:"ref"`
}

type balanceData struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
	Source   string `json:"source"`
}

type receiptData struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
	Delta    int64  `json:"delta"`
	Ref      string `json:"ref"`
	TxID     string `json:"txId"`
}

// Balance handles GET /wallet/balance
func (h *Handler) Balance(c *gin.Context) {
	playerID := c.GetString(PlayerIDKey)

	balance, source, err := h.walletUC.Balance(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, balanceData{
		PlayerID: playerID,
		Balance:  balance,
		Source:   source,
	})
}

// Credit handles POST /wallet/credit
func (h *Handler) Credit(c *gin.Context) {
	h.adjust(c, false)
}

// Debit handles POST /wallet/debit
func (h *Handler) Debit(c *gin.Context) {
	h.adjust(c, true)
}

func (h *Handler) adjust(c *gin.Context, debit bool) {
	playerID := c.GetString(PlayerIDKey)

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("wallet adjust: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid amount"})
		return
	}

	var (
		receipt *domain.Receipt
		err     error
	)
	if debit {
		receipt, err = h.walletUC.Debit(c.Request.Context(), playerID, req.Amount, req.Ref)
	} else {
		receipt, err = h.walletUC.Credit(c.Request.Context(), playerID, req.Amount, req.Ref)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, receiptData{
		PlayerID: receipt.PlayerID,
		Balance:  receipt.Balance,
		Delta:    receipt.Delta,
		Ref:      receipt.Ref,
		TxID:     receipt.TxID,
	})
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context()).Err(err).Msg("wallet request failed")
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient balance"
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, "Player not found"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
