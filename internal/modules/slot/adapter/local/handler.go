package local

import (
	"context"

	"github.com/billyz31/slot_arcade/internal/modules/slot/usecase"
	"github.com/billyz31/slot_arcade/pkg/service"
)

// Handler is the local adapter for the slot game (monolith mode). It
// implements service.SlotService for other modules in the same process.
type Handler struct {
	slotUC *usecase.SlotUseCase
}

// NewHandler creates a new local slot handler
func NewHandler(slotUC *usecase.SlotUseCase) *Handler {
	return &Handler{slotUC: slotUC}
}

// Spin runs one round for the player
func (h *Handler) Spin(ctx context.Context, playerID string, bet int64) (*service.SpinResult, error) {
	outcome, err := h.slotUC.Spin(ctx, playerID, bet)
	if err != nil {
		return nil, err
	}
	return &service.SpinResult{
		Reels:   outcome.Reels,
		Bet:     outcome.Bet,
		Win:     outcome.Win,
		Balance: outcome.Balance,
		RoundID: outcome.RoundID,
	}, nil
}

// Config returns the public game configuration
func (h *Handler) Config() service.SlotConfig {
	cfg := h.slotUC.Config()
	return service.SlotConfig{
		MinBet:   cfg.MinBet,
		MaxBet:   cfg.MaxBet,
		Symbols:  cfg.Symbols,
		Paylines: cfg.Paylines,
		Reels:    cfg.Reels,
	}
}
