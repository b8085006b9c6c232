// Package usecase implements the gateway message dispatch: inbound events
// from a persistent connection are routed to the same service contracts the
// REST API uses, and results are republished as outbound events.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	slotdomain "github.com/billyz31/slot_arcade/internal/modules/slot/domain"
	walletdomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/billyz31/slot_arcade/pkg/service"
)

// Gateway event names
const (
	EventGameSpin            = "game_spin"
	EventGameSpinResult      = "game_spin_result"
	EventWalletBalance       = "wallet_balance"
	EventWalletBalanceResult = "wallet_balance_result"
)

// GatewayUseCase routes gateway events to game services
type GatewayUseCase struct {
	slotSvc   service.SlotService
	walletSvc service.WalletService
}

// NewGatewayUseCase creates a new gateway use case
func NewGatewayUseCase(slotSvc service.SlotService, walletSvc service.WalletService) *GatewayUseCase {
	return &GatewayUseCase{
		slotSvc:   slotSvc,
		walletSvc: walletSvc,
	}
}

// RequestEnvelope is the inbound event frame
type RequestEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ResultEnvelope is the outbound event frame
type ResultEnvelope struct {
	Event   string      `json:"event"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// HandleMessage dispatches one inbound event and returns the outbound reply
func (uc *GatewayUseCase) HandleMessage(ctx context.Context, playerID string, message []byte) ([]byte, error) {
	var req RequestEnvelope
	if err := json.Unmarshal(message, &req); err != nil {
		return nil, fmt.Errorf("invalid message format: %w", err)
	}

	if req.Event == "" {
		return nil, errors.New("no event specified")
	}

	switch req.Event {
	case EventGameSpin:
		return uc.handleSpin(ctx, playerID, req.Data)
	case EventWalletBalance:
		return uc.handleBalance(ctx, playerID)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

func (uc *GatewayUseCase) handleBalance(ctx context.Context, playerID string) ([]byte, error) {
	result, err := uc.walletSvc.Balance(ctx, playerID)
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("player_id", playerID).
			Msg("gateway balance query failed")
		return json.Marshal(ResultEnvelope{
			Event:   EventWalletBalanceResult,
			Success: false,
			Message: uc.failureMessage(err, uc.slotSvc.Config()),
		})
	}

	return json.Marshal(ResultEnvelope{
		Event:   EventWalletBalanceResult,
		Success: true,
		Data:    result,
	})
}

func (uc *GatewayUseCase) handleSpin(ctx context.Context, playerID string, data []byte) ([]byte, error) {
	// Bet is a pointer so only an absent field defaults; an explicit zero
	// goes through to the bounds check and is rejected.
	var payload struct {
		Bet *int64 `json:"bet"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("invalid spin payload: %w", err)
		}
	}

	cfg := uc.slotSvc.Config()
	// Same default as the REST adapter; both share one configuration
	bet := cfg.MinBet
	if payload.Bet != nil {
		bet = *payload.Bet
	}

	result, err := uc.slotSvc.Spin(ctx, playerID, bet)
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("player_id", playerID).
			Int64("bet", bet).
			Msg("gateway spin failed")
		return json.Marshal(ResultEnvelope{
			Event:   EventGameSpinResult,
			Success: false,
			Message: uc.failureMessage(err, cfg),
		})
	}

	return json.Marshal(ResultEnvelope{
		Event:   EventGameSpinResult,
		Success: true,
		Data:    result,
	})
}

// failureMessage mirrors the REST adapter's wording so both transports speak
// the same contract.
func (uc *GatewayUseCase) failureMessage(err error, cfg service.SlotConfig) string {
	switch {
	case errors.Is(err, slotdomain.ErrInvalidBet):
		return fmt.Sprintf("Bet must be between %d and %d", cfg.MinBet, cfg.MaxBet)
	case errors.Is(err, walletdomain.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, walletdomain.ErrPlayerNotFound):
		return "Player not found"
	case errors.Is(err, walletdomain.ErrStoreUnavailable):
		return "Service temporarily unavailable"
	default:
		return "Internal error"
	}
}
