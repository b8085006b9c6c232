// Package usecase implements the spin flow: validate the bet, resolve the
// outcome, then settle the whole balance effect atomically.
package usecase

import (
	"context"

	"github.com/billyz31/slot_arcade/internal/modules/slot/domain"
	"github.com/billyz31/slot_arcade/internal/modules/slot/engine"
	"github.com/billyz31/slot_arcade/pkg/logger"
)

// Wallet is the wallet capability the spin flow needs
type Wallet interface {
	// SettleSpin debits bet and credits win as one atomic operation,
	// returning the resulting balance
	SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error)
}

// SlotUseCase orchestrates spins against the engine and the wallet
type SlotUseCase struct {
	engine *engine.Engine
	wallet Wallet
}

// NewSlotUseCase creates a new slot use case
func NewSlotUseCase(eng *engine.Engine, wallet Wallet) *SlotUseCase {
	return &SlotUseCase{
		engine: eng,
		wallet: wallet,
	}
}

// Config returns the game configuration
func (uc *SlotUseCase) Config() engine.Config {
	return uc.engine.Config()
}

// Spin runs one round for the player.
//
// The draw happens before any balance effect: it is free of durable side
// effects, so a spin that fails settlement leaves nothing behind. Settlement
// then debits the bet and credits any win in a single atomic wallet
// operation; once it commits the spin always runs to completion.
func (uc *SlotUseCase) Spin(ctx context.Context, playerID string, bet int64) (*domain.SpinOutcome, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"player_id": playerID,
	})

	cfg := uc.engine.Config()
	if bet < cfg.MinBet || bet > cfg.MaxBet {
		logger.Warn(ctx).Int64("bet", bet).Msg("spin rejected: bet out of bounds")
		return nil, domain.ErrInvalidBet
	}

	reels := uc.engine.Draw()
	win := uc.engine.Payout(reels, bet)

	balance, err := uc.wallet.SettleSpin(ctx, playerID, bet, win)
	if err != nil {
		// InsufficientFunds and PlayerNotFound surface verbatim
		logger.Warn(ctx).Err(err).Int64("bet", bet).Msg("spin settlement refused")
		return nil, err
	}

	outcome := domain.NewSpinOutcome(reels, bet, win, balance)

	logger.Info(ctx).
		Str("round_id", outcome.RoundID).
		Strs("reels", reels).
		Int64("bet", bet).
		Int64("win", win).
		Int64("balance", balance).
		Msg("spin settled")

	return outcome, nil
}
