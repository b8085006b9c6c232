// Package usecase implements the wallet business logic: balance reads through
// the cache, and credit/debit/settle mutations against the balance store.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/billyz31/slot_arcade/internal/config"
	"github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/billyz31/slot_arcade/pkg/service"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// WalletUseCase orchestrates balance operations. All mutations go through the
// store's atomic primitives; the cache is only ever read for plain balance
// queries and is invalidated before any mutation result is returned.
type WalletUseCase struct {
	store domain.BalanceStore
	cache domain.BalanceCache
	cfg   config.WalletConfig
	group singleflight.Group
}

// NewWalletUseCase creates a new wallet use case
func NewWalletUseCase(store domain.BalanceStore, cache domain.BalanceCache, cfg config.WalletConfig) *WalletUseCase {
	return &WalletUseCase{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Balance returns the player's balance and where it came from. Cache misses
// for the same player are collapsed into a single store read.
func (uc *WalletUseCase) Balance(ctx context.Context, playerID string) (int64, string, error) {
	balance, hit, err := uc.cache.Get(ctx, playerID)
	if err != nil {
		// A broken cache only degrades reads to the store
		logger.Warn(ctx).Err(err).Str("player_id", playerID).Msg("balance cache read failed")
	}
	if hit {
		return balance, service.SourceCache, nil
	}

	v, err, _ := uc.group.Do(playerID, func() (interface{}, error) {
		storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
		defer cancel()

		player, err := uc.store.Get(storeCtx, playerID)
		if err != nil {
			return nil, uc.mapStoreErr(err)
		}

		if err := uc.cache.Set(ctx, playerID, player.Balance); err != nil {
			logger.Warn(ctx).Err(err).Str("player_id", playerID).Msg("balance cache populate failed")
		}
		return player.Balance, nil
	})
	if err != nil {
		return 0, "", err
	}
	return v.(int64), service.SourceStore, nil
}

// Credit adds amount to the player's balance and returns a receipt
func (uc *WalletUseCase) Credit(ctx context.Context, playerID string, amount int64, ref string) (*domain.Receipt, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return uc.applyAdjust(ctx, playerID, amount, ref)
}

// Debit subtracts amount from the player's balance and returns a receipt.
// The store refuses the debit if it would take the balance negative.
func (uc *WalletUseCase) Debit(ctx context.Context, playerID string, amount int64, ref string) (*domain.Receipt, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	return uc.applyAdjust(ctx, playerID, -amount, ref)
}

func (uc *WalletUseCase) applyAdjust(ctx context.Context, playerID string, delta int64, ref string) (*domain.Receipt, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
	defer cancel()

	newBalance, err := uc.store.Adjust(storeCtx, playerID, delta)
	if err != nil {
		return nil, uc.mapStoreErr(err)
	}

	uc.invalidate(ctx, playerID)

	if ref == "" {
		ref = uuid.NewString()
	}

	logger.Info(ctx).
		Str("player_id", playerID).
		Int64("delta", delta).
		Int64("balance", newBalance).
		Str("ref", ref).
		Msg("balance adjusted")

	return &domain.Receipt{
		PlayerID: playerID,
		Balance:  newBalance,
		Delta:    delta,
		Ref:      ref,
		TxID:     domain.NewTxID(),
	}, nil
}

// SettleSpin applies a spin's whole balance effect (debit bet, credit win) as
// one atomic store operation. Once the store commits there is nothing left to
// roll back, so a spin can never leave a bet deducted with winnings unpaid.
func (uc *WalletUseCase) SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error) {
	if bet <= 0 || win < 0 {
		return 0, domain.ErrInvalidAmount
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
	defer cancel()

	newBalance, err := uc.store.SettleSpin(storeCtx, playerID, bet, win)
	if err != nil {
		return 0, uc.mapStoreErr(err)
	}

	uc.invalidate(ctx, playerID)

	return newBalance, nil
}

// Player returns the player record without creating it
func (uc *WalletUseCase) Player(ctx context.Context, playerID string) (*domain.Player, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
	defer cancel()

	player, err := uc.store.Get(storeCtx, playerID)
	if err != nil {
		return nil, uc.mapStoreErr(err)
	}
	return player, nil
}

// EnsurePlayer returns the player record, creating it with the starting
// balance on first sight. Concurrent first logins race on Create; the loser
// fetches the winner's record.
func (uc *WalletUseCase) EnsurePlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
	defer cancel()

	player, err := uc.store.Get(storeCtx, playerID)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, uc.mapStoreErr(err)
	}

	player = &domain.Player{
		PlayerID: playerID,
		Role:     domain.RolePlayer,
		Balance:  uc.cfg.StartingBalance,
	}
	err = uc.store.Create(storeCtx, player)
	if err == nil {
		logger.Info(ctx).
			Str("player_id", playerID).
			Int64("balance", player.Balance).
			Msg("player created on first login")
		return player, nil
	}
	if errors.Is(err, domain.ErrPlayerExists) {
		return uc.store.Get(storeCtx, playerID)
	}
	return nil, uc.mapStoreErr(err)
}

// invalidate drops the cached balance so the next read is store-fresh. Called
// synchronously before any mutation result is returned.
func (uc *WalletUseCase) invalidate(ctx context.Context, playerID string) {
	if err := uc.cache.Invalidate(ctx, playerID); err != nil {
		logger.Error(ctx).Err(err).Str("player_id", playerID).Msg("balance cache invalidation failed")
	}
}

// mapStoreErr passes business rejections through untouched and folds every
// infrastructure failure (timeouts included) into ErrStoreUnavailable, which
// callers may retry.
func (uc *WalletUseCase) mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPlayerNotFound) ||
		errors.Is(err, domain.ErrPlayerExists) ||
		errors.Is(err, domain.ErrInsufficientFunds) {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
}
