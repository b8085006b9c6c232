// Package db implements the balance store on a relational database via gorm.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"gorm.io/gorm"
)

// PlayerRepository implements domain.BalanceStore using gorm
type PlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new db-backed player repository
func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// AutoMigrate creates the players table
func (r *PlayerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Player{})
}

// Get retrieves a player by player ID
func (r *PlayerRepository) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	var player domain.Player
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// Create inserts a new player record
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrPlayerExists
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// Adjust applies balance += delta as one conditional UPDATE. The guard
// "balance + delta >= 0" makes the read-check-write a single serializable
// statement; there is no window for a concurrent debit to slip through.
func (r *PlayerRepository) Adjust(ctx context.Context, playerID string, delta int64) (int64, error) {
	var newBalance int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Player{}).
			Where("player_id = ? AND balance + ? >= 0", playerID, delta).
			Update("balance", gorm.Expr("balance + ?", delta))
		if res.Error != nil {
			return fmt.Errorf("failed to adjust balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return r.rejectReason(tx, playerID)
		}
		return tx.Model(&domain.Player{}).
			Where("player_id = ?", playerID).
			Pluck("balance", &newBalance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// SettleSpin debits bet and credits win inside one database transaction.
// Either both legs commit or neither does.
func (r *PlayerRepository) SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error) {
	var newBalance int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Player{}).
			Where("player_id = ? AND balance >= ?", playerID, bet).
			Update("balance", gorm.Expr("balance - ?", bet))
		if res.Error != nil {
			return fmt.Errorf("failed to debit bet: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return r.rejectReason(tx, playerID)
		}

		if win > 0 {
			res = tx.Model(&domain.Player{}).
				Where("player_id = ?", playerID).
				Update("balance", gorm.Expr("balance + ?", win))
			if res.Error != nil {
				return fmt.Errorf("failed to credit win: %w", res.Error)
			}
		}

		return tx.Model(&domain.Player{}).
			Where("player_id = ?", playerID).
			Pluck("balance", &newBalance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// rejectReason distinguishes a missing player from a refused debit after a
// conditional update matched no rows.
func (r *PlayerRepository) rejectReason(tx *gorm.DB, playerID string) error {
	var count int64
	if err := tx.Model(&domain.Player{}).Where("player_id = ?", playerID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check player: %w", err)
	}
	if count == 0 {
		return domain.ErrPlayerNotFound
	}
	return domain.ErrInsufficientFunds
}
