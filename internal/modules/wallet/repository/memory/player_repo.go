// Package memory provides in-memory wallet repositories. Used for tests and
// single-node development runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
)

type playerEntry struct {
	mu     sync.Mutex
	player domain.Player
}

// PlayerRepository implements domain.BalanceStore in memory. Each player has
// its own lock, so mutations on the same player serialize while different
// players never contend.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]*playerEntry
}

// NewPlayerRepository creates a new memory player repository
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]*playerEntry),
	}
}

// Get retrieves a player by player ID
func (r *PlayerRepository) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	entry, ok := r.lookup(playerID)
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	p := entry.player
	return &p, nil
}

// Create inserts a new player record
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[player.PlayerID]; exists {
		return domain.ErrPlayerExists
	}

	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now
	r.players[player.PlayerID] = &playerEntry{player: *player}
	return nil
}

// Adjust applies balance += delta under the player's lock
func (r *PlayerRepository) Adjust(ctx context.Context, playerID string, delta int64) (int64, error) {
	entry, ok := r.lookup(playerID)
	if !ok {
		return 0, domain.ErrPlayerNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.player.Balance+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	entry.player.Balance += delta
	entry.player.UpdatedAt = time.Now()
	return entry.player.Balance, nil
}

// SettleSpin debits bet and credits win while holding the player's lock, so
// the whole spin settlement is one atomic step.
func (r *PlayerRepository) SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error) {
	entry, ok := r.lookup(playerID)
	if !ok {
		return 0, domain.ErrPlayerNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.player.Balance < bet {
		return 0, domain.ErrInsufficientFunds
	}
	entry.player.Balance += win - bet
	entry.player.UpdatedAt = time.Now()
	return entry.player.Balance, nil
}

func (r *PlayerRepository) lookup(playerID string) (*playerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.players[playerID]
	return entry, ok
}
