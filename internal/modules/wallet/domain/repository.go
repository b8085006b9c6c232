package domain

import "context"

// BalanceStore is the authoritative, durable record of player balances.
// Adjust and SettleSpin are the only mutation paths and each one is a single
// serializable operation per player: the read-check-write never runs as a
// separate read followed by a separate write.
type BalanceStore interface {
	// Get returns the player record, or ErrPlayerNotFound
	Get(ctx context.Context, playerID string) (*Player, error)
	// Create inserts a new player, or ErrPlayerExists if the ID is taken
	Create(ctx context.Context, player *Player) error
	// Adjust atomically applies balance += delta. A negative delta that
	// would take the balance below zero fails with ErrInsufficientFunds
	// and applies no change. Returns the new balance.
	Adjust(ctx context.Context, playerID string, delta int64) (int64, error)
	// SettleSpin atomically debits bet and credits win in one transaction,
	// so a spin's balance effect is all-or-nothing. The debit authorizes
	// against the pre-spin balance: it fails with ErrInsufficientFunds when
	// balance < bet even if win would cover it. Returns the new balance.
	SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error)
}

// BalanceCache is a TTL-bounded read overlay in front of the BalanceStore.
// It serves plain balance queries only and is never consulted to authorize
// a debit.
type BalanceCache interface {
	// Get returns the cached balance and whether an unexpired entry existed
	Get(ctx context.Context, playerID string) (int64, bool, error)
	// Set stores the balance with the cache's TTL
	Set(ctx context.Context, playerID string, balance int64) error
	// Invalidate removes the entry so the next read hits the store
	Invalidate(ctx context.Context, playerID string) error
}
