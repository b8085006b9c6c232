package domain

import "errors"

// Wallet errors. Adapters dispatch on these with errors.Is; the wallet never
// retries internally.
var (
	// ErrPlayerNotFound means the player has never been created
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerExists means the player identifier is already taken
	ErrPlayerExists = errors.New("player already exists")
	// ErrInsufficientFunds means a debit would take the balance negative.
	// The store applies no change.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrInvalidAmount means the caller passed a non-positive amount
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrStoreUnavailable means the store did not answer within the deadline.
	// Safe for callers to retry; no partial effect was applied.
	ErrStoreUnavailable = errors.New("balance store unavailable")
)
