package service

import "context"

// Balance sources
const (
	SourceCache = "cache"
	SourceStore = "store"
)

// BalanceResult is the payload of a balance query
type BalanceResult struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
	Source   string `json:"source"`
}

// Receipt is the payload of a completed credit or debit
type Receipt struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
	Delta    int64  `json:"delta"`
	Ref      string `json:"ref"`
	TxID     string `json:"txId"`
}

// WalletService defines wallet operations exposed to transport adapters and
// other modules. Both the REST API and the gateway consume this contract.
type WalletService interface {
	// Balance returns the player's balance, served from cache when fresh
	Balance(ctx context.Context, playerID string) (*BalanceResult, error)
	// Credit adds amount to the player's balance. Amount must be positive.
	// An empty ref is replaced with a generated one.
	Credit(ctx context.Context, playerID string, amount int64, ref string) (*Receipt, error)
	// Debit subtracts amount from the player's balance, refusing to go negative
	Debit(ctx context.Context, playerID string, amount int64, ref string) (*Receipt, error)
}
