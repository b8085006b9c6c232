package service

import "context"

// SpinResult is the payload of a completed spin
type SpinResult struct {
	Reels   []string `json:"reels"`
	Bet     int64    `json:"bet"`
	Win     int64    `json:"win"`
	Balance int64    `json:"balance"`
	RoundID string   `json:"roundId"`
}

// SlotConfig is the public game configuration
type SlotConfig struct {
	MinBet   int64    `json:"minBet"`
	MaxBet   int64    `json:"maxBet"`
	Symbols  []string `json:"symbols"`
	Paylines int      `json:"paylines"`
	Reels    int      `json:"reels"`
}

// SlotService defines slot game operations exposed to transport adapters
type SlotService interface {
	// Spin wagers bet for one round and returns the outcome. The balance
	// effect is all-or-nothing: a lost round debits the bet, a won round
	// debits the bet and credits the win in the same operation.
	Spin(ctx context.Context, playerID string, bet int64) (*SpinResult, error)
	// Config returns the game constants for clients
	Config() SlotConfig
}
