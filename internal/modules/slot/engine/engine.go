// Package engine implements the stateless spin outcome generator and payout
// calculator for the three-reel slot game.
package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source for reel draws. Pluggable so tests can
// inject a deterministic sequence; quality does not need to be cryptographic.
type Rand interface {
	Intn(n int) int
}

// Config is the fixed game configuration. Paylines and Reels are reported to
// clients but only Reels drives outcome logic.
type Config struct {
	MinBet            int64
	MaxBet            int64
	Symbols           []string
	Paylines          int
	Reels             int
	Multipliers       map[string]int64
	DefaultMultiplier int64
}

// DefaultConfig returns the standard game setup with the given bet bounds
func DefaultConfig(minBet, maxBet int64) Config {
	return Config{
		MinBet:   minBet,
		MaxBet:   maxBet,
		Symbols:  []string{"🍒", "🍋", "🍇", "💎", "7️⃣"},
		Paylines: 5,
		Reels:    3,
		Multipliers: map[string]int64{
			"🍒":  10,
			"🍋":  15,
			"🍇":  20,
			"💎":  50,
			"7️⃣": 100,
		},
		DefaultMultiplier: 10,
	}
}

// Engine draws spin outcomes and computes payouts
type Engine struct {
	cfg Config
	mu  sync.Mutex
	rnd Rand
}

// New creates an engine with a time-seeded randomness source
func New(cfg Config) *Engine {
	return NewWithRand(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates an engine with an injected randomness source
func NewWithRand(cfg Config, rnd Rand) *Engine {
	return &Engine{
		cfg: cfg,
		rnd: rnd,
	}
}

// Config returns a copy of the game configuration. Symbols and Multipliers
// are copied too, so callers cannot mutate the game constants.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Symbols = append([]string(nil), e.cfg.Symbols...)
	cfg.Multipliers = make(map[string]int64, len(e.cfg.Multipliers))
	for symbol, multiplier := range e.cfg.Multipliers {
		cfg.Multipliers[symbol] = multiplier
	}
	return cfg
}

// Draw returns one symbol per reel, each an independent uniform pick from
// the alphabet with replacement.
func (e *Engine) Draw() []string {
	// math/rand sources are not safe for concurrent use
	e.mu.Lock()
	defer e.mu.Unlock()

	reels := make([]string, e.cfg.Reels)
	for i := range reels {
		reels[i] = e.cfg.Symbols[e.rnd.Intn(len(e.cfg.Symbols))]
	}
	return reels
}

// Payout returns bet times the matched symbol's multiplier when every reel
// shows the same symbol, zero otherwise. Symbols missing from the multiplier
// table pay the default multiplier.
func (e *Engine) Payout(reels []string, bet int64) int64 {
	if len(reels) == 0 {
		return 0
	}
	first := reels[0]
	for _, s := range reels[1:] {
		if s != first {
			return 0
		}
	}

	multiplier, ok := e.cfg.Multipliers[first]
	if !ok {
		multiplier = e.cfg.DefaultMultiplier
	}
	return bet * multiplier
}
