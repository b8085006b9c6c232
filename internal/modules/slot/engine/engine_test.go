package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// seqRand replays a fixed sequence of picks
type seqRand struct {
	seq []int
	pos int
}

func (r *seqRand) Intn(n int) int {
	v := r.seq[r.pos%len(r.seq)]
	r.pos++
	return v % n
}

func TestDrawReturnsOneSymbolPerReel(t *testing.T) {
	cfg := DefaultConfig(1, 1000)
	eng := NewWithRand(cfg, &seqRand{seq: []int{0, 1, 2}})

	reels := eng.Draw()

	assert.Len(t, reels, cfg.Reels)
	assert.Equal(t, []string{"🍒", "🍋", "🍇"}, reels)
}

func TestDrawOnlyUsesConfiguredSymbols(t *testing.T) {
	cfg := DefaultConfig(1, 1000)
	eng := New(cfg)

	alphabet := make(map[string]bool)
	for _, s := range cfg.Symbols {
		alphabet[s] = true
	}

	for i := 0; i < 1000; i++ {
		for _, s := range eng.Draw() {
			if !alphabet[s] {
				t.Fatalf("drew symbol %q outside the alphabet", s)
			}
		}
	}
}

func TestPayout(t *testing.T) {
	eng := New(DefaultConfig(1, 1000))

	testCases := []struct {
		name  string
		reels []string
		bet   int64
		want  int64
	}{
		{"cherry triple", []string{"🍒", "🍒", "🍒"}, 10, 100},
		{"lemon triple", []string{"🍋", "🍋", "🍋"}, 10, 150},
		{"grape triple", []string{"🍇", "🍇", "🍇"}, 10, 200},
		{"diamond triple", []string{"💎", "💎", "💎"}, 10, 500},
		{"seven triple", []string{"7️⃣", "7️⃣", "7️⃣"}, 10, 1000},
		{"two of a kind", []string{"🍒", "🍒", "🍋"}, 10, 0},
		{"all different", []string{"🍒", "🍋", "🍇"}, 10, 0},
		{"empty reels", nil, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, eng.Payout(tc.reels, tc.bet))
		})
	}
}

func TestConfigIsImmutableToCallers(t *testing.T) {
	eng := New(DefaultConfig(1, 1000))

	cfg := eng.Config()
	cfg.Symbols[0] = "💣"
	cfg.Multipliers["🍒"] = 0
	cfg.Multipliers["💣"] = 9999

	fresh := eng.Config()
	assert.Equal(t, "🍒", fresh.Symbols[0])
	assert.Equal(t, int64(10), fresh.Multipliers["🍒"])
	assert.NotContains(t, fresh.Multipliers, "💣")

	// Payouts still use the original table
	assert.Equal(t, int64(100), eng.Payout([]string{"🍒", "🍒", "🍒"}, 10))
}

func TestPayoutUnmappedSymbolUsesDefaultMultiplier(t *testing.T) {
	cfg := DefaultConfig(1, 1000)
	cfg.Symbols = append(cfg.Symbols, "⭐")

	eng := New(cfg)

	assert.Equal(t, int64(50), eng.Payout([]string{"⭐", "⭐", "⭐"}, 5))
}
