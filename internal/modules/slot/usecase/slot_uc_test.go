package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyz31/slot_arcade/internal/config"
	"github.com/billyz31/slot_arcade/internal/modules/slot/domain"
	"github.com/billyz31/slot_arcade/internal/modules/slot/engine"
	walletdomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	walletmemory "github.com/billyz31/slot_arcade/internal/modules/wallet/repository/memory"
	walletusecase "github.com/billyz31/slot_arcade/internal/modules/wallet/usecase"
)

// seqRand replays a fixed sequence of reel picks
type seqRand struct {
	seq []int
	pos int
}

func (r *seqRand) Intn(n int) int {
	v := r.seq[r.pos%len(r.seq)]
	r.pos++
	return v % n
}

// recordingWallet captures settlement calls without a real store
type recordingWallet struct {
	bet, win int64
	calls    int
	balance  int64
	err      error
}

func (w *recordingWallet) SettleSpin(ctx context.Context, playerID string, bet, win int64) (int64, error) {
	w.calls++
	w.bet, w.win = bet, win
	if w.err != nil {
		return 0, w.err
	}
	return w.balance, nil
}

func newWallet(t *testing.T, playerID string) *walletusecase.WalletUseCase {
	t.Helper()
	cfg := config.WalletConfig{
		CacheTTL:        30 * time.Second,
		StoreTimeout:    time.Second,
		StartingBalance: 10000,
	}
	uc := walletusecase.NewWalletUseCase(walletmemory.NewPlayerRepository(), walletmemory.NewBalanceCache(cfg.CacheTTL), cfg)
	_, err := uc.EnsurePlayer(context.Background(), playerID)
	require.NoError(t, err)
	return uc
}

func TestSpinRejectsOutOfBoundsBets(t *testing.T) {
	wallet := &recordingWallet{}
	uc := NewSlotUseCase(engine.New(engine.DefaultConfig(1, 1000)), wallet)
	ctx := context.Background()

	for _, bet := range []int64{0, -1, 1001} {
		_, err := uc.Spin(ctx, "alice", bet)
		assert.ErrorIs(t, err, domain.ErrInvalidBet)
	}
	assert.Zero(t, wallet.calls, "rejected bets must never reach the wallet")
}

func TestSpinSettlesLossAndWin(t *testing.T) {
	wallet := newWallet(t, "alice")
	ctx := context.Background()

	// First draw loses (three different symbols), second hits cherry triple
	rnd := &seqRand{seq: []int{0, 1, 2, 0, 0, 0}}
	uc := NewSlotUseCase(engine.NewWithRand(engine.DefaultConfig(1, 1000), rnd), wallet)

	outcome, err := uc.Spin(ctx, "alice", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"🍒", "🍋", "🍇"}, outcome.Reels)
	assert.Equal(t, int64(100), outcome.Bet)
	assert.Equal(t, int64(0), outcome.Win)
	assert.Equal(t, int64(9900), outcome.Balance)
	assert.NotEmpty(t, outcome.RoundID)

	outcome, err = uc.Spin(ctx, "alice", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"🍒", "🍒", "🍒"}, outcome.Reels)
	assert.Equal(t, int64(1000), outcome.Win)
	assert.Equal(t, int64(10800), outcome.Balance)
}

func TestSpinRoundIDsAreUnique(t *testing.T) {
	wallet := &recordingWallet{balance: 9900}
	uc := NewSlotUseCase(engine.New(engine.DefaultConfig(1, 1000)), wallet)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		outcome, err := uc.Spin(ctx, "alice", 100)
		require.NoError(t, err)
		if seen[outcome.RoundID] {
			t.Fatalf("duplicate round ID %s", outcome.RoundID)
		}
		seen[outcome.RoundID] = true
	}
}

func TestSpinSurfacesWalletRejections(t *testing.T) {
	wallet := &recordingWallet{err: walletdomain.ErrInsufficientFunds}
	uc := NewSlotUseCase(engine.New(engine.DefaultConfig(1, 1000)), wallet)

	_, err := uc.Spin(context.Background(), "alice", 100)
	assert.ErrorIs(t, err, walletdomain.ErrInsufficientFunds)
}

func TestSpinDrainsBalanceToZero(t *testing.T) {
	wallet := newWallet(t, "alice")
	ctx := context.Background()

	// Always-losing draws
	rnd := &seqRand{seq: []int{0, 1, 2}}
	uc := NewSlotUseCase(engine.NewWithRand(engine.DefaultConfig(1, 1000), rnd), wallet)

	for i := 0; i < 10; i++ {
		_, err := uc.Spin(ctx, "alice", 1000)
		require.NoError(t, err)
	}

	// Balance is zero now; the next spin is refused and changes nothing
	_, err := uc.Spin(ctx, "alice", 1000)
	assert.ErrorIs(t, err, walletdomain.ErrInsufficientFunds)

	balance, _, err := wallet.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
