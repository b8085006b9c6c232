package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewPlayerRepository()
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Player{PlayerID: "alice", Role: domain.RolePlayer, Balance: 10000})
	require.NoError(t, err)

	player, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), player.Balance)
	assert.False(t, player.CreatedAt.IsZero())

	_, err = repo.Get(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	err = repo.Create(ctx, &domain.Player{PlayerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrPlayerExists)
}

func TestGetReturnsACopy(t *testing.T) {
	repo := NewPlayerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Player{PlayerID: "alice", Balance: 100}))

	player, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	player.Balance = 999999

	player, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), player.Balance, "mutating a returned record must not affect the store")
}

func TestAdjust(t *testing.T) {
	repo := NewPlayerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Player{PlayerID: "alice", Balance: 100}))

	balance, err := repo.Adjust(ctx, "alice", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), balance)

	balance, err = repo.Adjust(ctx, "alice", -150)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	_, err = repo.Adjust(ctx, "alice", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = repo.Adjust(ctx, "ghost", 10)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestSettleSpinIsAllOrNothing(t *testing.T) {
	repo := NewPlayerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Player{PlayerID: "alice", Balance: 100}))

	balance, err := repo.SettleSpin(ctx, "alice", 100, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	// Bet over balance is refused regardless of win
	_, err = repo.SettleSpin(ctx, "alice", 501, 10000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	player, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(500), player.Balance)
}

func TestBalanceCacheTTL(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	now := time.Now()
	cache.now = func() time.Time { return now }

	ctx := context.Background()

	_, hit, err := cache.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "alice", 10000))

	balance, hit, err := cache.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(10000), balance)

	// Entry expires once the TTL elapses and is evicted by the read
	now = now.Add(31 * time.Second)
	_, hit, err = cache.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, cache.entries)
}

func TestBalanceCacheInvalidate(t *testing.T) {
	cache := NewBalanceCache(30 * time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "alice", 10000))
	require.NoError(t, cache.Invalidate(ctx, "alice"))

	_, hit, err := cache.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, hit)
}
