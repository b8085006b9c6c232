package domain

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// ErrInvalidBet means the bet is outside the configured bounds. Rejected
// before any balance effect.
var ErrInvalidBet = errors.New("invalid bet")

// SpinOutcome is the result of one spin. It exists only for the duration of
// the request and is never persisted.
type SpinOutcome struct {
	Reels   []string
	Bet     int64
	Win     int64
	Balance int64
	RoundID string
}

// NewSpinOutcome builds an outcome with a fresh round identifier
func NewSpinOutcome(reels []string, bet, win, balance int64) *SpinOutcome {
	return &SpinOutcome{
		Reels:   reels,
		Bet:     bet,
		Win:     win,
		Balance: balance,
		RoundID: newRoundID(),
	}
}

var (
	node *snowflake.Node
	once sync.Once
)

func initSnowflake() {
	var err error
	node, err = snowflake.NewNode(2)
	if err != nil {
		panic(err)
	}
}

func newRoundID() string {
	once.Do(initSnowflake)
	return node.Generate().String()
}
