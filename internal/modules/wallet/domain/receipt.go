package domain

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Receipt describes one applied balance mutation. Receipts are returned to
// the caller and never persisted; a repeated ref is processed again, not
// deduplicated.
type Receipt struct {
	PlayerID string
	Balance  int64
	Delta    int64
	Ref      string
	TxID     string
}

var (
	node *snowflake.Node
	once sync.Once
)

func initSnowflake() {
	var err error
	// TODO: Get NodeID from config or environment variable.
	// Each instance needs a unique NodeID once this runs multi-instance.
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NewTxID generates a fresh transaction identifier
func NewTxID() string {
	once.Do(initSnowflake)
	return node.Generate().String()
}
