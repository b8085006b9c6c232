package domain

import "time"

// Player roles. Role is carried as data and in tokens; it does not change
// wallet behavior.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Player represents a player's balance record. PlayerID is the opaque,
// externally-assigned identifier; Balance is in the currency's smallest unit
// and must never go negative.
type Player struct {
	ID        int64     `json:"-" gorm:"primaryKey;column:id;autoIncrement"`
	PlayerID  string    `json:"player_id" gorm:"column:player_id;uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"column:role;not null;default:player"`
	Balance   int64     `json:"balance" gorm:"column:balance;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName sets the players table name for gorm
func (Player) TableName() string {
	return "players"
}
