package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Character is the row of a registered player. The table keeps its historical name.
type Character struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID         int64     `bun:"user_id,pk"`
	Username       string    `bun:"username"`
	CharacterClass string    `bun:"character_class,notnull"`
	Level          int       `bun:"level,notnull,default:1"`
	HP             int       `bun:"hp,notnull"`
	MaxHP          int       `bun:"max_hp,notnull"`
	Attack         int       `bun:"attack,notnull"`
	Defense        int       `bun:"defense,notnull"`
	Gold           int       `bun:"gold,notnull,default:0"`
	Exp            int       `bun:"exp,notnull,default:0"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}
