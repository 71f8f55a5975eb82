package models

import (
	"time"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
)

// CharacterResponse is the read-only API view of a character.
type CharacterResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Class     string    `json:"class"`
	Level     int       `json:"level"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"max_hp"`
	Attack    int       `json:"attack"`
	Defense   int       `json:"defense"`
	Gold      int       `json:"gold"`
	Exp       int       `json:"exp"`
	ExpCap    int       `json:"exp_cap"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCharacterResponse(c *characters.Character) CharacterResponse {
	return CharacterResponse{
		UserID:    c.UserID.String(),
		Username:  c.Username,
		Class:     c.Class.String(),
		Level:     c.Level,
		HP:        c.HP,
		MaxHP:     c.MaxHP,
		Attack:    c.Attack,
		Defense:   c.Defense,
		Gold:      c.Gold,
		Exp:       c.Exp,
		ExpCap:    characters.ExpPerLevel,
		CreatedAt: c.CreatedAt,
	}
}
