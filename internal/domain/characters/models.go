package characters

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ExpPerLevel is the experience shown as the cap of one level. Nothing enforces it.
const ExpPerLevel = 100

type Character struct {
	UserID    snowflake.ID
	Username  string
	Class     Class
	Level     int
	HP        int
	MaxHP     int
	Attack    int
	Defense   int
	Gold      int
	Exp       int
	CreatedAt time.Time
}

// RegistrationState is derived from whether a character row exists.
//
//	StateUnregistered --(class selection)--> StateRegistered
//
// There is no other transition; a registered character is never removed.
type RegistrationState int

const (
	StateUnregistered RegistrationState = iota
	StateRegistered
)

func (s RegistrationState) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	default:
		return "unregistered"
	}
}

// NewCharacter builds a level 1 character from the class template.
func NewCharacter(userID snowflake.ID, username string, class Class, now time.Time) *Character {
	stats := StatsFor(class)
	return &Character{
		UserID:    userID,
		Username:  username,
		Class:     class,
		Level:     1,
		HP:        stats.HP,
		MaxHP:     stats.HP,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
		Gold:      0,
		Exp:       0,
		CreatedAt: now,
	}
}
