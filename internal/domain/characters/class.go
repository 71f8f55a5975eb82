package characters

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownClass = errors.New("unknown character class")

// Class identifies one of the playable character classes.
// Values outside the catalog can only be produced by ParseClass failing.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassArcher  Class = "archer"
	ClassMage    Class = "mage"
)

// Stats are the base values a class starts with.
type Stats struct {
	HP      int
	Attack  int
	Defense int
}

// ClassInfo is a catalog entry: base stats plus the data used to present the class.
type ClassInfo struct {
	Class Class
	Name  string
	Emoji string
	Trait string
	Stats Stats
	// tiers used for the emoji bars on the class list
	HPTier      int
	AttackTier  int
	DefenseTier int
}

// catalog keeps the keyboard order: archer and warrior share the first row, mage has the second.
var catalog = []ClassInfo{
	{
		Class:       ClassArcher,
		Name:        "Archer",
		Emoji:       "🏹",
		Trait:       "High damage, moderate defense",
		Stats:       Stats{HP: 100, Attack: 30, Defense: 8},
		HPTier:      2,
		AttackTier:  3,
		DefenseTier: 1,
	},
	{
		Class:       ClassWarrior,
		Name:        "Warrior",
		Emoji:       "🗡",
		Trait:       "High survivability, medium damage",
		Stats:       Stats{HP: 150, Attack: 25, Defense: 15},
		HPTier:      3,
		AttackTier:  2,
		DefenseTier: 2,
	},
	{
		Class:       ClassMage,
		Name:        "Mage",
		Emoji:       "🔮",
		Trait:       "Maximum damage, low defense",
		Stats:       Stats{HP: 80, Attack: 35, Defense: 5},
		HPTier:      1,
		AttackTier:  4,
		DefenseTier: 1,
	},
}

var byClass = func() map[Class]ClassInfo {
	m := make(map[Class]ClassInfo, len(catalog))
	for _, info := range catalog {
		m[info.Class] = info
	}
	return m
}()

// ParseClass converts a raw identifier (a button payload, an option value) into a Class.
func ParseClass(raw string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := byClass[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, raw)
	}
	return c, nil
}

// Classes returns the catalog in presentation order.
func Classes() []ClassInfo {
	out := make([]ClassInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Info returns the catalog entry for c.
func (c Class) Info() ClassInfo {
	return byClass[c]
}

// StatsFor returns the base stats of c.
func StatsFor(c Class) Stats {
	return byClass[c].Stats
}

func (c Class) Valid() bool {
	_, ok := byClass[c]
	return ok
}

// Label is the emoji plus display name, e.g. "🗡 Warrior".
func (c Class) Label() string {
	return c.Info().Label()
}

func (i ClassInfo) Label() string {
	return i.Emoji + " " + i.Name
}

func (c Class) String() string {
	return string(c)
}
