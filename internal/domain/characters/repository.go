package characters

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

var (
	ErrNotFound          = errors.New("character not found")
	ErrAlreadyRegistered = errors.New("character already registered")
)

// Repository stores at most one Character per user id.
// Create returns ErrAlreadyRegistered when a row for the id exists,
// Get returns ErrNotFound when it does not.
type Repository interface {
	Exists(ctx context.Context, userID snowflake.ID) (bool, error)
	Create(ctx context.Context, character *Character) error
	Get(ctx context.Context, userID snowflake.ID) (*Character, error)
}
