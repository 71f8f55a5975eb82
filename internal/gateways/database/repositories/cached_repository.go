package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
)

// cachedRepository serves reads of registered characters from memory.
// Characters are never updated or deleted, so entries are never invalidated.
// Misses on Exists are not cached: the user may register at any moment.
type cachedRepository struct {
	next  characters.Repository
	cache *lru.Cache
}

func NewCachedRepository(next characters.Repository, size int) (characters.Repository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create character cache: %w", err)
	}
	return &cachedRepository{next: next, cache: cache}, nil
}

func (r *cachedRepository) Exists(ctx context.Context, userID snowflake.ID) (bool, error) {
	if r.cache.Contains(userID) {
		return true, nil
	}
	return r.next.Exists(ctx, userID)
}

func (r *cachedRepository) Create(ctx context.Context, character *characters.Character) error {
	if err := r.next.Create(ctx, character); err != nil {
		return err
	}
	stored := *character
	r.cache.Add(character.UserID, &stored)
	return nil
}

func (r *cachedRepository) Get(ctx context.Context, userID snowflake.ID) (*characters.Character, error) {
	if v, ok := r.cache.Get(userID); ok {
		slog.Debug("Character cache hit",
			slog.String("type", "db"),
			slog.String("user_id", userID.String()))
		c := *v.(*characters.Character)
		return &c, nil
	}

	character, err := r.next.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	stored := *character
	r.cache.Add(userID, &stored)
	return character, nil
}
