package characters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

var ErrNotRegistered = errors.New("user is not registered")

type Service interface {
	State(ctx context.Context, userID snowflake.ID) (RegistrationState, error)
	Register(ctx context.Context, userID snowflake.ID, username string, class Class) (*Character, error)
	Profile(ctx context.Context, userID snowflake.ID) (*Character, error)
}

type service struct {
	repository Repository
	now        func() time.Time
}

type ServiceOpt func(*service)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) ServiceOpt {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repository Repository, opts ...ServiceOpt) *service {
	s := &service{
		repository: repository,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) State(ctx context.Context, userID snowflake.ID) (RegistrationState, error) {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return StateUnregistered, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return StateRegistered, nil
	}
	return StateUnregistered, nil
}

// Register moves a user from StateUnregistered to StateRegistered.
// For a user that is already registered it returns the stored character and ErrAlreadyRegistered;
// the stored row is left untouched.
func (s *service) Register(ctx context.Context, userID snowflake.ID, username string, class Class) (*Character, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, string(class))
	}

	character := NewCharacter(userID, username, class, s.now())
	err := s.repository.Create(ctx, character)
	if errors.Is(err, ErrAlreadyRegistered) {
		slog.Warn("Duplicate registration ignored",
			slog.String("type", "cmd"),
			slog.String("user_id", userID.String()),
			slog.String("class", class.String()))

		existing, getErr := s.repository.Get(ctx, userID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to load existing character: %w", getErr)
		}
		return existing, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	slog.Info("Character registered",
		slog.String("type", "cmd"),
		slog.String("user_id", userID.String()),
		slog.String("user_name", username),
		slog.String("class", class.String()))
	return character, nil
}

// Profile never reads a row for an unregistered user.
func (s *service) Profile(ctx context.Context, userID snowflake.ID) (*Character, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == StateUnregistered {
		return nil, ErrNotRegistered
	}

	character, err := s.repository.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	return character, nil
}
