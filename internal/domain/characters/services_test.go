package characters_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/internal/domain/characters/mock"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func Test_service_Register(t *testing.T) {
	tests := []struct {
		name  string
		class characters.Class
		want  characters.Character
	}{
		{
			name:  "Warrior",
			class: characters.ClassWarrior,
			want: characters.Character{
				UserID: 42, Username: "alice", Class: characters.ClassWarrior,
				Level: 1, HP: 150, MaxHP: 150, Attack: 25, Defense: 15, CreatedAt: fixedNow,
			},
		},
		{
			name:  "Archer",
			class: characters.ClassArcher,
			want: characters.Character{
				UserID: 42, Username: "alice", Class: characters.ClassArcher,
				Level: 1, HP: 100, MaxHP: 100, Attack: 30, Defense: 8, CreatedAt: fixedNow,
			},
		},
		{
			name:  "Mage",
			class: characters.ClassMage,
			want: characters.Character{
				UserID: 42, Username: "alice", Class: characters.ClassMage,
				Level: 1, HP: 80, MaxHP: 80, Attack: 35, Defense: 5, CreatedAt: fixedNow,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			var stored *characters.Character
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, c *characters.Character) error {
					stored = c
					return nil
				})

			s := characters.NewService(repo, characters.WithClock(clock))
			got, err := s.Register(context.Background(), 42, "alice", tt.class)
			if err != nil {
				t.Fatalf("service.Register() error = %v", err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("service.Register() got = %+v, want %+v", *got, tt.want)
			}
			if stored != got {
				t.Errorf("service.Register() did not persist the returned character")
			}

			stats := characters.StatsFor(tt.class)
			if got.HP != got.MaxHP || got.MaxHP != stats.HP || got.Attack != stats.Attack || got.Defense != stats.Defense {
				t.Errorf("stats not copied from catalog: %+v vs %+v", got, stats)
			}
		})
	}
}

func Test_service_Register_Duplicate(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	existing := characters.NewCharacter(42, "alice", characters.ClassMage, fixedNow.Add(-time.Hour))

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(characters.ErrAlreadyRegistered)
	repo.EXPECT().
		Get(gomock.Any(), snowflake.ID(42)).
		Return(existing, nil)

	s := characters.NewService(repo, characters.WithClock(clock))
	got, err := s.Register(context.Background(), 42, "alice", characters.ClassWarrior)
	if !errors.Is(err, characters.ErrAlreadyRegistered) {
		t.Fatalf("service.Register() error = %v, want ErrAlreadyRegistered", err)
	}
	if got != existing {
		t.Errorf("service.Register() got = %+v, want the stored character", got)
	}
	if got.Class != characters.ClassMage {
		t.Errorf("stored class changed to %s", got.Class)
	}
}

func Test_service_Register_StoreFailure(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	boom := errors.New("disk full")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

	s := characters.NewService(repo)
	if _, err := s.Register(context.Background(), 7, "bob", characters.ClassArcher); !errors.Is(err, boom) {
		t.Fatalf("service.Register() error = %v, want wrapped %v", err, boom)
	}
}

func Test_service_Register_InvalidClass(t *testing.T) {
	// no expectations: the store must not be touched
	repo := mock.NewMockRepository(gomock.NewController(t))

	s := characters.NewService(repo)
	if _, err := s.Register(context.Background(), 7, "bob", characters.Class("paladin")); !errors.Is(err, characters.ErrUnknownClass) {
		t.Fatalf("service.Register() error = %v, want ErrUnknownClass", err)
	}
}

func Test_service_Profile(t *testing.T) {
	stored := characters.NewCharacter(42, "alice", characters.ClassWarrior, fixedNow)

	tests := []struct {
		name    string
		setup   func(repo *mock.MockRepository)
		want    *characters.Character
		wantErr error
	}{
		{
			name: "Unregistered",
			setup: func(repo *mock.MockRepository) {
				// Get is deliberately not expected
				repo.EXPECT().Exists(gomock.Any(), snowflake.ID(42)).Return(false, nil)
			},
			wantErr: characters.ErrNotRegistered,
		},
		{
			name: "Registered",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Exists(gomock.Any(), snowflake.ID(42)).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), snowflake.ID(42)).Return(stored, nil)
			},
			want: stored,
		},
		{
			name: "Vanished between calls",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Exists(gomock.Any(), snowflake.ID(42)).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), snowflake.ID(42)).Return(nil, characters.ErrNotFound)
			},
			wantErr: characters.ErrNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			tt.setup(repo)

			got, err := characters.NewService(repo).Profile(context.Background(), 42)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("service.Profile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("service.Profile() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_service_State(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		want   characters.RegistrationState
	}{
		{name: "Unregistered", exists: false, want: characters.StateUnregistered},
		{name: "Registered", exists: true, want: characters.StateRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			repo.EXPECT().Exists(gomock.Any(), snowflake.ID(1)).Return(tt.exists, nil)

			got, err := characters.NewService(repo).State(context.Background(), 1)
			if err != nil {
				t.Fatalf("service.State() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("service.State() = %v, want %v", got, tt.want)
			}
		})
	}
}
