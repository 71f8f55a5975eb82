package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/internal/domain/logger"
	"github.com/ellavondegurechaff/gorpg/internal/gateways/database/models"
)

const pgUniqueViolation = "23505"

type characterRepository struct {
	db *bun.DB
}

func NewCharacterRepository(db *bun.DB) characters.Repository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Exists(ctx context.Context, userID snowflake.ID) (bool, error) {
	ql := logger.NewQueryLogger("bun", "Exists", userID.String())

	exists, err := r.db.NewSelect().
		Model((*models.Character)(nil)).
		Where("user_id = ?", int64(userID)).
		Exists(ctx)
	ql.Log(err)
	return exists, err
}

func (r *characterRepository) Create(ctx context.Context, character *characters.Character) error {
	ql := logger.NewQueryLogger("bun", "Create", character.UserID.String(), character.Class.String())

	row := toModel(character)
	_, err := r.db.NewInsert().Model(row).Exec(ctx)
	if isUniqueViolation(err) {
		err = characters.ErrAlreadyRegistered
	}
	ql.Log(err, characters.ErrAlreadyRegistered)
	return err
}

func (r *characterRepository) Get(ctx context.Context, userID snowflake.ID) (*characters.Character, error) {
	ql := logger.NewQueryLogger("bun", "Get", userID.String())

	row := new(models.Character)
	err := r.db.NewSelect().
		Model(row).
		Where("user_id = ?", int64(userID)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = characters.ErrNotFound
	}
	ql.Log(err, characters.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return fromModel(row)
}

func toModel(c *characters.Character) *models.Character {
	return &models.Character{
		UserID:         int64(c.UserID),
		Username:       c.Username,
		CharacterClass: c.Class.String(),
		Level:          c.Level,
		HP:             c.HP,
		MaxHP:          c.MaxHP,
		Attack:         c.Attack,
		Defense:        c.Defense,
		Gold:           c.Gold,
		Exp:            c.Exp,
		CreatedAt:      c.CreatedAt,
	}
}

func fromModel(row *models.Character) (*characters.Character, error) {
	class, err := characters.ParseClass(row.CharacterClass)
	if err != nil {
		return nil, err
	}
	return &characters.Character{
		UserID:    snowflake.ID(row.UserID),
		Username:  row.Username,
		Class:     class,
		Level:     row.Level,
		HP:        row.HP,
		MaxHP:     row.MaxHP,
		Attack:    row.Attack,
		Defense:   row.Defense,
		Gold:      row.Gold,
		Exp:       row.Exp,
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value")
}
