// Package mongostore keeps characters in a MongoDB collection, one document per user id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/internal/domain/logger"
)

const (
	defaultDatabase   = "rpg"
	defaultCollection = "characters"
	connectTimeout    = 10 * time.Second
)

// characterDocument uses the user id as _id so the collection's primary index enforces one character per user.
type characterDocument struct {
	UserID         int64     `bson:"_id"`
	Username       string    `bson:"username"`
	CharacterClass string    `bson:"character_class"`
	Level          int       `bson:"level"`
	HP             int       `bson:"hp"`
	MaxHP          int       `bson:"max_hp"`
	Attack         int       `bson:"attack"`
	Defense        int       `bson:"defense"`
	Gold           int       `bson:"gold"`
	Exp            int       `bson:"exp"`
	CreatedAt      time.Time `bson:"created_at"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect dials uri and returns a store over database.characters.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongo driver requires a uri")
	}
	if database == "" {
		database = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo server unreachable: %w", err)
	}

	slog.Info("MongoDB connected",
		slog.String("type", "db"),
		slog.String("database", database))

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(defaultCollection),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Exists(ctx context.Context, userID snowflake.ID) (bool, error) {
	ql := logger.NewQueryLogger("mongo", "Exists", userID.String())

	n, err := s.collection.CountDocuments(ctx, bson.M{"_id": int64(userID)}, options.Count().SetLimit(1))
	ql.Log(err)
	return n > 0, err
}

func (s *Store) Create(ctx context.Context, character *characters.Character) error {
	ql := logger.NewQueryLogger("mongo", "Create", character.UserID.String(), character.Class.String())

	_, err := s.collection.InsertOne(ctx, toDocument(character))
	if mongo.IsDuplicateKeyError(err) {
		err = characters.ErrAlreadyRegistered
	}
	ql.Log(err, characters.ErrAlreadyRegistered)
	return err
}

func (s *Store) Get(ctx context.Context, userID snowflake.ID) (*characters.Character, error) {
	ql := logger.NewQueryLogger("mongo", "Get", userID.String())

	var doc characterDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": int64(userID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = characters.ErrNotFound
	}
	ql.Log(err, characters.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func toDocument(c *characters.Character) characterDocument {
	return characterDocument{
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

func fromDocument(doc characterDocument) (*characters.Character, error) {
	class, err := characters.ParseClass(doc.CharacterClass)
	if err != nil {
		return nil, err
	}
	return &characters.Character{
		UserID:    snowflake.ID(doc.UserID),
		Username:  doc.Username,
		Class:     class,
		Level:     doc.Level,
		HP:        doc.HP,
		MaxHP:     doc.MaxHP,
		Attack:    doc.Attack,
		Defense:   doc.Defense,
		Gold:      doc.Gold,
		Exp:       doc.Exp,
		CreatedAt: doc.CreatedAt,
	}, nil
}

var _ characters.Repository = (*Store)(nil)
