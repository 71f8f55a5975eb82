package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
)

func TestDocumentRoundTrip(t *testing.T) {
	want := characters.NewCharacter(42, "alice", characters.ClassWarrior, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	raw, err := bson.Marshal(toDocument(want))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var id struct {
		ID int64 `bson:"_id"`
	}
	if err := bson.Unmarshal(raw, &id); err != nil {
		t.Fatalf("unmarshal id: %v", err)
	}
	if id.ID != 42 {
		t.Errorf("_id = %d, want 42", id.ID)
	}

	var doc characterDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt = want.CreatedAt
	if *got != *want {
		t.Errorf("got %+v, want %+v", *got, *want)
	}
}

func TestFromDocumentRejectsUnknownClass(t *testing.T) {
	_, err := fromDocument(characterDocument{UserID: 1, CharacterClass: "bard"})
	if !errors.Is(err, characters.ErrUnknownClass) {
		t.Fatalf("err = %v, want ErrUnknownClass", err)
	}
}

func TestConnectRequiresURI(t *testing.T) {
	if _, err := Connect(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty uri")
	}
}
