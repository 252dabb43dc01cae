package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/lost-and-found-api/models"
)

func TestISOFromTimeLexicographicOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC)

	// stamps are fixed width, so string order must match time order even
	// when sub-second digits would otherwise be trimmed
	earlier := models.ISOFromTime(base)
	later := models.ISOFromTime(base.Add(20 * time.Millisecond))

	assert.Len(t, earlier, len(later))
	assert.True(t, earlier < later, "expected %q < %q", earlier, later)
}

func TestItemFromDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id":        oid,
		"item_title": "Wallet",
		"status":     "lost",
	}

	item := models.ItemFromDocument(doc, "items_lost")

	assert.Equal(t, oid.Hex(), item["id"])
	assert.Equal(t, "items_lost", item["_collection"])
	assert.Equal(t, "Wallet", item["item_title"])
	assert.NotContains(t, item, "_id")

	// the source document is left untouched
	assert.Equal(t, oid, doc["_id"])
	assert.NotContains(t, doc, "_collection")
}

func TestItemCreatedAt(t *testing.T) {
	item := models.Item{"created_at": "2024-05-01T10:00:00.000000Z"}
	assert.Equal(t, "2024-05-01T10:00:00.000000Z", item.CreatedAt())

	assert.Empty(t, models.Item{}.CreatedAt())
	assert.Empty(t, models.Item{"created_at": 12345}.CreatedAt())
}
