package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// isoLayout is fixed width so that lexicographic order of two stamps matches
// chronological order; getItems and searchItems sort on the raw string.
const isoLayout = "2006-01-02T15:04:05.000000Z"

// NowISO returns the current UTC time in the item/conversation stamp format.
func NowISO() string {
	return time.Now().UTC().Format(isoLayout)
}

// ISOFromTime formats an arbitrary time in the same fixed-width layout.
func ISOFromTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Item is a schema-less lost/found report. Reports are persisted exactly as
// submitted plus the server-stamped fields, so a map keeps client fields that
// a struct would silently drop.
type Item map[string]interface{}

// CreatedAt returns the created_at stamp, or "" when absent.
func (i Item) CreatedAt() string {
	s, _ := i["created_at"].(string)
	return s
}

// ItemFromDocument converts a raw store document into an API item: the
// ObjectID moves to "id" as hex and the source collection is tagged on.
func ItemFromDocument(doc bson.M, collection string) Item {
	item := make(Item, len(doc)+1)
	for k, v := range doc {
		item[k] = v
	}
	if oid, ok := item["_id"].(primitive.ObjectID); ok {
		item["id"] = oid.Hex()
		delete(item, "_id")
	}
	item["_collection"] = collection
	return item
}

// SubmitResponse acknowledges a stored document
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
