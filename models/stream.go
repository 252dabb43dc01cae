package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Change kinds emitted on the message stream
const (
	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeRemoved  = "removed"
)

// ChangeEvent is the decoded form of one change stream notification
type ChangeEvent struct {
	OperationType string `bson:"operationType"`
	FullDocument  bson.M `bson:"fullDocument"`
	DocumentKey   struct {
		ID primitive.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
}

// Kind maps the store's operation type onto the stream's change vocabulary
func (e ChangeEvent) Kind() string {
	switch e.OperationType {
	case "insert":
		return ChangeAdded
	case "update", "replace":
		return ChangeModified
	case "delete":
		return ChangeRemoved
	}
	return e.OperationType
}

// StreamPayload flattens the event into the JSON object written to the event
// stream: document id, full field set and the change kind.
func (e ChangeEvent) StreamPayload() map[string]interface{} {
	payload := make(map[string]interface{}, len(e.FullDocument)+2)
	for k, v := range e.FullDocument {
		payload[k] = v
	}
	delete(payload, "_id")
	payload["id"] = e.DocumentKey.ID.Hex()
	payload["type"] = e.Kind()
	return payload
}
