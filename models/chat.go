package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Conversation holds the structure for the conversations collection
type Conversation struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt   string             `json:"created_at" bson:"created_at"`
	UpdatedAt   string             `json:"updated_at" bson:"updated_at"`
	LastMessage *string            `json:"last_message" bson:"last_message"`
}

// ConversationSummary is a getConversations list entry
type ConversationSummary struct {
	ID          string  `json:"id"`
	LastMessage *string `json:"last_message"`
	UpdatedAt   string  `json:"updated_at"`
}

// Message holds the structure for the messages collection. Message times are
// epoch milliseconds while item and conversation stamps are ISO strings; both
// shapes predate this service and clients depend on them, so neither changes.
type Message struct {
	ID             primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	ConversationID string                 `json:"conversation_id" bson:"conversation_id"`
	Sender         string                 `json:"sender" bson:"sender"`
	Text           string                 `json:"text" bson:"text"`
	Time           int64                  `json:"time" bson:"time"`
	Item           map[string]interface{} `json:"item,omitempty" bson:"item,omitempty"`
}

// SendMessageResponse acknowledges a stored chat message
type SendMessageResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}
