package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Chat exported for testing purposes
type Chat struct {
	ConvDB databases.ConversationDatabase
	MsgDB  databases.MessageDatabase
}

var messageRequiredFields = []string{"sender", "text"}

const (
	defaultMessageLimit      = 200
	defaultConversationLimit = 50
)

// SendMessageHandler appends a message to a conversation, creating the
// conversation first when no id is supplied. The three writes are not
// wrapped in a transaction; a crash in between can leave an empty
// conversation or a stale last_message, which the janitor bounds.
func (c Chat) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	if missing := models.MissingFields(payload, messageRequiredFields); len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}
	sender := payloadString(payload, "sender")
	text := payloadString(payload, "text")

	now := models.NowISO()
	conversationID := payloadString(payload, "conversation_id")
	if conversationID == "" {
		conversationID, err = c.ConvDB.InsertOne(context.TODO(), models.Conversation{
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			config.ErrorStatus("failed to create conversation", http.StatusInternalServerError, w, err)
			return
		}
	}
	conversationOID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	message := models.Message{
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Time:           time.Now().UnixMilli(),
	}
	if item, ok := payload["item"].(map[string]interface{}); ok {
		message.Item = item
	}

	messageID, err := c.MsgDB.InsertOne(context.TODO(), message)
	if err != nil {
		config.ErrorStatus("failed to save message", http.StatusInternalServerError, w, err)
		return
	}

	err = c.ConvDB.UpdateOne(context.TODO(), bson.M{"_id": conversationOID}, bson.M{
		"$set": bson.M{"last_message": text, "updated_at": now},
	})
	if err != nil {
		config.ErrorStatus("failed to update conversation", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.SendMessageResponse{
		Success:        true,
		ConversationID: conversationID,
		MessageID:      messageID,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// GetMessagesHandler returns a conversation's messages in send order
func (c Chat) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	conversationID := payloadString(payload, "conversation_id")
	if conversationID == "" {
		writeBadRequest(w, "conversation_id is required")
		return
	}
	limit := payloadLimit(payload, defaultMessageLimit)

	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: 1}}).
		SetLimit(int64(limit))
	messages, err := c.MsgDB.Find(context.TODO(), bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		config.ErrorStatus("failed to get messages", http.StatusInternalServerError, w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	b, err := json.Marshal(map[string]interface{}{"messages": messages, "count": len(messages)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetConversationsHandler lists conversations, most recently active first
func (c Chat) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	limit := payloadLimit(payload, defaultConversationLimit)

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	conversations, err := c.ConvDB.Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		config.ErrorStatus("failed to get conversations", http.StatusInternalServerError, w, err)
		return
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summaries = append(summaries, models.ConversationSummary{
			ID:          conv.ID.Hex(),
			LastMessage: conv.LastMessage,
			UpdatedAt:   conv.UpdatedAt,
		})
	}

	b, err := json.Marshal(map[string]interface{}{"conversations": summaries, "count": len(summaries)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
