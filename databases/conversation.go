package databases

// go generate: mockery --name ConversationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/models"
)

// ConversationDatabase contains the methods to use with the conversations
// collection
type ConversationDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Conversation, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (string, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type conversationDatabase struct {
	db DatabaseHelper
}

// NewConversationDatabase initializes a new instance of conversation database
// with the provided db connection
func NewConversationDatabase(db DatabaseHelper) ConversationDatabase {
	return &conversationDatabase{
		db: db,
	}
}

func (c *conversationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Conversation, error) {
	cur, err := c.db.Collection(ConversationsCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var conversations []models.Conversation
	if err = cur.Decode(&conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *conversationDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (string, error) {
	res, err := c.db.Collection(ConversationsCollection).InsertOne(ctx, document, opts...)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (c *conversationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return c.db.Collection(ConversationsCollection).UpdateOne(ctx, filter, update, opts...)
}

func (c *conversationDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(ConversationsCollection).DeleteOne(ctx, filter, opts...)
}
