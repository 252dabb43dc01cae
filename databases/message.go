package databases

// go generate: mockery --name MessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/models"
)

// MessageDatabase contains the methods to use with the messages collection,
// including the change subscription backing the live message stream
type MessageDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Message, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (string, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Watch(context.Context, interface{}, ...*options.ChangeStreamOptions) (ChangeStreamHelper, error)
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the
// provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error) {
	cur, err := m.db.Collection(MessagesCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var messages []models.Message
	if err = cur.Decode(&messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *messageDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (string, error) {
	res, err := m.db.Collection(MessagesCollection).InsertOne(ctx, document, opts...)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (m *messageDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return m.db.Collection(MessagesCollection).CountDocuments(ctx, filter, opts...)
}

func (m *messageDatabase) Watch(ctx context.Context, pipeline interface{}, opts ...*options.ChangeStreamOptions) (ChangeStreamHelper, error) {
	return m.db.Collection(MessagesCollection).Watch(ctx, pipeline, opts...)
}
