package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/databases/mocks"
	"github.com/linesmerrill/lost-and-found-api/models"
)

func TestMessageDatabase_Find(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Message)
		*arg = []models.Message{
			{ID: primitive.NewObjectID(), Sender: "ada", Text: "hi", Time: 100},
		}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"conversation_id": "abc"}).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.MessagesCollection).
		Return(collectionHelper)

	msgDba := databases.NewMessageDatabase(dbHelper)

	messages, err := msgDba.Find(context.Background(), bson.M{"conversation_id": "abc"})
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "ada", messages[0].Sender)
}

func TestMessageDatabase_CountDocuments(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("CountDocuments", context.Background(), bson.M{"conversation_id": "abc"}).
		Return(int64(3), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.MessagesCollection).
		Return(collectionHelper)

	msgDba := databases.NewMessageDatabase(dbHelper)

	count, err := msgDba.CountDocuments(context.Background(), bson.M{"conversation_id": "abc"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMessageDatabase_WatchError(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("Watch", mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.MessagesCollection).
		Return(collectionHelper)

	msgDba := databases.NewMessageDatabase(dbHelper)

	cs, err := msgDba.Watch(context.Background(), bson.M{})
	assert.Nil(t, cs)
	assert.EqualError(t, err, "mocked-error")
}
