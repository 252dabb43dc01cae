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
)

func TestItemDatabase_FindOne(t *testing.T) {
	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	oid := primitive.NewObjectID()

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*bson.M)
		*arg = bson.M{"_id": oid, "item_title": "Wallet"}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.LostItemsCollection).
		Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper, databases.LostItemsCollection)

	item, err := itemDba.FindOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, item)
	assert.EqualError(t, err, "mocked-error")

	item, err = itemDba.FindOne(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)

	// the document is reshaped for the API: hex id, tagged collection
	assert.Equal(t, oid.Hex(), item["id"])
	assert.Equal(t, databases.LostItemsCollection, item["_collection"])
	assert.Nil(t, item["_id"])
}

func TestItemDatabase_Find(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelperErr databases.CursorHelper
	var cursorHelperCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelperErr = &mocks.CursorHelper{}
	cursorHelperCorrect = &mocks.CursorHelper{}

	cursorHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	cursorHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]bson.M)
		*arg = []bson.M{
			{"_id": primitive.NewObjectID(), "item_title": "Wallet"},
			{"_id": primitive.NewObjectID(), "item_title": "Keys"},
		}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(cursorHelperErr, nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorHelperCorrect, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.FoundItemsCollection).
		Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper, databases.FoundItemsCollection)

	items, err := itemDba.Find(context.Background(), bson.M{"error": true})
	assert.Nil(t, items)
	assert.EqualError(t, err, "mocked-error")

	items, err = itemDba.Find(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, databases.FoundItemsCollection, item["_collection"])
		assert.NotEmpty(t, item["id"])
	}
}

func TestItemDatabase_InsertOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var insertResult databases.InsertOneResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	insertResult = &mocks.InsertOneResultHelper{}

	oid := primitive.NewObjectID()
	insertResult.(*mocks.InsertOneResultHelper).On("Decode").Return(oid)

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": false}).
		Return(insertResult, nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), bson.M{"error": true}).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", databases.LostItemsCollection).
		Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper, databases.LostItemsCollection)

	id, err := itemDba.InsertOne(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), id)

	id, err = itemDba.InsertOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, id)
	assert.EqualError(t, err, "mocked-error")
}

func TestItemDatabase_Collection(t *testing.T) {
	itemDba := databases.NewItemDatabase(&mocks.DatabaseHelper{}, databases.LostItemsCollection)
	assert.Equal(t, databases.LostItemsCollection, itemDba.Collection())
}
