package databases

// go generate: mockery --name ItemDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/models"
)

// ItemDatabase contains the methods to use with one of the two item
// collections; the lost and found collections share a shape and differ only
// in name and status tag, so both are served by this wrapper.
type ItemDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (models.Item, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Item, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (string, error)
	Collection() string
}

type itemDatabase struct {
	db   DatabaseHelper
	coll string
}

// NewItemDatabase initializes a new instance of item database over the named
// collection with the provided db connection
func NewItemDatabase(db DatabaseHelper, collection string) ItemDatabase {
	return &itemDatabase{
		db:   db,
		coll: collection,
	}
}

func (i *itemDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (models.Item, error) {
	var doc bson.M
	err := i.db.Collection(i.coll).FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return models.ItemFromDocument(doc, i.coll), nil
}

func (i *itemDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Item, error) {
	cur, err := i.db.Collection(i.coll).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err = cur.Decode(&docs); err != nil {
		return nil, err
	}
	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.ItemFromDocument(doc, i.coll))
	}
	return items, nil
}

func (i *itemDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (string, error) {
	res, err := i.db.Collection(i.coll).InsertOne(ctx, document, opts...)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (i *itemDatabase) Collection() string {
	return i.coll
}
