package databases

// go generate: mockery --name ContactDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactDatabase contains the methods to use with the contacts collection.
// Contact messages are write-only from this service's perspective.
type ContactDatabase interface {
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (string, error)
}

type contactDatabase struct {
	db DatabaseHelper
}

// NewContactDatabase initializes a new instance of contact database with the
// provided db connection
func NewContactDatabase(db DatabaseHelper) ContactDatabase {
	return &contactDatabase{
		db: db,
	}
}

func (c *contactDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (string, error) {
	res, err := c.db.Collection(ContactsCollection).InsertOne(ctx, document, opts...)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}
