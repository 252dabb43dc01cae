package databases

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// insertedID renders a store-assigned document id as the opaque hex string
// handed back to clients.
func insertedID(res InsertOneResultHelper) string {
	if oid, ok := res.Decode().(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.Decode())
}
