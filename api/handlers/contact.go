package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Contact exported for testing purposes
type Contact struct {
	DB databases.ContactDatabase
}

var contactRequiredFields = []string{"name", "email", "message"}

// SubmitContactFormHandler stores a contact form submission. Delivery is out
// of scope; the document is a persistence sink read out-of-band.
func (c Contact) SubmitContactFormHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	if missing := models.MissingFields(payload, contactRequiredFields); len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	now := models.NowISO()
	doc := bson.M{}
	for k, v := range payload {
		doc[k] = v
	}
	doc["created_at"] = now
	doc["updated_at"] = now

	id, err := c.DB.InsertOne(context.TODO(), doc)
	if err != nil {
		config.ErrorStatus("failed to save contact message", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.SubmitResponse{Success: true, ID: id})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
