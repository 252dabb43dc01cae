package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Item exported for testing purposes
type Item struct {
	LostDB  databases.ItemDatabase
	FoundDB databases.ItemDatabase
}

var itemRequiredFields = []string{"reporter_name", "contact", "item_title", "category"}

const defaultItemLimit = 50

// SubmitLostItemHandler stores a lost item report
func (i Item) SubmitLostItemHandler(w http.ResponseWriter, r *http.Request) {
	i.submitItem(w, r, i.LostDB, "lost")
}

// SubmitFoundItemHandler stores a found item report
func (i Item) SubmitFoundItemHandler(w http.ResponseWriter, r *http.Request) {
	i.submitItem(w, r, i.FoundDB, "found")
}

func (i Item) submitItem(w http.ResponseWriter, r *http.Request, db databases.ItemDatabase, tag string) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	if missing := models.MissingFields(payload, itemRequiredFields); len(missing) > 0 {
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
	// the tag wins over any client-supplied status/type
	doc["status"] = tag
	doc["type"] = tag

	id, err := db.InsertOne(context.TODO(), doc)
	if err != nil {
		config.ErrorStatus("failed to save item", http.StatusInternalServerError, w, err)
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

// GetItemsHandler lists the most recent reports from the lost and/or found
// collections. With type=all each collection contributes up to the limit, so
// the combined list can reach twice that size.
func (i Item) GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	itemType := strings.ToLower(payloadString(payload, "type"))
	if itemType == "" {
		itemType = "all"
	}
	limit := payloadLimit(payload, defaultItemLimit)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	items := []models.Item{}
	if itemType == "lost" || itemType == "all" {
		lost, err := i.LostDB.Find(context.TODO(), bson.M{}, opts)
		if err != nil {
			config.ErrorStatus("failed to get lost items", http.StatusInternalServerError, w, err)
			return
		}
		items = append(items, lost...)
	}
	if itemType == "found" || itemType == "all" {
		found, err := i.FoundDB.Find(context.TODO(), bson.M{}, opts)
		if err != nil {
			config.ErrorStatus("failed to get found items", http.StatusInternalServerError, w, err)
			return
		}
		items = append(items, found...)
	}

	sortItemsByCreatedAtDesc(items)

	b, err := json.Marshal(map[string]interface{}{"items": items, "count": len(items)})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetItemDetailsHandler fetches a single report by collection and id.
// Collection values that do not name the lost collection resolve to the
// found one.
func (i Item) GetItemDetailsHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	collection := strings.ToLower(payloadString(payload, "collection"))
	id := payloadString(payload, "id")
	if collection == "" || id == "" {
		writeBadRequest(w, "collection and id are required")
		return
	}

	db := i.FoundDB
	if collection == "lost" || collection == databases.LostItemsCollection {
		db = i.LostDB
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	item, err := db.FindOne(context.TODO(), bson.M{"_id": oid})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			b, _ := json.Marshal(models.ErrorResponse{Error: "Not found"})
			w.WriteHeader(http.StatusNotFound)
			w.Write(b)
			return
		}
		config.ErrorStatus("failed to get item by ID", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]interface{}{"item": item})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// sortItemsByCreatedAtDesc orders items newest first. The stamps are fixed
// width ISO strings, so plain string comparison is chronological.
func sortItemsByCreatedAtDesc(items []models.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt() > items[b].CreatedAt()
	})
}
