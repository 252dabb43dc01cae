package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Search exported for testing purposes
type Search struct {
	LostDB  databases.ItemDatabase
	FoundDB databases.ItemDatabase
}

// searchWindow caps how many recent documents a name-only search scans per
// collection. The substring match runs locally, so the window keeps one
// request from pulling a whole collection; real full-text search belongs in
// a dedicated search service.
const searchWindow = 200

// SearchItemsHandler filters items by exact category at the store and/or by a
// case-insensitive substring of item_name against title and description
// locally. At least one of the two filters is required; both compose with
// AND.
func (s Search) SearchItemsHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := requestPayload(r)
	if err != nil {
		config.ErrorStatus("failed to parse request body", http.StatusBadRequest, w, err)
		return
	}
	category := payloadString(payload, "category")
	itemName := payloadString(payload, "item_name")
	if category == "" && itemName == "" {
		writeBadRequest(w, "Provide at least category or item_name to search")
		return
	}
	itemType := strings.ToLower(payloadString(payload, "type"))
	if itemType == "" {
		itemType = "all"
	}

	var dbs []databases.ItemDatabase
	if itemType == "lost" || itemType == "all" {
		dbs = append(dbs, s.LostDB)
	}
	if itemType == "found" || itemType == "all" {
		dbs = append(dbs, s.FoundDB)
	}

	items := []models.Item{}
	for _, db := range dbs {
		var (
			results []models.Item
			findErr error
		)
		if category != "" {
			results, findErr = db.Find(context.TODO(), bson.M{"category": category})
		} else {
			opts := options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetLimit(searchWindow)
			results, findErr = db.Find(context.TODO(), bson.M{}, opts)
		}
		if findErr != nil {
			config.ErrorStatus("failed to search items", http.StatusInternalServerError, w, findErr)
			return
		}
		items = append(items, results...)
	}

	if itemName != "" {
		items = filterByName(items, itemName)
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

// filterByName keeps items whose title or description contains needle,
// case-insensitively. Missing fields count as empty.
func filterByName(items []models.Item, needle string) []models.Item {
	needle = strings.ToLower(needle)
	matched := make([]models.Item, 0, len(items))
	for _, item := range items {
		title, _ := item["item_title"].(string)
		description, _ := item["description"].(string)
		haystack := strings.ToLower(title + " " + description)
		if strings.Contains(haystack, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}
