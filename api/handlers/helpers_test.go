package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestPayloadFromQuery(t *testing.T) {
	req, _ := http.NewRequest("GET", "/api/getItems?type=lost&limit=5", nil)

	payload, err := requestPayload(req)
	assert.NoError(t, err)
	assert.Equal(t, "lost", payload["type"])
	assert.Equal(t, "5", payload["limit"])
}

func TestRequestPayloadFromBody(t *testing.T) {
	body := strings.NewReader(`{"type": "found", "limit": 5}`)
	req, _ := http.NewRequest("POST", "/api/getItems", body)

	payload, err := requestPayload(req)
	assert.NoError(t, err)
	assert.Equal(t, "found", payload["type"])
	assert.Equal(t, float64(5), payload["limit"])
}

func TestRequestPayloadEmptyBody(t *testing.T) {
	req, _ := http.NewRequest("POST", "/api/getItems", strings.NewReader(""))

	payload, err := requestPayload(req)
	assert.NoError(t, err)
	assert.Empty(t, payload)
}

func TestRequestPayloadMalformedBody(t *testing.T) {
	req, _ := http.NewRequest("POST", "/api/getItems", strings.NewReader(`{"type":`))

	_, err := requestPayload(req)
	assert.Error(t, err)
}

func TestPayloadLimit(t *testing.T) {
	assert.Equal(t, 50, payloadLimit(map[string]interface{}{}, 50))
	assert.Equal(t, 5, payloadLimit(map[string]interface{}{"limit": float64(5)}, 50))
	assert.Equal(t, 5, payloadLimit(map[string]interface{}{"limit": "5"}, 50))
	assert.Equal(t, 50, payloadLimit(map[string]interface{}{"limit": "abc"}, 50))
	assert.Equal(t, 50, payloadLimit(map[string]interface{}{"limit": float64(-1)}, 50))
}

func TestPayloadString(t *testing.T) {
	payload := map[string]interface{}{
		"sender": "  ada  ",
		"count":  float64(3),
		"gone":   nil,
	}

	assert.Equal(t, "ada", payloadString(payload, "sender"))
	assert.Equal(t, "3", payloadString(payload, "count"))
	assert.Empty(t, payloadString(payload, "gone"))
	assert.Empty(t, payloadString(payload, "absent"))
}
