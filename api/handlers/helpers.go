package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/linesmerrill/lost-and-found-api/models"
)

// requestPayload flattens a request into one map regardless of transport:
// query parameters for GET, a JSON object body otherwise. An empty body is
// treated as an empty payload so validation can report the missing fields.
func requestPayload(r *http.Request) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if r.Method == http.MethodGet {
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}
	if r.Body == nil {
		return payload, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if err == io.EOF {
			return payload, nil
		}
		return nil, err
	}
	return payload, nil
}

// payloadString returns the trimmed string form of a payload value, or ""
// when the key is absent or nil
func payloadString(payload map[string]interface{}, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(s)
}

// payloadLimit reads the "limit" value, which arrives as a float64 from JSON
// bodies and a string from query parameters. Non-positive or unparsable
// limits fall back to the handler default.
func payloadLimit(payload map[string]interface{}, fallback int) int {
	v, ok := payload["limit"]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// writeMissingFields writes the 400 validation envelope listing exactly the
// absent or empty required fields
func writeMissingFields(w http.ResponseWriter, missing []string) {
	b, _ := json.Marshal(models.ErrorResponse{Error: "Missing fields", Missing: missing})
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(b)
}

// writeBadRequest writes a plain 400 envelope with the given message
func writeBadRequest(w http.ResponseWriter, message string) {
	b, _ := json.Marshal(models.ErrorResponse{Error: message})
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(b)
}
