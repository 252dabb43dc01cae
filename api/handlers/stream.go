package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/lost-and-found-api/config"
	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Stream exported for testing purposes
type Stream struct {
	MsgDB databases.MessageDatabase
}

const (
	// streamQueueSize bounds the hand-off between the change feed and the
	// write loop; a full queue blocks the feed rather than dropping events,
	// which keeps delivery in feed order.
	streamQueueSize = 64

	// streamKeepAlive is how long the write loop waits for an event before
	// emitting a comment line so intermediaries don't time the
	// connection out
	streamKeepAlive = 15 * time.Second
)

// StreamMessagesHandler bridges the message change feed for one conversation
// onto a server-sent event stream. The feed goroutine is the sole producer
// into a bounded channel and this handler is the sole consumer; closing the
// request context tears both down and closes the subscription.
func (s Stream) StreamMessagesHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := strings.TrimSpace(r.URL.Query().Get("conversation_id"))
	if conversationID == "" {
		w.Header().Set("Content-Type", "application/json")
		writeBadRequest(w, "conversation_id is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("streaming unsupported", http.StatusInternalServerError, w,
			errors.New("response writer does not implement http.Flusher"))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"fullDocument.conversation_id": conversationID}}},
	}
	cs, err := s.MsgDB.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to subscribe to messages", http.StatusInternalServerError, w, err)
		return
	}

	// The feed goroutine owns the subscription: the cursor is not safe for
	// concurrent use, so Close must not run while Next is still unwinding
	// after a disconnect. Closing before close(events) means a consumer
	// that exits on the closed channel sees the subscription already torn
	// down.
	events := make(chan []byte, streamQueueSize)
	go func() {
		defer close(events)
		defer cs.Close(context.Background())
		for cs.Next(ctx) {
			var change models.ChangeEvent
			if err := cs.Decode(&change); err != nil {
				zap.S().With(err).Error("failed to decode change event")
				continue
			}
			b, err := json.Marshal(change.StreamPayload())
			if err != nil {
				zap.S().With(err).Error("failed to marshal change event")
				continue
			}
			select {
			case events <- b:
			case <-ctx.Done():
				return
			}
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			zap.S().With(err).Error("message change feed closed")
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// first event is always the heartbeat, even on an empty conversation
	fmt.Fprint(w, "event: ping\ndata: {}\n\n")
	flusher.Flush()

	keepAlive := time.NewTimer(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case b, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
			if !keepAlive.Stop() {
				select {
				case <-keepAlive.C:
				default:
				}
			}
			keepAlive.Reset(streamKeepAlive)
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
			keepAlive.Reset(streamKeepAlive)
		}
	}
}
