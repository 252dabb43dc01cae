package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lost-and-found-api/databases"
	"github.com/linesmerrill/lost-and-found-api/models"
)

// Scheduler runs periodic maintenance jobs against the chat collections
type Scheduler struct {
	cron   *cron.Cron
	ConvDB databases.ConversationDatabase
	MsgDB  databases.MessageDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(convDB databases.ConversationDatabase, msgDB databases.MessageDatabase) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ConvDB: convDB,
		MsgDB:  msgDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Prune abandoned conversations daily at 3:30 AM UTC
	_, err := s.cron.AddFunc("30 3 * * *", s.PruneEmptyConversations)
	if err != nil {
		zap.S().Errorw("failed to register conversation pruning job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Conversation janitor started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Conversation janitor stopped")
}

// PruneEmptyConversations deletes conversations that are at least a day old
// and never received a message. sendMessage creates the conversation before
// the first message write and no transaction spans the two, so a failure in
// between leaves an orphan; this job bounds how long orphans live.
func (s *Scheduler) PruneEmptyConversations() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := models.ISOFromTime(time.Now().Add(-24 * time.Hour))
	filter := bson.M{
		"last_message": nil,
		"created_at":   bson.M{"$lt": cutoff},
	}

	conversations, err := s.ConvDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to find empty conversations", "error", err)
		return
	}

	pruned := 0
	for _, conv := range conversations {
		count, err := s.MsgDB.CountDocuments(ctx, bson.M{"conversation_id": conv.ID.Hex()})
		if err != nil {
			zap.S().Errorw("failed to count messages", "error", err, "conversationId", conv.ID.Hex())
			continue
		}
		if count > 0 {
			// last_message update failed after the message landed; leave it
			continue
		}
		if err := s.ConvDB.DeleteOne(ctx, bson.M{"_id": conv.ID}); err != nil {
			zap.S().Errorw("failed to delete conversation", "error", err, "conversationId", conv.ID.Hex())
			continue
		}
		pruned++
	}

	zap.S().Infow("Conversation pruning complete",
		"checked", len(conversations),
		"pruned", pruned,
	)
}
