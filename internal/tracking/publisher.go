package tracking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
)

// QueueKey is the Redis list holding pending scan events.
const QueueKey = "qrpulse:scan_events"

// QueuePublisher pushes scan events onto a Redis list instead of writing to
// the store inline. Paired with a Consumer it forms a durable outbox: a
// store hiccup no longer loses the event, only delays it.
type QueuePublisher struct {
	client *redis.Client
}

// NewQueuePublisher creates a publisher over the given Redis client.
func NewQueuePublisher(client *redis.Client) *QueuePublisher {
	return &QueuePublisher{client: client}
}

// Record enqueues the event in the background.
func (p *QueuePublisher) Record(_ context.Context, e domain.ScanEvent) {
	body, err := json.Marshal(e)
	if err != nil {
		logger.Error("marshal scan event failed", "campaign_id", e.CampaignID, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.client.LPush(ctx, QueueKey, body).Err(); err != nil {
			logger.Error("enqueue scan event failed", "campaign_id", e.CampaignID, "error", err)
		}
	}()
}
