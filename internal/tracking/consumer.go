package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

// Consumer drains queued scan events into the store.
type Consumer struct {
	client *redis.Client
	svc    *campaign.Service
	done   chan struct{}
}

// NewConsumer creates a consumer over the given Redis client and service.
func NewConsumer(client *redis.Client, svc *campaign.Service) *Consumer {
	return &Consumer{client: client, svc: svc, done: make(chan struct{})}
}

// Start begins draining in the background until ctx is cancelled or Stop is
// called.
func (c *Consumer) Start(ctx context.Context) {
	logger.Info("scan queue consumer started", "queue", QueueKey)
	go c.poll(ctx)
}

// Stop terminates the polling loop.
func (c *Consumer) Stop() {
	close(c.done)
}

func (c *Consumer) poll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		res, err := c.client.BRPop(ctx, 2*time.Second, QueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			logger.Warn("scan queue receive error", "error", err)
			time.Sleep(2 * time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) < 2 {
			continue
		}

		var e domain.ScanEvent
		if err := json.Unmarshal([]byte(res[1]), &e); err != nil {
			logger.Error("scan queue bad message", "error", err)
			continue
		}

		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.svc.RecordScan(writeCtx, &e); err != nil {
			logger.Error("scan queue write failed", "campaign_id", e.CampaignID, "error", err)
		}
		cancel()
	}
}
