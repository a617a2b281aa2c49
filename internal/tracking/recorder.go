package tracking

import (
	"context"
	"time"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

// Recorder accepts scan events on the redirect path. Delivery is
// at-most-once best-effort: the call returns before the write completes, and
// failures are logged, never surfaced, so the redirect always proceeds.
type Recorder interface {
	Record(ctx context.Context, e domain.ScanEvent)
}

// DirectRecorder writes scan events straight to the campaign service.
type DirectRecorder struct {
	svc *campaign.Service
}

// NewDirectRecorder creates a recorder that writes through the given service.
func NewDirectRecorder(svc *campaign.Service) *DirectRecorder {
	return &DirectRecorder{svc: svc}
}

// Record issues the write in the background. The store call gets its own
// context: the request context dies as soon as the redirect is served.
func (r *DirectRecorder) Record(_ context.Context, e domain.ScanEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := r.svc.RecordScan(ctx, &e); err != nil {
			logger.Error("record scan failed", "campaign_id", e.CampaignID, "error", err)
		}
	}()
}
