package campaign

import (
	"context"

	"github.com/qrpulse/qrpulse/internal/domain"
)

// Store defines the data access contract shared by both storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// ListCampaigns returns all campaigns ordered by created_at DESC.
	// An empty backend yields an empty slice, not an error.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// GetCampaign returns a single campaign. Returns ErrNotFound if it
	// doesn't exist; not-found is a normal outcome for lookups.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)

	// CreateCampaign inserts a new campaign. The caller assigns the ID.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error

	// DeleteCampaign removes a campaign and every scan event that
	// references it. Deleting an unknown id is not an error.
	DeleteCampaign(ctx context.Context, id string) error

	// ListScans returns all scan events ordered by timestamp DESC.
	ListScans(ctx context.Context) ([]domain.ScanEvent, error)

	// RecordScan appends one scan event. Callers on the redirect path
	// treat failures as best-effort: logged, never surfaced.
	RecordScan(ctx context.Context, e *domain.ScanEvent) error
}
