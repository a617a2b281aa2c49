package campaign

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/qrpulse/qrpulse/internal/domain"
)

// Service implements campaign registry business logic on top of a Store.
// All public methods are safe for concurrent use if the underlying store is
// concurrency-safe.
type Service struct {
	store Store
}

// NewService creates a campaign service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all campaigns, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.store.ListCampaigns(ctx)
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.store.GetCampaign(ctx, id)
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Name        string `json:"name"`
	TargetURL   string `json:"target_url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Create validates and persists a new campaign, assigning its ID and
// creation timestamp.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if input.TargetURL == "" {
		return nil, &ValidationError{Field: "target_url", Reason: "is required"}
	}
	u, err := url.Parse(input.TargetURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ValidationError{Field: "target_url", Reason: "must be an absolute URL"}
	}
	if input.Category == "" {
		input.Category = domain.CategoryMarketing
	}

	c := &domain.Campaign{
		ID:          uuid.New().String(),
		Name:        input.Name,
		TargetURL:   input.TargetURL,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a campaign and all scan events referencing it. Deleting an
// unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCampaign(ctx, id)
}

// Scans returns all scan events, newest first.
func (s *Service) Scans(ctx context.Context) ([]domain.ScanEvent, error) {
	return s.store.ListScans(ctx)
}

// RecordScan appends a scan event for the given campaign, filling in the
// event ID and timestamp when absent. Redirect-path callers swallow the
// returned error; it exists so the simulate-scan API can surface failures.
func (s *Service) RecordScan(ctx context.Context, e *domain.ScanEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Location == "" {
		e.Location = domain.LocationUnknown
	}
	return s.store.RecordScan(ctx, e)
}
