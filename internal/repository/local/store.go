// Package local implements the campaign.Store contract against JSON files on
// disk. It is the fallback backend when no database is configured: the same
// serialized-array-per-key layout the browser-local storage used, wrapped in
// the asynchronous store interface.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

const (
	campaignsFile = "qrpulse_campaigns.json"
	scansFile     = "qrpulse_scans.json"
)

// Store implements campaign.Store over two JSON array files. All slices are
// kept newest first, matching the list ordering contract, so reads are plain
// copies.
type Store struct {
	dir string

	mu        sync.RWMutex
	campaigns []domain.Campaign
	scans     []domain.ScanEvent
}

// New opens (or initializes) a file store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if data, err := os.ReadFile(filepath.Join(s.dir, campaignsFile)); err == nil {
		if err := json.Unmarshal(data, &s.campaigns); err != nil {
			return fmt.Errorf("parse %s: %w", campaignsFile, err)
		}
	}
	if data, err := os.ReadFile(filepath.Join(s.dir, scansFile)); err == nil {
		if err := json.Unmarshal(data, &s.scans); err != nil {
			return fmt.Errorf("parse %s: %w", scansFile, err)
		}
	}
	return nil
}

func (s *Store) saveToFile(name string, data interface{}) error {
	file, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out, nil
}

func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			c := s.campaigns[i]
			return &c, nil
		}
	}
	return nil, campaign.ErrNotFound
}

func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Prepend: the array stays newest first.
	s.campaigns = append([]domain.Campaign{*c}, s.campaigns...)
	if err := s.saveToFile(campaignsFile, s.campaigns); err != nil {
		s.campaigns = s.campaigns[1:]
		return fmt.Errorf("persist campaigns: %w", err)
	}
	return nil
}

func (s *Store) DeleteCampaign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	keptScans := make([]domain.ScanEvent, 0, len(s.scans))
	for _, e := range s.scans {
		if e.CampaignID != id {
			keptScans = append(keptScans, e)
		}
	}
	s.campaigns, s.scans = kept, keptScans

	if err := s.saveToFile(campaignsFile, s.campaigns); err != nil {
		return fmt.Errorf("persist campaigns: %w", err)
	}
	if err := s.saveToFile(scansFile, s.scans); err != nil {
		return fmt.Errorf("persist scans: %w", err)
	}
	return nil
}

func (s *Store) ListScans(_ context.Context) ([]domain.ScanEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ScanEvent, len(s.scans))
	copy(out, s.scans)
	return out, nil
}

func (s *Store) RecordScan(_ context.Context, e *domain.ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = append([]domain.ScanEvent{*e}, s.scans...)
	if err := s.saveToFile(scansFile, s.scans); err != nil {
		s.scans = s.scans[1:]
		return fmt.Errorf("persist scans: %w", err)
	}
	return nil
}
