// Package postgres implements the campaign.Store contract against a remote
// PostgreSQL backend.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

// Store implements campaign.Store against PostgreSQL.
type Store struct{ db *sql.DB }

// New creates a Postgres-backed store over an existing connection pool.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Open connects to the given database URL and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the campaign tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS qr_campaigns (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			target_url  TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS qr_scan_events (
			id          TEXT PRIMARY KEY,
			campaign_id TEXT NOT NULL,
			timestamp   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			device      TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			browser     TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_qr_scan_events_campaign
			ON qr_scan_events (campaign_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_url, category, description, created_at
		FROM qr_campaigns
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := []domain.Campaign{}
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.TargetURL, &c.Category, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, target_url, category, description, created_at
		FROM qr_campaigns
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.TargetURL, &c.Category, &c.Description, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (s *Store) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO qr_campaigns (id, name, target_url, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.TargetURL, c.Category, c.Description, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// DeleteCampaign removes the campaign and its scan events in one
// transaction so a delete never leaves orphaned events behind.
func (s *Store) DeleteCampaign(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qr_scan_events WHERE campaign_id = $1`, id); err != nil {
		return fmt.Errorf("delete scan events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM qr_campaigns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return tx.Commit()
}

func (s *Store) ListScans(ctx context.Context) ([]domain.ScanEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, campaign_id, timestamp, device, location, browser
		FROM qr_scan_events
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	out := []domain.ScanEvent{}
	for rows.Next() {
		var e domain.ScanEvent
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.Timestamp, &e.Device, &e.Location, &e.Browser); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) RecordScan(ctx context.Context, e *domain.ScanEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO qr_scan_events (id, campaign_id, timestamp, device, location, browser)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.CampaignID, e.Timestamp, e.Device, e.Location, e.Browser)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}
