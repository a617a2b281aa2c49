package domain

import "time"

// Device classes recorded on a scan event.
const (
	DeviceMobile  = "Mobile"
	DeviceDesktop = "Desktop"
)

// LocationUnknown is recorded when no geolocation is available, which is
// always the case today: location is a best-effort placeholder, not a
// resolved value.
const LocationUnknown = "Unknown"

// ScanEvent is one recorded visit through a campaign's tracking link.
// Events are created exactly once per successful redirect and never mutated;
// they are deleted only as a side effect of deleting their campaign.
type ScanEvent struct {
	ID         string    `json:"id" db:"id"`
	CampaignID string    `json:"qr_id" db:"campaign_id"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	Device     string    `json:"device" db:"device"`
	Location   string    `json:"location" db:"location"`
	Browser    string    `json:"browser" db:"browser"`
}
