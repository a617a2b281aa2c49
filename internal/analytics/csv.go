package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/qrpulse/qrpulse/internal/domain"
)

// DeletedCampaignPlaceholder is written in place of the campaign name when
// the owning campaign no longer exists (orphaned events are tolerated on
// backends without atomic cascade deletes).
const DeletedCampaignPlaceholder = "(deleted campaign)"

// ExportFilename returns the dated filename for a CSV export.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("scan-report-%s.csv", now.Format("2006-01-02"))
}

// WriteCSV writes one row per scan event: id, campaign name, timestamp,
// device, browser. Field values containing delimiters, quotes or newlines
// are quoted per RFC 4180.
func WriteCSV(w io.Writer, campaigns []domain.Campaign, scans []domain.ScanEvent) error {
	names := make(map[string]string, len(campaigns))
	for _, c := range campaigns {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "campaign", "timestamp", "device", "browser"}); err != nil {
		return err
	}
	for _, e := range scans {
		name, ok := names[e.CampaignID]
		if !ok {
			name = DeletedCampaignPlaceholder
		}
		row := []string{
			e.ID,
			name,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Device,
			e.Browser,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
