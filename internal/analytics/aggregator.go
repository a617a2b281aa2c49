// Package analytics derives dashboard aggregates from in-memory snapshots of
// the campaign and scan event lists. Everything here is a pure function: no
// storage access, no clock reads, deterministic for a given input and
// reference time.
package analytics

import (
	"sort"
	"time"

	"github.com/qrpulse/qrpulse/internal/domain"
)

const (
	// DayWindow is the trailing calendar-day span of the scans-by-day series.
	DayWindow = 7
	// TopCampaignLimit caps the per-campaign ranking.
	TopCampaignLimit = 5
)

// Summarize aggregates the given snapshot. Day buckets cover the trailing
// DayWindow calendar days in now's time zone, zero-filled, oldest first.
func Summarize(campaigns []domain.Campaign, scans []domain.ScanEvent, now time.Time) domain.AnalyticsSummary {
	return domain.AnalyticsSummary{
		TotalScans:      len(scans),
		ActiveCampaigns: len(campaigns),
		ScansByDay:      ScansByDay(scans, now),
		ByDevice:        groupByLabel(scans, func(e domain.ScanEvent) string { return e.Device }),
		ByBrowser:       groupByLabel(scans, func(e domain.ScanEvent) string { return e.Browser }),
		TopCampaigns:    TopCampaigns(campaigns, scans),
	}
}

// ScansByDay buckets scans into the trailing DayWindow calendar days ending
// at now, keyed by date, zero-filled, ordered oldest to newest.
func ScansByDay(scans []domain.ScanEvent, now time.Time) []domain.DayCount {
	loc := now.Location()

	counts := make(map[string]int)
	for _, e := range scans {
		counts[e.Timestamp.In(loc).Format("2006-01-02")]++
	}

	out := make([]domain.DayCount, 0, DayWindow)
	for i := DayWindow - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, domain.DayCount{Date: date, Count: counts[date]})
	}
	return out
}

// TopCampaigns ranks campaigns by scan count, descending, capped at
// TopCampaignLimit. Ties keep the campaigns' input order.
func TopCampaigns(campaigns []domain.Campaign, scans []domain.ScanEvent) []domain.CampaignCount {
	counts := make(map[string]int)
	for _, e := range scans {
		counts[e.CampaignID]++
	}

	ranked := make([]domain.CampaignCount, 0, len(campaigns))
	for _, c := range campaigns {
		ranked = append(ranked, domain.CampaignCount{
			CampaignID: c.ID,
			Name:       c.Name,
			Count:      counts[c.ID],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > TopCampaignLimit {
		ranked = ranked[:TopCampaignLimit]
	}
	return ranked
}

func groupByLabel(scans []domain.ScanEvent, label func(domain.ScanEvent) string) []domain.LabelCount {
	counts := make(map[string]int)
	for _, e := range scans {
		counts[label(e)]++
	}

	out := make([]domain.LabelCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.LabelCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
