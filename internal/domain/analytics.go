package domain

// DayCount is one calendar-day bucket of scan counts.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, local time zone
	Count int    `json:"count"`
}

// LabelCount is a group-by bucket keyed by an exact stored label
// (device class or browser family).
type LabelCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CampaignCount is a per-campaign scan total used for ranking.
type CampaignCount struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// AnalyticsSummary is the aggregated view the dashboard renders.
type AnalyticsSummary struct {
	TotalScans      int             `json:"total_scans"`
	ActiveCampaigns int             `json:"active_campaigns"`
	ScansByDay      []DayCount      `json:"scans_by_day"`
	ByDevice        []LabelCount    `json:"by_device"`
	ByBrowser       []LabelCount    `json:"by_browser"`
	TopCampaigns    []CampaignCount `json:"top_campaigns"`
}
