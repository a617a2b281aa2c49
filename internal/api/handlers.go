package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qrpulse/qrpulse/internal/analytics"
	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
	"github.com/qrpulse/qrpulse/internal/qrcode"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
	"github.com/qrpulse/qrpulse/internal/suggest"
	"github.com/qrpulse/qrpulse/internal/tracking"
)

// Handlers bundles the dependencies behind the HTTP surface.
type Handlers struct {
	svc       *campaign.Service
	oracle    *suggest.Oracle
	tracker   *tracking.Handler
	publicURL string

	// backend and queue describe the running deployment for /api/status.
	backend      string
	queueEnabled bool
}

// NewHandlers wires the service layer into an HTTP handler set. backend
// names the active storage strategy ("remote" or "local").
func NewHandlers(svc *campaign.Service, oracle *suggest.Oracle, tracker *tracking.Handler, publicURL, backend string, queueEnabled bool) *Handlers {
	return &Handlers{
		svc:          svc,
		oracle:       oracle,
		tracker:      tracker,
		publicURL:    publicURL,
		backend:      backend,
		queueEnabled: queueEnabled,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "error", err)
	}
}

// respondError maps service errors onto the HTTP status taxonomy: unknown
// ids are 404, validation failures 400, an unconfigured backend 503, and
// anything else is a storage write failure surfaced as 502.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		status = http.StatusNotFound
	case campaign.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, campaign.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// HandleHealth returns a liveness probe response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleStatus describes the running deployment: which storage strategy is
// active, whether the scan queue is on, whether suggestions are live.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"backend":             h.backend,
		"scan_queue":          h.queueEnabled,
		"suggestions_enabled": h.oracle.Enabled(),
		"public_url":          h.publicURL,
	})
}

// HandleRoot is the application entry point. A ?scan= parameter naming a
// live campaign redirects the visitor immediately; everything else gets the
// service banner.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get(tracking.ScanParam); id != "" {
		if h.tracker.TryRedirect(w, r, id) {
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "qrpulse",
		"status":  "ok",
	})
}

// HandleListCampaigns returns all campaigns, newest first. A failing read
// degrades to an empty list so the dashboard still renders.
func (h *Handlers) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.List(r.Context())
	if err != nil {
		logger.Warn("list campaigns failed", "error", err)
		campaigns = []domain.Campaign{}
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	respondJSON(w, http.StatusOK, campaigns)
}

// HandleGetCampaign returns a single campaign by id.
func (h *Handlers) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleCreateCampaign validates and persists a new campaign. The response
// includes the tracking URL clients should embed in QR codes.
func (h *Handlers) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("campaign created", "id", c.ID, "name", c.Name)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"campaign":     c,
		"tracking_url": qrcode.TrackingURL(h.publicURL, c.ID),
	})
}

// HandleDeleteCampaign removes a campaign and its scan events. Deleting an
// unknown id succeeds, so repeated deletes are safe.
func (h *Handlers) HandleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	logger.Info("campaign deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCampaignQR renders the campaign's tracking link as a PNG QR code.
// An optional ?size= overrides the edge length in pixels.
func (h *Handlers) HandleCampaignQR(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid size"})
			return
		}
	}

	png, err := qrcode.PNG(qrcode.TrackingURL(h.publicURL, c.ID), size)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleSimulateScan appends a synthetic scan event to a campaign. Unlike
// the redirect path, storage failures surface to the caller here.
func (h *Handlers) HandleSimulateScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		Device   string `json:"device"`
		Browser  string `json:"browser"`
		Location string `json:"location"`
	}
	if r.Body != nil {
		// An empty body is fine; defaults cover every field.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	if body.Device == "" {
		body.Device = domain.DeviceDesktop
	}
	if body.Browser == "" {
		body.Browser = tracking.ClassifyBrowser(r.UserAgent())
	}

	e := domain.ScanEvent{
		CampaignID: id,
		Device:     body.Device,
		Browser:    body.Browser,
		Location:   body.Location,
	}
	if err := h.svc.RecordScan(r.Context(), &e); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

// HandleListScans returns all scan events, newest first, degrading to an
// empty list when the read fails.
func (h *Handlers) HandleListScans(w http.ResponseWriter, r *http.Request) {
	scans, err := h.svc.Scans(r.Context())
	if err != nil {
		logger.Warn("list scans failed", "error", err)
		scans = []domain.ScanEvent{}
	}
	if scans == nil {
		scans = []domain.ScanEvent{}
	}
	respondJSON(w, http.StatusOK, scans)
}

func (h *Handlers) summary(r *http.Request) domain.AnalyticsSummary {
	campaigns, err := h.svc.List(r.Context())
	if err != nil {
		logger.Warn("summary campaign read failed", "error", err)
		campaigns = nil
	}
	scans, err := h.svc.Scans(r.Context())
	if err != nil {
		logger.Warn("summary scan read failed", "error", err)
		scans = nil
	}
	return analytics.Summarize(campaigns, scans, time.Now())
}

// HandleAnalyticsSummary returns the dashboard aggregates.
func (h *Handlers) HandleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.summary(r))
}

// HandleAnalyticsInsight returns a short generated reading of the scan
// summary. With no scans recorded yet there is nothing to analyze, so a
// fixed message short-circuits without calling the oracle.
func (h *Handlers) HandleAnalyticsInsight(w http.ResponseWriter, r *http.Request) {
	s := h.summary(r)
	if s.TotalScans == 0 {
		respondJSON(w, http.StatusOK, map[string]string{
			"insight": "No scans recorded yet. Share your QR codes to start collecting data.",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"insight": h.oracle.AnalyticsInsight(r.Context(), s),
	})
}

// HandleExportCSV streams all scan events as a dated CSV attachment.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.List(r.Context())
	if err != nil {
		logger.Warn("export campaign read failed", "error", err)
		campaigns = nil
	}
	scans, err := h.svc.Scans(r.Context())
	if err != nil {
		logger.Warn("export scan read failed", "error", err)
		scans = nil
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+analytics.ExportFilename(time.Now())+`"`)
	if err := analytics.WriteCSV(w, campaigns, scans); err != nil {
		logger.Error("csv export failed", "error", err)
	}
}

// HandleSuggestCTA generates a short call-to-action for a destination URL.
// The oracle never fails: an unconfigured or erroring provider yields a
// fixed fallback string.
func (h *Handlers) HandleSuggestCTA(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetURL string `json:"target_url"`
		Category  string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if body.TargetURL == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "target_url is required"})
		return
	}
	if body.Category == "" {
		body.Category = domain.CategoryMarketing
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"cta": h.oracle.SuggestCTA(r.Context(), body.TargetURL, body.Category),
	})
}
