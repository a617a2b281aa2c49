// Package tracking implements the scan redirect flow: resolve the tracking
// identifier, record the scan best-effort, and forward the visitor to the
// campaign's destination URL.
package tracking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

// ScanParam is the entry query parameter carrying a tracking identifier.
const ScanParam = "scan"

// Handler serves the redirect endpoints.
type Handler struct {
	svc *campaign.Service
	rec Recorder
}

// NewHandler creates a redirect handler that resolves campaigns through svc
// and records scans through rec.
func NewHandler(svc *campaign.Service, rec Recorder) *Handler {
	return &Handler{svc: svc, rec: rec}
}

// Routes returns the tracking routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/s/{id}", h.HandleScan)
	return r
}

// HandleScan resolves the path identifier and redirects. Unknown ids fall
// through to the application root, producing no scan event.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if !h.TryRedirect(w, r, chi.URLParam(r, "id")) {
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// TryRedirect looks up id and, when it names a live campaign, records one
// scan and serves a 307 to the destination URL. It reports whether the
// redirect was served so callers can fall through to normal rendering.
// Recording is issued before the redirect but its completion is not awaited:
// losing an event when the store is down is accepted, delaying the visitor
// is not.
func (h *Handler) TryRedirect(w http.ResponseWriter, r *http.Request, id string) bool {
	if id == "" {
		return false
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, campaign.ErrNotFound) {
			logger.Warn("scan lookup failed", "id", id, "error", err)
		}
		return false
	}

	ua := r.UserAgent()
	h.rec.Record(r.Context(), domain.ScanEvent{
		CampaignID: c.ID,
		Device:     ClassifyDevice(ua),
		Browser:    ClassifyBrowser(ua),
		Location:   domain.LocationUnknown,
	})

	logger.Info("scan redirect", "campaign_id", c.ID, "target", c.TargetURL)
	http.Redirect(w, r, c.TargetURL, http.StatusTemporaryRedirect)
	return true
}
