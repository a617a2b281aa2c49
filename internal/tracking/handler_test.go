package tracking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/repository/local"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
	"github.com/qrpulse/qrpulse/internal/tracking"
)

// captureRecorder records synchronously so tests can assert immediately.
type captureRecorder struct {
	mu     sync.Mutex
	events []domain.ScanEvent
}

func (c *captureRecorder) Record(_ context.Context, e domain.ScanEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureRecorder) all() []domain.ScanEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ScanEvent, len(c.events))
	copy(out, c.events)
	return out
}

func setupHandler(t *testing.T) (*campaign.Service, *captureRecorder, *tracking.Handler) {
	t.Helper()
	store, err := local.New(t.TempDir())
	require.NoError(t, err)
	svc := campaign.NewService(store)
	rec := &captureRecorder{}
	return svc, rec, tracking.NewHandler(svc, rec)
}

func TestKnownIDRedirectsAndRecordsOnce(t *testing.T) {
	svc, rec, h := setupHandler(t)

	c, err := svc.Create(context.Background(), campaign.CreateInput{
		Name: "Flyer", TargetURL: "https://dest.example",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/s/"+c.ID, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone) Mobile Safari/604.1")
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://dest.example", w.Header().Get("Location"))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, c.ID, events[0].CampaignID)
	assert.Equal(t, domain.DeviceMobile, events[0].Device)
	assert.Equal(t, "Safari", events[0].Browser)
}

func TestUnknownIDFallsThroughWithoutEvent(t *testing.T) {
	_, rec, h := setupHandler(t)

	req := httptest.NewRequest("GET", "/s/nope", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, rec.all())
}

func TestTryRedirectEmptyID(t *testing.T) {
	_, rec, h := setupHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	assert.False(t, h.TryRedirect(w, req, ""))
	assert.Empty(t, rec.all())
}

func TestDirectRecorderWritesEventually(t *testing.T) {
	store, err := local.New(t.TempDir())
	require.NoError(t, err)
	svc := campaign.NewService(store)

	c, err := svc.Create(context.Background(), campaign.CreateInput{
		Name: "Flyer", TargetURL: "https://dest.example",
	})
	require.NoError(t, err)

	rec := tracking.NewDirectRecorder(svc)
	rec.Record(context.Background(), domain.ScanEvent{CampaignID: c.ID, Device: domain.DeviceDesktop, Browser: "Chrome"})

	require.Eventually(t, func() bool {
		scans, err := svc.Scans(context.Background())
		return err == nil && len(scans) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		ua       string
		expected string
	}{
		{"Mozilla/5.0 (iPhone) Mobile Safari/604.1", domain.DeviceMobile},
		{"Mozilla/5.0 (Linux; Android 14) Mobile Chrome/120", domain.DeviceMobile},
		{"Mozilla/5.0 (Windows NT 10.0) Chrome/120", domain.DeviceDesktop},
		{"", domain.DeviceDesktop},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tracking.ClassifyDevice(tt.ua), tt.ua)
	}
}

func TestClassifyBrowserMatchOrder(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{"chrome", "Mozilla/5.0 Chrome/120 Safari/537.36", "Chrome"},
		{"safari", "Mozilla/5.0 (Macintosh) Version/17 Safari/605.1", "Safari"},
		{"firefox", "Mozilla/5.0 (X11; Linux) Gecko/20100101 Firefox/121", "Firefox"},
		// Chromium Edge advertises Chrome first; the substring order keeps
		// the historical classification.
		{"edge counts as chrome", "Mozilla/5.0 Chrome/120 Safari/537 Edg/120 Edge/120", "Chrome"},
		{"unknown", "curl/8.4.0", "Mobile Browser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tracking.ClassifyBrowser(tt.ua))
		})
	}
}
