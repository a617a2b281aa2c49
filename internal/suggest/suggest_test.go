package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrpulse/qrpulse/internal/domain"
)

type stubProvider struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubProvider) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func TestSuggestCTA(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		expected string
	}{
		{"provider reply", &stubProvider{reply: `"Taste summer. Scan now!"`}, "Taste summer. Scan now!"},
		{"provider error", &stubProvider{err: errors.New("boom")}, FallbackCTAOnError},
		{"empty completion", &stubProvider{reply: "  "}, FallbackCTA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOracle(tt.provider)
			got := o.SuggestCTA(context.Background(), "https://example.com/menu", domain.CategoryMarketing)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggestCTADisabled(t *testing.T) {
	o := NewOracle(nil)
	assert.False(t, o.Enabled())
	assert.Equal(t, FallbackCTA, o.SuggestCTA(context.Background(), "https://example.com", "Marketing"))
}

func TestSuggestCTAPromptContainsURLAndCategory(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	NewOracle(p).SuggestCTA(context.Background(), "https://example.com/menu", "Business")

	assert.Contains(t, p.lastPrompt, "https://example.com/menu")
	assert.Contains(t, p.lastPrompt, "Business")
}

func TestAnalyticsInsight(t *testing.T) {
	summary := domain.AnalyticsSummary{TotalScans: 42}

	t.Run("provider reply", func(t *testing.T) {
		p := &stubProvider{reply: "Weekends outperform weekdays."}
		got := NewOracle(p).AnalyticsInsight(context.Background(), summary)
		assert.Equal(t, "Weekends outperform weekdays.", got)
		assert.Contains(t, p.lastPrompt, `"total_scans":42`)
	})

	t.Run("provider error", func(t *testing.T) {
		p := &stubProvider{err: errors.New("boom")}
		got := NewOracle(p).AnalyticsInsight(context.Background(), summary)
		assert.Equal(t, FallbackInsightError, got)
	})

	t.Run("disabled", func(t *testing.T) {
		got := NewOracle(nil).AnalyticsInsight(context.Background(), summary)
		assert.Equal(t, FallbackInsight, got)
	})
}

func TestOpenAIProviderParsesCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Scan for the secret menu"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o-mini")
	p.endpoint = srv.URL

	got, err := p.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Scan for the secret menu", got)
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o-mini")
	p.endpoint = srv.URL

	_, err := p.Complete(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
