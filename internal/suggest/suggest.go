// Package suggest wraps the external text-generation service that supplies
// marketing copy and analytics one-liners. The oracle is fallible and
// replaceable: any failure substitutes a fixed fallback string, and callers
// never see an error.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
)

// Provider generates a short completion for a prompt.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Fallback strings, substituted whenever the provider fails, returns an
// empty completion, or is not configured.
const (
	FallbackCTA          = "Scan to learn more"
	FallbackCTAOnError   = "Scan to explore"
	FallbackInsight      = "Keep monitoring your scans for trends."
	FallbackInsightError = "Scan frequency is consistent with your typical activity."
)

// Oracle serves suggestion requests through a provider. A nil provider is
// valid and always yields fallbacks.
type Oracle struct {
	provider Provider
}

// NewOracle creates an oracle over the given provider (nil to disable).
func NewOracle(provider Provider) *Oracle {
	return &Oracle{provider: provider}
}

// Enabled reports whether a provider is configured.
func (o *Oracle) Enabled() bool { return o.provider != nil }

// SuggestCTA returns a short call-to-action for a campaign destination.
func (o *Oracle) SuggestCTA(ctx context.Context, url, category string) string {
	if o.provider == nil {
		return FallbackCTA
	}

	prompt := fmt.Sprintf(
		`Given a URL %q and category %q, suggest a catchy short "Call to Action" for a QR Code flyer (max 10 words). Return only the text.`,
		url, category)

	text, err := o.provider.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("cta suggestion failed", "error", err)
		return FallbackCTAOnError
	}
	text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
	if text == "" {
		return FallbackCTA
	}
	return text
}

// AnalyticsInsight returns a 1-2 sentence reading of the scan summary.
func (o *Oracle) AnalyticsInsight(ctx context.Context, summary domain.AnalyticsSummary) string {
	if o.provider == nil {
		return FallbackInsight
	}

	stats, err := json.Marshal(summary)
	if err != nil {
		return FallbackInsight
	}
	prompt := fmt.Sprintf(
		"Analyze these scan stats for a QR code campaign: %s. Provide a very brief 1-2 sentence insight or recommendation for improvement.",
		stats)

	text, err := o.provider.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("analytics insight failed", "error", err)
		return FallbackInsightError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackInsight
	}
	return text
}
