// Package qrcode renders campaign tracking links as QR code images.
package qrcode

import (
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the rendered PNG edge length in pixels.
	DefaultSize = 256
	minSize     = 64
	maxSize     = 1024
)

// TrackingURL builds the QR-encoded URL for a campaign: the redirect
// endpoint on this service, not the destination itself.
func TrackingURL(publicURL, campaignID string) string {
	return fmt.Sprintf("%s/s/%s", strings.TrimRight(publicURL, "/"), campaignID)
}

// PNG renders the tracking URL as a PNG. Size is clamped to a sane range;
// zero picks DefaultSize. High error correction keeps codes scannable on
// printed flyers.
func PNG(trackingURL string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}

	png, err := qr.Encode(trackingURL, qr.High, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
