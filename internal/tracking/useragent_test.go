package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qrpulse/qrpulse/internal/domain"
)

func TestClassifyDevice(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want string
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile Safari/604.1", domain.DeviceMobile},
		{"android", "Mozilla/5.0 (Linux; Android 14) Mobile Chrome/120.0", domain.DeviceMobile},
		{"mac desktop", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15", domain.DeviceDesktop},
		{"empty", "", domain.DeviceDesktop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyDevice(tc.ua))
		})
	}
}

func TestClassifyBrowser(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want string
	}{
		{"chrome", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36", "Chrome"},
		{"safari only", "Mozilla/5.0 (Macintosh) Version/17.0 Safari/605.1.15", "Safari"},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox"},
		// Edge agents also advertise Chrome, and Chrome wins the match order.
		{"edge reports chrome", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0 Safari/537.36 Edg/120.0 Edge/120.0", "Chrome"},
		{"unrecognized", "curl/8.4.0", browserFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyBrowser(tc.ua))
		})
	}
}
