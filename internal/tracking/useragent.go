package tracking

import (
	"strings"

	"github.com/qrpulse/qrpulse/internal/domain"
)

// browserFallback is recorded when no known family substring matches.
const browserFallback = "Mobile Browser"

// ClassifyDevice derives the coarse device class from a User-Agent string.
func ClassifyDevice(ua string) string {
	if strings.Contains(ua, "Mobile") {
		return domain.DeviceMobile
	}
	return domain.DeviceDesktop
}

// ClassifyBrowser derives the browser family by substring match. The match
// order is significant: Chromium-based agents advertise several families at
// once, and the first hit wins.
func ClassifyBrowser(ua string) string {
	for _, family := range []string{"Chrome", "Safari", "Firefox", "Edge"} {
		if strings.Contains(ua, family) {
			return family
		}
	}
	return browserFallback
}
