package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts browser, operating system and device class from a User-Agent header.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = strings.TrimSpace(parsed.Name)
	if browser == "" {
		browser = "Unknown Browser"
	}
	os = strings.TrimSpace(parsed.OS)
	if os == "" {
		os = "Unknown OS"
	}

	switch {
	case parsed.Bot:
		device = "Bot"
	case parsed.Tablet:
		device = "Tablet"
	case parsed.Mobile:
		device = "Mobile"
	default:
		device = "Desktop"
	}
	return browser, os, device
}

// DescribeDevice renders a short label such as "Chrome on Windows (Desktop)".
func DescribeDevice(userAgent string) string {
	browser, os, device := ParseUserAgent(userAgent)
	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
