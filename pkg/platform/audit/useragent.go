package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// SummarizeUserAgent reduces a raw User-Agent header to "Browser Version on OS",
// which is enough for audit trails without storing the full header.
func SummarizeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		name, _ := ua.Browser()
		if name == "" {
			return "bot"
		}
		return "bot: " + name
	}

	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	summary := name
	if major, _, _ := strings.Cut(version, "."); major != "" {
		summary += " " + major
	}
	if os := ua.OS(); os != "" {
		summary += " on " + os
	}
	if ua.Mobile() {
		summary += " (mobile)"
	}
	return summary
}
