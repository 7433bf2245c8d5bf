// Package device turns the raw User-Agent header into a short display name
// ("Chrome on Mac OS X") for audit events.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"campusreport/pkg/requestcontext"
)

// Middleware stores the parsed device name on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithDeviceName(r.Context(), ParseUserAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseUserAgent extracts a human-readable browser/platform name. Unknown or
// empty agents collapse to a fixed placeholder rather than leaking the raw
// header into audit records.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	os := ua.OS()

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	}

	if mobile := ua.Mobile(); mobile {
		return "Mobile Device"
	}
	if platform := strings.TrimSpace(ua.Platform()); platform != "" {
		return platform
	}
	return "Unknown Device"
}
