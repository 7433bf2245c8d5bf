package credential

import "strings"

// IsInstitutionalEmail reports whether email belongs to the configured campus
// domain. The gate applies to student registration and student login only;
// admin and super-admin accounts may use any address.
func IsInstitutionalEmail(email, domain string) bool {
	if email == "" || domain == "" {
		return false
	}
	// The suffix alone is not enough: "@cvsu.edu.ph" itself has no local part.
	return len(email) > len(domain) && strings.HasSuffix(email, domain)
}
