// Package redact removes sensitive information from strings before they
// are logged. Error messages in this application can contain connection
// strings, credentials, email addresses or SQL fragments; these must
// never reach the log output verbatim.
package redact

import "regexp"

// Placeholder inserted where sensitive data was found.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Database connection strings with credentials
	regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`),

	// Passwords and secrets in key=value or key: value form
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token)([=:\s]['"]?)[^'"&\s]{3,}`),

	// JWT tokens (three base64url segments starting with eyJ)
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),

	// SQL statements leaking schema details
	regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s[\s\w,*()='"$]+\s(FROM|INTO|SET|WHERE)\s\S+`),
}

// String replaces every sensitive fragment in s with the placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error redacts an error's message. Returns an empty string for nil errors.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
