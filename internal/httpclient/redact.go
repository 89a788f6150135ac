package httpclient

import "regexp"

const redacted = "[REDACTED]"

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([?&]key=)[^&\s"]+`),
	regexp.MustCompile(`(Bearer\s+)[A-Za-z0-9._\-]+`),
	regexp.MustCompile(`()AIza[A-Za-z0-9_\-]{30,}`),
	regexp.MustCompile(`()sk-[A-Za-z0-9_\-]{20,}`),
}

// RedactURL masks credentials in URLs and error strings before they reach logs.
func RedactURL(s string) string {
	for _, p := range secretPatterns {
		s = p.ReplaceAllString(s, "${1}"+redacted)
	}
	return s
}
