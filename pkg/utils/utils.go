package utils

import "time"

// DefaultHTTPTimeout is the timeout used for short interactive requests
// such as API key verification.
const DefaultHTTPTimeout = 10 * time.Second

// TruncateSecret returns a safe-to-display form of a secret, keeping at most
// prefixLen leading and suffixLen trailing characters with "..." in between.
// Secrets too short to truncate meaningfully are fully masked.
func TruncateSecret(secret string, prefixLen, suffixLen int) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= prefixLen+suffixLen {
		return "..."
	}
	if suffixLen <= 0 {
		return secret[:prefixLen] + "..."
	}
	return secret[:prefixLen] + "..." + secret[len(secret)-suffixLen:]
}
