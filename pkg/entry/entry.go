// Package entry builds the log entry text and date submitted to the
// devlog backend. Entries are constructed fresh per invocation and
// never persisted locally.
package entry

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for entry dates.
const DateLayout = "2006-01-02"

// Format builds the entry text. When includeHash is set and a short hash
// was obtained, the hash is prepended as "[hash] "; in every other case
// the message passes through unchanged. A missing hash is not an error,
// it just means no prefix.
func Format(message, shortHash string, includeHash bool) string {
	if includeHash && shortHash != "" {
		return fmt.Sprintf("[%s] %s", shortHash, message)
	}
	return message
}

// ResolveDate decides which date accompanies an entry. An explicit date
// always wins and must be YYYY-MM-DD. Without an explicit date, the
// current local date is used when includeDate is set; otherwise the date
// is omitted (empty string).
func ResolveDate(explicit string, includeDate bool, now time.Time) (string, error) {
	if explicit != "" {
		if _, err := time.Parse(DateLayout, explicit); err != nil {
			return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", explicit)
		}
		return explicit, nil
	}
	if includeDate {
		return now.Format(DateLayout), nil
	}
	return "", nil
}
