package domain

import "time"

// ValidatedAccessMarker is recorded in place of a caller IP when an access
// is logged through the analytics password form rather than a redirect.
const ValidatedAccessMarker = "Validated Access"

// AccessLogEntry records one access to a short link. Entries are
// append-only; they are never updated or deleted.
type AccessLogEntry struct {
	ID         int64     `json:"id"`
	ShortCode  string    `json:"short_code"`
	AccessedAt time.Time `json:"accessed_at"`
	IPAddress  string    `json:"ip_address"`
}

// Report aggregates the access history of a single short link.
type Report struct {
	ShortCode   string           `json:"short_code"`
	OriginalURL string           `json:"original_url"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
	AccessCount int              `json:"access_count"`
	AccessLogs  []AccessLogEntry `json:"access_logs"` // Insertion order, i.e. chronological
}
