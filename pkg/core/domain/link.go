package domain

import "time"

// Link represents a shortened URL
type Link struct {
	ID           int64     `json:"id"`
	OriginalURL  string    `json:"original_url"`
	ShortCode    string    `json:"short_code"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	PasswordHash string    `json:"-"` // Never serialized to clients
}

// Protected reports whether the link requires a password before
// redirecting or exposing analytics.
func (l *Link) Protected() bool {
	return l.PasswordHash != ""
}

// Expired reports whether the link is past its expiry at the given instant.
func (l *Link) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// Resolution is the outcome of resolving a short code that exists and has
// not expired. When PasswordRequired is set the original URL is withheld
// until the caller validates.
type Resolution struct {
	OriginalURL      string `json:"original_url,omitempty"`
	PasswordRequired bool   `json:"password_required"`
}
