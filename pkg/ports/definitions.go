package ports

import (
	"context"
	"time"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
)

// LinkRepository defines storage operations for links
type LinkRepository interface {
	// Create inserts the link unless a row with the same short code already
	// exists. It reports whether a new row was actually written; a duplicate
	// code is a no-op, not an error.
	Create(ctx context.Context, link *domain.Link) (bool, error)
	// GetByShortCode returns (nil, nil) when no link matches.
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)
	Dump(ctx context.Context) ([]domain.Link, error) // For migration / export
}

// AccessLogRepository defines storage operations for the append-only access log
type AccessLogRepository interface {
	Record(ctx context.Context, entry *domain.AccessLogEntry) error
	// ListByShortCode returns entries in insertion order.
	ListByShortCode(ctx context.Context, code string) ([]domain.AccessLogEntry, error)
}

// LinkService defines the business logic operations
type LinkService interface {
	// Shorten returns the short code for the URL, creating a link record
	// unless one with the same code already exists.
	Shorten(ctx context.Context, originalURL string, expiry time.Duration, password string) (string, error)
	// Resolve looks up a code for redirection, logging the access unless the
	// link is password protected.
	Resolve(ctx context.Context, code, callerIP string) (*domain.Resolution, error)
	// ValidateAndResolve checks the password and, on success, logs an access
	// with the given IP marker and returns the original URL.
	ValidateAndResolve(ctx context.Context, code, password, ipMarker string) (string, error)
}

// AnalyticsService defines read and validate access to per-link reports
type AnalyticsService interface {
	// GetReport is side-effect free. A protected link yields
	// domain.ErrPasswordRequired when credential is empty and
	// domain.ErrForbidden when it is wrong.
	GetReport(ctx context.Context, code, credential string) (*domain.Report, error)
	// ValidateAndReport additionally records a sentinel-IP access log entry
	// on success.
	ValidateAndReport(ctx context.Context, code, password string) (*domain.Report, error)
}
