package domain

import "errors"

var (
	// ErrInvalidInput means a shorten request was rejected before any store
	// access: malformed URL or non-positive expiry.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means no link exists for the requested short code.
	ErrNotFound = errors.New("short link not found")

	// ErrLinkExpired means the link exists but its expiry has passed.
	ErrLinkExpired = errors.New("short link has expired")

	// ErrForbidden means the supplied password was wrong, or a password was
	// supplied for a link that has none.
	ErrForbidden = errors.New("password is incorrect")

	// ErrPasswordRequired is not a failure: the link is protected and the
	// caller must supply a password before proceeding.
	ErrPasswordRequired = errors.New("password required")
)
