package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

// DefaultExpiry is applied when a shorten request does not specify one.
const DefaultExpiry = 24 * time.Hour

const shortCodeLength = 8

type LinkService struct {
	links ports.LinkRepository
	logs  ports.AccessLogRepository
	now   func() time.Time
}

func NewLinkService(links ports.LinkRepository, logs ports.AccessLogRepository) *LinkService {
	return &LinkService{
		links: links,
		logs:  logs,
		now:   time.Now,
	}
}

func (s *LinkService) Shorten(ctx context.Context, originalURL string, expiry time.Duration, password string) (string, error) {
	normalized, err := normalizeURL(originalURL)
	if err != nil {
		return "", err
	}

	if expiry == 0 {
		expiry = DefaultExpiry
	}
	if expiry < 0 {
		return "", fmt.Errorf("%w: expiry must be positive", domain.ErrInvalidInput)
	}

	code := generateShortCode(normalized)
	now := s.now()

	link := &domain.Link{
		OriginalURL: normalized,
		ShortCode:   code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(expiry),
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		link.PasswordHash = string(hash)
	}

	created, err := s.links.Create(ctx, link)
	if err != nil {
		return "", err
	}
	if !created {
		// Same code already stored. The existing record is kept as-is and the
		// caller still gets the code back.
		log.Printf("Short code already exists, keeping existing record: %s", code)
	}

	return code, nil
}

func (s *LinkService) Resolve(ctx context.Context, code, callerIP string) (*domain.Resolution, error) {
	link, err := s.links.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}

	if link.Expired(s.now()) {
		return nil, domain.ErrLinkExpired
	}

	if link.Protected() {
		// Do not reveal the target and do not count this as an access.
		return &domain.Resolution{PasswordRequired: true}, nil
	}

	if err := s.recordAccess(ctx, code, callerIP); err != nil {
		return nil, err
	}

	return &domain.Resolution{OriginalURL: link.OriginalURL}, nil
}

func (s *LinkService) ValidateAndResolve(ctx context.Context, code, password, ipMarker string) (string, error) {
	link, err := s.links.GetByShortCode(ctx, code)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", domain.ErrNotFound
	}

	if err := verifyPassword(link, password); err != nil {
		return "", err
	}

	if err := s.recordAccess(ctx, code, ipMarker); err != nil {
		return "", err
	}

	return link.OriginalURL, nil
}

func (s *LinkService) recordAccess(ctx context.Context, code, ip string) error {
	entry := &domain.AccessLogEntry{
		ShortCode:  code,
		AccessedAt: s.now(),
		IPAddress:  ip,
	}
	if err := s.logs.Record(ctx, entry); err != nil {
		return fmt.Errorf("record access: %w", err)
	}
	return nil
}

// verifyPassword enforces the per-request password gate. A link without a
// password rejects validation outright: there is nothing to validate against.
func verifyPassword(link *domain.Link, password string) error {
	if !link.Protected() {
		return domain.ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)) != nil {
		return domain.ErrForbidden
	}
	return nil
}

// normalizeURL checks syntactic well-formedness and returns the canonical
// string used for code generation and storage.
func normalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: http or https URL required", domain.ErrInvalidInput)
	}
	return u.String(), nil
}

// generateShortCode maps a normalized URL to its fixed-width code: the hex
// SHA-256 digest truncated to 8 characters. Deterministic, so re-shortening
// the same URL is idempotent. Distinct URLs sharing a prefix collide and the
// first stored record wins; that is accepted behavior.
func generateShortCode(normalizedURL string) string {
	sum := sha256.Sum256([]byte(normalizedURL))
	return hex.EncodeToString(sum[:])[:shortCodeLength]
}

var _ ports.LinkService = (*LinkService)(nil)
