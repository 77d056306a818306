package services

import (
	"context"
	"time"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

type AnalyticsService struct {
	links ports.LinkRepository
	logs  ports.AccessLogRepository
	now   func() time.Time
}

func NewAnalyticsService(links ports.LinkRepository, logs ports.AccessLogRepository) *AnalyticsService {
	return &AnalyticsService{
		links: links,
		logs:  logs,
		now:   time.Now,
	}
}

// GetReport serves the header-authenticated analytics read. It never writes
// an access log entry.
func (s *AnalyticsService) GetReport(ctx context.Context, code, credential string) (*domain.Report, error) {
	link, err := s.links.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}

	if link.Protected() {
		if credential == "" {
			return nil, domain.ErrPasswordRequired
		}
		if err := verifyPassword(link, credential); err != nil {
			return nil, err
		}
	}

	return s.buildReport(ctx, link)
}

// ValidateAndReport serves the form-submitted analytics path. Unlike
// GetReport, a successful validation is itself an access event and is logged
// under the sentinel marker.
func (s *AnalyticsService) ValidateAndReport(ctx context.Context, code, password string) (*domain.Report, error) {
	link, err := s.links.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}

	if err := verifyPassword(link, password); err != nil {
		return nil, err
	}

	entry := &domain.AccessLogEntry{
		ShortCode:  code,
		AccessedAt: s.now(),
		IPAddress:  domain.ValidatedAccessMarker,
	}
	if err := s.logs.Record(ctx, entry); err != nil {
		return nil, err
	}

	return s.buildReport(ctx, link)
}

func (s *AnalyticsService) buildReport(ctx context.Context, link *domain.Link) (*domain.Report, error) {
	entries, err := s.logs.ListByShortCode(ctx, link.ShortCode)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		AccessCount: len(entries),
		AccessLogs:  entries,
	}, nil
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
