package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

const keyPrefix = "link:"

// cachedLink is the Redis envelope for a link record. It exists because
// domain.Link deliberately drops the password hash from its JSON form, and
// the cache must round-trip the full record.
type cachedLink struct {
	ID           int64     `json:"id"`
	OriginalURL  string    `json:"original_url"`
	ShortCode    string    `json:"short_code"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	PasswordHash string    `json:"password_hash,omitempty"`
}

// LinkCache is a read-through cache over a LinkRepository. Link records never
// mutate after creation, so cached entries cannot go stale; expiry is still
// enforced by the service layer on every resolve. All cache failures fall
// through to the inner repository.
type LinkCache struct {
	inner  ports.LinkRepository
	client *redis.Client
	ttl    time.Duration
}

func NewLinkCache(inner ports.LinkRepository, client *redis.Client, ttl time.Duration) *LinkCache {
	return &LinkCache{inner: inner, client: client, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection, accepting either
// a redis:// URL or a bare host:port.
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *LinkCache) Create(ctx context.Context, link *domain.Link) (bool, error) {
	created, err := c.inner.Create(ctx, link)
	if err != nil {
		return false, err
	}
	if created {
		c.store(ctx, link)
	}
	return created, nil
}

func (c *LinkCache) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	if link, ok := c.lookup(ctx, code); ok {
		return link, nil
	}

	link, err := c.inner.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link != nil {
		c.store(ctx, link)
	}
	return link, nil
}

func (c *LinkCache) Dump(ctx context.Context) ([]domain.Link, error) {
	return c.inner.Dump(ctx)
}

func (c *LinkCache) lookup(ctx context.Context, code string) (*domain.Link, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+code).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache get failed for %s: %v", code, err)
		}
		return nil, false
	}

	var rec cachedLink
	if err := json.Unmarshal(payload, &rec); err != nil {
		log.Printf("Cache entry for %s is corrupt, ignoring: %v", code, err)
		return nil, false
	}

	return &domain.Link{
		ID:           rec.ID,
		OriginalURL:  rec.OriginalURL,
		ShortCode:    rec.ShortCode,
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
		PasswordHash: rec.PasswordHash,
	}, true
}

func (c *LinkCache) store(ctx context.Context, link *domain.Link) {
	payload, err := json.Marshal(cachedLink{
		ID:           link.ID,
		OriginalURL:  link.OriginalURL,
		ShortCode:    link.ShortCode,
		CreatedAt:    link.CreatedAt,
		ExpiresAt:    link.ExpiresAt,
		PasswordHash: link.PasswordHash,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+link.ShortCode, payload, c.ttl).Err(); err != nil {
		log.Printf("Cache set failed for %s: %v", link.ShortCode, err)
	}
}

var _ ports.LinkRepository = (*LinkCache)(nil)
