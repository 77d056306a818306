package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
)

var dbSeq int

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq)
	repo, err := NewSQLiteRepository(dsn)
	require.NoError(t, err)
	return repo
}

func testLink(code string) *domain.Link {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Link{
		OriginalURL: "http://example.com",
		ShortCode:   code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(24 * time.Hour),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	link := testLink("abcd1234")
	link.PasswordHash = "$2a$10$fakehashfakehashfakehash"

	created, err := repo.Create(ctx, link)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, link.ID)

	got, err := repo.GetByShortCode(ctx, "abcd1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, link.OriginalURL, got.OriginalURL)
	assert.Equal(t, link.PasswordHash, got.PasswordHash)
	assert.True(t, link.ExpiresAt.Equal(got.ExpiresAt))
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByShortCode(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDuplicateIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testLink("abcd1234")
	created, err := repo.Create(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	// Same code, different URL: the original record must survive untouched.
	second := testLink("abcd1234")
	second.OriginalURL = "http://other.example.com"

	created, err = repo.Create(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetByShortCode(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", got.OriginalURL)

	links, err := repo.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestNullPasswordHash(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testLink("abcd1234"))
	require.NoError(t, err)

	got, err := repo.GetByShortCode(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
	assert.False(t, got.Protected())
}

func TestAccessLogOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testLink("abcd1234"))
	require.NoError(t, err)

	base := time.Now().UTC().Truncate(time.Second)
	ips := []string{"10.0.0.1", "10.0.0.2", "Validated Access"}
	for i, ip := range ips {
		err := repo.Record(ctx, &domain.AccessLogEntry{
			ShortCode:  "abcd1234",
			AccessedAt: base.Add(time.Duration(i) * time.Second),
			IPAddress:  ip,
		})
		require.NoError(t, err)
	}

	entries, err := repo.ListByShortCode(ctx, "abcd1234")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, ip := range ips {
		assert.Equal(t, ip, entries[i].IPAddress)
	}

	// Entries are scoped per code.
	entries, err = repo.ListByShortCode(ctx, "other000")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
