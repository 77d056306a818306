package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/Prashantshurpalii/url-shortner/pkg/core/domain"
	"github.com/Prashantshurpalii/url-shortner/pkg/ports"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		original_url TEXT NOT NULL,
		short_code TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		password_hash TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_links_short_code ON links(short_code);

	CREATE TABLE IF NOT EXISTS access_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		short_code TEXT NOT NULL,
		accessed_at DATETIME NOT NULL,
		ip_address TEXT NOT NULL,
		FOREIGN KEY(short_code) REFERENCES links(short_code)
	);
	CREATE INDEX IF NOT EXISTS idx_access_logs_short_code ON access_logs(short_code);
	`
	_, err := db.Exec(query)
	return err
}

// Create inserts the link. A row with the same short code is left untouched:
// the UNIQUE constraint plus OR IGNORE makes the first writer win and turns
// every later insert into a no-op, including concurrent ones.
func (r *SQLiteRepository) Create(ctx context.Context, link *domain.Link) (bool, error) {
	query := `INSERT OR IGNORE INTO links (original_url, short_code, created_at, expires_at, password_hash)
			  VALUES (?, ?, ?, ?, ?)`

	var passwordHash sql.NullString
	if link.PasswordHash != "" {
		passwordHash = sql.NullString{String: link.PasswordHash, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, link.OriginalURL, link.ShortCode, link.CreatedAt, link.ExpiresAt, passwordHash)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	link.ID = id
	return true, nil
}

func (r *SQLiteRepository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT id, original_url, short_code, created_at, expires_at, password_hash
			  FROM links WHERE short_code = ?`

	var link domain.Link
	var passwordHash sql.NullString

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&link.ID, &link.OriginalURL, &link.ShortCode,
		&link.CreatedAt, &link.ExpiresAt, &passwordHash,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if passwordHash.Valid {
		link.PasswordHash = passwordHash.String
	}
	return &link, nil
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	query := `SELECT id, original_url, short_code, created_at, expires_at, password_hash FROM links`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		var passwordHash sql.NullString
		if err := rows.Scan(&l.ID, &l.OriginalURL, &l.ShortCode, &l.CreatedAt, &l.ExpiresAt, &passwordHash); err != nil {
			return nil, err
		}
		if passwordHash.Valid {
			l.PasswordHash = passwordHash.String
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *SQLiteRepository) Record(ctx context.Context, entry *domain.AccessLogEntry) error {
	query := `INSERT INTO access_logs (short_code, accessed_at, ip_address) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, entry.ShortCode, entry.AccessedAt, entry.IPAddress)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// ListByShortCode orders by the autoincrement id so a report always sees the
// entries in the order they were appended.
func (r *SQLiteRepository) ListByShortCode(ctx context.Context, code string) ([]domain.AccessLogEntry, error) {
	query := `SELECT id, short_code, accessed_at, ip_address
			  FROM access_logs WHERE short_code = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AccessLogEntry
	for rows.Next() {
		var e domain.AccessLogEntry
		if err := rows.Scan(&e.ID, &e.ShortCode, &e.AccessedAt, &e.IPAddress); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Ensure interface compliance
var (
	_ ports.LinkRepository      = (*SQLiteRepository)(nil)
	_ ports.AccessLogRepository = (*SQLiteRepository)(nil)
)
