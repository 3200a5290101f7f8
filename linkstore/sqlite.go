package linkstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// StoreOption configures a SQLite Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store. When set, the store
// emits debug logs for every operation including timing and row counts.
// If not set, no logs are emitted.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// Store records extraction history in a local SQLite file. All
// goroutines serialize through a single connection, which eliminates
// SQLITE_BUSY errors from concurrent writers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// nopLogger is a logger that discards all output.
var nopLogger = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// New creates a Store using a local SQLite file at dbPath. The database
// runs in WAL mode with a five second busy timeout.
func New(dbPath string, opts ...StoreOption) *Store {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		// sql.Open only fails when the driver is not registered; with the
		// blank import above that never happens.
		panic(fmt.Sprintf("sqlite: open driver: %v", err))
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, logger: nopLogger}
	for _, o := range opts {
		o(s)
	}
	s.logger.Debug("link store opened", "path", dbPath)
	return s
}

// Init creates all required tables.
func (s *Store) Init(ctx context.Context) error {
	start := time.Now()
	tables := []string{
		`CREATE TABLE IF NOT EXISTS extractions (
			id TEXT PRIMARY KEY,
			file_path TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			char_count INTEGER NOT NULL,
			link_count INTEGER NOT NULL,
			report_path TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY,
			extraction_id TEXT NOT NULL,
			link TEXT NOT NULL,
			link_type TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
	}

	for _, ddl := range tables {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	_, _ = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_links_extraction ON links(extraction_id)`)
	_, _ = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_extractions_path ON extractions(file_path)`)

	s.logger.Debug("link store initialized", "elapsed", time.Since(start))
	return nil
}

// Extraction is one extraction run to record.
type Extraction struct {
	FilePath   string
	MIMEType   string
	CharCount  int
	ReportPath string
	Links      []LinkRecord
}

// RecordExtraction stores one extraction and its links, returning the
// generated extraction ID.
func (s *Store) RecordExtraction(ctx context.Context, ext Extraction) (string, error) {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO extractions (id, file_path, mime_type, char_count, link_count, report_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ext.FilePath, ext.MIMEType, ext.CharCount, len(ext.Links), ext.ReportPath, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert extraction: %w", err)
	}

	for _, rec := range ext.Links {
		recID := rec.ID
		if recID == "" {
			recID = newID()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO links (id, extraction_id, link, link_type, position) VALUES (?, ?, ?, ?, ?)`,
			recID, id, rec.Link, rec.Type, rec.Position)
		if err != nil {
			return "", fmt.Errorf("insert link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit extraction: %w", err)
	}

	s.logger.Debug("extraction recorded",
		"id", id, "file", ext.FilePath, "links", len(ext.Links), "elapsed", time.Since(start))
	return id, nil
}

// StoredLink is one link row joined with its extraction metadata.
type StoredLink struct {
	Link      string    `json:"link"`
	Type      string    `json:"type"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchLinks returns stored links whose text contains term, most recent
// extraction first. An empty term matches everything.
func (s *Store) SearchLinks(ctx context.Context, term string) ([]StoredLink, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx,
		`SELECT l.link, l.link_type, e.file_path, e.created_at
		 FROM links l
		 JOIN extractions e ON e.id = l.extraction_id
		 WHERE l.link LIKE ?
		 ORDER BY e.created_at DESC, l.position`,
		"%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var found []StoredLink
	for rows.Next() {
		var sl StoredLink
		var createdAt int64
		if err := rows.Scan(&sl.Link, &sl.Type, &sl.FilePath, &createdAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		sl.CreatedAt = time.Unix(createdAt, 0).UTC()
		found = append(found, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}

	s.logger.Debug("link search finished",
		"term", term, "rows", len(found), "elapsed", time.Since(start))
	return found, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.logger.Debug("link store closed")
	return s.db.Close()
}
