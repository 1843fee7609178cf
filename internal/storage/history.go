package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/placefind/placefind/internal/model"
)

// Store persists completed searches and their normalized records so past
// results can be reopened without hitting the service again.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// SearchEntry is one row of search history.
type SearchEntry struct {
	ID          string
	Query       string
	QueryType   model.QueryType
	ResultCount int
	Message     string
	CreatedAt   time.Time
}

func NewStore(dbPath string) (*Store, error) {
	os.MkdirAll(filepath.Dir(dbPath), 0o755)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		query_type TEXT NOT NULL,
		result_count INTEGER NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS places (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		search_id TEXT NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		place_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		rating REAL,
		rating_count INTEGER,
		phone TEXT,
		website TEXT,
		opening_hours TEXT,
		lat REAL,
		lng REAL
	);
	CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at);
	CREATE INDEX IF NOT EXISTS idx_places_search ON places(search_id, position);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveSearch records a resolved response and its records in one transaction,
// returning the new entry's id.
func (s *Store) SaveSearch(query string, resp model.SearchResponse) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning tx: %w", err)
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO searches (id, query, query_type, result_count, message, created_at) VALUES (?,?,?,?,?,?)`,
		id, query, string(resp.QueryType), len(resp.Records), resp.Message, time.Now().UnixNano(),
	)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("inserting search: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO places
		(search_id, position, place_id, name, address, rating, rating_count, phone, website, opening_hours, lat, lng)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("preparing stmt: %w", err)
	}
	defer stmt.Close()

	for pos, rec := range resp.Records {
		var hours *string
		if rec.OpeningHours != nil {
			if data, err := json.Marshal(rec.OpeningHours); err == nil {
				h := string(data)
				hours = &h
			}
		}
		_, err := stmt.Exec(
			id, pos, rec.ID, rec.Name, rec.Address,
			rec.Rating, rec.RatingCount, rec.Phone, rec.Website,
			hours, rec.Lat, rec.Lng,
		)
		if err != nil {
			tx.Rollback()
			return "", fmt.Errorf("inserting place: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing tx: %w", err)
	}
	return id, nil
}

// Recent returns history entries, newest first.
func (s *Store) Recent(limit int) ([]SearchEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, query, query_type, result_count, message, created_at
		FROM searches ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		var qt string
		var created int64
		if err := rows.Scan(&e.ID, &e.Query, &qt, &e.ResultCount, &e.Message, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.QueryType = model.QueryType(qt)
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Places returns the saved records for one search, in rank order.
func (s *Store) Places(searchID string) ([]model.PlaceRecord, error) {
	rows, err := s.db.Query(`
		SELECT place_id, name, address, rating, rating_count, phone, website, opening_hours, lat, lng
		FROM places WHERE search_id = ? ORDER BY position`, searchID)
	if err != nil {
		return nil, fmt.Errorf("querying places: %w", err)
	}
	defer rows.Close()

	var records []model.PlaceRecord
	for rows.Next() {
		var rec model.PlaceRecord
		var rating, lat, lng sql.NullFloat64
		var ratingCount sql.NullInt64
		var phone, website, hours sql.NullString
		err := rows.Scan(&rec.ID, &rec.Name, &rec.Address, &rating, &ratingCount, &phone, &website, &hours, &lat, &lng)
		if err != nil {
			return nil, fmt.Errorf("scanning place row: %w", err)
		}
		if rating.Valid {
			rec.Rating = &rating.Float64
		}
		if ratingCount.Valid {
			n := int(ratingCount.Int64)
			rec.RatingCount = &n
		}
		if phone.Valid {
			rec.Phone = &phone.String
		}
		if website.Valid {
			rec.Website = &website.String
		}
		if hours.Valid {
			json.Unmarshal([]byte(hours.String), &rec.OpeningHours)
		}
		if lat.Valid && lng.Valid {
			rec.Lat = &lat.Float64
			rec.Lng = &lng.Float64
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
