// Package store persists scored submissions in SQLite for audit.
//
// The scoring engine itself keeps nothing across sessions; the archive lives
// on the collector side so operators can review verdicts, tune thresholds
// against real traffic, and investigate disputed registrations.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"botsense/internal/tracker"
)

// Schema for the submission archive.
const schema = `
CREATE TABLE IF NOT EXISTS submissions (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id    TEXT NOT NULL UNIQUE,
    created_at    INTEGER NOT NULL,
    suspicious    INTEGER NOT NULL,
    score         INTEGER NOT NULL,
    reasons       TEXT NOT NULL,
    user_agent    TEXT,
    payload       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
CREATE INDEX IF NOT EXISTS idx_submissions_verdict ON submissions(suspicious, score);
`

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submission not found")

// Submission is one archived scoring result.
type Submission struct {
	ID         int64           `json:"id"`
	SessionID  string          `json:"session_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Suspicious bool            `json:"suspicious"`
	Score      int             `json:"score"`
	Reasons    []string        `json:"reasons"`
	UserAgent  string          `json:"user_agent,omitempty"`
	Payload    tracker.Payload `json:"payload"`
}

// Store is the SQLite submission archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSubmission archives a scored payload and returns its row ID.
func (s *Store) SaveSubmission(p tracker.Payload, createdAt time.Time) (int64, error) {
	reasons, err := json.Marshal(p.Report.Reasons)
	if err != nil {
		return 0, fmt.Errorf("marshal reasons: %w", err)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO submissions (session_id, created_at, suspicious, score, reasons, user_agent, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, createdAt.UnixMilli(), boolToInt(p.Report.Suspicious),
		p.Report.Score, string(reasons), p.Client.UserAgent, string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// GetSubmission retrieves a submission by session ID.
func (s *Store) GetSubmission(sessionID string) (*Submission, error) {
	row := s.db.QueryRow(`
		SELECT id, session_id, created_at, suspicious, score, reasons, user_agent, payload
		FROM submissions WHERE session_id = ?`, sessionID)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// ListSubmissions returns the most recent submissions, newest first.
func (s *Store) ListSubmissions(limit int) ([]*Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, created_at, suspicious, score, reasons, user_agent, payload
		FROM submissions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// VerdictCounts returns how many archived submissions were flagged and how
// many were clean.
func (s *Store) VerdictCounts() (suspicious, clean int64, err error) {
	err = s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN suspicious = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN suspicious = 0 THEN 1 ELSE 0 END), 0)
		FROM submissions`).Scan(&suspicious, &clean)
	if err != nil {
		return 0, 0, fmt.Errorf("count verdicts: %w", err)
	}
	return suspicious, clean, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r rowScanner) (*Submission, error) {
	var (
		sub        Submission
		createdMs  int64
		suspicious int
		reasons    string
		payload    string
	)
	if err := r.Scan(&sub.ID, &sub.SessionID, &createdMs, &suspicious,
		&sub.Score, &reasons, &sub.UserAgent, &payload); err != nil {
		return nil, err
	}
	sub.CreatedAt = time.UnixMilli(createdMs)
	sub.Suspicious = suspicious != 0
	if err := json.Unmarshal([]byte(reasons), &sub.Reasons); err != nil {
		return nil, fmt.Errorf("decode reasons: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &sub.Payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &sub, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
