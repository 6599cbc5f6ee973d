// Package store handles server-side persistence of users, chats, and
// generated forms using SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the database at the given path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

// init creates the necessary tables if they don't exist
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			email               TEXT NOT NULL UNIQUE,
			password_hash       TEXT NOT NULL,
			is_verified         INTEGER NOT NULL DEFAULT 0,
			verification_token  TEXT,
			created_at          TEXT NOT NULL,
			verified_at         TEXT
		);

		CREATE TABLE IF NOT EXISTS chats (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			question  TEXT NOT NULL,
			answer    TEXT NOT NULL,
			language  TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS forms (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			form_type      TEXT NOT NULL,
			form_text      TEXT NOT NULL,
			responses_json TEXT NOT NULL,
			timestamp      TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_chats_timestamp ON chats(timestamp);
		CREATE INDEX IF NOT EXISTS idx_forms_timestamp ON forms(timestamp);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user and returns its id.
func (s *Store) CreateUser(email, passwordHash, verificationToken string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		INSERT INTO users (email, password_hash, verification_token, created_at)
		VALUES (?, ?, ?, ?)
	`, email, passwordHash, verificationToken, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetUserByEmail returns the user with the given email, or nil when no
// such user exists.
func (s *Store) GetUserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanUser(s.db.QueryRow(`
		SELECT id, email, password_hash, is_verified, verification_token, created_at, verified_at
		FROM users WHERE email = ?
	`, email))
}

// GetUserByVerificationToken looks a user up by their pending
// verification token.
func (s *Store) GetUserByVerificationToken(token string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanUser(s.db.QueryRow(`
		SELECT id, email, password_hash, is_verified, verification_token, created_at, verified_at
		FROM users WHERE verification_token = ?
	`, token))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var isVerified int
	var verificationToken, verifiedAt sql.NullString
	var createdAt string

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &isVerified, &verificationToken, &createdAt, &verifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.IsVerified = isVerified != 0
	u.VerificationToken = verificationToken.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	}
	if verifiedAt.Valid {
		if t, err := time.Parse(time.RFC3339, verifiedAt.String); err == nil {
			u.VerifiedAt = &t
		}
	}
	return &u, nil
}

// SetUserVerified marks a user as verified.
func (s *Store) SetUserVerified(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE users SET is_verified = 1, verified_at = ?, verification_token = NULL WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), userID)
	return err
}

// InsertChat records one answered question.
func (s *Store) InsertChat(question, answer, language string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO chats (question, answer, language, timestamp) VALUES (?, ?, ?, ?)
	`, question, answer, language, timestamp.UTC().Format(time.RFC3339))
	return err
}

// InsertForm records one generated document.
func (s *Store) InsertForm(formType, formText string, responses map[string]string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO forms (form_type, form_text, responses_json, timestamp) VALUES (?, ?, ?, ?)
	`, formType, formText, string(responsesJSON), timestamp.UTC().Format(time.RFC3339))
	return err
}

// ChatFilter narrows a chat listing. Zero values mean "no constraint".
type ChatFilter struct {
	Start    string
	End      string
	Language string
	Query    string
}

// Chats returns recorded chats, newest first, honoring the filter.
func (s *Store) Chats(f ChatFilter) ([]Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, question, answer, language, timestamp FROM chats WHERE 1=1`
	var args []any
	if f.Start != "" {
		query += ` AND timestamp >= ?`
		args = append(args, f.Start)
	}
	if f.End != "" {
		query += ` AND timestamp <= ?`
		args = append(args, f.End)
	}
	if f.Language != "" {
		query += ` AND language = ?`
		args = append(args, f.Language)
	}
	if f.Query != "" {
		query += ` AND (question LIKE ? OR answer LIKE ?)`
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		var ts string
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &c.Language, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			c.Timestamp = t
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// FormFilter narrows a form listing. Zero values mean "no constraint".
type FormFilter struct {
	Start    string
	End      string
	FormType string
	Query    string
}

// Forms returns recorded forms, newest first, honoring the filter.
func (s *Store) Forms(f FormFilter) ([]Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, form_type, form_text, responses_json, timestamp FROM forms WHERE 1=1`
	var args []any
	if f.Start != "" {
		query += ` AND timestamp >= ?`
		args = append(args, f.Start)
	}
	if f.End != "" {
		query += ` AND timestamp <= ?`
		args = append(args, f.End)
	}
	if f.FormType != "" {
		query += ` AND form_type = ?`
		args = append(args, f.FormType)
	}
	if f.Query != "" {
		query += ` AND form_text LIKE ?`
		args = append(args, "%"+f.Query+"%")
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []Form
	for rows.Next() {
		var fm Form
		var responsesJSON, ts string
		if err := rows.Scan(&fm.ID, &fm.FormType, &fm.FormText, &responsesJSON, &ts); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(responsesJSON), &fm.Responses)
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			fm.Timestamp = t
		}
		forms = append(forms, fm)
	}
	return forms, rows.Err()
}
