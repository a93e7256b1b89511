// Package session persists the local identity and onboarding answers in a
// SQLite database, so a user who reopens the app is recognized and keeps the
// preferences they already answered.
package session

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

const (
	keyUserID      = "user_id"
	keyPreferences = "preferences"
)

// Store implements a SQLite store for session state.
type Store struct {
	db *sql.DB
}

// New store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Create session table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			update_timestamp INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating session table")
	}

	return &Store{
		db: db,
	}, nil
}

// UserID returns the stored identity, or "" if none has been issued yet.
func (s *Store) UserID() (string, error) {
	return s.get(keyUserID)
}

// SetUserID records the identity issued by the server.
func (s *Store) SetUserID(userID string) error {
	return s.set(keyUserID, userID)
}

// Preferences returns the stored onboarding answers, or nil if onboarding
// has not completed yet.
func (s *Store) Preferences() ([]trip.QuestionAnswer, error) {
	value, err := s.get(keyPreferences)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	var answers []trip.QuestionAnswer
	if err := json.Unmarshal([]byte(value), &answers); err != nil {
		return nil, errors.Wrap(err, "unmarshaling preferences")
	}
	return answers, nil
}

// SetPreferences records the onboarding answers.
func (s *Store) SetPreferences(answers []trip.QuestionAnswer) error {
	value, err := json.Marshal(answers)
	if err != nil {
		return errors.Wrap(err, "marshaling preferences")
	}
	return s.set(keyPreferences, string(value))
}

// ClearPreferences drops the stored answers, forcing onboarding on the next
// trip created or joined.
func (s *Store) ClearPreferences() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, keyPreferences)
	if err != nil {
		return errors.Wrap(err, "deleting preferences")
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM session WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "querying session")
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	// Use REPLACE INTO to handle both insert and update cases
	_, err := s.db.Exec(`
		REPLACE INTO session (key, value, update_timestamp)
		VALUES (?, ?, ?)
	`, key, value, time.Now().UnixMicro())
	if err != nil {
		return errors.Wrap(err, "writing session value")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
