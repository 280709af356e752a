package store

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore is the database-backed credential store. The UNIQUE constraint
// on username makes Register an atomic check-then-insert.
type SQLiteStore struct {
	conn *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	query := `CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`
	if _, err := conn.Exec(query); err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Lookup(username string) (string, error) {
	var password string
	err := s.conn.QueryRow("SELECT password FROM users WHERE username = ?", username).Scan(&password)
	if err == sql.ErrNoRows {
		return "", ErrUnknownUser
	}
	if err != nil {
		return "", err
	}
	return password, nil
}

func (s *SQLiteStore) Register(username, password string) error {
	_, err := s.conn.Exec("INSERT INTO users (username, password) VALUES (?, ?)", username, password)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrUserExists
	}
	return err
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
