package store

import (
	"os"
	"strings"
	"sync"
)

// FileStore keeps credentials in memory, backed by an append-only text file
// with one "username,password" record per line. The file is read fully on
// open; every successful Register appends one record before returning.
type FileStore struct {
	mu    sync.RWMutex
	users map[string]string
	file  *os.File
}

func OpenFile(path string) (*FileStore, error) {
	users := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		username, password, ok := strings.Cut(line, ",")
		if !ok || username == "" {
			continue
		}
		users[username] = password
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &FileStore{users: users, file: file}, nil
}

func (s *FileStore) Lookup(username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	password, ok := s.users[username]
	if !ok {
		return "", ErrUnknownUser
	}
	return password, nil
}

func (s *FileStore) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}

	// Append before acknowledging, so a record reported as registered is
	// always on disk.
	if _, err := s.file.WriteString(username + "," + password + "\n"); err != nil {
		return err
	}
	if err := s.file.Sync(); err != nil {
		return err
	}

	s.users[username] = password
	return nil
}

func (s *FileStore) Close() error {
	return s.file.Close()
}
