package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSQLiteRegisterAndLookup(t *testing.T) {
	s := newSQLiteStore(t)

	require.NoError(t, s.Register("alice", "pw1"))

	password, err := s.Lookup("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw1", password)
}

func TestSQLiteLookupUnknown(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.Lookup("nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSQLiteRegisterDuplicate(t *testing.T) {
	s := newSQLiteStore(t)

	require.NoError(t, s.Register("alice", "pw1"))
	assert.ErrorIs(t, s.Register("alice", "pw2"), ErrUserExists)

	password, err := s.Lookup("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw1", password)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Register("alice", "pw1"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	password, err := reopened.Lookup("alice")
	require.NoError(t, err)
	assert.Equal(t, "pw1", password)
}
