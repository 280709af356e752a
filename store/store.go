// Package store holds the durable username/password mapping the server
// authenticates against. Two backends exist: an append-only text file and
// SQLite. Passwords are opaque strings, stored and compared verbatim.
package store

import "errors"

var (
	ErrUserExists  = errors.New("username already exists")
	ErrUnknownUser = errors.New("unknown user")
)

// Credentials is the credential store capability: lookup and registration.
// Implementations must make Register an atomic check-then-insert and must
// persist the record durably before reporting success.
type Credentials interface {
	// Lookup returns the stored password, or ErrUnknownUser.
	Lookup(username string) (string, error)
	// Register creates the user, or returns ErrUserExists. Existing records
	// are never overwritten.
	Register(username, password string) error
	Close() error
}
