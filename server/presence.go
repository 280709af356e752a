package server

import (
	"errors"
	"log"
	"sort"
	"sync"
)

var ErrAlreadyOnline = errors.New("user already logged in")

// Sink is a place to write one outbound line for a connection.
type Sink interface {
	WriteLine(line string) error
}

// Registry maps online usernames to their connection's sink. A username is
// present exactly while one connection is authenticated as that user. All
// access goes through the atomic operations below; the map is never exposed.
type Registry struct {
	mu     sync.RWMutex
	online map[string]Sink
}

func NewRegistry() *Registry {
	return &Registry{online: make(map[string]Sink)}
}

// Add registers a sink under username, or returns ErrAlreadyOnline. Callers
// verify credentials before calling; two concurrent logins for the same
// username get exactly one success.
func (r *Registry) Add(username string, sink Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.online[username]; ok {
		return ErrAlreadyOnline
	}
	r.online[username] = sink
	return nil
}

// Remove deletes the username's entry and reports whether this call removed
// it. Racing exit paths (LOGOUT vs. disconnect cleanup) use the result to
// announce the departure exactly once.
func (r *Registry) Remove(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.online[username]; !ok {
		return false
	}
	delete(r.online, username)
	return true
}

func (r *Registry) Lookup(username string) (Sink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sink, ok := r.online[username]
	return sink, ok
}

// Online returns a sorted snapshot of the usernames currently registered.
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.online))
	for username := range r.online {
		names = append(names, username)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.online)
}

// Broadcast sends message to every registered sink except the excluded
// username (empty excludes nobody). Delivery is best effort: a failed send
// is logged and the remaining recipients still get the message.
func (r *Registry) Broadcast(message, exclude string) {
	r.mu.RLock()
	recipients := make(map[string]Sink, len(r.online))
	for username, sink := range r.online {
		if username != exclude {
			recipients[username] = sink
		}
	}
	r.mu.RUnlock()

	for username, sink := range recipients {
		if err := sink.WriteLine(message); err != nil {
			log.Printf("Broadcast to %s failed: %v", username, err)
		}
	}
}
