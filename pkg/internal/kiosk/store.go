package kiosk

import (
	"sync"
	"time"
)

// Sessions must survive page reloads within one browser session but not
// longer; an idle session is dropped after this long.
const sessionLifetime = 12 * time.Hour

// SessionStore keeps live sessions addressable by their id so a reload of
// the kiosk page picks up the same flow, including the per-venue auth flags.
// Sessions are owned here, not cached: a lookup by a known id must never
// miss while the session is alive, so entries sit in a guarded map and only
// leave it on expiry or explicit deletion.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

type sessionEntry struct {
	session  *Session
	deadline time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

// Get returns the live session for id. Touching a session pushes its
// deadline out, so an active kiosk never expires mid-flow.
func (ss *SessionStore) Get(id string) (*Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	entry, ok := ss.entries[id]
	if !ok {
		return nil, false
	}
	if ss.now().After(entry.deadline) {
		delete(ss.entries, id)
		entry.session.Close()
		return nil, false
	}

	entry.deadline = ss.now().Add(sessionLifetime)
	return entry.session, true
}

func (ss *SessionStore) Put(session *Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.purgeLocked()
	ss.entries[session.ID] = &sessionEntry{
		session:  session,
		deadline: ss.now().Add(sessionLifetime),
	}
}

func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if entry, ok := ss.entries[id]; ok {
		entry.session.Close()
		delete(ss.entries, id)
	}
}

// purgeLocked sweeps expired sessions so abandoned kiosks cannot pin
// memory forever.
func (ss *SessionStore) purgeLocked() {
	for id, entry := range ss.entries {
		if ss.now().After(entry.deadline) {
			entry.session.Close()
			delete(ss.entries, id)
		}
	}
}
