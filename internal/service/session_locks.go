package service

import "sync"

// SessionLocks serializes work on the same session while letting different
// sessions proceed in parallel. Every path that reads-modifies-writes a
// session acquires its mutex around repository access; no lock is ever held
// across a model or search call.
type SessionLocks struct {
	locks sync.Map
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{}
}

func (l *SessionLocks) lockFor(sessionId string) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(sessionId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
