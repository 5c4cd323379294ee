package repository

import (
	"sync"
	"time"

	"roomdesk/internal/domains/page/session"
)

// Page keeps open page sessions in process memory.
type Page interface {
	Save(s *session.Session)
	Get(id string) (*session.Session, bool)
	Delete(id string) (*session.Session, bool)
	// Expired removes and returns the sessions that are finished or idle past ttl.
	Expired(now time.Time, ttl time.Duration) []*session.Session
	// Drain removes and returns every session.
	Drain() []*session.Session
	Count() int
}

type repositoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func New() Page {
	return &repositoryImpl{
		sessions: make(map[string]*session.Session),
	}
}

func (r *repositoryImpl) Save(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s
}

func (r *repositoryImpl) Get(id string) (*session.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]

	return s, ok
}

func (r *repositoryImpl) Delete(id string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}

	return s, ok
}

func (r *repositoryImpl) Expired(now time.Time, ttl time.Duration) []*session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*session.Session

	for id, s := range r.sessions {
		if s.Expired(now, ttl) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}

	return expired
}

func (r *repositoryImpl) Drain() []*session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}

	r.sessions = make(map[string]*session.Session)

	return all
}

func (r *repositoryImpl) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
