package restapi

import (
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionFactory creates a fresh analysis session.
type SessionFactory func() port.AnalysisSession

// SessionStore keeps analysis sessions in memory. A session expires after
// ttl without access and is closed when it leaves the store.
type SessionStore struct {
	cache   *cache.Cache
	factory SessionFactory
	logger  port.Logger
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity.
func NewSessionStore(ttl, cleanupInterval time.Duration, factory SessionFactory, logger port.Logger) *SessionStore {
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(id string, value interface{}) {
		if session, ok := value.(port.AnalysisSession); ok {
			session.Close()
		}
		metrics.ActiveSessions.Dec()
		logger.Debug("Session evicted", "session_id", id)
	})
	return &SessionStore{cache: c, factory: factory, logger: logger}
}

// Create registers a new session and returns its id.
func (s *SessionStore) Create() (string, port.AnalysisSession) {
	id := uuid.NewString()
	session := s.factory()
	s.cache.SetDefault(id, session)
	metrics.ActiveSessions.Inc()
	s.logger.Debug("Session created", "session_id", id)
	return id, session
}

// Get returns the session and extends its lifetime. A session evicted
// concurrently is reported as not found rather than stored again.
func (s *SessionStore) Get(id string) (port.AnalysisSession, bool) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	session, ok := value.(port.AnalysisSession)
	if !ok {
		return nil, false
	}
	if err := s.cache.Replace(id, session, cache.DefaultExpiration); err != nil {
		return nil, false
	}
	return session, true
}

// Delete removes and closes the session. It reports whether the id was known.
func (s *SessionStore) Delete(id string) bool {
	if _, found := s.cache.Get(id); !found {
		return false
	}
	s.cache.Delete(id)
	return true
}

// Count returns the number of stored sessions, including expired ones not yet purged.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}
