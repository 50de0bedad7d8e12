package history

import (
	"sync"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultIdleTimeout = 24 * time.Hour
	DefaultMaxSessions = 10000
)

type StoreConfig struct {
	// Capacity is the number of entries each session keeps.
	Capacity    int
	// IdleTimeout drops a session nobody has written to or read for
	// this long.
	IdleTimeout time.Duration
	// MaxSessions caps the live sessions; the least recently used one
	// goes first.
	MaxSessions int
}

type session struct {
	hist     *History
	lastSeen time.Time
}

// Store keeps one History per session. Sessions are only created by Add
// and expire after IdleTimeout, so the memory held stays bounded.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	cfg      StoreConfig
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

func NewStore(cfg StoreConfig, clock clockwork.Clock, m *observability.Metrics) *Store {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		sessions: make(map[string]*session),
		cfg:      cfg,
		clock:    clock,
		metrics:  m,
	}
}

// Lookup returns the history for sid without creating one. An expired
// session is dropped and reported as missing.
func (s *Store) Lookup(sid string) (*History, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sid, s.clock.Now())
	if !ok {
		return nil, false
	}
	return sess.hist, true
}

// List returns the entries of sid, empty when the session is unknown.
func (s *Store) List(sid string) []Entry {
	if h, ok := s.Lookup(sid); ok {
		return h.List()
	}
	return []Entry{}
}

// Select picks entries of sid by id, see Select.
func (s *Store) Select(sid string, ids []string) ([]Entry, error) {
	h, ok := s.Lookup(sid)
	if !ok {
		h = New(s.cfg.Capacity, s.clock)
	}
	return Select(h, ids)
}

func (s *Store) Add(sid string, in tank.Input, out tank.Output) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	sess, ok := s.live(sid, now)
	if !ok {
		s.evictLocked(now)
		sess = &session{hist: New(s.cfg.Capacity, s.clock)}
		s.sessions[sid] = sess
	}
	sess.lastSeen = now

	e, dropped := sess.hist.add(in, out)
	if !dropped {
		s.metrics.AddHistoryEntries(1)
	}
	return e
}

func (s *Store) Clear(sid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sid, s.clock.Now())
	if !ok {
		return 0
	}
	n := sess.hist.Clear()
	s.metrics.AddHistoryEntries(-n)
	return n
}

func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns an unexpired session and touches it. Callers hold s.mu.
func (s *Store) live(sid string, now time.Time) (*session, bool) {
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, false
	}
	if now.Sub(sess.lastSeen) >= s.cfg.IdleTimeout {
		s.dropLocked(sid, sess)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// evictLocked removes expired sessions and, when the store is still full,
// the least recently used one so a new session fits.
func (s *Store) evictLocked(now time.Time) {
	var (
		oldestID string
		oldest   *session
	)
	for sid, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.cfg.IdleTimeout {
			s.dropLocked(sid, sess)
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = sid, sess
		}
	}
	if len(s.sessions) >= s.cfg.MaxSessions && oldest != nil {
		s.dropLocked(oldestID, oldest)
	}
}

func (s *Store) dropLocked(sid string, sess *session) {
	delete(s.sessions, sid)
	s.metrics.AddHistoryEntries(-sess.hist.Len())
}
