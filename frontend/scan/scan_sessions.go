package scan

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session lifecycle: a session opens when the scanner screen loads,
// resolves once with the first decoded code, and closes when the item
// is confirmed, cancelled, or the session expires.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Result is what the camera hands back: the decoded code plus an
// optional still frame captured at decode time (a base64 data URL).
type Result struct {
	Code  string
	Image string
}

// Session is one scanner screen visit.
type Session struct {
	ID        string
	Status    string
	Result    Result
	OpenedAt  time.Time
	ExpiresAt time.Time
}

// Sessions tracks scanner visits by id. Decodes arrive over the wire
// from the browser, so the registry enforces the scanner contract
// server-side: one result per session, first decode wins, anything
// after that or addressed to an unknown session is silently dropped.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessions builds an empty registry. Sessions expire after ttl so
// abandoned scanner tabs do not accumulate.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open starts a new session and returns its id.
func (s *Sessions) Open() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	id := uuid.NewString()
	now := s.now()
	s.sessions[id] = &Session{
		ID:        id,
		Status:    StatusOpen,
		OpenedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	return id
}

// Resolve records the first decode for the session. Returns false for
// unknown, expired or already-resolved sessions; those results are
// dropped without effect.
func (s *Sessions) Resolve(id string, result Result) bool {
	if result.Code == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, ok := s.sessions[id]
	if !ok || sess.Status != StatusOpen {
		return false
	}
	sess.Status = StatusResolved
	sess.Result = result
	return true
}

// Peek returns the resolved result without consuming the session. The
// entry screen uses this to render and re-render the form.
func (s *Sessions) Peek(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, ok := s.sessions[id]
	if !ok || sess.Status != StatusResolved {
		return Result{}, false
	}
	return sess.Result, true
}

// Take consumes a resolved session, returning its result and removing
// it from the registry. Confirming an item calls this exactly once.
func (s *Sessions) Take(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, ok := s.sessions[id]
	if !ok || sess.Status != StatusResolved {
		return Result{}, false
	}
	delete(s.sessions, id)
	return sess.Result, true
}

// Close drops the session regardless of state. Cancelling the entry
// form or leaving the scanner screen ends up here.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Sessions) purgeLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

// SampleCodes are offered by the simulation fallback when no camera is
// available. The last one exercises the QR path.
func SampleCodes() []string {
	return []string{
		"7891000100103",
		"7894900011517",
		"7896005800009",
		"SAMPLE-QR-CODE",
	}
}
