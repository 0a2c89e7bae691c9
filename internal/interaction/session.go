package interaction

import (
	"sync"
	"time"
)

// DefaultCapacity is the default sample buffer size. 100 recent events is
// enough for the analyzers while keeping per-session memory and analysis
// cost bounded.
const DefaultCapacity = 100

// Session is one bounded observation window over an interaction stream.
//
// Samples are accepted only between Start and Stop. The buffer keeps the most
// recent window (FIFO eviction once at capacity). A Session is safe for
// concurrent use: the intake layer may call Record from its own goroutine
// while the owner calls Snapshot or Stop.
//
// Calling Start on a running session restarts observation from an empty
// buffer. Callers that care about double-counting must pair Start/Stop
// themselves.
type Session struct {
	mu      sync.RWMutex
	ring    *ring
	startMs int64
	active  bool
}

// NewSession creates an inactive session with the given buffer capacity.
// Non-positive capacity falls back to DefaultCapacity.
func NewSession(capacity int) *Session {
	return &Session{ring: newRing(capacity)}
}

// Start resets the buffer, marks the session start, and begins accepting
// samples.
func (s *Session) Start() {
	s.StartAt(time.Now().UnixMilli())
}

// StartAt is Start with an explicit start timestamp, for callers that own
// their clock (trace replay, tests).
func (s *Session) StartAt(nowMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring.reset()
	s.startMs = nowMs
	s.active = true
}

// Record appends a sample to the buffer, computing its elapsed offset from
// the session start. Samples recorded on an inactive session are silently
// dropped; a stopped session is frozen, not an error.
func (s *Session) Record(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	sample.ElapsedMs = sample.TimestampMs - s.startMs
	if sample.ElapsedMs < 0 {
		sample.ElapsedMs = 0
	}
	s.ring.push(sample)
}

// Stop freezes the session. Idempotent: stopping a stopped session is a
// no-op. Intake feeders should check Active and detach once it reports false.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Active reports whether the session is currently accepting samples.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// StartMs returns the session start timestamp in Unix milliseconds.
func (s *Session) StartMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startMs
}

// Len returns the number of buffered samples.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.len()
}

// Snapshot returns the buffered samples oldest-first. The returned slice is
// a copy; callers may analyze it while recording continues. Snapshot works
// on active sessions too, which supports mid-flow defense-in-depth checks.
func (s *Session) Snapshot() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.snapshot()
}
