package intake

import (
	"sync"
	"time"

	"botsense/internal/analysis"
	"botsense/internal/tracker"
)

// registry tracks live observation sessions by ID and drops sessions that
// have been idle past their TTL, so abandoned page visits cannot accumulate.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

type entry struct {
	tracker  *tracker.Tracker
	lastSeen time.Time
}

func newRegistry(ttl time.Duration) *registry {
	r := &registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	r.wg.Add(1)
	go r.sweep()
	return r
}

// create registers a started tracker and returns its session ID.
func (r *registry) create(cfg analysis.Config, capacity int) *tracker.Tracker {
	t := tracker.New(cfg, capacity)
	t.Start()

	r.mu.Lock()
	r.sessions[t.ID()] = &entry{tracker: t, lastSeen: time.Now()}
	r.mu.Unlock()
	return t
}

// get returns the tracker for id, refreshing its idle timer.
func (r *registry) get(id string) (*tracker.Tracker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.tracker, true
}

// remove stops and discards a session.
func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		e.tracker.Stop()
		delete(r.sessions, id)
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep drops idle sessions once per TTL interval.
func (r *registry) sweep() {
	defer r.wg.Done()

	interval := r.ttl
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for id, e := range r.sessions {
				if r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl {
					e.tracker.Stop()
					delete(r.sessions, id)
				}
			}
			r.mu.Unlock()
		}
	}
}

// close stops the sweeper and every remaining session.
func (r *registry) close() {
	close(r.done)
	r.wg.Wait()

	r.mu.Lock()
	for id, e := range r.sessions {
		e.tracker.Stop()
		delete(r.sessions, id)
	}
	r.mu.Unlock()
}
