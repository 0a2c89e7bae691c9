// Package tracker binds an observation session to the scorer and assembles
// the submission payload the registration flow attaches to its API request.
package tracker

import (
	"github.com/google/uuid"

	"botsense/internal/analysis"
	"botsense/internal/interaction"
)

// Tracker owns one observation session and the scorer used to analyze it.
// It is the single surface the hosting layer talks to: start, feed events,
// stop, and pull a report. Trackers are independent; there is no global
// registry inside this package.
type Tracker struct {
	id      string
	session *interaction.Session
	scorer  *analysis.Scorer
}

// New creates a tracker with a fresh session ID. The session starts
// inactive; call Start to begin observation.
func New(cfg analysis.Config, capacity int) *Tracker {
	return &Tracker{
		id:      uuid.NewString(),
		session: interaction.NewSession(capacity),
		scorer:  analysis.NewScorer(cfg),
	}
}

// ID returns the tracker's session identifier.
func (t *Tracker) ID() string { return t.id }

// Start begins (or restarts) observation with an empty buffer.
func (t *Tracker) Start() { t.session.Start() }

// StartAt begins observation with an explicit clock, for replay and tests.
func (t *Tracker) StartAt(nowMs int64) { t.session.StartAt(nowMs) }

// Record feeds one raw event into the session. Dropped silently once the
// tracker is stopped.
func (t *Tracker) Record(s interaction.Sample) { t.session.Record(s) }

// Stop freezes the session. Safe to call repeatedly and at any point in the
// lifecycle.
func (t *Tracker) Stop() { t.session.Stop() }

// Active reports whether the tracker is still accepting events.
func (t *Tracker) Active() bool { return t.session.Active() }

// Report analyzes the samples captured so far. It may be called before Stop
// for a mid-flow check; only the current window is scored. Repeated calls
// without intervening Record calls yield identical reports.
func (t *Tracker) Report(vp analysis.Viewport) analysis.Report {
	return t.scorer.Evaluate(t.session.Snapshot(), vp)
}

// Samples returns a copy of the current buffer contents, oldest first.
func (t *Tracker) Samples() []interaction.Sample { return t.session.Snapshot() }
