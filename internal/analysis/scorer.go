package analysis

import "botsense/internal/interaction"

// Stats summarizes the analyzed window for audit and debugging.
type Stats struct {
	Moves      int                  `json:"moves"`
	Clicks     int                  `json:"clicks"`
	Keys       int                  `json:"keys"`
	DurationMs int64                `json:"duration_ms"`
	Tail       []interaction.Sample `json:"tail,omitempty"`
}

// Report is the terminal, read-only result of scoring one sample window.
// It is a pure function of the window: identical input yields an identical
// report, including reason ordering.
type Report struct {
	Suspicious bool     `json:"suspicious"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons"`
	Stats      Stats    `json:"stats"`
}

// Scorer runs every analyzer over a sample window and aggregates the result.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given tuning.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's tuning.
func (sc *Scorer) Config() Config {
	return sc.cfg
}

// Evaluate scores a sample window. Evaluation order is fixed — linearity,
// speed, variation, coverage, regularity, silent movement, fast start — so
// the reasons list is deterministic. Each triggered heuristic adds its full
// penalty; nothing ever subtracts; the sum is capped at 100.
//
// Windows with fewer than MinSamples total samples bypass every analyzer and
// score zero. That early exit is deliberate: flagging sparse sessions would
// punish fast legitimate submissions and keyboard-only users.
func (sc *Scorer) Evaluate(samples []interaction.Sample, vp Viewport) Report {
	stats := sc.buildStats(samples)

	if len(samples) < sc.cfg.MinSamples {
		return Report{Suspicious: false, Score: 0, Reasons: []string{}, Stats: stats}
	}

	moves := moveSamples(samples)

	score := 0
	reasons := []string{}
	flag := func(hit bool, weight int, reason string) {
		if hit {
			score += weight
			reasons = append(reasons, reason)
		}
	}

	flag(linearityFlagged(moves, sc.cfg), sc.cfg.LinearityWeight, ReasonLinearity)
	flag(speedFlagged(moves, sc.cfg), sc.cfg.SpeedWeight, ReasonSpeed)
	flag(variationFlagged(moves, sc.cfg), sc.cfg.VariationWeight, ReasonVariation)
	flag(coverageFlagged(moves, vp, sc.cfg), sc.cfg.CoverageWeight, ReasonCoverage)
	flag(regularityFlagged(moves, sc.cfg), sc.cfg.RegularityWeight, ReasonRegularity)
	flag(silentFlagged(stats.Moves, stats.Clicks, stats.Keys, sc.cfg), sc.cfg.SilentWeight, ReasonSilent)
	flag(fastStartFlagged(stats.Moves, stats.DurationMs, sc.cfg), sc.cfg.FastStartWeight, ReasonFastStart)

	if score > 100 {
		score = 100
	}

	return Report{
		Suspicious: score >= sc.cfg.SuspicionThreshold,
		Score:      score,
		Reasons:    reasons,
		Stats:      stats,
	}
}

// buildStats counts sample kinds, takes the session duration from the last
// sample's elapsed offset, and keeps a capped tail of raw samples.
func (sc *Scorer) buildStats(samples []interaction.Sample) Stats {
	st := Stats{}
	for _, s := range samples {
		switch s.Kind {
		case interaction.KindMove:
			st.Moves++
		case interaction.KindClick:
			st.Clicks++
		case interaction.KindKeyDown:
			st.Keys++
		}
	}
	if n := len(samples); n > 0 {
		st.DurationMs = samples[n-1].ElapsedMs
		tail := sc.cfg.StatsTail
		if tail > n {
			tail = n
		}
		if tail > 0 {
			st.Tail = make([]interaction.Sample, tail)
			copy(st.Tail, samples[n-tail:])
		}
	}
	return st
}
