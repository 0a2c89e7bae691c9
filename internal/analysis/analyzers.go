package analysis

import (
	"math"

	"botsense/internal/interaction"
)

// Reason strings, one per heuristic, in evaluation order.
const (
	ReasonLinearity  = "too many perfectly straight movements"
	ReasonSpeed      = "unnatural movement speed"
	ReasonVariation  = "movement patterns too consistent"
	ReasonCoverage   = "movements restricted to form areas only"
	ReasonRegularity = "movement timing too regular"
	ReasonSilent     = "no clicks or keyboard activity despite movements"
	ReasonFastStart  = "suspiciously fast activity after page load"
)

// moveSamples filters the window down to pointer moves, preserving order.
func moveSamples(samples []interaction.Sample) []interaction.Sample {
	var moves []interaction.Sample
	for _, s := range samples {
		if s.Kind == interaction.KindMove {
			moves = append(moves, s)
		}
	}
	return moves
}

// linearityFlagged checks geometric linearity over consecutive move triples.
// A triple is collinear when the triangle inequality is nearly an equality:
// the middle point sits almost exactly on the segment between its neighbors.
// Scripted pointer paths are frequently linear interpolations; humans
// introduce curvature and jitter.
func linearityFlagged(moves []interaction.Sample, cfg Config) bool {
	if len(moves) < 3 {
		return false
	}
	collinear := 0
	total := 0
	for i := 0; i+2 < len(moves); i++ {
		p1, p2, p3 := moves[i], moves[i+1], moves[i+2]
		d12 := distance(p1.X, p1.Y, p2.X, p2.Y)
		d23 := distance(p2.X, p2.Y, p3.X, p3.Y)
		d13 := distance(p1.X, p1.Y, p3.X, p3.Y)
		total++
		if math.Abs(d12+d23-d13) < cfg.CollinearSlackPx {
			collinear++
		}
	}
	return total > 0 && float64(collinear)/float64(total) > cfg.CollinearFraction
}

// speedFlagged checks instantaneous pointer speeds over consecutive move
// pairs. Either anomaly direction alone trips the flag: near-zero spread
// means machine-uniform motion, and a mean above SpeedMeanMax px/ms is
// faster than a hand plausibly moves.
func speedFlagged(moves []interaction.Sample, cfg Config) bool {
	if len(moves) < 2 {
		return false
	}
	speeds := make([]float64, 0, len(moves)-1)
	for i := 1; i < len(moves); i++ {
		dt := float64(moves[i].TimestampMs - moves[i-1].TimestampMs)
		if dt <= 0 {
			dt = 1 // zero elapsed between samples; avoid dividing by zero
		}
		d := distance(moves[i-1].X, moves[i-1].Y, moves[i].X, moves[i].Y)
		speeds = append(speeds, d/dt)
	}
	return stddev(speeds) < cfg.SpeedStdDevMin || mean(speeds) > cfg.SpeedMeanMax
}

// variationFlagged checks the coefficient of variation of step distances.
// Low variability indicates a deterministic, generated path.
func variationFlagged(moves []interaction.Sample, cfg Config) bool {
	if len(moves) < 5 {
		return false
	}
	dists := make([]float64, 0, len(moves)-1)
	for i := 1; i < len(moves); i++ {
		dists = append(dists, distance(moves[i-1].X, moves[i-1].Y, moves[i].X, moves[i].Y))
	}
	return coefficientOfVariation(dists) < cfg.VariationCVMin
}

// coverageFlagged compares the bounding box of all move coordinates against
// the viewport area. Human browsing produces broader, messier coverage than
// a script confined to the form region. A degenerate viewport disables the
// check.
func coverageFlagged(moves []interaction.Sample, vp Viewport, cfg Config) bool {
	if len(moves) < 3 {
		return false
	}
	viewArea := vp.Width * vp.Height
	if viewArea <= 0 {
		return false
	}
	minX, minY := moves[0].X, moves[0].Y
	maxX, maxY := minX, minY
	for _, m := range moves[1:] {
		minX = math.Min(minX, m.X)
		minY = math.Min(minY, m.Y)
		maxX = math.Max(maxX, m.X)
		maxY = math.Max(maxY, m.Y)
	}
	boxArea := (maxX - minX) * (maxY - minY)
	return boxArea/viewArea < cfg.CoverageRatioMin
}

// regularityFlagged checks the coefficient of variation of inter-sample time
// deltas. Metronomic timing is characteristic of timer-driven generators.
// Note the zero-mean guard in coefficientOfVariation: a burst of
// identical-timestamp samples reads as CV 0 and is deliberately NOT flagged,
// preserving the heuristic's original behavior for degenerate input.
func regularityFlagged(moves []interaction.Sample, cfg Config) bool {
	if len(moves) < 5 {
		return false
	}
	deltas := make([]float64, 0, len(moves)-1)
	for i := 1; i < len(moves); i++ {
		deltas = append(deltas, float64(moves[i].TimestampMs-moves[i-1].TimestampMs))
	}
	cv := coefficientOfVariation(deltas)
	if mean(deltas) == 0 {
		return false
	}
	return cv < cfg.RegularityCVMin
}

// silentFlagged fires on sustained pointer movement with no click or key
// activity at all. Humans filling a registration form click and type.
func silentFlagged(moveCount, clickCount, keyCount int, cfg Config) bool {
	return moveCount > cfg.SilentMoveCount && clickCount == 0 && keyCount == 0
}

// fastStartFlagged fires when substantial movement happens almost
// immediately after the session opens; humans need a moment to orient.
func fastStartFlagged(moveCount int, durationMs int64, cfg Config) bool {
	return durationMs < cfg.FastStartWindowMs && moveCount > cfg.FastStartMoveCount
}
