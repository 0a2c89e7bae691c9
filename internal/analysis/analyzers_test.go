package analysis

import (
	"testing"

	"botsense/internal/interaction"
)

func defaultCfg() Config { return DefaultConfig() }

// diagonalMoves returns n collinear moves along y=x at the given step and
// inter-sample interval.
func diagonalMoves(n int, stepPx float64, stepMs int64) []interaction.Sample {
	moves := make([]interaction.Sample, 0, n)
	for i := 0; i < n; i++ {
		p := float64(i) * stepPx
		moves = append(moves, interaction.Move(p, p, int64(i)*stepMs))
	}
	return moves
}

// =============================================================================
// Linearity
// =============================================================================

func TestLinearityFlagsStraightPath(t *testing.T) {
	moves := diagonalMoves(10, 50, 100)
	if !linearityFlagged(moves, defaultCfg()) {
		t.Error("straight diagonal not flagged")
	}
}

func TestLinearityIgnoresCurvedPath(t *testing.T) {
	// Zig-zag: consecutive triples form fat triangles.
	pts := [][2]float64{{0, 0}, {100, 300}, {200, 0}, {300, 300}, {400, 0}, {500, 300}}
	var moves []interaction.Sample
	for i, p := range pts {
		moves = append(moves, interaction.Move(p[0], p[1], int64(i)*100))
	}
	if linearityFlagged(moves, defaultCfg()) {
		t.Error("zig-zag flagged as linear")
	}
}

func TestLinearityNeedsThreePoints(t *testing.T) {
	if linearityFlagged(diagonalMoves(2, 50, 100), defaultCfg()) {
		t.Error("two points flagged")
	}
	if linearityFlagged(nil, defaultCfg()) {
		t.Error("empty window flagged")
	}
}

// =============================================================================
// Speed
// =============================================================================

func TestSpeedFlagsUniformMotion(t *testing.T) {
	// Constant 100px/100ms: every speed identical, stddev 0.
	if !speedFlagged(diagonalMoves(6, 100, 100), defaultCfg()) {
		t.Error("uniform speed not flagged")
	}
}

func TestSpeedFlagsImplausiblyFast(t *testing.T) {
	// 5000px in 100ms steps alternating with slower jumps keeps stddev up
	// but mean far above 10 px/ms.
	moves := []interaction.Sample{
		interaction.Move(0, 0, 0),
		interaction.Move(5000, 0, 100),
		interaction.Move(5100, 0, 200),
		interaction.Move(12000, 0, 300),
	}
	if !speedFlagged(moves, defaultCfg()) {
		t.Error("teleporting pointer not flagged")
	}
}

func TestSpeedAcceptsHumanMotion(t *testing.T) {
	// Varied step sizes and intervals at hand-plausible speeds.
	moves := []interaction.Sample{
		interaction.Move(0, 0, 0),
		interaction.Move(40, 25, 80),
		interaction.Move(220, 90, 300),
		interaction.Move(240, 110, 700),
		interaction.Move(500, 300, 1100),
	}
	if speedFlagged(moves, defaultCfg()) {
		t.Error("human-like motion flagged")
	}
}

func TestSpeedZeroTimeDeltaGuard(t *testing.T) {
	// Identical timestamps must not divide by zero or panic.
	moves := []interaction.Sample{
		interaction.Move(0, 0, 100),
		interaction.Move(50, 50, 100),
		interaction.Move(100, 100, 100),
	}
	speedFlagged(moves, defaultCfg()) // must not panic
}

// =============================================================================
// Variation
// =============================================================================

func TestVariationFlagsConstantSteps(t *testing.T) {
	if !variationFlagged(diagonalMoves(8, 100, 100), defaultCfg()) {
		t.Error("constant step distances not flagged")
	}
}

func TestVariationAcceptsMixedSteps(t *testing.T) {
	moves := []interaction.Sample{
		interaction.Move(0, 0, 0),
		interaction.Move(10, 10, 100),
		interaction.Move(150, 30, 200),
		interaction.Move(160, 35, 300),
		interaction.Move(420, 200, 400),
		interaction.Move(425, 210, 500),
	}
	if variationFlagged(moves, defaultCfg()) {
		t.Error("varied step distances flagged")
	}
}

func TestVariationZeroMeanGuard(t *testing.T) {
	// Pointer parked in place: all distances zero, mean zero. Guard maps
	// the coefficient to 0... which is below the threshold, so a parked
	// pointer does flag as consistent. Five identical positions:
	moves := make([]interaction.Sample, 5)
	for i := range moves {
		moves[i] = interaction.Move(100, 100, int64(i)*100)
	}
	if !variationFlagged(moves, defaultCfg()) {
		t.Error("parked pointer (cv=0) should read as too consistent")
	}
}

// =============================================================================
// Coverage
// =============================================================================

func TestCoverageFlagsFormOnlyMovement(t *testing.T) {
	// 300x100 box in a 1920x1080 viewport: ratio ~0.014.
	moves := []interaction.Sample{
		interaction.Move(500, 500, 0),
		interaction.Move(800, 550, 100),
		interaction.Move(600, 600, 200),
	}
	if !coverageFlagged(moves, Viewport{Width: 1920, Height: 1080}, defaultCfg()) {
		t.Error("form-confined movement not flagged")
	}
}

func TestCoverageAcceptsBroadMovement(t *testing.T) {
	moves := []interaction.Sample{
		interaction.Move(10, 10, 0),
		interaction.Move(1800, 200, 100),
		interaction.Move(900, 1000, 200),
	}
	if coverageFlagged(moves, Viewport{Width: 1920, Height: 1080}, defaultCfg()) {
		t.Error("broad movement flagged")
	}
}

func TestCoverageDisabledWithoutViewport(t *testing.T) {
	moves := []interaction.Sample{
		interaction.Move(500, 500, 0),
		interaction.Move(510, 505, 100),
		interaction.Move(505, 510, 200),
	}
	if coverageFlagged(moves, Viewport{}, defaultCfg()) {
		t.Error("zero viewport should disable the coverage check")
	}
}

// =============================================================================
// Regularity
// =============================================================================

func TestRegularityFlagsMetronomicTiming(t *testing.T) {
	if !regularityFlagged(diagonalMoves(8, 37, 100), defaultCfg()) {
		t.Error("constant 100ms cadence not flagged")
	}
}

func TestRegularityAcceptsJitteredTiming(t *testing.T) {
	times := []int64{0, 80, 300, 340, 700, 1200}
	var moves []interaction.Sample
	for i, ts := range times {
		moves = append(moves, interaction.Move(float64(i)*30, float64(i)*17, ts))
	}
	if regularityFlagged(moves, defaultCfg()) {
		t.Error("jittered cadence flagged")
	}
}

func TestRegularityZeroMeanGuardNotFlagged(t *testing.T) {
	// All samples share one timestamp. Duplicate timestamps are arguably
	// maximally regular, but the zero-mean guard deliberately reports
	// them as neutral; this pins the documented behavior.
	moves := make([]interaction.Sample, 6)
	for i := range moves {
		moves[i] = interaction.Move(float64(i)*20, 0, 5000)
	}
	if regularityFlagged(moves, defaultCfg()) {
		t.Error("zero-mean interval burst should not trip the regularity flag")
	}
}

// =============================================================================
// Composite activity
// =============================================================================

func TestSilentFlagged(t *testing.T) {
	cfg := defaultCfg()
	if !silentFlagged(11, 0, 0, cfg) {
		t.Error("11 moves with no clicks/keys not flagged")
	}
	if silentFlagged(11, 1, 0, cfg) {
		t.Error("flagged despite a click")
	}
	if silentFlagged(11, 0, 2, cfg) {
		t.Error("flagged despite key activity")
	}
	if silentFlagged(10, 0, 0, cfg) {
		t.Error("flagged at exactly the move threshold")
	}
}

func TestFastStartFlagged(t *testing.T) {
	cfg := defaultCfg()
	if !fastStartFlagged(6, 1500, cfg) {
		t.Error("6 moves in 1.5s not flagged")
	}
	if fastStartFlagged(6, 2000, cfg) {
		t.Error("flagged at exactly the window boundary")
	}
	if fastStartFlagged(5, 1500, cfg) {
		t.Error("flagged at exactly the move threshold")
	}
}
