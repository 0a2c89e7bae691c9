// Package analysis scores an interaction sample window for bot-like behavior.
//
// Several independent heuristics each inspect the window and, when their
// condition holds, add a fixed penalty and a human-readable reason. The sum,
// capped at 100, is the risk score; at or above the suspicion threshold the
// session is flagged. Analyzers are stateless functions over the window —
// evaluating the same window twice yields identical reports.
package analysis

// Config holds every tunable of the scorer: per-flag penalties, analyzer
// thresholds, and the suspicion cutoff. The weights are empirical; treat them
// as tuning knobs, not derived constants.
type Config struct {
	// SuspicionThreshold is the score at or above which a session is
	// flagged suspicious.
	SuspicionThreshold int `toml:"suspicion_threshold" json:"suspicion_threshold" yaml:"suspicion_threshold"`

	// MinSamples is the minimum total sample count required to run any
	// analyzer. Below it the scorer returns a benign zero report: absence
	// of evidence is not evidence of automation, and keyboard-only users
	// legitimately produce almost no pointer activity.
	MinSamples int `toml:"min_samples" json:"min_samples" yaml:"min_samples"`

	// Penalties, one per heuristic.
	LinearityWeight  int `toml:"linearity_weight" json:"linearity_weight" yaml:"linearity_weight"`
	SpeedWeight      int `toml:"speed_weight" json:"speed_weight" yaml:"speed_weight"`
	VariationWeight  int `toml:"variation_weight" json:"variation_weight" yaml:"variation_weight"`
	CoverageWeight   int `toml:"coverage_weight" json:"coverage_weight" yaml:"coverage_weight"`
	RegularityWeight int `toml:"regularity_weight" json:"regularity_weight" yaml:"regularity_weight"`
	SilentWeight     int `toml:"silent_weight" json:"silent_weight" yaml:"silent_weight"`
	FastStartWeight  int `toml:"fast_start_weight" json:"fast_start_weight" yaml:"fast_start_weight"`

	// CollinearSlackPx is the triangle-inequality slack below which a
	// move triple counts as collinear.
	CollinearSlackPx float64 `toml:"collinear_slack_px" json:"collinear_slack_px" yaml:"collinear_slack_px"`

	// CollinearFraction is the collinear-triple fraction above which the
	// linearity flag fires.
	CollinearFraction float64 `toml:"collinear_fraction" json:"collinear_fraction" yaml:"collinear_fraction"`

	// SpeedStdDevMin flags speed uniformity: population stddev of
	// instantaneous speeds below this is unnaturally even.
	SpeedStdDevMin float64 `toml:"speed_stddev_min" json:"speed_stddev_min" yaml:"speed_stddev_min"`

	// SpeedMeanMax flags implausibly fast mean speed, in px/ms.
	SpeedMeanMax float64 `toml:"speed_mean_max" json:"speed_mean_max" yaml:"speed_mean_max"`

	// VariationCVMin is the minimum coefficient of variation of step
	// distances; below it movement is too consistent.
	VariationCVMin float64 `toml:"variation_cv_min" json:"variation_cv_min" yaml:"variation_cv_min"`

	// CoverageRatioMin is the minimum bounding-box/viewport area ratio;
	// below it the pointer never left the form region.
	CoverageRatioMin float64 `toml:"coverage_ratio_min" json:"coverage_ratio_min" yaml:"coverage_ratio_min"`

	// RegularityCVMin is the minimum coefficient of variation of
	// inter-sample time deltas; below it timing is metronomic.
	RegularityCVMin float64 `toml:"regularity_cv_min" json:"regularity_cv_min" yaml:"regularity_cv_min"`

	// SilentMoveCount: more moves than this with zero clicks and zero
	// keys trips the silent-movement flag.
	SilentMoveCount int `toml:"silent_move_count" json:"silent_move_count" yaml:"silent_move_count"`

	// FastStartWindowMs / FastStartMoveCount: more than FastStartMoveCount
	// moves inside the first FastStartWindowMs of the session trips the
	// fast-start flag.
	FastStartWindowMs  int64 `toml:"fast_start_window_ms" json:"fast_start_window_ms" yaml:"fast_start_window_ms"`
	FastStartMoveCount int   `toml:"fast_start_move_count" json:"fast_start_move_count" yaml:"fast_start_move_count"`

	// StatsTail is how many trailing raw samples the report retains for
	// audit.
	StatsTail int `toml:"stats_tail" json:"stats_tail" yaml:"stats_tail"`
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		SuspicionThreshold: 50,
		MinSamples:         5,

		LinearityWeight:  40,
		SpeedWeight:      35,
		VariationWeight:  30,
		CoverageWeight:   25,
		RegularityWeight: 20,
		SilentWeight:     20,
		FastStartWeight:  15,

		CollinearSlackPx:  2.0,
		CollinearFraction: 0.5,
		SpeedStdDevMin:    0.1,
		SpeedMeanMax:      10.0,
		VariationCVMin:    0.3,
		CoverageRatioMin:  0.2,
		RegularityCVMin:   0.2,

		SilentMoveCount:    10,
		FastStartWindowMs:  2000,
		FastStartMoveCount: 5,

		StatsTail: 20,
	}
}

// Viewport is the visible page area at report time, used only by the
// coverage analyzer.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
