// Package interaction models raw user-interaction events and the bounded
// observation sessions that collect them.
//
// A session is one observation window over a page visitor's input stream:
// pointer moves, clicks, and key presses arrive through Record while the
// session is active, land in a fixed-capacity ring, and are read back as an
// ordered snapshot when the caller asks for analysis. The package does no
// scoring itself; see the analysis package.
package interaction

// Kind identifies the type of an observed interaction event.
type Kind int

const (
	KindMove Kind = iota
	KindClick
	KindKeyDown
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindClick:
		return "click"
	case KindKeyDown:
		return "keydown"
	default:
		return "unknown"
	}
}

// Sample is one observed interaction event.
//
// X and Y carry pixel coordinates for move and click events; Key carries the
// key identifier for keydown events. ElapsedMs is derived at record time and
// is always TimestampMs minus the session start, never negative.
type Sample struct {
	Kind        Kind    `json:"kind"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	Key         string  `json:"key,omitempty"`
	TimestampMs int64   `json:"timestamp_ms"`
	ElapsedMs   int64   `json:"elapsed_ms"`
}

// Move constructs a pointer-move sample.
func Move(x, y float64, timestampMs int64) Sample {
	return Sample{Kind: KindMove, X: x, Y: y, TimestampMs: timestampMs}
}

// Click constructs a pointer-click sample.
func Click(x, y float64, timestampMs int64) Sample {
	return Sample{Kind: KindClick, X: x, Y: y, TimestampMs: timestampMs}
}

// KeyDown constructs a key-press sample. Only the key identifier is kept;
// sessions never capture text content.
func KeyDown(key string, timestampMs int64) Sample {
	return Sample{Kind: KindKeyDown, Key: key, TimestampMs: timestampMs}
}
