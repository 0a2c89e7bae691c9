package interaction

import "testing"

// =============================================================================
// Tests for the sample ring
// =============================================================================

func TestRingFillsInOrder(t *testing.T) {
	r := newRing(5)
	for i := 0; i < 3; i++ {
		r.push(Move(float64(i), 0, int64(i)))
	}

	snap := r.snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, s := range snap {
		if s.X != float64(i) {
			t.Errorf("snapshot[%d].X = %v, want %d", i, s.X, i)
		}
	}
}

func TestRingEvictsOldestFirst(t *testing.T) {
	r := newRing(100)
	for i := 0; i < 150; i++ {
		r.push(Move(float64(i), 0, int64(i)))
	}

	if r.len() != 100 {
		t.Fatalf("len = %d, want 100", r.len())
	}

	snap := r.snapshot()
	// The oldest 50 are gone; samples 50..149 remain in order.
	if snap[0].X != 50 {
		t.Errorf("oldest retained X = %v, want 50", snap[0].X)
	}
	if snap[99].X != 149 {
		t.Errorf("newest retained X = %v, want 149", snap[99].X)
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].X != snap[i-1].X+1 {
			t.Fatalf("snapshot out of order at %d: %v after %v", i, snap[i].X, snap[i-1].X)
		}
	}
}

func TestRingReset(t *testing.T) {
	r := newRing(4)
	for i := 0; i < 10; i++ {
		r.push(Move(float64(i), 0, int64(i)))
	}
	r.reset()
	if r.len() != 0 {
		t.Errorf("len after reset = %d, want 0", r.len())
	}
	r.push(Move(1, 2, 3))
	snap := r.snapshot()
	if len(snap) != 1 || snap[0].X != 1 {
		t.Errorf("ring unusable after reset: %+v", snap)
	}
}

func TestRingZeroCapacityFallsBack(t *testing.T) {
	r := newRing(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		r.push(Move(0, 0, int64(i)))
	}
	if r.len() != DefaultCapacity {
		t.Errorf("len = %d, want %d", r.len(), DefaultCapacity)
	}
}
