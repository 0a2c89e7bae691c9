package interaction

// ring is a fixed-capacity circular buffer of samples. Once full, each append
// overwrites the oldest entry, so the buffer always holds the most recent
// window of activity. Appends are O(1); no reslicing or front-removal.
type ring struct {
	buf  []Sample
	head int // index of the oldest sample
	n    int // number of valid samples
}

func newRing(capacity int) *ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ring{buf: make([]Sample, capacity)}
}

func (r *ring) push(s Sample) {
	if r.n < len(r.buf) {
		r.buf[(r.head+r.n)%len(r.buf)] = s
		r.n++
		return
	}
	// Full: overwrite the oldest slot and advance the head.
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
}

func (r *ring) len() int { return r.n }

// snapshot copies the buffered samples out in insertion order, oldest first.
func (r *ring) snapshot() []Sample {
	out := make([]Sample, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *ring) reset() {
	r.head = 0
	r.n = 0
}
