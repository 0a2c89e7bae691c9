// Package trace reads and writes recorded interaction streams as JSON Lines,
// so captured sessions can be re-scored offline for threshold tuning and
// incident review.
//
// A trace file is one JSON object per line. The first line may be a header
// carrying session metadata; every other line is a single sample.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"botsense/internal/interaction"
)

// Header is the optional first line of a trace file.
type Header struct {
	SessionID      string  `json:"session_id,omitempty"`
	StartMs        int64   `json:"start_ms"`
	UserAgent      string  `json:"user_agent,omitempty"`
	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`
}

// Trace is a decoded trace file.
type Trace struct {
	Header  Header
	Samples []interaction.Sample
}

// line is the on-disk union of header and sample rows.
type line struct {
	Type string `json:"type"`
	Header
	interaction.Sample
}

// Read decodes a trace stream. A missing header is tolerated: the session
// start falls back to the first sample's timestamp.
func Read(r io.Reader) (*Trace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tr := &Trace{}
	n := 0
	for sc.Scan() {
		n++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var l line
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", n, err)
		}
		if l.Type == "header" {
			tr.Header = l.Header
			continue
		}
		tr.Samples = append(tr.Samples, l.Sample)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	if tr.Header.StartMs == 0 && len(tr.Samples) > 0 {
		tr.Header.StartMs = tr.Samples[0].TimestampMs
	}
	return tr, nil
}

// Write encodes a trace as JSON Lines: header first, then samples in order.
func Write(w io.Writer, tr *Trace) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	if err := enc.Encode(struct {
		Type string `json:"type"`
		Header
	}{Type: "header", Header: tr.Header}); err != nil {
		return fmt.Errorf("write trace header: %w", err)
	}
	for i, s := range tr.Samples {
		if err := enc.Encode(struct {
			Type string `json:"type"`
			interaction.Sample
		}{Type: "sample", Sample: s}); err != nil {
			return fmt.Errorf("write trace sample %d: %w", i, err)
		}
	}
	return bw.Flush()
}
