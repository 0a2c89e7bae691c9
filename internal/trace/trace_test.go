package trace

import (
	"bytes"
	"strings"
	"testing"

	"botsense/internal/interaction"
)

func TestRoundTrip(t *testing.T) {
	in := &Trace{
		Header: Header{
			SessionID:      "abc-123",
			StartMs:        1000,
			UserAgent:      "Mozilla/5.0",
			ViewportWidth:  1920,
			ViewportHeight: 1080,
		},
		Samples: []interaction.Sample{
			interaction.Move(10, 20, 1000),
			interaction.Click(10, 20, 1500),
			interaction.KeyDown("a", 1700),
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if out.Header != in.Header {
		t.Errorf("header mismatch:\n got %+v\nwant %+v", out.Header, in.Header)
	}
	if len(out.Samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(out.Samples))
	}
	if out.Samples[2].Kind != interaction.KindKeyDown || out.Samples[2].Key != "a" {
		t.Errorf("keydown sample mangled: %+v", out.Samples[2])
	}
}

func TestReadWithoutHeader(t *testing.T) {
	// Headerless traces fall back to the first sample's timestamp.
	input := `{"type":"sample","kind":0,"x":1,"y":2,"timestamp_ms":5000}
{"type":"sample","kind":1,"x":1,"y":2,"timestamp_ms":6000}
`
	tr, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tr.Header.StartMs != 5000 {
		t.Errorf("StartMs = %d, want fallback 5000", tr.Header.StartMs)
	}
	if len(tr.Samples) != 2 {
		t.Errorf("samples = %d, want 2", len(tr.Samples))
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	input := "\n{\"type\":\"sample\",\"kind\":0,\"x\":1,\"y\":2,\"timestamp_ms\":100}\n\n"
	tr, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tr.Samples) != 1 {
		t.Errorf("samples = %d, want 1", len(tr.Samples))
	}
}

func TestReadRejectsMalformedLine(t *testing.T) {
	input := `{"type":"sample","kind":0,`
	if _, err := Read(strings.NewReader(input)); err == nil {
		t.Error("malformed line accepted")
	}
}
