package tracker

import (
	"botsense/internal/analysis"
	"botsense/internal/interaction"
)

// ClientInfo describes the submitting client, supplied by the hosting layer
// at payload-build time.
type ClientInfo struct {
	UserAgent      string  `json:"user_agent"`
	ScreenWidth    float64 `json:"screen_width"`
	ScreenHeight   float64 `json:"screen_height"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Payload is the opaque metadata bundle forwarded with a registration
// request: the raw samples, the analysis report, and client dimensions.
// The tracker never transmits or serializes it; that is the caller's job.
type Payload struct {
	SessionID string               `json:"session_id"`
	Samples   []interaction.Sample `json:"samples"`
	Report    analysis.Report      `json:"report"`
	Client    ClientInfo           `json:"client"`
}

// BuildPayload scores the current window against the client's viewport and
// bundles everything the backend needs to audit the verdict.
func (t *Tracker) BuildPayload(client ClientInfo) Payload {
	vp := analysis.Viewport{Width: client.ViewportWidth, Height: client.ViewportHeight}
	return Payload{
		SessionID: t.id,
		Samples:   t.Samples(),
		Report:    t.Report(vp),
		Client:    client,
	}
}
