package intake

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"botsense/internal/interaction"
)

// eventSchema validates the wire form of one interaction event. Events that
// fail validation are rejected before they reach a session; a page script
// bug or a tampering client cannot poison the sample window with malformed
// records.
const eventSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type", "timestamp_ms"],
  "properties": {
    "type": {"enum": ["move", "click", "keydown"]},
    "x": {"type": "number", "minimum": 0},
    "y": {"type": "number", "minimum": 0},
    "key": {"type": "string", "maxLength": 32},
    "timestamp_ms": {"type": "integer", "minimum": 0}
  },
  "allOf": [
    {
      "if": {"properties": {"type": {"enum": ["move", "click"]}}},
      "then": {"required": ["x", "y"]}
    },
    {
      "if": {"properties": {"type": {"const": "keydown"}}},
      "then": {"required": ["key"]}
    }
  ],
  "additionalProperties": false
}`

var compiledEventSchema = jsonschema.MustCompileString("event.schema.json", eventSchema)

// wireEvent is the decoded form of a validated event message.
type wireEvent struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Key         string  `json:"key"`
	TimestampMs int64   `json:"timestamp_ms"`
}

// decodeEvent validates raw JSON against the event schema and converts it to
// a sample.
func decodeEvent(raw []byte) (interaction.Sample, error) {
	var inst any
	if err := json.Unmarshal(raw, &inst); err != nil {
		return interaction.Sample{}, fmt.Errorf("malformed event json: %w", err)
	}
	if err := compiledEventSchema.Validate(inst); err != nil {
		return interaction.Sample{}, fmt.Errorf("event failed schema validation: %w", err)
	}

	var ev wireEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return interaction.Sample{}, fmt.Errorf("decode event: %w", err)
	}

	switch strings.ToLower(ev.Type) {
	case "move":
		return interaction.Move(ev.X, ev.Y, ev.TimestampMs), nil
	case "click":
		return interaction.Click(ev.X, ev.Y, ev.TimestampMs), nil
	case "keydown":
		return interaction.KeyDown(ev.Key, ev.TimestampMs), nil
	default:
		return interaction.Sample{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}
