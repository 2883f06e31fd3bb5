package normalize

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The one shape the engine itself guarantees: the model's tree may be
// anything, but the envelope keys must be a string and a number.
const envelopeSchema = `{
	"type": "object",
	"properties": {
		"DocumentType":    {"type": "string", "minLength": 1},
		"ConfidenceScore": {"type": "number", "minimum": 0}
	},
	"required": ["DocumentType", "ConfidenceScore"]
}`

var envelope = jsonschema.MustCompileString("envelope.json", envelopeSchema)

// validEnvelope reports whether the record carries a well-typed
// DocumentType/ConfidenceScore pair.
func validEnvelope(r Record) bool {
	// Round-trip through encoding/json so schema validation sees the same
	// value types a decoded response would carry.
	b, err := json.Marshal(map[string]any(r))
	if err != nil {
		return false
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	return envelope.Validate(v) == nil
}
