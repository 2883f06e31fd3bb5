package normalize

// Record is the dynamic, document-dependent JSON tree produced by
// structuring. Beyond the two required envelope keys the shape is owned by
// the model and treated as untrusted.
type Record map[string]any

// Required envelope keys, always present on every record.
const (
	KeyDocumentType    = "DocumentType"
	KeyConfidenceScore = "ConfidenceScore"
)

// Keys the engine itself owns.
const (
	KeyError   = "error"
	KeyMessage = "message"
)

// ErrorRecord builds the fail-closed record shape: an error tag plus an
// optional human-readable message, never a nil map or a raised error.
func ErrorRecord(errMsg, detail string) Record {
	r := Record{KeyError: errMsg}
	if detail != "" {
		r[KeyMessage] = detail
	}
	return r
}

// IsError reports whether the record is an error record.
func (r Record) IsError() bool {
	_, ok := r[KeyError]
	return ok
}

// DocumentType returns the record's document-type label, or "" when the
// model mangled it into a non-string.
func (r Record) DocumentType() string {
	s, _ := r[KeyDocumentType].(string)
	return s
}
