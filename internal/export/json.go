package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EncodeJSON renders a record for output: two-space indent for humans, HTML
// escaping off so non-ASCII text (£, €, names with diacritics) survives
// verbatim.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a record to dir under name (already ".json"-suffixed by
// the pipeline's naming convention).
func WriteJSON(dir, name string, v any) (string, error) {
	b, err := EncodeJSON(v)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
