package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseObject decodes a model response as a JSON object, strictly first.
// When the model wraps its output in markdown fences despite instructions,
// the content between the last pair of fences is salvaged and re-parsed.
func ParseObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)

	var m map[string]any
	if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
		return m, nil
	}

	salvaged := stripFences(trimmed)
	if err := json.Unmarshal([]byte(salvaged), &m); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return m, nil
}

// stripFences returns the content between the last pair of triple-backtick
// fences, dropping a leading language tag. With an unpaired trailing fence
// the content after it is returned instead.
func stripFences(s string) string {
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	var body string
	if len(parts)%2 == 1 {
		// Balanced fences; the last fenced block is the second-to-last part.
		body = parts[len(parts)-2]
	} else {
		body = parts[len(parts)-1]
	}
	body = strings.TrimSpace(body)
	for _, tag := range []string{"json", "JSON"} {
		if rest, ok := strings.CutPrefix(body, tag); ok {
			body = strings.TrimSpace(rest)
			break
		}
	}
	return body
}
