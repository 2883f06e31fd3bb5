// Package jsontree sanitizes decoded JSON values in place of per-field
// conditionals: one bottom-up pass over the generic object/array/scalar
// shape that encoding/json produces.
package jsontree

// StripEmpty recursively removes null values, empty objects, and empty
// arrays from a decoded JSON tree. A container emptied by the removal is
// itself removed, propagating upward. Scalars (including empty strings)
// pass through untouched. StripEmpty returns nil when the whole tree
// collapses; it is idempotent.
func StripEmpty(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cleaned := make(map[string]any, len(t))
		for k, val := range t {
			if cv := StripEmpty(val); !isEmpty(cv) {
				cleaned[k] = cv
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	case []any:
		cleaned := make([]any, 0, len(t))
		for _, item := range t {
			if cv := StripEmpty(item); !isEmpty(cv) {
				cleaned = append(cleaned, cv)
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	default:
		return v
	}
}

// StripEmptyMap is StripEmpty for a top-level object; a fully collapsed
// tree comes back as an empty (non-nil) map.
func StripEmptyMap(m map[string]any) map[string]any {
	cleaned := StripEmpty(m)
	if cleaned == nil {
		return map[string]any{}
	}
	return cleaned.(map[string]any)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
