package reviews

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// DecodePayload converts a stored payload into a Draft. The stored value
// may be JSON text, raw bytes, an already-decoded object, or absent.
// Malformed text is logged and treated as absent; decoding never fails
// to the caller.
func DecodePayload(raw any, logger *slog.Logger) Draft {
	switch t := raw.(type) {
	case nil:
		return nil
	case Draft:
		return t
	case map[string]any:
		return Draft(t)
	case []byte:
		return decodeText(string(t), logger)
	case string:
		return decodeText(t, logger)
	default:
		if logger != nil {
			logger.Warn("unsupported payload type, using defaults", "type", fmt.Sprintf("%T", t))
		}
		return nil
	}
}

func decodeText(text string, logger *slog.Logger) Draft {
	if text == "" {
		return nil
	}

	var d Draft
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		if logger != nil {
			logger.Warn("payload parse failed, using defaults", "error", err)
		}
		return nil
	}
	return d
}

// Merge overlays a loaded payload onto the slot's default structure,
// producing a complete render-safe Draft. Pure: neither input is mutated.
//
// Rules, per section key of defaults:
//   - absent from loaded: the default value is kept.
//   - both are field maps: fields merge, loaded values winning.
//   - loaded is anything else (list, primitive): the loaded value wins
//     outright.
//
// Keys present only in the loaded payload are carried through unchanged.
// Line-item sections (default value is a list) that merge to empty or
// non-list values are restored to their placeholder rows, so list-editing
// forms never render zero rows.
func Merge(defaults, loaded Draft) Draft {
	result := defaults.Clone()
	if result == nil {
		result = Draft{}
	}

	for key, loadedVal := range loaded {
		defaultVal, known := result[key]
		if !known {
			result[key] = cloneValue(loadedVal)
			continue
		}

		dm, dOK := defaultVal.(map[string]any)
		lm, lOK := loadedVal.(map[string]any)
		if dOK && lOK {
			merged := cloneMap(dm)
			for f, v := range lm {
				merged[f] = cloneValue(v)
			}
			result[key] = merged
			continue
		}

		result[key] = cloneValue(loadedVal)
	}

	for key, defaultVal := range defaults {
		placeholder, ok := defaultVal.([]any)
		if !ok {
			continue
		}
		if list, ok := result[key].([]any); !ok || len(list) == 0 {
			result[key] = cloneValue(placeholder)
		}
	}

	return result
}
