package match

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawMatch is one match payload as delivered by the retrieval
// collaborator: an untyped nested key-value structure. Field names may
// use EA's wire names or snake_case variants; values may arrive as
// strings where numbers are expected.
type RawMatch = map[string]any

// section reads loosely typed payload fields at a known path, resolving
// canonical names through per-field alias lists and coercing values.
// Unknown keys in the payload are ignored for forward compatibility.
type section struct {
	path string
	obj  map[string]any
}

func newSection(path string, obj map[string]any) section {
	return section{path: path, obj: obj}
}

func (s section) child(key string) string {
	if s.path == "" {
		return key
	}
	return s.path + "." + key
}

func (s section) lookup(keys []string) (string, any, bool) {
	for _, key := range keys {
		if v, ok := s.obj[key]; ok {
			return key, v, true
		}
	}
	return keys[0], nil, false
}

func (s section) requiredInt(keys ...string) (int, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return 0, missingField(s.child(key))
	}
	out, ok := coerceInt(v)
	if !ok {
		return 0, coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) optionalInt(fallback int, keys ...string) (int, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return fallback, nil
	}
	out, ok := coerceInt(v)
	if !ok {
		return 0, coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) requiredFloat(keys ...string) (float64, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return 0, missingField(s.child(key))
	}
	out, ok := coerceFloat(v)
	if !ok {
		return 0, coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) optionalFloat(keys ...string) (float64, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return 0, nil
	}
	out, ok := coerceFloat(v)
	if !ok {
		return 0, coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) requiredString(keys ...string) (string, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return "", missingField(s.child(key))
	}
	out, ok := coerceString(v)
	if !ok || strings.TrimSpace(out) == "" {
		return "", coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) optionalString(keys ...string) (string, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return "", nil
	}
	out, ok := coerceString(v)
	if !ok {
		return "", coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) optionalBool(keys ...string) (bool, *FieldError) {
	key, v, ok := s.lookup(keys)
	if !ok {
		return false, nil
	}
	out, ok := coerceBool(v)
	if !ok {
		return false, coercionError(s.child(key), v)
	}
	return out, nil
}

func (s section) object(keys ...string) (map[string]any, bool) {
	_, v, ok := s.lookup(keys)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func coerceInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	default:
		return 0, false
	}
}

func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	case int:
		return x != 0, true
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "0" || strings.EqualFold(trimmed, "false") {
			return false, true
		}
		if trimmed == "1" || strings.EqualFold(trimmed, "true") {
			return true, true
		}
		return false, false
	default:
		return false, false
	}
}
