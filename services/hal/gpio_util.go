package hal

import (
	"strings"

	"feedminder-go/services/hal/internal/halcore"
)

// Shared helpers used by GPIO code.

func parsePull(s string) halcore.Pull {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "pullup":
		return halcore.PullUp
	case "down", "pulldown":
		return halcore.PullDown
	default:
		return halcore.PullNone
	}
}

func boolToInt(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(t any) (int, bool) {
	switch v := t.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// wantBool extracts a boolean from either a map payload (by key) or a scalar.
// Recognises true/false, 1/0, on/off, yes/no (case-insensitive).
func wantBool(src any, key string) bool {
	if m, ok := src.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return wantBool(v, "")
		}
		return false
	}

	switch v := src.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes":
			return true
		default:
			return false
		}
	default:
		if n, ok := asInt(src); ok {
			return n != 0
		}
		return false
	}
}
