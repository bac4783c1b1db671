package logger

import (
	"fmt"
	"strings"
)

// Log lines must never carry lead PII or key material. Values under known
// sensitive keys are replaced before they reach zap.
func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := strings.TrimSpace(strings.ToLower(toString(kv[i])))
		out = append(out, toString(kv[i]), sanitizeValue(key, kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	if key == "" {
		return val
	}
	if isRedactKey(key) {
		return "[REDACTED]"
	}
	if m, ok := val.(map[string]interface{}); ok {
		return sanitizeMap(m)
	}
	return val
}

func sanitizeMap(input map[string]interface{}) map[string]interface{} {
	if input == nil {
		return nil
	}
	out := make(map[string]interface{}, len(input))
	for k, v := range input {
		out[k] = sanitizeValue(strings.TrimSpace(strings.ToLower(k)), v)
	}
	return out
}

func isRedactKey(key string) bool {
	switch {
	case strings.Contains(key, "phone"),
		strings.Contains(key, "email"),
		strings.Contains(key, "first_name"),
		strings.Contains(key, "last_name"),
		strings.Contains(key, "password"),
		strings.Contains(key, "secret"),
		strings.Contains(key, "encryption_key"),
		strings.Contains(key, "api_key"),
		strings.Contains(key, "authorization"):
		return true
	}
	// Hashes are one-way but still identify a contact across log lines.
	if strings.HasSuffix(key, "_hash") {
		return true
	}
	return false
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
