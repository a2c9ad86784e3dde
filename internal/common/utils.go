package common

import (
	"bytes"
	"encoding/json"
)

// FirstPresent returns the first of keys whose value in obj exists and is not JSON null.
func FirstPresent(obj map[string]json.RawMessage, keys ...string) (string, json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || isNull(v) {
			continue
		}
		return k, v, true
	}
	return "", nil, false
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
