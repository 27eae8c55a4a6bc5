// Package llmjson parses and validates untrusted JSON produced by the LLM
// agents before anything is persisted.
package llmjson

import (
	"encoding/json"
	"strings"
)

const fence = "```"

// StripFences removes a single surrounding markdown code fence (optionally
// tagged "json") from raw. Unfenced input is only trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	if strings.HasPrefix(s, fence+"json") {
		s = strings.TrimPrefix(s, fence+"json")
	} else {
		s = strings.TrimPrefix(s, fence)
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// parseObject strips fences, parses s and requires a top-level JSON object.
func parseObject(raw string) (map[string]any, error) {
	s := StripFences(raw)
	if s == "" {
		return nil, &MalformedJSONError{Raw: raw}
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, &MalformedJSONError{Raw: raw, Err: err}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaViolationError{Reason: "top level must be a JSON object"}
	}
	return obj, nil
}
