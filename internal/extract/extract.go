// Package extract recovers JSON values from LLM text output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")
	spanRE   = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// JSON recovers a JSON value from model output under three decreasing levels
// of strictness: the whole content parses directly, a JSON object/array sits
// inside a fenced code block, or the first top-level {...} or [...] span in
// the text parses. The second return is false when no value could be
// recovered; callers treat that as a first-class outcome.
func JSON(content string) (any, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false
	}

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		return parsed, true
	}

	if m := fencedRE.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, true
		}
	}

	if m := spanRE.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, true
		}
	}

	return nil, false
}

// JSONKey recovers a JSON value like JSON and, when the recovered value is a
// mapping, returns the value stored at key. A mapping without the key yields
// no value; a non-mapping result is returned whole.
func JSONKey(content, key string) (any, bool) {
	parsed, ok := JSON(content)
	if !ok {
		return nil, false
	}
	m, isMap := parsed.(map[string]any)
	if !isMap {
		return parsed, true
	}
	v, present := m[key]
	if !present {
		return nil, false
	}
	return v, true
}

// Object recovers a JSON object, discarding any other recovered shape.
func Object(content string) (map[string]any, bool) {
	parsed, ok := JSON(content)
	if !ok {
		return nil, false
	}
	m, isMap := parsed.(map[string]any)
	if !isMap {
		return nil, false
	}
	return m, true
}

// List recovers a JSON array, discarding any other recovered shape.
func List(content string) ([]any, bool) {
	parsed, ok := JSON(content)
	if !ok {
		return nil, false
	}
	l, isList := parsed.([]any)
	if !isList {
		return nil, false
	}
	return l, true
}
