package recommend

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"interview-prep-backend/internal/domain"
)

// RecoverJSON extracts the model's JSON object from a raw completion.
//
// It first parses the whole string, then the span from the first '{' to the last
// '}' inclusive. Nothing else is attempted: no bracket balancing and no comma
// repair. If prose before the object contains its own braces the span is wrong
// and recovery fails.
func RecoverJSON(raw string) (map[string]any, error) {
	if obj, ok := parseObject(raw); ok {
		return obj, nil
	}

	first := strings.IndexByte(raw, '{')
	last := strings.LastIndexByte(raw, '}')
	if first != -1 && last > first {
		if obj, ok := parseObject(raw[first : last+1]); ok {
			return obj, nil
		}
	}
	return nil, domain.ErrInvalidCompletionFormat
}

// parseObject accepts s only if it is exactly one JSON object. Numbers are kept
// as json.Number so they are re-encoded verbatim.
func parseObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}
