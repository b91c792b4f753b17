package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var ErrExtractionFailed = errors.New("document extraction failed")

// Extractor submits binary content with instructions and a JSON schema and
// returns the model's raw text response.
type Extractor interface {
	Extract(ctx context.Context, content []byte, mimeType, instructions, schema string) (string, error)
}

// RecoverJSON pulls a parseable JSON value out of a model response. Model
// output routinely arrives wrapped in markdown code fences or with prose
// around the payload, so this strips fences and falls back to the outermost
// array or object boundaries before giving up.
func RecoverJSON(raw string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, ErrExtractionFailed
	}

	candidate = stripFences(candidate)
	if msg, ok := tryParse(candidate); ok {
		return msg, nil
	}

	// Whichever container opens first is the payload; the other may be nested
	// inside it.
	pairs := [][2]string{{"[", "]"}, {"{", "}"}}
	if objStart := strings.Index(candidate, "{"); objStart >= 0 {
		if arrStart := strings.Index(candidate, "["); arrStart < 0 || objStart < arrStart {
			pairs[0], pairs[1] = pairs[1], pairs[0]
		}
	}
	for _, pair := range pairs {
		start := strings.Index(candidate, pair[0])
		end := strings.LastIndex(candidate, pair[1])
		if start >= 0 && end > start {
			if msg, ok := tryParse(candidate[start : end+1]); ok {
				return msg, nil
			}
		}
	}

	return nil, ErrExtractionFailed
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func tryParse(s string) (json.RawMessage, bool) {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
