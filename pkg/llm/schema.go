package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError is the typed failure value for model output that does not
// satisfy the expected schema. Callers branch on it instead of aborting.
type ParseError struct {
	Stage string // which consumer attempted the decode
	Raw   string // raw model output, truncated for logging
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s output: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError with the raw output capped for log safety
func NewParseError(stage, raw string, err error) *ParseError {
	const maxRaw = 500
	if len(raw) > maxRaw {
		raw = raw[:maxRaw] + "..."
	}
	return &ParseError{Stage: stage, Raw: raw, Err: err}
}

// DecodeStrict extracts the first JSON object from a model response and
// decodes it into out, rejecting unknown fields. Models often wrap JSON in
// prose or markdown fences; everything outside the outermost braces is
// ignored.
func DecodeStrict(stage, response string, out any) *ParseError {
	raw := extractJSON(response)
	if raw == "" {
		return NewParseError(stage, response, fmt.Errorf("no JSON object found"))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return NewParseError(stage, response, err)
	}
	return nil
}

// extractJSON returns the first balanced top-level JSON object in s
func extractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
