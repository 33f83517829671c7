package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alcyxob/running-app/internal/domain"
)

// ParseError reports a model reply that could not be turned into a plan.
// Raw carries the unmodified reply so the caller can log or display it;
// the unparsed response is never silently discarded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse plan response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse extracts a WeeklyPlan from the model's raw reply, tolerating
// surrounding commentary. The reply is scanned for structurally balanced
// top-level JSON objects: exactly one candidate is parsed; zero candidates
// falls back to parsing the whole reply; more than one is ambiguous and
// fails rather than guessing.
func Parse(raw string) (*domain.WeeklyPlan, error) {
	text := stripFences(strings.TrimSpace(raw))

	candidates := balancedObjects(text)
	switch len(candidates) {
	case 1:
		text = candidates[0]
	case 0:
		// No balanced object; try the reply as-is.
	default:
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("ambiguous reply: %d JSON object candidates", len(candidates))}
	}

	var p domain.WeeklyPlan
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if p.Plan == nil {
		return nil, &ParseError{Raw: raw, Err: errors.New(`missing "plan" array`)}
	}
	if p.Tips == nil {
		return nil, &ParseError{Raw: raw, Err: errors.New(`missing "tips" array`)}
	}
	return &p, nil
}

// balancedObjects returns every top-level {...} substring whose braces
// balance, tracking string literals and escapes so braces inside free text
// quoted in the JSON don't break the count.
func balancedObjects(text string) []string {
	var (
		objects  []string
		depth    int
		start    int
		inString bool
		escaped  bool
	)

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					objects = append(objects, text[start:i+1])
				}
			}
		}
	}

	return objects
}

// stripFences removes a surrounding markdown code fence, which models
// often wrap JSON replies in.
func stripFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}
	return strings.TrimSpace(text)
}
