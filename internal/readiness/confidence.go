package readiness

import (
	"errors"
	"fmt"
)

// ErrInvalidConfidence is returned for states other than know/practice.
var ErrInvalidConfidence = errors.New("invalid confidence state")

// CreateDefaultConfidenceMap marks every detected skill as needing practice.
func CreateDefaultConfidenceMap(skills ExtractedSkills) ConfidenceMap {
	out := make(ConfidenceMap)
	for _, skill := range skills.All() {
		out[skill] = ConfidencePractice
	}
	return out
}

// ApplyConfidence returns a new map with updates applied. Skills that are not
// already keys of current are ignored so the map never grows past the
// analysis's own skills.
func ApplyConfidence(current ConfidenceMap, updates map[string]Confidence) (ConfidenceMap, error) {
	for skill, state := range updates {
		if !state.Valid() {
			return nil, fmt.Errorf("skill %q: %w: %q", skill, ErrInvalidConfidence, state)
		}
	}
	out := make(ConfidenceMap, len(current))
	for skill, state := range current {
		out[skill] = state
	}
	for skill, state := range updates {
		if _, ok := out[skill]; ok {
			out[skill] = state
		}
	}
	return out, nil
}
