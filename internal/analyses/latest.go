package analyses

import "sync"

// LatestSlot holds the most recent analysis so a client can pick it up
// right after submitting, without going through history.
type LatestSlot struct {
	mu       sync.Mutex
	analysis *Analysis
}

// Set replaces the slot contents.
func (s *LatestSlot) Set(a Analysis) {
	a = cloneAnalysis(a)
	s.mu.Lock()
	s.analysis = &a
	s.mu.Unlock()
}

// Peek returns the slot contents without clearing it.
func (s *LatestSlot) Peek() (Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return Analysis{}, false
	}
	return cloneAnalysis(*s.analysis), true
}

// Take returns the slot contents and clears it.
func (s *LatestSlot) Take() (Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return Analysis{}, false
	}
	a := *s.analysis
	s.analysis = nil
	return a, true
}

// Update replaces the slot contents only when it holds the analysis with the given ID.
func (s *LatestSlot) Update(a Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis != nil && s.analysis.ID == a.ID {
		a = cloneAnalysis(a)
		s.analysis = &a
	}
}

// Clear empties the slot, optionally only when it holds the given ID.
func (s *LatestSlot) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || (s.analysis != nil && s.analysis.ID == id) {
		s.analysis = nil
	}
}
