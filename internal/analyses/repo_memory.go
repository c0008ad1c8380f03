package analyses

import (
	"context"
	"maps"
	"sync"

	"prep-backend/internal/readiness"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	limit   int
	entries []Analysis // most recent first
}

// NewMemoryRepo constructs a MemoryRepo keeping at most limit entries.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewMemoryRepo(limit int) *MemoryRepo {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &MemoryRepo{limit: limit}
}

// Create prepends the analysis and evicts the oldest entries beyond the limit.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(analysis.ID) >= 0 {
		return nil, ErrDuplicateID
	}
	analysis.SkillConfidenceMap = maps.Clone(analysis.SkillConfidenceMap)
	r.entries = append([]Analysis{analysis}, r.entries...)
	if len(r.entries) <= r.limit {
		return nil, nil
	}
	var evicted []string
	for _, a := range r.entries[r.limit:] {
		if a.SourceKey != "" {
			evicted = append(evicted, a.SourceKey)
		}
	}
	clear(r.entries[r.limit:])
	r.entries = r.entries[:r.limit]
	return evicted, nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(analysisID)
	if i < 0 {
		return Analysis{}, ErrNotFound
	}
	return cloneAnalysis(r.entries[i]), nil
}

// List returns analyses most recent first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.entries) {
		return []Analysis{}, nil
	}
	end := len(r.entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Analysis, 0, end-offset)
	for _, a := range r.entries[offset:end] {
		out = append(out, cloneAnalysis(a))
	}
	return out, nil
}

// UpdateConfidence replaces the confidence map and adjusted score in place.
// The entry keeps its position in the history.
func (r *MemoryRepo) UpdateConfidence(ctx context.Context, analysisID string, confidence readiness.ConfidenceMap, adjusted int) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(analysisID)
	if i < 0 {
		return Analysis{}, ErrNotFound
	}
	r.entries[i].SkillConfidenceMap = maps.Clone(confidence)
	r.entries[i].AdjustedReadinessScore = adjusted
	r.entries[i].UpdatedAt = timestampNow()
	return cloneAnalysis(r.entries[i]), nil
}

// Delete removes a single analysis.
func (r *MemoryRepo) Delete(ctx context.Context, analysisID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(analysisID)
	if i < 0 {
		return ErrNotFound
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

// DeleteAll clears the history.
func (r *MemoryRepo) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

func (r *MemoryRepo) indexOf(id string) int {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAnalysis(a Analysis) Analysis {
	a.SkillConfidenceMap = maps.Clone(a.SkillConfidenceMap)
	return a
}
