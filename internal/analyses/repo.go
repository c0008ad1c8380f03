package analyses

import (
	"context"

	"prep-backend/internal/readiness"
)

// Repo defines persistence operations for analysis history.
// Implementations return entries most recent first.
type Repo interface {
	// Create stores the analysis and returns the non-empty source keys of
	// entries evicted by the history cap.
	Create(ctx context.Context, analysis Analysis) (evictedSources []string, err error)
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	List(ctx context.Context, limit, offset int) ([]Analysis, error)
	UpdateConfidence(ctx context.Context, analysisID string, confidence readiness.ConfidenceMap, adjusted int) (Analysis, error)
	Delete(ctx context.Context, analysisID string) error
	DeleteAll(ctx context.Context) error
}
