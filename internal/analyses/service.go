package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"prep-backend/internal/ingest"
	"prep-backend/internal/readiness"
	"prep-backend/internal/shared/metrics"
	"prep-backend/internal/shared/storage/object"
	"prep-backend/internal/shared/telemetry"
)

// MinJDLength is the number of trimmed characters a job description must exceed.
const MinJDLength = 50

const uploadNamespace = "jd-uploads"

// AnalyzeRequest is the input for a new analysis.
type AnalyzeRequest struct {
	Company string `json:"company" validate:"max=200"`
	Role    string `json:"role" validate:"max=200"`
	JDText  string `json:"jdText" validate:"required"`
}

// AnalyzeResult carries a computed analysis and whether it reached history.
type AnalyzeResult struct {
	Analysis Analysis `json:"analysis"`
	Saved    bool     `json:"saved"`
}

// ValidationError reports a rejected field.
type ValidationError struct {
	Field string
	Issue string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Service contains business logic for analyses.
type Service struct {
	Repo    Repo
	Slot    *LatestSlot
	Engine  *readiness.Analyzer
	Store   object.ObjectStore
	Fetcher *ingest.Fetcher

	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewService constructs a Service. A nil engine uses the default taxonomy and company lists.
func NewService(repo Repo, engine *readiness.Analyzer) *Service {
	if engine == nil {
		engine = readiness.NewAnalyzer(readiness.DefaultTaxonomy(), readiness.DefaultCompanyLists())
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Service{
		Repo:     repo,
		Slot:     &LatestSlot{},
		Engine:   engine,
		Fetcher:  ingest.NewFetcher(ingest.DefaultFetchTimeout),
		validate: v,
		now:      timestampNow,
		newID:    uuid.NewString,
	}
}

// Analyze computes a readiness report for the request and records it.
// A storage failure leaves Saved false but still returns the analysis.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	return s.analyze(ctx, req, "")
}

func (s *Service) analyze(ctx context.Context, req AnalyzeRequest, sourceKey string) (AnalyzeResult, error) {
	if err := s.validateRequest(req); err != nil {
		return AnalyzeResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return AnalyzeResult{}, err
	}

	started := time.Now()
	report := s.Engine.Analyze(readiness.Input{Company: req.Company, Role: req.Role, JDText: req.JDText})
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Microseconds()) / 1000)

	now := s.now()
	analysis := Analysis{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
		Company:   req.Company,
		Role:      req.Role,
		JDText:    req.JDText,
		SourceKey: sourceKey,
		Report:    report,
	}
	metrics.IncAnalysisCreated()

	saved := true
	evicted, err := s.Repo.Create(ctx, analysis)
	if err != nil {
		saved = false
		metrics.IncPersistFailed()
		telemetry.Error("analysis.persist_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysis.ID,
			"error":       err.Error(),
		})
		// Only history entries own an archived source.
		s.removeSource(ctx, analysis.SourceKey)
		analysis.SourceKey = ""
	}
	for _, key := range evicted {
		s.removeSource(ctx, key)
	}
	s.Slot.Set(analysis)
	telemetry.Info("analysis.created", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"analysis_id":     analysis.ID,
		"readiness_score": report.ReadinessScore,
		"skills":          len(report.ExtractedSkills.All()),
		"has_company":     report.CompanyIntel != nil,
		"source_key":      analysis.SourceKey,
		"evicted_sources": len(evicted),
		"saved":           saved,
	})
	return AnalyzeResult{Analysis: analysis, Saved: saved}, nil
}

// AnalyzeDocument archives an uploaded job description, extracts its text and analyzes it.
func (s *Service) AnalyzeDocument(ctx context.Context, company, role, fileName, mimeType string, data []byte) (AnalyzeResult, error) {
	if strings.TrimSpace(fileName) == "" {
		return AnalyzeResult{}, &ValidationError{Field: "file", Issue: "file name is required"}
	}
	text, err := ingest.ExtractText(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.IncIngestFailed()
		return AnalyzeResult{}, fmt.Errorf("document %s: %w", fileName, err)
	}
	req := AnalyzeRequest{Company: company, Role: role, JDText: text}
	// Rejected uploads are never archived.
	if err := s.validateRequest(req); err != nil {
		return AnalyzeResult{}, err
	}

	var sourceKey string
	if s.Store != nil {
		key, _, _, err := s.Store.Save(ctx, uploadNamespace, fileName, bytes.NewReader(data))
		if err != nil {
			// The analysis does not depend on the archived copy.
			telemetry.Error("analysis.archive_failed", map[string]any{
				"request_id": requestIDFromContext(ctx),
				"file_name":  fileName,
				"error":      err.Error(),
			})
		} else {
			sourceKey = key
		}
	}
	result, err := s.analyze(ctx, req, sourceKey)
	if err != nil {
		s.removeSource(context.WithoutCancel(ctx), sourceKey)
		return AnalyzeResult{}, err
	}
	return result, nil
}

// AnalyzeURL downloads a job posting and analyzes its text.
func (s *Service) AnalyzeURL(ctx context.Context, company, role, rawURL string) (AnalyzeResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return AnalyzeResult{}, &ValidationError{Field: "url", Issue: "url is required"}
	}
	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = ingest.NewFetcher(ingest.DefaultFetchTimeout)
	}
	text, err := fetcher.FetchURL(ctx, rawURL)
	if err != nil {
		metrics.IncIngestFailed()
		return AnalyzeResult{}, err
	}
	return s.analyze(ctx, AnalyzeRequest{Company: company, Role: role, JDText: text}, "")
}

// UpdateConfidence applies confidence toggles and recomputes the adjusted score
// from the full resulting map.
func (s *Service) UpdateConfidence(ctx context.Context, analysisID string, updates map[string]readiness.Confidence) (Analysis, error) {
	current, inHistory, err := s.lookup(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	confidence, err := readiness.ApplyConfidence(current.SkillConfidenceMap, updates)
	if err != nil {
		return Analysis{}, &ValidationError{Field: "skills", Issue: err.Error()}
	}
	adjusted := readiness.CalculateAdjustedScore(current.ReadinessScore, confidence)

	var updated Analysis
	if inHistory {
		updated, err = s.Repo.UpdateConfidence(ctx, analysisID, confidence, adjusted)
		if err != nil {
			return Analysis{}, err
		}
	} else {
		updated = current
		updated.SkillConfidenceMap = confidence
		updated.AdjustedReadinessScore = adjusted
		updated.UpdatedAt = s.now()
	}
	s.Slot.Update(updated)
	metrics.IncConfidenceUpdated()
	telemetry.Info("analysis.confidence_updated", map[string]any{
		"request_id":     requestIDFromContext(ctx),
		"analysis_id":    analysisID,
		"updated_skills": len(updates),
		"adjusted_score": adjusted,
	})
	return updated, nil
}

// Get returns an analysis from history, or the unsaved latest analysis with that ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	a, _, err := s.lookup(ctx, analysisID)
	return a, err
}

// List returns analyses most recent first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Delete removes an analysis and its archived source file.
func (s *Service) Delete(ctx context.Context, analysisID string) error {
	if !validID(analysisID) {
		return ErrNotFound
	}
	a, err := s.Repo.GetByID(ctx, analysisID)
	if errors.Is(err, ErrNotFound) {
		if latest, ok := s.Slot.Peek(); ok && latest.ID == analysisID {
			s.Slot.Clear(analysisID)
			return nil
		}
	}
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, analysisID); err != nil {
		return err
	}
	s.Slot.Clear(analysisID)
	s.removeSource(ctx, a.SourceKey)
	telemetry.Info("analysis.deleted", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
	})
	return nil
}

// Clear empties the history and the latest slot.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.Repo.DeleteAll(ctx); err != nil {
		return err
	}
	s.Slot.Clear("")
	telemetry.Info("analysis.history_cleared", map[string]any{
		"request_id": requestIDFromContext(ctx),
	})
	return nil
}

// Latest returns the most recent analysis. With consume set the slot is emptied.
func (s *Service) Latest(consume bool) (Analysis, bool) {
	if consume {
		return s.Slot.Take()
	}
	return s.Slot.Peek()
}

// Taxonomy exposes the engine's skill taxonomy.
func (s *Service) Taxonomy() readiness.Taxonomy {
	return s.Engine.Extractor().Taxonomy()
}

// CompanyIntel classifies a company name without running a full analysis.
func (s *Service) CompanyIntel(name string) *readiness.CompanyIntel {
	return s.Engine.CompanyIntel(name)
}

func (s *Service) lookup(ctx context.Context, analysisID string) (Analysis, bool, error) {
	if !validID(analysisID) {
		return Analysis{}, false, ErrNotFound
	}
	a, err := s.Repo.GetByID(ctx, analysisID)
	if err == nil {
		return a, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Analysis{}, false, err
	}
	if latest, ok := s.Slot.Peek(); ok && latest.ID == analysisID {
		return latest, false, nil
	}
	return Analysis{}, false, ErrNotFound
}

// validID reports whether id can name a stored analysis. History ids are
// UUIDs; anything else would fail the uuid cast in Postgres.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) removeSource(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Error("analysis.source_delete_failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"source_key": key,
			"error":      err.Error(),
		})
	}
}

func (s *Service) validateRequest(req AnalyzeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{Field: fe.Field(), Issue: validationIssue(fe)}
		}
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.JDText)) <= MinJDLength {
		return &ValidationError{Field: "jdText", Issue: fmt.Sprintf("must be longer than %d characters", MinJDLength)}
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func validationIssue(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
