package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"prep-backend/internal/readiness"
)

type failingCreateRepo struct {
	*MemoryRepo
}

func (r failingCreateRepo) Create(context.Context, Analysis) ([]string, error) {
	return nil, errors.New("disk full")
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) Save(_ context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := namespace + "/" + fileName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return key, int64(len(data)), "text/plain", nil
}

func (s *memoryStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("missing object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func newTestService(repo Repo) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceAnalyzeStoresAndSetsLatest(t *testing.T) {
	repo := NewMemoryRepo(10)
	svc := newTestService(repo)

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{Company: "Amazon", Role: "SDE", JDText: sampleJD})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Saved {
		t.Fatalf("expected analysis to be saved")
	}
	a := result.Analysis
	if a.ID == "" || a.CreatedAt.IsZero() {
		t.Fatalf("expected id and createdAt, got %+v", a)
	}
	if a.AdjustedReadinessScore != a.ReadinessScore {
		t.Fatalf("adjusted score should start at base: %d vs %d", a.AdjustedReadinessScore, a.ReadinessScore)
	}
	if a.CompanyIntel == nil || a.CompanyIntel.Size != readiness.SizeEnterprise {
		t.Fatalf("expected enterprise intel, got %+v", a.CompanyIntel)
	}
	for skill, state := range a.SkillConfidenceMap {
		if state != readiness.ConfidencePractice {
			t.Fatalf("skill %s should default to practice, got %s", skill, state)
		}
	}

	stored, err := repo.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ReadinessScore != a.ReadinessScore {
		t.Fatalf("stored score mismatch")
	}
	latest, ok := svc.Latest(false)
	if !ok || latest.ID != a.ID {
		t.Fatalf("expected latest slot to hold %s", a.ID)
	}
}

func TestServiceAnalyzeValidation(t *testing.T) {
	svc := newTestService(NewMemoryRepo(10))
	cases := []struct {
		name  string
		req   AnalyzeRequest
		field string
	}{
		{name: "missing jd", req: AnalyzeRequest{}, field: "jdText"},
		{name: "short jd", req: AnalyzeRequest{JDText: "  React developer needed  "}, field: "jdText"},
		{name: "exactly fifty", req: AnalyzeRequest{JDText: strings.Repeat("a", MinJDLength)}, field: "jdText"},
		{name: "long company", req: AnalyzeRequest{Company: strings.Repeat("x", 201), JDText: sampleJD}, field: "company"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), tc.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, vErr.Field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation in chain")
			}
		})
	}
	if _, ok := svc.Latest(false); ok {
		t.Fatalf("rejected requests must not populate the latest slot")
	}
}

func TestServiceAnalyzePersistFailureStillReturnsAnalysis(t *testing.T) {
	svc := newTestService(failingCreateRepo{NewMemoryRepo(10)})

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{JDText: sampleJD})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Saved {
		t.Fatalf("expected Saved=false")
	}
	if _, err := svc.Get(context.Background(), result.Analysis.ID); err != nil {
		t.Fatalf("unsaved analysis should be reachable through the latest slot: %v", err)
	}

	updated, err := svc.UpdateConfidence(context.Background(), result.Analysis.ID, map[string]readiness.Confidence{
		"Java": readiness.ConfidenceKnow,
	})
	if err != nil {
		t.Fatalf("UpdateConfidence on unsaved analysis: %v", err)
	}
	if updated.SkillConfidenceMap["Java"] != readiness.ConfidenceKnow {
		t.Fatalf("expected Java=know")
	}
	latest, _ := svc.Latest(false)
	if latest.AdjustedReadinessScore != updated.AdjustedReadinessScore {
		t.Fatalf("latest slot not updated")
	}

	if err := svc.Delete(context.Background(), result.Analysis.ID); err != nil {
		t.Fatalf("Delete unsaved: %v", err)
	}
	if _, ok := svc.Latest(false); ok {
		t.Fatalf("expected latest slot to be cleared")
	}
}

func TestServiceUpdateConfidenceRecomputesFromFullMap(t *testing.T) {
	svc := newTestService(NewMemoryRepo(10))
	ctx := context.Background()
	result, err := svc.Analyze(ctx, AnalyzeRequest{JDText: sampleJD})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	base := result.Analysis.ReadinessScore
	skills := len(result.Analysis.SkillConfidenceMap)

	first, err := svc.UpdateConfidence(ctx, result.Analysis.ID, map[string]readiness.Confidence{"Java": readiness.ConfidenceKnow})
	if err != nil {
		t.Fatalf("UpdateConfidence: %v", err)
	}
	want := readiness.CalculateAdjustedScore(base, first.SkillConfidenceMap)
	if first.AdjustedReadinessScore != want {
		t.Fatalf("expected %d, got %d", want, first.AdjustedReadinessScore)
	}

	// Repeating the same toggle must not drift the score.
	second, err := svc.UpdateConfidence(ctx, result.Analysis.ID, map[string]readiness.Confidence{"Java": readiness.ConfidenceKnow})
	if err != nil {
		t.Fatalf("UpdateConfidence again: %v", err)
	}
	if second.AdjustedReadinessScore != first.AdjustedReadinessScore {
		t.Fatalf("score drifted: %d -> %d", first.AdjustedReadinessScore, second.AdjustedReadinessScore)
	}
	if len(second.SkillConfidenceMap) != skills {
		t.Fatalf("confidence map changed size: %d -> %d", skills, len(second.SkillConfidenceMap))
	}
	if second.ReadinessScore != base {
		t.Fatalf("base score must not change")
	}
}

func TestServiceUpdateConfidenceRejectsUnknownState(t *testing.T) {
	svc := newTestService(NewMemoryRepo(10))
	result, _ := svc.Analyze(context.Background(), AnalyzeRequest{JDText: sampleJD})

	_, err := svc.UpdateConfidence(context.Background(), result.Analysis.ID, map[string]readiness.Confidence{"Java": "expert"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "skills" {
		t.Fatalf("expected skills ValidationError, got %v", err)
	}
	if _, err := svc.UpdateConfidence(context.Background(), "missing", map[string]readiness.Confidence{"Java": readiness.ConfidenceKnow}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceAnalyzeDocumentArchivesAndDeleteRemovesSource(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(NewMemoryRepo(10))
	svc.Store = store
	ctx := context.Background()

	result, err := svc.AnalyzeDocument(ctx, "Acme", "SDE", "jd.txt", "text/plain", []byte(sampleJD))
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}
	key := result.Analysis.SourceKey
	if key != "jd-uploads/jd.txt" {
		t.Fatalf("unexpected source key %q", key)
	}
	if string(store.objects[key]) != sampleJD {
		t.Fatalf("archived bytes mismatch")
	}

	if err := svc.Delete(ctx, result.Analysis.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != key {
		t.Fatalf("expected source %s to be deleted, got %v", key, store.deleted)
	}
	if err := svc.Delete(ctx, result.Analysis.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestServiceAnalyzeDocumentArchiveFailureIsNotFatal(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("bucket unavailable")
	svc := newTestService(NewMemoryRepo(10))
	svc.Store = store

	result, err := svc.AnalyzeDocument(context.Background(), "", "", "jd.txt", "text/plain", []byte(sampleJD))
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}
	if result.Analysis.SourceKey != "" {
		t.Fatalf("expected no source key, got %q", result.Analysis.SourceKey)
	}
}

func TestServiceAnalyzeDocumentRejectsShortTextWithoutArchiving(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(NewMemoryRepo(10))
	svc.Store = store

	_, err := svc.AnalyzeDocument(context.Background(), "", "", "short.txt", "text/plain", []byte("Go developer wanted"))
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "jdText" {
		t.Fatalf("expected jdText ValidationError, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("rejected upload was archived: %v", store.objects)
	}
}

func TestServiceAnalyzeDocumentCanceledRemovesArchive(t *testing.T) {
	store := newMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	svc := newTestService(NewMemoryRepo(10))
	// Cancels between archiving and analysis.
	svc.Store = &cancelingStore{memoryStore: store, cancel: cancel}

	if _, err := svc.AnalyzeDocument(ctx, "", "", "jd.txt", "text/plain", []byte(sampleJD)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("archive left behind: %v", store.objects)
	}
}

type cancelingStore struct {
	*memoryStore
	cancel context.CancelFunc
}

func (s *cancelingStore) Save(ctx context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	key, n, mime, err := s.memoryStore.Save(ctx, namespace, fileName, r)
	s.cancel()
	return key, n, mime, err
}

func TestServiceEvictionRemovesArchivedSources(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(NewMemoryRepo(2))
	svc.Store = store
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if _, err := svc.AnalyzeDocument(ctx, "", "", fmt.Sprintf("jd-%d.txt", i), "text/plain", []byte(sampleJD)); err != nil {
			t.Fatalf("AnalyzeDocument %d: %v", i, err)
		}
	}
	history, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if len(store.objects) != 2 {
		t.Fatalf("expected 2 archived objects, got %d", len(store.objects))
	}
	if _, ok := store.objects["jd-uploads/jd-1.txt"]; ok {
		t.Fatalf("evicted source still archived")
	}
}

func TestServicePersistFailureDropsArchivedSource(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(failingCreateRepo{NewMemoryRepo(10)})
	svc.Store = store

	result, err := svc.AnalyzeDocument(context.Background(), "", "", "jd.txt", "text/plain", []byte(sampleJD))
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}
	if result.Saved || result.Analysis.SourceKey != "" {
		t.Fatalf("expected unsaved analysis without source, got saved=%v key=%q", result.Saved, result.Analysis.SourceKey)
	}
	if len(store.objects) != 0 {
		t.Fatalf("archive left behind: %v", store.objects)
	}
}

func TestServiceMalformedIDIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateConfidence(ctx, "not-a-uuid", map[string]readiness.Confidence{"Java": readiness.ConfidenceKnow}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateConfidence: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
	// No query may reach Postgres, where the uuid cast would fail.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestServiceGetReturnsUnknownUUIDAsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := newTestService(repo)
	id := "5f0c6a4e-2b1d-4c3e-9a8b-7d6e5f4a3b2c"

	mock.ExpectQuery(regexp.QuoteMeta(selectColumns + " WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(analysisColumnsRow())

	if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestServiceStoredAnalysisRoundTrips(t *testing.T) {
	repo := NewMemoryRepo(10)
	svc := NewService(repo, nil)
	ctx := context.Background()

	result, err := svc.Analyze(ctx, AnalyzeRequest{Company: "Infosys", Role: "SDE", JDText: sampleJD})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	created := result.Analysis.CreatedAt
	if !created.Equal(created.Truncate(time.Microsecond)) {
		t.Fatalf("timestamp finer than database precision: %s", created.Format(time.RFC3339Nano))
	}

	stored, err := repo.GetByID(ctx, result.Analysis.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Analysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, result.Analysis) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, result.Analysis)
	}
}

func TestServiceClearEmptiesHistoryAndLatest(t *testing.T) {
	repo := NewMemoryRepo(10)
	svc := newTestService(repo)
	ctx := context.Background()
	_, _ = svc.Analyze(ctx, AnalyzeRequest{JDText: sampleJD})
	_, _ = svc.Analyze(ctx, AnalyzeRequest{JDText: sampleJD})

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, _ := svc.List(ctx, 0, 0)
	if len(list) != 0 {
		t.Fatalf("expected empty history, got %d", len(list))
	}
	if _, ok := svc.Latest(false); ok {
		t.Fatalf("expected latest slot to be empty")
	}
}

func TestServiceLatestConsume(t *testing.T) {
	svc := newTestService(NewMemoryRepo(10))
	result, _ := svc.Analyze(context.Background(), AnalyzeRequest{JDText: sampleJD})

	got, ok := svc.Latest(true)
	if !ok || got.ID != result.Analysis.ID {
		t.Fatalf("expected latest %s", result.Analysis.ID)
	}
	if _, ok := svc.Latest(true); ok {
		t.Fatalf("expected slot to be consumed")
	}
	if _, err := svc.Get(context.Background(), result.Analysis.ID); err != nil {
		t.Fatalf("history entry should survive consuming the slot: %v", err)
	}
}
