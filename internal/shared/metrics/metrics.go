package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisCreatedTotal   atomic.Uint64
	persistFailedTotal     atomic.Uint64
	confidenceUpdatedTotal atomic.Uint64
	ingestFailedTotal      atomic.Uint64
	panicsRecoveredTotal   atomic.Uint64

	analysisDuration = newHistogram([]float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250})
)

// IncAnalysisCreated counts a computed analysis.
func IncAnalysisCreated() {
	analysisCreatedTotal.Add(1)
}

// IncPersistFailed counts an analysis that could not be written to history.
func IncPersistFailed() {
	persistFailedTotal.Add(1)
}

// IncConfidenceUpdated counts a confidence edit.
func IncConfidenceUpdated() {
	confidenceUpdatedTotal.Add(1)
}

// IncIngestFailed counts an upload or URL that yielded no usable text.
func IncIngestFailed() {
	ingestFailedTotal.Add(1)
}

// IncPanicRecovered counts a handler panic turned into a 500.
func IncPanicRecovered() {
	panicsRecoveredTotal.Add(1)
}

// ObserveAnalysisDurationMs records engine time for one analysis in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "prep_analyses_created_total", "Total analyses computed", analysisCreatedTotal.Load())
	writeCounter(&buf, "prep_analyses_persist_failed_total", "Total analyses not written to history", persistFailedTotal.Load())
	writeCounter(&buf, "prep_confidence_updates_total", "Total confidence edits", confidenceUpdatedTotal.Load())
	writeCounter(&buf, "prep_ingest_failed_total", "Total uploads or URLs without usable text", ingestFailedTotal.Load())
	writeCounter(&buf, "prep_http_panics_recovered_total", "Total handler panics recovered", panicsRecoveredTotal.Load())
	writeHistogram(&buf, "prep_analysis_duration_ms", "Engine duration per analysis in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	// Counts are per bucket; writeHistogram accumulates them.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
