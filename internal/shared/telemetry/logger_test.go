package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("analysis.created", map[string]any{"analysis_id": "a-1", "readiness_score": 75})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if payload["msg"] != "analysis.created" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts field")
	}
	if payload["analysis_id"] != "a-1" || payload["readiness_score"] != float64(75) {
		t.Fatalf("unexpected fields: %v", payload)
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	defer SetLevel("info")

	SetLevel("warn")
	Info("dropped", nil)
	Error("kept", map[string]any{"error": "boom"})

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info line to be filtered: %s", out)
	}
	if !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("expected error line: %s", out)
	}
}
