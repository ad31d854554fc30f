package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Info("user input", "service", "grok")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected json record, got: %q", buf.String())
	}
	testboil.FailTestIfDiff(t, rec["msg"], any("user input"))
	testboil.FailTestIfDiff(t, rec["service"], any("grok"))
	if s, _ := rec["session"].(string); len(s) != 36 {
		t.Fatalf("expected session uuid, got: %v", rec["session"])
	}
}

func TestSessionsDiffer(t *testing.T) {
	var a, b bytes.Buffer
	New(&a).Info("x")
	New(&b).Info("x")
	var ra, rb map[string]any
	_ = json.Unmarshal(a.Bytes(), &ra)
	_ = json.Unmarshal(b.Bytes(), &rb)
	if ra["session"] == rb["session"] {
		t.Fatalf("expected unique session ids, both were: %v", ra["session"])
	}
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lockbot.log")
	logger, closer, err := Setup(path, 0, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	testboil.AssertStringContains(t, string(b), `"msg":"hello"`)
}
