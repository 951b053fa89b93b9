package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urban-transit/schedule-resolver/schedule"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing overrides: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeOverrides(t, `
manualDelays:
  - tripId: T1
    minutes: -3
    reason: régulation
cancellations:
  - tripId: T2
    reason: grève
skippedStops:
  - tripId: T3
    stopId: S4
    stopSequence: 2
  - tripId: T3
    stopId: S9
`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	ov := schedule.NewOverrides()
	s.ApplyTo(&ov)

	md, ok := ov.ManualDelays["T1"]
	if !ok || md.Minutes != -3 || md.Reason != "régulation" {
		t.Errorf("manual delay = %+v", md)
	}
	if c := ov.Cancellations["T2"]; c.Reason != "grève" {
		t.Errorf("cancellation = %+v", c)
	}
	if _, ok := ov.Skipped[schedule.NewSequencedStopKey("T3", "S4", 2)]; !ok {
		t.Error("sequenced skipped stop missing")
	}
	if _, ok := ov.Skipped[schedule.NewStopKey("T3", "S9")]; !ok {
		t.Error("unsequenced skipped stop missing")
	}
}

func TestLoadFileEmptyPath(t *testing.T) {
	s, err := LoadFile("")
	if err != nil {
		t.Fatalf("empty path should not error: %v", err)
	}
	if len(s.ManualDelays)+len(s.Cancellations)+len(s.SkippedStops) != 0 {
		t.Errorf("expected empty set, got %+v", s)
	}
}

func TestLoadFileMissingTripID(t *testing.T) {
	path := writeOverrides(t, "manualDelays:\n  - minutes: 5\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for entry without tripId")
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := writeOverrides(t, "manualDelays: [unclosed")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
