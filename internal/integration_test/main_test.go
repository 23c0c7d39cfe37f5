// 指示: miu200521358
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_vrik/pkg/usecase/minteractor"
)

func TestSanitizePathComponent(t *testing.T) {
	cases := map[string]string{
		"reach/left":  "reach_left",
		"  ":          "scenario",
		"walk:cycle.": "walk_cycle",
		"...":         "scenario",
	}
	for input, want := range cases {
		if got := sanitizePathComponent(input); got != want {
			t.Errorf("sanitizePathComponent(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildScenarioEntriesDetectsOptionalInputs(t *testing.T) {
	root := t.TempDir()
	writeScenarioFile(t, filepath.Join(root, "b_walk", scenarioMotionFile))
	writeScenarioFile(t, filepath.Join(root, "a_reach", scenarioMotionFile))
	writeScenarioFile(t, filepath.Join(root, "a_reach", scenarioSettingsFile))
	writeScenarioFile(t, filepath.Join(root, "a_reach", scenarioBindFile))
	writeScenarioFile(t, filepath.Join(root, "note.txt"))

	entries, err := buildScenarioEntries(root, filepath.Join(root, "out"))
	if err != nil {
		t.Fatalf("buildScenarioEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name != "a_reach" || entries[1].Name != "b_walk" {
		t.Fatalf("entries not sorted: %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[0].SettingsPath == "" || entries[0].BindPath == "" {
		t.Errorf("optional inputs not detected: %+v", entries[0])
	}
	if entries[1].SettingsPath != "" || entries[1].BindPath != "" {
		t.Errorf("unexpected optional inputs: %+v", entries[1])
	}
	if !strings.HasSuffix(filepath.ToSlash(entries[1].OutputPath), "out/002_b_walk/solved.yaml") {
		t.Errorf("output path = %s", entries[1].OutputPath)
	}
}

func TestSolveProgressCollectorSummary(t *testing.T) {
	collector := newSolveProgressCollector()
	if collector.Summary() != "" {
		t.Fatalf("empty collector should have empty summary")
	}
	collector.ReportSolveProgress(minteractor.SolveProgressEvent{Type: minteractor.SolveProgressEventTypeRigBound, FrameCount: 3, JointCount: 12})
	collector.ReportSolveProgress(minteractor.SolveProgressEvent{Type: minteractor.SolveProgressEventTypeFrameSolved, FrameCount: 3, HeldCount: 1})
	collector.ReportSolveProgress(minteractor.SolveProgressEvent{Type: minteractor.SolveProgressEventTypeFrameSolved, FrameCount: 3, HeldCount: 2})

	want := "events=2 frames=3 joints=12 held=3 stages=frame_solved,rig_bound"
	if got := collector.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func writeScenarioFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("name: test\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
