package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/banshee-data/wallmap/internal/batch"
	"github.com/banshee-data/wallmap/internal/fsutil"
	"github.com/banshee-data/wallmap/internal/store"
)

const doorGapBatch = `{
  "elevation": 0,
  "lines": [
    {"start": [0, 0], "end": [2000, 0], "handle": "L1"},
    {"start": [0, 200], "end": [2000, 200], "handle": "L2"},
    {"start": [2900, 0], "end": [5000, 0], "handle": "R1"},
    {"start": [2900, 200], "end": [5000, 200], "handle": "R2"}
  ],
  "frames": [
    {"name": "B1", "start": [0, 100, 0], "end": [5000, 100, 0]}
  ]
}`

func newTestFS(t *testing.T) *fsutil.MemoryFileSystem {
	t.Helper()
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/in/floor.json", []byte(doorGapBatch), 0644); err != nil {
		t.Fatal(err)
	}
	return mfs
}

func TestRunRequiresInput(t *testing.T) {
	err := run(context.Background(), options{}, fsutil.NewMemoryFileSystem(), &bytes.Buffer{})
	if !errors.Is(err, errNoInput) {
		t.Errorf("run() error = %v, want errNoInput", err)
	}
}

func TestRunToStdout(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), options{input: "/in/floor.json"}, newTestFS(t), &out); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	var res batch.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not a result document: %v", err)
	}
	if len(res.CenterLines) != 1 {
		t.Fatalf("got %d centerlines, want the door gap closed into 1", len(res.CenterLines))
	}
	if got := res.CenterLines[0].Length(); got < 4999 || got > 5001 {
		t.Errorf("centerline length = %f, want 5000", got)
	}
	if len(res.Walls) != 1 || len(res.Walls[0].Records) != 1 || res.Walls[0].Records[0].FrameName != "B1" {
		t.Errorf("unexpected mapping: %+v", res.Walls)
	}
}

func TestRunWithConfigAndOutput(t *testing.T) {
	mfs := newTestFS(t)
	// No opening widths and a short join distance leave the door gap open.
	tuning := `{"opening_widths": [], "auto_join_gap_distance": 10}`
	if err := mfs.WriteFile("/cfg/tuning.json", []byte(tuning), 0644); err != nil {
		t.Fatal(err)
	}

	opts := options{input: "/in/floor.json", config: "/cfg/tuning.json", output: "/out/result.json"}
	if err := run(context.Background(), opts, mfs, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	data, err := mfs.ReadFile("/out/result.json")
	if err != nil {
		t.Fatalf("result not written: %v", err)
	}
	var res batch.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.CenterLines) != 2 {
		t.Errorf("got %d centerlines, want 2 with the gap kept open", len(res.CenterLines))
	}
}

func TestRunBadConfig(t *testing.T) {
	mfs := newTestFS(t)
	if err := mfs.WriteFile("/cfg/bad.json", []byte(`{"angle_tolerance": 90}`), 0644); err != nil {
		t.Fatal(err)
	}
	err := run(context.Background(), options{input: "/in/floor.json", config: "/cfg/bad.json"}, mfs, &bytes.Buffer{})
	if err == nil {
		t.Error("expected an invalid configuration error")
	}
}

func TestRunRecordsToDB(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "runs.db")
	var out bytes.Buffer
	if err := run(context.Background(), options{input: "/in/floor.json", db: dbFile}, newTestFS(t), &out); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	var res batch.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatal(err)
	}

	st, err := store.Open(dbFile)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	got, err := st.LoadRun(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("run %s not recorded: %v", res.RunID, err)
	}
	if len(got.CenterLines) != len(res.CenterLines) {
		t.Errorf("stored %d centerlines, want %d", len(got.CenterLines), len(res.CenterLines))
	}
}
