package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/chatlens/testutil"
)

func resetBatchFlags() {
	batchFormat = "json"
	batchOut = "./reports"
	batchWorkers = 4
	batchDedupe = true
}

func TestBatchCommandProcessesDirectory(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	files := map[string][]byte{
		"one.json": testutil.JSONExportFixture(t, "one", [][2]string{{"a", "hello"}, {"b", "hi"}}),
		"two.json": testutil.JSONExportFixture(t, "two", [][2]string{{"c", "hey"}}),
		"bad.json": []byte(`{"messages": [}]`),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(t.TempDir(), "reports")

	// One malformed file must not abort the run.
	if err := runCommand(t, "batch", dir, "--out", out, "--workers", "2"); err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	for _, want := range []string{"one.json", "two.json"} {
		if _, err := os.Stat(filepath.Join(out, want)); err != nil {
			t.Errorf("report %s not written: %v", want, err)
		}
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2", len(entries))
	}
	resetBatchFlags()
}

func TestBatchCommandDeduplicates(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	src := testutil.JSONExportFixture(t, "orig", [][2]string{{"a", "same content"}})
	dup := testutil.JSONExportFixture(t, "copy", [][2]string{{"a", "same content"}})
	if err := os.WriteFile(filepath.Join(dir, "orig.json"), src, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "copy.json"), dup, 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "reports")

	if err := runCommand(t, "batch", dir, "--out", out); err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("deduplication kept %d reports, want 1", len(entries))
	}
	resetBatchFlags()
}

func TestBatchCommandEmptyInput(t *testing.T) {
	resetBatchFlags()
	if err := runCommand(t, "batch", t.TempDir()); err == nil {
		t.Error("batch over an empty directory should error")
	}
	resetBatchFlags()
}
