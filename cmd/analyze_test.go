package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/chatlens/internal/export"
	"github.com/iksnae/chatlens/testutil"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func TestAnalyzeCommandWritesReport(t *testing.T) {
	resetAnalyzeFlags()
	src := testutil.JSONExportFixture(t, "conv1", [][2]string{
		{"alice", "I love this!"},
		{"bob", "this is terrible"},
	})
	input := testutil.WriteTempFile(t, "chat.json", src)
	out := filepath.Join(t.TempDir(), "report.json")

	if err := runCommand(t, "analyze", input, "--out", out, "--format", "json"); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report export.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if report.Conversation.ID != "conv1" {
		t.Errorf("conversation id = %q, want conv1", report.Conversation.ID)
	}
	if !report.Analysis.Sentiment.Available {
		t.Error("sentiment section unavailable")
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	resetAnalyzeFlags()
	input := testutil.WriteTempFile(t, "chat.json",
		testutil.JSONExportFixture(t, "c", [][2]string{{"a", "hi"}}))

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"analyze", filepath.Join(t.TempDir(), "nope.json")}},
		{"invalid format", []string{"analyze", input, "--format", "csv"}},
		{"unknown adapter", []string{"analyze", input, "--adapter", "telegram"}},
		{"invalid method", []string{"analyze", input, "--method", "psychic"}},
		{"no arguments", []string{"analyze"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetAnalyzeFlags()
			if err := runCommand(t, tt.args...); err == nil {
				t.Error("command succeeded, want error")
			}
		})
	}
	resetAnalyzeFlags()
}

func TestAnalyzeCommandForcedAdapter(t *testing.T) {
	resetAnalyzeFlags()
	input := testutil.WriteTempFile(t, "chat.txt",
		testutil.WhatsAppExportFixture(t, [][2]string{{"Alice", "hey"}, {"Bob", "hi"}}))
	out := filepath.Join(t.TempDir(), "report.json")

	if err := runCommand(t, "analyze", input, "--adapter", "whatsapp", "--out", out); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("report not written: %v", err)
	}
	resetAnalyzeFlags()
}

// resetAnalyzeFlags clears persistent flag state between tests that reuse
// the shared root command.
func resetAnalyzeFlags() {
	analyzeFormat = "json"
	analyzeOut = ""
	analyzeMethod = ""
	analyzeContextual = false
	analyzeAdapter = ""
}
