package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chatlens/internal"
	"github.com/iksnae/chatlens/internal/adapter"
	"github.com/iksnae/chatlens/internal/analytics"
	"github.com/iksnae/chatlens/internal/export"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat     string
	analyzeOut        string
	analyzeMethod     string
	analyzeContextual bool
	analyzeAdapter    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single chat export",
	Long: `Parse a chat export file, run the analytics engine over it, and write
the report.

The input format is detected automatically; use --adapter to force one.
Reports go to stdout by default, or to a file with --out. The contextual
sentiment pass (--contextual) reads its API key from the OPENAI_API_KEY
environment variable (a local .env file is honored).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAnalysisConfig()
		if err != nil {
			return err
		}

		report, err := analyzeFile(cmd.Context(), args[0], cfg)
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(analyzeFormat)
		if err != nil {
			return err
		}

		if analyzeOut == "" {
			return exporter.Export(report, os.Stdout)
		}

		file, err := os.Create(analyzeOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := exporter.Export(report, file); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Report written to %s", analyzeOut))
		return nil
	},
}

// loadAnalysisConfig builds the engine config from the optional YAML file
// plus the command-line flags, which win over the file.
func loadAnalysisConfig() (analytics.Config, error) {
	cfg := analytics.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = analytics.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}
	if analyzeMethod != "" {
		cfg.SentimentMethod = analytics.SentimentMethod(analyzeMethod)
	}
	if analyzeContextual {
		cfg.UseContextual = true
	}
	if cfg.UseContextual || cfg.SentimentMethod == analytics.MethodContextual {
		cfg.Credential = os.Getenv("OPENAI_API_KEY")
		if cfg.Credential == "" {
			internal.LogWarn("Contextual scoring requested but OPENAI_API_KEY is not set; falling back to local methods")
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// analyzeFile parses one export file and runs the engine over it.
func analyzeFile(ctx context.Context, path string, cfg analytics.Config) (*export.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	registry := adapter.NewDefaultRegistry()

	var conv *internal.Conversation
	if analyzeAdapter != "" {
		conv, err = parseWithAdapter(registry, analyzeAdapter, data)
	} else {
		conv, err = registry.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	if conv.ID == "" {
		conv.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	internal.SortMessages(conv.Messages)

	engine := analytics.NewEngine()
	var result *analytics.Result
	err = internal.ShowProgress(ctx, fmt.Sprintf("Analyzing %d message(s)", conv.MessageCount()), func() error {
		var analyzeErr error
		result, analyzeErr = engine.Analyze(ctx, conv, cfg)
		return analyzeErr
	})
	if err != nil {
		return nil, err
	}

	return &export.Report{Conversation: conv, Analysis: result}, nil
}

// parseWithAdapter bypasses detection and uses the named adapter directly.
func parseWithAdapter(registry *adapter.Registry, name string, data []byte) (*internal.Conversation, error) {
	for _, a := range registry.Adapters() {
		if a.Name() == name {
			return a.Parse(data)
		}
	}
	names := make([]string, 0, len(registry.Adapters()))
	for _, a := range registry.Adapters() {
		names = append(names, a.Name())
	}
	return nil, fmt.Errorf("unknown adapter %q (available: %s)", name, strings.Join(names, ", "))
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "Report format (json, jsonl, yaml, md, sqlite)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output file (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeMethod, "method", "", "Sentiment method (lexicon, statistical, contextual, fusion)")
	analyzeCmd.Flags().BoolVar(&analyzeContextual, "contextual", false, "Enable the remote contextual sentiment pass")
	analyzeCmd.Flags().StringVar(&analyzeAdapter, "adapter", "", "Force a specific input adapter instead of auto-detection")
}
