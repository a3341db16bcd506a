package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/chatlens/internal"
	"github.com/iksnae/chatlens/internal/adapter"
	"github.com/iksnae/chatlens/internal/analytics"
	"github.com/iksnae/chatlens/internal/export"
	"github.com/spf13/cobra"
)

var (
	batchFormat  string
	batchOut     string
	batchWorkers int
	batchDedupe  bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Analyze many chat exports",
	Long: `Parse and analyze a set of export files or directories. Files are
parsed concurrently; a file that fails to parse is reported and skipped
without aborting the run.

One report is written per conversation into the output directory, named
after the conversation id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAnalysisConfig()
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(batchFormat)
		if err != nil {
			return err
		}

		files, err := internal.CollectInputs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files found under %v", args)
		}

		runner := internal.NewBatchRunner(adapter.NewDefaultRegistry(), batchWorkers)
		var outcomes []internal.BatchOutcome
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Parsing %d file(s)", len(files)), func() error {
			outcomes = runner.Run(cmd.Context(), files)
			return nil
		})
		if err != nil {
			return err
		}

		var conversations []*internal.Conversation
		failed := 0
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				internal.LogError("Failed to parse %s: %v", outcome.Path, outcome.Err)
				failed++
				continue
			}
			internal.SortMessages(outcome.Conversation.Messages)
			conversations = append(conversations, outcome.Conversation)
		}

		if batchDedupe {
			before := len(conversations)
			deduplicator := internal.NewDeduplicator()
			conversations = deduplicator.Deduplicate(conversations)
			if removed := before - len(conversations); removed > 0 {
				internal.LogInfo("Removed %d duplicate conversation(s)", removed)
			}
		}

		if err := os.MkdirAll(batchOut, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		engine := analytics.NewEngine()
		exported := 0
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Analyzing %d conversation(s)", len(conversations)), func() error {
			for _, conv := range conversations {
				result, err := engine.Analyze(cmd.Context(), conv, cfg)
				if err != nil {
					internal.LogError("Failed to analyze %s: %v", conv.ID, err)
					continue
				}

				filename := fmt.Sprintf("%s.%s", conv.ID, exporter.Extension())
				path := filepath.Join(batchOut, filename)
				file, err := os.Create(path)
				if err != nil {
					internal.LogError("Failed to create %s: %v", path, err)
					continue
				}
				if err := exporter.Export(&export.Report{Conversation: conv, Analysis: result}, file); err != nil {
					_ = file.Close()
					internal.LogError("Failed to export %s: %v", conv.ID, err)
					continue
				}
				if err := file.Close(); err != nil {
					internal.LogWarn("Failed to close %s: %v", path, err)
				}
				exported++
			}
			return nil
		})
		if err != nil {
			return err
		}

		if failed > 0 {
			internal.PrintWarning(fmt.Sprintf("%d file(s) failed to parse", failed))
		}
		internal.PrintSuccess(fmt.Sprintf("Batch complete: %d report(s) written to %s", exported, batchOut))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "json", "Report format (json, jsonl, yaml, md, sqlite)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "./reports", "Output directory")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Number of concurrent parser workers")
	batchCmd.Flags().BoolVar(&batchDedupe, "dedupe", true, "Drop conversations with identical content")
}
