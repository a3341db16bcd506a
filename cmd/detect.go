package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatlens/internal/adapter"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Show which adapter handles a file",
	Long: `Run every registered adapter's format probe against a file and report
each confidence score, marking the adapter that would be selected.

Useful for diagnosing why a file is parsed with the wrong adapter or
rejected entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		registry := adapter.NewDefaultRegistry()
		detections := registry.Detect(data)
		selected, selectErr := registry.Select(data)

		// Highest confidence first for display; selection already
		// resolved ties by registration order.
		sort.SliceStable(detections, func(i, j int) bool {
			return detections[i].Confidence > detections[j].Confidence
		})

		fmt.Println(headerStyle.Render(fmt.Sprintf("Format detection: %s", args[0])))
		fmt.Println()
		for _, d := range detections {
			line := fmt.Sprintf("  %-12s %.2f", d.Adapter.Name(), d.Confidence)
			if selectErr == nil && d.Adapter == selected {
				fmt.Println(matchStyle.Render(line + "  ← selected"))
			} else {
				fmt.Println(dimStyle.Render(line))
			}
		}
		fmt.Println()

		if selectErr != nil {
			return fmt.Errorf("no adapter recognizes this file: %w", selectErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
