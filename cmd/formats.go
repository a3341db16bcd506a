package cmd

import (
	"fmt"

	"github.com/iksnae/chatlens/internal/adapter"
	"github.com/iksnae/chatlens/internal/export"
	"github.com/spf13/cobra"
)

// formatsCmd represents the formats command
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input adapters and report formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("Input adapters"))
		for _, a := range adapter.NewDefaultRegistry().Adapters() {
			fmt.Printf("  %s\n", a.Name())
		}
		fmt.Println()
		fmt.Println(headerStyle.Render("Report formats"))
		for _, f := range export.Formats() {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
