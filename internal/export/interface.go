// Package export renders analysis reports to consumer formats. Each format
// is one Exporter implementation behind a factory, mirroring the adapter
// registry on the input side.
package export

import (
	"fmt"
	"io"

	"github.com/iksnae/chatlens/internal"
	"github.com/iksnae/chatlens/internal/analytics"
)

// Report pairs one conversation with its analysis result for rendering.
type Report struct {
	Conversation *internal.Conversation `json:"conversation" yaml:"conversation"`
	Analysis     *analytics.Result      `json:"analysis" yaml:"analysis"`
}

// Exporter defines the interface for all report formats
type Exporter interface {
	Export(report *Report, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "sqlite":
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, jsonl, yaml, md, sqlite)", format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"json", "jsonl", "yaml", "md", "sqlite"}
}
