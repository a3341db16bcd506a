package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chatlens/internal/analytics"
)

// JSONLExporter exports reports as one annotated message per line, the
// shape dashboards ingest incrementally.
type JSONLExporter struct{}

// Export exports a report to JSONL format
func (e *JSONLExporter) Export(report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)

	sentiments := map[string]analytics.MessageSentiment{}
	for _, ms := range report.Analysis.Sentiment.PerMessage {
		sentiments[ms.ID] = ms
	}
	risks := map[string]analytics.MessageRisk{}
	for _, mr := range report.Analysis.ContentRisk.PerMessage {
		risks[mr.ID] = mr
	}

	for i := range report.Conversation.Messages {
		msg := &report.Conversation.Messages[i]
		obj := map[string]interface{}{
			"id":        msg.ID,
			"sender":    msg.Sender,
			"timestamp": msg.Timestamp,
		}
		if msg.Text != "" {
			obj["text"] = msg.Text
		}
		if ms, ok := sentiments[msg.ID]; ok {
			obj["sentiment"] = ms.Sentiment
			obj["sentiment_score"] = ms.Score
		}
		if mr, ok := risks[msg.ID]; ok {
			obj["statement_type"] = mr.Type
			obj["intensity"] = mr.Intensity
			obj["risk_flag"] = mr.RiskFlag
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
