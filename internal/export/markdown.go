package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/iksnae/chatlens/internal/analytics"
)

// MarkdownExporter renders a human-readable analysis report.
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *Report, w io.Writer) error {
	conv := report.Conversation
	res := report.Analysis

	title := conv.Title
	if title == "" {
		title = conv.ID
	}
	_, _ = fmt.Fprintf(w, "# Analysis: %s\n\n", title)
	if conv.Platform != "" {
		_, _ = fmt.Fprintf(w, "**Platform:** %s  \n", conv.Platform)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", conv.MessageCount())
	_, _ = fmt.Fprintf(w, "**Participants:** %s\n\n", strings.Join(conv.ParticipantIDs(), ", "))

	// Sentiment
	_, _ = fmt.Fprintf(w, "## Sentiment\n\n")
	s := &res.Sentiment
	if !s.Available {
		_, _ = fmt.Fprintf(w, "_Unavailable: %s_\n\n", s.Reason)
	} else {
		_, _ = fmt.Fprintf(w, "**Overall:** %s (%.2f)  \n", s.OverallSentiment, s.SentimentScore)
		_, _ = fmt.Fprintf(w, "**Method:** %s  \n", s.Method)
		d := s.Distribution
		_, _ = fmt.Fprintf(w, "**Distribution:** very_negative=%d negative=%d neutral=%d positive=%d very_positive=%d (unscored=%d)\n\n",
			d.VeryNegative, d.Negative, d.Neutral, d.Positive, d.VeryPositive, s.Unscored)
		if s.AvgPolarity != nil && s.AvgSubjectivity != nil {
			_, _ = fmt.Fprintf(w, "**Polarity:** %.2f, **Subjectivity:** %.2f\n\n", *s.AvgPolarity, *s.AvgSubjectivity)
		}
	}

	// Network
	_, _ = fmt.Fprintf(w, "## Relationship Network\n\n")
	n := &res.Network
	if !n.Available {
		_, _ = fmt.Fprintf(w, "_Unavailable: %s_\n\n", n.Reason)
	} else {
		_, _ = fmt.Fprintf(w, "**Density:** %.3f  \n", n.Density)
		_, _ = fmt.Fprintf(w, "**Communities:** %d  \n", n.NumCommunities)
		if n.MostCentral != "" {
			_, _ = fmt.Fprintf(w, "**Most central:** %s  \n", n.MostCentral)
		}
		if n.MostRespondedTo != "" {
			_, _ = fmt.Fprintf(w, "**Most responded to:** %s  \n", n.MostRespondedTo)
		}
		if n.MostResponsive != "" {
			_, _ = fmt.Fprintf(w, "**Most responsive:** %s  \n", n.MostResponsive)
		}
		if len(n.Edges) > 0 {
			// Strongest connections first.
			sorted := make([]int, len(n.Edges))
			for i := range sorted {
				sorted[i] = i
			}
			sort.Slice(sorted, func(a, b int) bool { return n.Edges[sorted[a]].Weight > n.Edges[sorted[b]].Weight })
			_, _ = fmt.Fprintf(w, "\n| From | To | Weight |\n|---|---|---|\n")
			limit := len(sorted)
			if limit > 10 {
				limit = 10
			}
			for _, idx := range sorted[:limit] {
				edge := n.Edges[idx]
				_, _ = fmt.Fprintf(w, "| %s | %s | %d |\n", edge.From, edge.To, edge.Weight)
			}
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	// Temporal
	_, _ = fmt.Fprintf(w, "## Activity\n\n")
	t := &res.Temporal
	if !t.Available {
		_, _ = fmt.Fprintf(w, "_Unavailable: %s_\n\n", t.Reason)
	} else {
		_, _ = fmt.Fprintf(w, "**Sessions:** %d  \n", len(t.Sessions))
		_, _ = fmt.Fprintf(w, "**Bursts:** %d  \n", len(t.Bursts))
		_, _ = fmt.Fprintf(w, "**Busiest hour:** %02d:00  \n", t.BusiestHour)
		if t.Dormancy != nil {
			_, _ = fmt.Fprintf(w, "**Longest dormancy:** %s (%s to %s)  \n",
				t.Dormancy.Duration, t.Dormancy.Start.Format(time.RFC3339), t.Dormancy.End.Format(time.RFC3339))
		}
		if t.ResponseTimes != nil {
			_, _ = fmt.Fprintf(w, "**Median response time:** %s  \n", t.ResponseTimes.Median)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	// Content risk
	_, _ = fmt.Fprintf(w, "## Content Signals\n\n")
	c := &res.ContentRisk
	if !c.Available {
		_, _ = fmt.Fprintf(w, "_Unavailable: %s_\n\n", c.Reason)
	} else {
		_, _ = fmt.Fprintf(w, "**Risk-flagged messages:** %d  \n", c.RiskFlaggedCount)
		_, _ = fmt.Fprintf(w, "**Urgent messages:** %d  \n", c.UrgentCount)
		types := make([]string, 0, len(c.StatementTypeCounts))
		for st := range c.StatementTypeCounts {
			types = append(types, string(st))
		}
		sort.Strings(types)
		for _, st := range types {
			_, _ = fmt.Fprintf(w, "- %s: %d\n", st, c.StatementTypeCounts[analytics.StatementType(st)])
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
