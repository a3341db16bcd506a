package analytics

import (
	"testing"
	"time"

	"github.com/iksnae/chatlens/internal"
)

func TestClassifyStatement(t *testing.T) {
	tests := []struct {
		text string
		want StatementType
	}{
		{"Are you there?", StatementQuestion},
		{"what happened to the plan", StatementQuestion}, // interrogative lead
		{"stop doing that?", StatementQuestion},          // terminal '?' wins over lead
		{"please stop", StatementCommand},
		{"send me the file", StatementCommand},
		{"Wow!! Amazing!!", StatementExclamation},
		{"I went home yesterday.", StatementAssertion},
		{"fine!", StatementAssertion}, // a single '!' is not an exclamation
	}

	for _, tt := range tests {
		if got := classifyStatement(tt.text); got != tt.want {
			t.Errorf("classifyStatement(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestContentRiskFlagging(t *testing.T) {
	conv := internal.CreateTestConversation("risk", []internal.TestMessage{
		{Sender: "a", Text: "I will kill you"}, // severe density 1/4
		{Sender: "b", Text: "we watched a movie where the hero had to kill time at the station for hours", Offset: time.Minute}, // 1/16, below threshold
		{Sender: "a", Text: "see you tomorrow", Offset: 2 * time.Minute},
	})

	res := analyzeContentRisk(conv, DefaultConfig())
	if !res.Available {
		t.Fatal("content risk unavailable")
	}
	if res.RiskFlaggedCount != 1 {
		t.Errorf("RiskFlaggedCount = %d, want 1", res.RiskFlaggedCount)
	}
	if len(res.PerMessage) != 3 {
		t.Fatalf("PerMessage has %d entries, want 3", len(res.PerMessage))
	}
	if !res.PerMessage[0].RiskFlag {
		t.Error("dense severe message not flagged")
	}
	if res.PerMessage[1].RiskFlag {
		t.Error("low-density message flagged")
	}
}

func TestContentRiskDensityConfigurable(t *testing.T) {
	conv := internal.CreateTestConversation("risk", []internal.TestMessage{
		{Sender: "a", Text: "the threat was mentioned once among many other ordinary words here"},
	})

	strict := DefaultConfig()
	strict.RiskDensity = 0.05
	if res := analyzeContentRisk(conv, strict); res.RiskFlaggedCount != 1 {
		t.Errorf("strict threshold: RiskFlaggedCount = %d, want 1", res.RiskFlaggedCount)
	}

	lax := DefaultConfig()
	lax.RiskDensity = 0.5
	if res := analyzeContentRisk(conv, lax); res.RiskFlaggedCount != 0 {
		t.Errorf("lax threshold: RiskFlaggedCount = %d, want 0", res.RiskFlaggedCount)
	}
}

func TestContentUrgency(t *testing.T) {
	conv := internal.CreateTestConversation("urgent", []internal.TestMessage{
		{Sender: "a", Text: "call me asap"},
		{Sender: "b", Text: "sure, after lunch", Offset: time.Minute},
	})
	res := analyzeContentRisk(conv, DefaultConfig())
	if res.UrgentCount != 1 {
		t.Errorf("UrgentCount = %d, want 1", res.UrgentCount)
	}
}

func TestMessageIntensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"strong valence", "awful", 1},
		{"plain text", "see you tomorrow", 0},
		{"shouting without valence", "HELLO!!!", (1.5-1)/(1+exclaimCap) + 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messageIntensity(runLexicon(tt.text))
			if !almostEqual(got, tt.want) {
				t.Errorf("intensity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContentStatementCounts(t *testing.T) {
	conv := internal.CreateTestConversation("counts", []internal.TestMessage{
		{Sender: "a", Text: "how are you?"},
		{Sender: "b", Text: "good, thanks", Offset: time.Minute},
		{Sender: "a", Text: "please send the photos", Offset: 2 * time.Minute},
		{Sender: "b", Text: "", Offset: 3 * time.Minute}, // no text, not counted
	})
	res := analyzeContentRisk(conv, DefaultConfig())
	if res.StatementTypeCounts[StatementQuestion] != 1 {
		t.Errorf("questions = %d, want 1", res.StatementTypeCounts[StatementQuestion])
	}
	if res.StatementTypeCounts[StatementCommand] != 1 {
		t.Errorf("commands = %d, want 1", res.StatementTypeCounts[StatementCommand])
	}
	if res.StatementTypeCounts[StatementAssertion] != 1 {
		t.Errorf("assertions = %d, want 1", res.StatementTypeCounts[StatementAssertion])
	}
	total := 0
	for _, n := range res.StatementTypeCounts {
		total += n
	}
	if total != conv.TextMessageCount() {
		t.Errorf("counts total %d, want %d", total, conv.TextMessageCount())
	}
}
