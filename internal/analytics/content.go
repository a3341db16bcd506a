package analytics

import (
	"strings"

	"github.com/iksnae/chatlens/internal"
)

// analyzeContentRisk classifies each text message's statement type,
// computes its emotional intensity from the shared lexicon amplification,
// and flags messages whose abuse/threat-term density exceeds the configured
// ratio.
func analyzeContentRisk(conv *internal.Conversation, cfg Config) ContentRiskResult {
	res := ContentRiskResult{
		Available:           true,
		StatementTypeCounts: map[StatementType]int{},
	}

	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if !msg.HasText() {
			continue
		}

		st := classifyStatement(msg.Text)
		res.StatementTypeCounts[st]++

		tokens := tokenize(msg.Text)
		lex := runLexicon(msg.Text)
		intensity := messageIntensity(lex)

		risk := false
		if len(tokens) > 0 {
			density := float64(lex.severeHits) / float64(len(tokens))
			risk = density > cfg.RiskDensity
		}
		if risk {
			res.RiskFlaggedCount++
		}
		if hasUrgency(tokens) {
			res.UrgentCount++
		}

		res.PerMessage = append(res.PerMessage, MessageRisk{
			ID:        msg.ID,
			Type:      st,
			Intensity: intensity,
			RiskFlag:  risk,
		})
	}
	return res
}

// classifyStatement uses terminal punctuation and leading-token heuristics,
// first match wins: question, command, exclamation, assertion.
func classifyStatement(text string) StatementType {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return StatementQuestion
	}
	lead := ""
	if fields := strings.Fields(strings.ToLower(trimmed)); len(fields) > 0 {
		lead = strings.Trim(fields[0], ".,!?:;")
	}
	if interrogativeLeads.contains(lead) {
		return StatementQuestion
	}
	if imperativeLeads.contains(lead) {
		return StatementCommand
	}
	if strings.Count(trimmed, "!") >= 2 {
		return StatementExclamation
	}
	return StatementAssertion
}

// messageIntensity maps the amplified lexicon pass to [0,1]. Valence-free
// messages still register intensity from shouting and stacked exclamation
// marks.
func messageIntensity(lex lexiconPass) float64 {
	if lex.matched {
		// The amplified score spans [-1,1] after the exclaim multiplier;
		// magnitude is already the intensity signal.
		return clamp(abs(lex.score), 0, 1)
	}
	intensity := (lex.multiplier - 1) / (1 + exclaimCap)
	if lex.capsRun {
		intensity += 0.25
	}
	return clamp(intensity, 0, 1)
}

func hasUrgency(tokens []token) bool {
	for _, t := range tokens {
		if urgencyWords.contains(t.word) {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
