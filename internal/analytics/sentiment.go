package analytics

import (
	"context"
	"sort"
	"strings"

	"github.com/iksnae/chatlens/internal"
)

// severeExtremeVotes is how many synthetic -1 votes a severe lexicon match
// adds to the combined score, pulling it three-fold toward the negative
// extreme: combined' = (combined + votes*-1) / (votes+1). Tunable.
const severeExtremeVotes = 2

// Classification bands over [-1,1]. A score exactly on a boundary resolves
// to the lower (more negative) bucket.
const (
	bandVeryNegative = -0.6
	bandNegative     = -0.2
	bandPositive     = 0.2
	bandVeryPositive = 0.6
)

// Classify maps a combined score to its bucket.
func Classify(score float64) SentimentLabel {
	switch {
	case score <= bandVeryNegative:
		return VeryNegative
	case score <= bandNegative:
		return Negative
	case score <= bandPositive:
		return Neutral
	case score <= bandVeryPositive:
		return Positive
	default:
		return VeryPositive
	}
}

func (d *ScoreDistribution) add(label SentimentLabel) {
	switch label {
	case VeryNegative:
		d.VeryNegative++
	case Negative:
		d.Negative++
	case Neutral:
		d.Neutral++
	case Positive:
		d.Positive++
	case VeryPositive:
		d.VeryPositive++
	}
}

// analyzeSentiment runs the fusion scorer over every message with text.
// scorer may be nil, in which case the contextual sub-score is absent and
// the reported method name reflects the fallback.
func analyzeSentiment(ctx context.Context, conv *internal.Conversation, cfg Config, scorer ContextualScorer) SentimentResult {
	res := SentimentResult{Available: true}

	useLexicon := cfg.SentimentMethod == MethodLexicon || cfg.SentimentMethod == MethodFusion
	useStatistical := cfg.SentimentMethod == MethodStatistical || cfg.SentimentMethod == MethodFusion
	useContextual := (cfg.SentimentMethod == MethodContextual || cfg.SentimentMethod == MethodFusion) &&
		cfg.UseContextual && scorer != nil

	// Index the messages that carry scoreable text.
	var scoreable []int
	for i := range conv.Messages {
		if conv.Messages[i].HasText() {
			scoreable = append(scoreable, i)
		} else {
			res.Unscored++
		}
	}

	// The contextual pass is the only network-bound operation; it gets its
	// own deadline so a slow remote cannot stall the result.
	var remote []float64
	if useContextual && len(scoreable) > 0 {
		texts := make([]string, len(scoreable))
		for i, idx := range scoreable {
			texts[i] = conv.Messages[idx].Text
		}
		cctx, cancel := context.WithTimeout(ctx, cfg.ContextualTimeout)
		scores, err := scorer.ScoreTexts(cctx, texts)
		cancel()
		if err != nil {
			internal.LogWarn("contextual scoring unavailable, fusing remaining sub-scores: %v", err)
			useContextual = false
		} else {
			remote = scores
		}
	}
	// The contextual-only method degrades to lexicon rather than reporting
	// nothing; the method name makes the substitution visible.
	if cfg.SentimentMethod == MethodContextual && !useContextual {
		useLexicon = true
	}

	var (
		sum, polaritySum, subjectivitySum float64
		statComputed                      int
		perSender                         = map[string]*ParticipantSentiment{}
	)

	for i, idx := range scoreable {
		msg := &conv.Messages[idx]

		var subs []float64
		lex := runLexicon(msg.Text)
		if useLexicon {
			subs = append(subs, lex.score)
		}
		if useStatistical {
			est := runPolarity(msg.Text)
			subs = append(subs, est.polarity)
			polaritySum += est.polarity
			subjectivitySum += est.subjectivity
			statComputed++
		}
		if useContextual {
			subs = append(subs, remote[i])
		}

		combined := mean(subs)
		if lex.severe {
			combined = clamp((combined+float64(severeExtremeVotes)*-1)/(severeExtremeVotes+1), -1, 1)
		}

		label := Classify(combined)
		res.Distribution.add(label)
		res.PerMessage = append(res.PerMessage, MessageSentiment{
			ID:        msg.ID,
			Sender:    msg.Sender,
			Score:     combined,
			Sentiment: label,
		})
		sum += combined

		ps := perSender[msg.Sender]
		if ps == nil {
			ps = &ParticipantSentiment{}
			perSender[msg.Sender] = ps
		}
		ps.Score += combined
		ps.MessageCount++
		ps.Distribution.add(label)
	}

	if n := len(res.PerMessage); n > 0 {
		res.SentimentScore = sum / float64(n)
	}
	res.OverallSentiment = Classify(res.SentimentScore)

	if statComputed > 0 {
		avgPol := polaritySum / float64(statComputed)
		avgSubj := subjectivitySum / float64(statComputed)
		res.AvgPolarity = &avgPol
		res.AvgSubjectivity = &avgSubj
	}

	if len(perSender) > 0 {
		res.PerParticipant = make(map[string]ParticipantSentiment, len(perSender))
		for id, ps := range perSender {
			ps.Score /= float64(ps.MessageCount)
			ps.Sentiment = Classify(ps.Score)
			res.PerParticipant[id] = *ps
		}
	}

	res.Method = methodName(cfg.SentimentMethod, useLexicon, useStatistical, useContextual)
	return res
}

// methodName reports which sub-scores actually contributed. "fusion" only
// when all three did; otherwise the contributing parts joined by '+'.
func methodName(requested SentimentMethod, lexicon, statistical, contextual bool) string {
	var parts []string
	if lexicon {
		parts = append(parts, string(MethodLexicon))
	}
	if statistical {
		parts = append(parts, string(MethodStatistical))
	}
	if contextual {
		parts = append(parts, string(MethodContextual))
	}
	sort.Strings(parts)
	if len(parts) == 3 {
		return string(MethodFusion)
	}
	if len(parts) == 0 {
		return string(requested)
	}
	return strings.Join(parts, "+")
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
