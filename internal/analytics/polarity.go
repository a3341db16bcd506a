package analytics

// The statistical sub-score estimates polarity and subjectivity by
// averaging per-term valence with modifier handling, rather than summing
// against matched weight like the lexicon pass. The two disagree on mixed
// messages, which is the point of fusing them.

const (
	intensifierFactor = 1.3
	diminisherFactor  = 0.7
	// A negated term keeps reduced opposite valence ("not great" is mildly
	// negative, not the mirror image of "great").
	negationFactor = -0.5

	subjValenceWeight     = 1.0
	subjIntensifierWeight = 0.5
	subjExclaimWeight     = 0.25
)

type polarityEstimate struct {
	polarity     float64 // [-1, 1]
	subjectivity float64 // [0, 1]
	matched      bool
}

func runPolarity(text string) polarityEstimate {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return polarityEstimate{}
	}

	var sum float64
	var matches int
	var intensifiers int
	exclaims := 0
	for _, t := range tokens {
		for _, r := range t.raw {
			if r == '!' {
				exclaims++
			}
		}
	}

	for i, t := range tokens {
		if intensifierWords.contains(t.word) {
			intensifiers++
		}
		w := termWeight(t.word)
		if w == 0 {
			continue
		}
		matches++
		// Per-term valence in valence units; profane and severe terms
		// saturate at the clamp.
		v := w
		if i > 0 {
			prev := tokens[i-1].word
			if intensifierWords.contains(prev) {
				v *= intensifierFactor
			} else if diminisherWords.contains(prev) {
				v *= diminisherFactor
			}
		}
		if negatedAt(tokens, i) {
			v *= negationFactor
		}
		sum += clamp(v, -1, 1)
	}

	est := polarityEstimate{matched: matches > 0}
	if matches > 0 {
		est.polarity = clamp(sum/float64(matches), -1, 1)
	}
	subj := (float64(matches)*subjValenceWeight +
		float64(intensifiers)*subjIntensifierWeight +
		float64(exclaims)*subjExclaimWeight) / float64(len(tokens))
	est.subjectivity = clamp(subj, 0, 1)
	return est
}
