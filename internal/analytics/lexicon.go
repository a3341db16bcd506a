package analytics

import (
	"strings"
	"unicode"
)

// Term weights. Severe (abuse/threat) and profane terms pull harder than
// ordinary valence words. Tunables, covered by tests as configuration under
// test rather than hard truths.
const (
	weightValence   = 1.0
	weightProfanity = 2.0
	weightSevere    = 3.0

	// capsBoost multiplies a term's contribution when its source token is
	// an all-caps run of at least capsRunLen letters.
	capsBoost  = 2.0
	capsRunLen = 4

	// Each '!' beyond the first adds exclaimStep of intensity, up to
	// exclaimCap in total.
	exclaimStep = 0.25
	exclaimCap  = 2.0

	// negationWindow is how many preceding tokens a negation governs.
	negationWindow = 3
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(w string) bool {
	_, ok := s[w]
	return ok
}

var positiveWords = newWordSet(
	"good", "great", "awesome", "excellent", "happy", "love", "wonderful",
	"amazing", "fantastic", "perfect", "best", "brilliant", "nice", "cool",
	"thanks", "thank", "appreciate", "beautiful", "lovely", "sweet", "kind",
	"joy", "pleased", "excited", "thrilled", "delighted", "glad", "blessed",
	"superb", "outstanding", "marvelous", "terrific",
)

var negativeWords = newWordSet(
	"bad", "terrible", "awful", "horrible", "hate", "worst", "poor",
	"disappointing", "sad", "angry", "annoying", "frustrated", "sorry",
	"wrong", "problem", "issue", "sucks", "stupid", "dumb", "idiot",
	"pathetic", "useless", "worthless", "disgusting", "sick", "cruel",
	"mean", "rude", "nasty", "vile", "evil", "ugly", "trash", "garbage",
)

// severeWords covers abuse and threat vocabulary. A lexicon match here also
// weights the fused score toward the negative extreme and feeds the
// content-risk flag.
var severeWords = newWordSet(
	"abuse", "abused", "abuser", "abusive", "assault", "assaulted",
	"attack", "attacked", "attacking", "violence", "violent", "violate",
	"violated", "violating", "molest", "harass", "harassment", "threat",
	"threaten", "threatened", "threatening", "kill", "murder", "die",
	"death", "hurt", "harm", "destroy", "torture", "torment", "terrorize",
	"stalk", "stalking", "predator", "weapon", "dangerous",
)

var profanityWords = newWordSet(
	"fuck", "fucking", "fucked", "shit", "shitty", "damn", "damned",
	"bastard", "bitch", "asshole", "crap", "piss",
)

var negationWords = newWordSet(
	"not", "no", "never", "none", "nobody", "nothing", "neither",
	"dont", "doesnt", "didnt", "cant", "couldnt", "wont", "wouldnt",
	"isnt", "wasnt", "arent", "werent", "aint", "hardly", "barely",
)

var intensifierWords = newWordSet(
	"very", "really", "extremely", "so", "totally", "absolutely",
	"completely", "utterly", "incredibly",
)

var diminisherWords = newWordSet(
	"slightly", "somewhat", "barely", "hardly", "kinda", "sorta", "bit",
)

var urgencyWords = newWordSet(
	"urgent", "asap", "emergency", "immediately", "hurry", "critical",
	"important", "priority", "quickly", "now", "today", "tonight",
)

var interrogativeLeads = newWordSet(
	"what", "when", "where", "why", "who", "how", "which",
	"can", "could", "would", "should", "is", "are", "do", "does", "did",
)

var imperativeLeads = newWordSet(
	"please", "pls", "go", "come", "send", "give", "show", "tell",
	"let", "make", "do", "stop", "start",
)

// token is one whitespace-separated unit with its lexical features.
type token struct {
	raw     string
	word    string // lowercased, punctuation-stripped
	allCaps bool   // all-caps letter run of >= capsRunLen
}

// tokenize splits text and extracts per-token features.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		word := strings.ToLower(strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		// Contractions negate like their expanded forms.
		word = strings.ReplaceAll(word, "'", "")
		tokens = append(tokens, token{
			raw:     f,
			word:    word,
			allCaps: isCapsRun(f),
		})
	}
	return tokens
}

// isCapsRun reports whether the token contains a run of at least capsRunLen
// upper-case letters and no lower-case letters.
func isCapsRun(s string) bool {
	upper := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= capsRunLen
}

// termWeight returns the signed base weight of a word, or 0 when the word
// carries no valence.
func termWeight(word string) float64 {
	switch {
	case severeWords.contains(word):
		return -weightSevere
	case profanityWords.contains(word):
		return -weightProfanity
	case negativeWords.contains(word):
		return -weightValence
	case positiveWords.contains(word):
		return weightValence
	default:
		return 0
	}
}

// negatedAt reports whether a negation token appears within negationWindow
// tokens before position i.
func negatedAt(tokens []token, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
		if negationWords.contains(tokens[j].word) {
			return true
		}
	}
	return false
}

// exclaimMultiplier computes the intensity multiplier from exclamation
// marks: 1.0 for zero or one '!', plus exclaimStep per extra mark, capped.
func exclaimMultiplier(text string) float64 {
	extra := strings.Count(text, "!") - 1
	if extra <= 0 {
		return 1.0
	}
	boost := float64(extra) * exclaimStep
	if boost > exclaimCap {
		boost = exclaimCap
	}
	return 1.0 + boost
}

// lexiconPass is the shared scoring primitive. It returns the normalized
// amplified score in [-1,1], whether any valence term matched, whether any
// severe term matched, and the count of severe hits.
type lexiconPass struct {
	score      float64
	matched    bool
	severe     bool
	severeHits int
	capsRun    bool
	multiplier float64
}

func runLexicon(text string) lexiconPass {
	tokens := tokenize(text)
	var sum, total float64
	p := lexiconPass{multiplier: exclaimMultiplier(text)}

	for i, t := range tokens {
		if t.allCaps {
			p.capsRun = true
		}
		w := termWeight(t.word)
		if w == 0 {
			continue
		}
		p.matched = true
		if severeWords.contains(t.word) {
			p.severe = true
			p.severeHits++
		}
		if negatedAt(tokens, i) {
			w = -w
		}
		if t.allCaps {
			w *= capsBoost
		}
		sum += w
		if w < 0 {
			total -= w
		} else {
			total += w
		}
	}

	if total > 0 {
		p.score = clamp(sum/total*p.multiplier, -1, 1)
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
