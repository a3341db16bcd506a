package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIsCapsRun(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"HATE", true},
		{"HATE!!!", true},
		{"Hate", false},
		{"OK", false},     // below the minimum run length
		{"YOU!!!", false}, // only three letters
		{"hello", false},
		{"1234", false},
	}

	for _, tt := range tests {
		if got := isCapsRun(tt.token); got != tt.want {
			t.Errorf("isCapsRun(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestExclaimMultiplier(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"calm", 1.0},
		{"hi!", 1.0},
		{"hi!!", 1.25},
		{"hi!!!", 1.5},
		{"hi!!!!!!!!!!", 3.0}, // capped
	}

	for _, tt := range tests {
		if got := exclaimMultiplier(tt.text); !almostEqual(got, tt.want) {
			t.Errorf("exclaimMultiplier(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTermWeight(t *testing.T) {
	tests := []struct {
		word string
		want float64
	}{
		{"love", 1},
		{"bad", -1},
		{"shit", -2},
		{"kill", -3},
		{"table", 0},
	}

	for _, tt := range tests {
		if got := termWeight(tt.word); got != tt.want {
			t.Errorf("termWeight(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestNegationWindow(t *testing.T) {
	tokens := tokenize("i do not think this is good")
	// "good" is index 6, "not" is index 2: outside the window of 3.
	if negatedAt(tokens, 6) {
		t.Error("negation applied beyond its window")
	}
	tokens = tokenize("this is not good")
	if !negatedAt(tokens, 3) {
		t.Error("negation not applied within its window")
	}
}

func TestRunLexicon(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScore  float64
		matched    bool
		severe     bool
		severeHits int
	}{
		{"positive", "i love this", 1, true, false, 0},
		{"negative", "this is bad", -1, true, false, 0},
		{"no valence", "see you at noon", 0, false, false, 0},
		{"empty", "", 0, false, false, 0},
		{"negated positive", "this is not good", -1, true, false, 0},
		{"severe term", "i will kill you", -1, true, true, 1},
		{"caps and exclaims", "I HATE YOU!!! YOU ARE THE WORST", -1, true, false, 0},
		{"mixed valence", "good good bad", 1.0 / 3.0, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := runLexicon(tt.text)
			if !almostEqual(p.score, tt.wantScore) {
				t.Errorf("score = %v, want %v", p.score, tt.wantScore)
			}
			if p.matched != tt.matched {
				t.Errorf("matched = %v, want %v", p.matched, tt.matched)
			}
			if p.severe != tt.severe {
				t.Errorf("severe = %v, want %v", p.severe, tt.severe)
			}
			if p.severeHits != tt.severeHits {
				t.Errorf("severeHits = %d, want %d", p.severeHits, tt.severeHits)
			}
		})
	}
}

func TestRunLexiconScoreRange(t *testing.T) {
	texts := []string{
		"AMAZING!!!!!!", "terrible awful worst hate!!!", "kill murder destroy",
		"fine", "", "love hate love hate",
	}
	for _, text := range texts {
		if p := runLexicon(text); p.score < -1 || p.score > 1 {
			t.Errorf("runLexicon(%q).score = %v outside [-1,1]", text, p.score)
		}
	}
}

func TestRunPolarity(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantPolarity float64
		matched      bool
	}{
		{"single positive", "this is good", 1, true},
		{"intensified", "hello very good day", 1, true}, // 1.3 clamped per term
		{"diminished", "a slightly good day", 0.7, true},
		{"negated", "not good at all", -0.5, true},
		{"no valence", "see you later", 0, false},
		{"strong negatives", "I HATE YOU!!! YOU ARE THE WORST", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := runPolarity(tt.text)
			if !almostEqual(est.polarity, tt.wantPolarity) {
				t.Errorf("polarity = %v, want %v", est.polarity, tt.wantPolarity)
			}
			if est.matched != tt.matched {
				t.Errorf("matched = %v, want %v", est.matched, tt.matched)
			}
		})
	}
}

func TestRunPolaritySubjectivity(t *testing.T) {
	if est := runPolarity("the meeting is at three"); !almostEqual(est.subjectivity, 0) {
		t.Errorf("objective text subjectivity = %v, want 0", est.subjectivity)
	}
	est := runPolarity("really really love it!!!")
	if est.subjectivity <= 0 {
		t.Errorf("subjective text scored %v, want > 0", est.subjectivity)
	}
	if est.subjectivity > 1 {
		t.Errorf("subjectivity %v exceeds 1", est.subjectivity)
	}
}
