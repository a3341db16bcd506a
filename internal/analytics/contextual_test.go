package analytics

import "testing"

func TestParseScoreLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []float64
	}{
		{"plain numbers", "0.5\n-0.3\n1", 3, []float64{0.5, -0.3, 1}},
		{"numbered lines", "1. 0.5\n2. -0.3", 2, []float64{0.5, -0.3}},
		{"out of range clamped", "2.5\n-9", 2, []float64{1, -1}},
		{"junk lines padded neutral", "0.5\nnot a number", 3, []float64{0.5, 0, 0}},
		{"empty response", "", 2, []float64{0, 0}},
		{"extra lines ignored", "0.1\n0.2\n0.3", 2, []float64{0.1, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseScoreLines(tt.content, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scores, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("score[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
