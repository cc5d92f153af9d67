package quality

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	v := NewValidator(DefaultConfig())
	richCultural := strings.Repeat("Cultural background detail. ", 5)

	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{
			name: "full credit",
			in:   Input{TheoryConcepts: []string{"rhythm", "melody"}, CulturalContext: richCultural},
			want: 1.0,
		},
		{
			name: "extra concepts do not exceed full credit",
			in:   Input{TheoryConcepts: []string{"a", "b", "c", "d"}, CulturalContext: richCultural},
			want: 1.0,
		},
		{
			name: "one concept gets half credit on that dimension",
			in:   Input{TheoryConcepts: []string{"rhythm"}, CulturalContext: richCultural},
			want: 0.75,
		},
		{
			name: "empty state scores zero",
			in:   Input{},
			want: 0.0,
		},
		{
			name: "stage errors subtract a fixed penalty",
			in:   Input{TheoryConcepts: []string{"a", "b"}, CulturalContext: richCultural, StageErrorCount: 2},
			want: 0.7,
		},
		{
			name: "penalties floor at zero",
			in:   Input{StageErrorCount: 5},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Score(tt.in)
			if diff := got.Aggregate - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("aggregate = %.4f, want %.4f", got.Aggregate, tt.want)
			}
			if got.Aggregate < 0 || got.Aggregate > 1 {
				t.Errorf("aggregate %.4f outside [0,1]", got.Aggregate)
			}
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	v := NewValidator(DefaultConfig())
	in := Input{TheoryConcepts: []string{"rhythm"}, CulturalContext: "some context", StageErrorCount: 1}

	first := v.Score(in)
	for i := 0; i < 10; i++ {
		if v.Score(in) != first {
			t.Fatal("identical input must produce identical reports")
		}
	}
}

func TestProportionalCulturalCredit(t *testing.T) {
	v := NewValidator(DefaultConfig())

	half := v.Score(Input{TheoryConcepts: []string{"a", "b"}, CulturalContext: strings.Repeat("x", 50)})
	if half.CulturalScore != 0.5 {
		t.Errorf("cultural score = %.2f, want 0.5 for 50/100 chars", half.CulturalScore)
	}
}

func TestCulturalCreditCountsRunesNotBytes(t *testing.T) {
	v := NewValidator(DefaultConfig())

	// 50 two-byte runes: 100 bytes but only half the required characters.
	multibyte := strings.Repeat("ñ", 50)
	got := v.Score(Input{TheoryConcepts: []string{"a", "b"}, CulturalContext: multibyte})
	if got.CulturalScore != 0.5 {
		t.Errorf("cultural score = %.2f, want 0.5 for 50 runes", got.CulturalScore)
	}

	full := v.Score(Input{TheoryConcepts: []string{"a", "b"}, CulturalContext: strings.Repeat("ñ", 100)})
	if full.CulturalScore != 1.0 {
		t.Errorf("cultural score = %.2f, want 1.0 for 100 runes", full.CulturalScore)
	}
}
