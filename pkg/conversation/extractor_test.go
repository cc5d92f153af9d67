package conversation

import (
	"testing"

	"lit-mashup-be/pkg/store"
)

func TestKeywordExtractor(t *testing.T) {
	e := NewKeywordExtractor()

	tests := []struct {
		name         string
		message      string
		wantGenres   []string
		wantSkill    string
		wantObjs     []string
		wantFocus    []string
		wantAudience string
	}{
		{
			name:         "classroom request without a genre",
			message:      "I want a mashup for my high school class",
			wantObjs:     []string{"teaching"},
			wantAudience: "higher_education",
		},
		{
			name:       "two genres in one message",
			message:    "Let's combine jazz and hip hop",
			wantGenres: []string{"jazz", "hip hop"},
		},
		{
			name:      "skill level and theory concepts",
			message:   "They are beginners, we want to cover rhythm and melody",
			wantSkill: store.SkillBeginner,
			wantObjs:  []string{"rhythm", "melody"},
		},
		{
			name:      "cultural interest",
			message:   "I care about the heritage and history behind the music",
			wantFocus: []string{"heritage", "history"},
		},
		{
			name:         "kids audience",
			message:      "This is for elementary school kids",
			wantAudience: "k12",
		},
		{
			name:    "nothing extractable",
			message: "okay sounds good",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.message, store.GatheredContext{})

			if len(got.Genres) != len(tt.wantGenres) {
				t.Fatalf("genres = %v, want %v", got.Genres, tt.wantGenres)
			}
			for i, g := range tt.wantGenres {
				if got.Genres[i] != g {
					t.Errorf("genres[%d] = %q, want %q", i, got.Genres[i], g)
				}
			}
			if got.SkillLevel != tt.wantSkill {
				t.Errorf("skill = %q, want %q", got.SkillLevel, tt.wantSkill)
			}
			for _, obj := range tt.wantObjs {
				if !contains(got.LearningObjectives, obj) {
					t.Errorf("objectives %v missing %q", got.LearningObjectives, obj)
				}
			}
			for _, f := range tt.wantFocus {
				if !contains(got.CulturalFocus, f) {
					t.Errorf("cultural focus %v missing %q", got.CulturalFocus, f)
				}
			}
			if got.TargetAudience != tt.wantAudience {
				t.Errorf("audience = %q, want %q", got.TargetAudience, tt.wantAudience)
			}
		})
	}
}

func TestIsGenerationTrigger(t *testing.T) {
	if !IsGenerationTrigger("Yes, let's proceed!") {
		t.Error("confirmation should trigger generation")
	}
	if IsGenerationTrigger("tell me more about jazz") {
		t.Error("plain question should not trigger generation")
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
