package fallback

import (
	"errors"
	"testing"
	"unicode/utf8"

	"lit-mashup-be/pkg/store"
)

func TestBuildStructuralGuarantees(t *testing.T) {
	p := NewProvider()

	contexts := []store.GatheredContext{
		{},
		{Genres: []string{"jazz"}},
		{Genres: []string{"jazz", "blues"}, SkillLevel: store.SkillAdvanced},
		{Genres: []string{"fado", "son jarocho"}},
	}

	for _, ctx := range contexts {
		result := p.Build("sess-x", ctx, errors.New("quality threshold not met"))

		if !result.FallbackUsed {
			t.Error("fallback result must be tagged")
		}
		if result.Title == "" {
			t.Error("title must not be empty")
		}
		if result.Lyrics == "" {
			t.Error("lyrics must not be empty")
		}
		if len(result.Educational.TheoryConcepts) < 2 {
			t.Errorf("concepts = %d, want >= 2", len(result.Educational.TheoryConcepts))
		}
		if n := utf8.RuneCountInString(result.Educational.CulturalContext); n < 100 {
			t.Errorf("cultural context = %d chars, want >= 100", n)
		}
		if result.Metadata["error"] == nil {
			t.Error("triggering error must be recorded in metadata")
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := NewProvider()
	ctx := store.GatheredContext{Genres: []string{"funk", "disco"}}

	first := p.Build("sess-y", ctx, nil)
	second := p.Build("sess-y", ctx, nil)

	if first.Title != second.Title || first.Lyrics != second.Lyrics {
		t.Error("identical context must produce identical fallback content")
	}
	if first.Educational.CulturalContext != second.Educational.CulturalContext {
		t.Error("cultural context must be deterministic")
	}
}

func TestBuildWithoutError(t *testing.T) {
	p := NewProvider()
	result := p.Build("sess-z", store.GatheredContext{}, nil)

	if _, ok := result.Metadata["error"]; ok {
		t.Error("nil error should not be recorded")
	}
}
