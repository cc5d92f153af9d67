package fallback

import (
	"fmt"
	"strings"
	"time"

	"lit-mashup-be/pkg/store"
)

// Provider builds a deterministic substitute result when generation quality
// is unrecoverable. Build never fails and its output always satisfies the
// structural minimums checked downstream: non-empty title and lyrics, at
// least two theory concepts, and a cultural context of at least 100
// characters.
type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

var baseConcepts = []string{"rhythm", "melody", "harmony", "song structure"}

func (p *Provider) Build(sessionID string, ctx store.GatheredContext, lastErr error) store.GenerationResult {
	genres := ctx.Genres
	if len(genres) == 0 {
		genres = []string{"popular music", "classical"}
	}
	genreList := strings.Join(genres, " and ")

	title := fmt.Sprintf("A %s Study Mashup", titleCase(genreList))
	lyrics := fmt.Sprintf(`(Verse 1)
We take the sound of %s, a story in every phrase,
Listen for the rhythm shifting through the changing days.

(Chorus)
Two traditions, one new song,
Learning where the notes belong.

(Verse 2)
Every style has roots that run through history and place,
Hear them meet inside this mashup, side by side in space.`, genreList)

	cultural := fmt.Sprintf(
		"This mashup draws on %s, each carrying its own cultural history and performance tradition. "+
			"Comparing how these styles treat rhythm, instrumentation, and vocal delivery shows students "+
			"how musical ideas travel between communities and eras.", genreList)

	concepts := append([]string(nil), baseConcepts...)
	notes := fmt.Sprintf(
		"Play representative recordings of %s before introducing the mashup. "+
			"Ask students to identify which elements come from which tradition, then discuss why those elements combine well.",
		genreList)

	metadata := map[string]any{
		"generator": "fallback_template",
	}
	if lastErr != nil {
		metadata["error"] = lastErr.Error()
	}

	result := store.GenerationResult{
		SessionID: sessionID,
		Title:     title,
		Lyrics:    lyrics,
		Educational: store.EducationalContent{
			TheoryConcepts:  concepts,
			CulturalContext: cultural,
			TeachingNotes:   notes,
		},
		QualityScore: 0,
		FallbackUsed: true,
		Metadata:     metadata,
		GeneratedAt:  p.now(),
	}
	return result
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
