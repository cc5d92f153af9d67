package pipeline

import (
	"lit-mashup-be/pkg/store"
)

// Stage names, in execution order
const (
	StageContextFraming  = "context_framing"
	StageGenreAnalysis   = "genre_analysis"
	StageHookGeneration  = "hook_generation"
	StageLyricsWriting   = "lyrics_composition"
	StageTheoryIntegrate = "theory_integration"
)

// ContextFrame is the output of the context-framing stage
type ContextFrame struct {
	Summary          string `json:"summary"`
	Audience         string `json:"audience"`
	EducationalAngle string `json:"educational_angle"`
}

// GenreProfile describes one genre inside the analysis output
type GenreProfile struct {
	Name            string `json:"name"`
	Characteristics string `json:"characteristics"`
	CulturalRoots   string `json:"cultural_roots"`
}

// GenreAnalysis is the output of the genre-analysis stage
type GenreAnalysis struct {
	Genres        []GenreProfile `json:"genres"`
	BlendStrategy string         `json:"blend_strategy"`
}

// Hook is the output of the hook-generation stage
type Hook struct {
	Title string `json:"title"`
	Hook  string `json:"hook"`
}

// Lyrics is the output of the lyrics-composition stage
type Lyrics struct {
	Lyrics    string `json:"lyrics"`
	Structure string `json:"structure"`
}

// Theory is the output of the theory-integration stage
type Theory struct {
	TheoryConcepts  []string `json:"theory_concepts"`
	CulturalContext string   `json:"cultural_context"`
	TeachingNotes   string   `json:"teaching_notes"`
}

// StageError records one stage whose model output could not be decoded
type StageError struct {
	Stage string `json:"stage"`
	Err   string `json:"error"`
}

// State is the shared scratchpad for one pipeline run. Created fresh per
// run and discarded after the result is built; only the result survives.
type State struct {
	SessionID string
	Context   store.GatheredContext

	Frame    ContextFrame
	Analysis GenreAnalysis
	Hook     Hook
	Lyrics   Lyrics
	Theory   Theory

	StageErrors []StageError
	RetryCount  int
}

func NewState(sessionID string, ctx store.GatheredContext) *State {
	return &State{
		SessionID: sessionID,
		Context:   ctx.Clone(),
	}
}

// RecordError notes a stage failure; the stage's output stays at its zero
// placeholder and downstream stages read it with defaults.
func (s *State) RecordError(stage string, err error) {
	s.StageErrors = append(s.StageErrors, StageError{Stage: stage, Err: err.Error()})
}

// ErrorsFor lists stage names with at least one recorded error
func (s *State) ErrorsFor() []string {
	names := make([]string, 0, len(s.StageErrors))
	for _, e := range s.StageErrors {
		names = append(names, e.Stage)
	}
	return names
}

// ClearErrorsFrom drops errors recorded for the retried stages, keeping the
// context-framing stage's history intact.
func (s *State) ClearErrorsFrom(stages []string) {
	retained := s.StageErrors[:0]
	for _, e := range s.StageErrors {
		keep := true
		for _, name := range stages {
			if e.Stage == name {
				keep = false
				break
			}
		}
		if keep {
			retained = append(retained, e)
		}
	}
	s.StageErrors = retained
}
