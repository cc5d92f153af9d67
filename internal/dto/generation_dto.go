package dto

import (
	"time"

	"lit-mashup-be/pkg/store"
)

// MashupGeneratedMessage is the pub/sub payload for a finished generation
type MashupGeneratedMessage struct {
	Result store.GenerationResult `json:"result"`
}

type EducationalContentDTO struct {
	TheoryConcepts  []string `json:"theory_concepts"`
	CulturalContext string   `json:"cultural_context"`
	TeachingNotes   string   `json:"teaching_notes"`
}

type GenerateResponse struct {
	SessionId    string                `json:"session_id"`
	Title        string                `json:"title"`
	Lyrics       string                `json:"lyrics"`
	Educational  EducationalContentDTO `json:"educational_content"`
	QualityScore float64               `json:"quality_score"`
	FallbackUsed bool                  `json:"fallback_used"`
	Metadata     map[string]any        `json:"metadata,omitempty"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

type MashupListItem struct {
	Id           string    `json:"id"`
	SessionId    string    `json:"session_id"`
	Title        string    `json:"title"`
	QualityScore float64   `json:"quality_score"`
	FallbackUsed bool      `json:"fallback_used"`
	CreatedAt    time.Time `json:"created_at"`
}
