package conversation

import (
	"strings"

	"lit-mashup-be/pkg/store"
)

// Extractor pulls structured fields out of a free-form user message. The
// returned context is a partial: only fields the message actually mentions
// are populated.
type Extractor interface {
	Extract(message string, existing store.GatheredContext) store.GatheredContext
}

var (
	knownGenres = []string{
		"jazz", "classical", "rock", "pop", "hip hop", "blues", "folk",
		"electronic", "reggae", "country", "r&b", "soul", "funk", "disco",
		"punk", "metal",
	}

	theoryConcepts = []string{
		"rhythm", "melody", "harmony", "chord", "scale", "tempo", "dynamics",
	}

	culturalKeywords = []string{
		"culture", "tradition", "heritage", "history", "origin", "background",
	}

	teachingKeywords    = []string{"teach", "learn", "education", "class", "student"}
	theoryGoalKeywords  = []string{"theory", "concept", "fundamental"}
	generationTriggers  = []string{"yes", "confirm", "proceed", "ready", "generate", "create"}
	beginnerKeywords    = []string{"beginner", "basic", "starting out", "never played"}
	intermediateWords   = []string{"intermediate", "moderate", "some experience"}
	advancedKeywords    = []string{"advanced", "expert", "complex"}
	higherEducationHint = []string{"high school", "college", "university"}
	k12Hint             = []string{"elementary", "middle school", "kids"}
)

// KeywordExtractor is a deterministic keyword-based extractor. It needs no
// model call, which keeps each turn cheap and makes the phase machine easy
// to test.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (e *KeywordExtractor) Extract(message string, _ store.GatheredContext) store.GatheredContext {
	lower := strings.ToLower(message)
	var partial store.GatheredContext

	for _, genre := range knownGenres {
		if strings.Contains(lower, genre) {
			partial.Genres = append(partial.Genres, genre)
		}
	}

	switch {
	case containsAny(lower, beginnerKeywords):
		partial.SkillLevel = store.SkillBeginner
	case containsAny(lower, intermediateWords):
		partial.SkillLevel = store.SkillIntermediate
	case containsAny(lower, advancedKeywords):
		partial.SkillLevel = store.SkillAdvanced
	}

	if containsAny(lower, teachingKeywords) {
		partial.LearningObjectives = append(partial.LearningObjectives, "teaching")
	}
	if containsAny(lower, theoryGoalKeywords) {
		partial.LearningObjectives = append(partial.LearningObjectives, "music_theory")
	}
	for _, concept := range theoryConcepts {
		if strings.Contains(lower, concept) {
			partial.LearningObjectives = append(partial.LearningObjectives, concept)
		}
	}

	for _, keyword := range culturalKeywords {
		if strings.Contains(lower, keyword) {
			partial.CulturalFocus = append(partial.CulturalFocus, keyword)
		}
	}

	if containsAny(lower, higherEducationHint) {
		partial.TargetAudience = "higher_education"
	} else if containsAny(lower, k12Hint) {
		partial.TargetAudience = "k12"
	}

	return partial
}

// IsGenerationTrigger reports whether a message confirms the user wants
// generation to start.
func IsGenerationTrigger(message string) bool {
	return containsAny(strings.ToLower(message), generationTriggers)
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
