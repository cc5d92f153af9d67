package quality

import "unicode/utf8"

// Config holds the scoring weights and thresholds. Defaults mirror the
// operational heuristics the product settled on.
type Config struct {
	ConceptWeight  float64
	CulturalWeight float64
	ErrorPenalty   float64
	MinConcepts    int
	MinCulturalLen int
	Threshold      float64
}

func DefaultConfig() Config {
	return Config{
		ConceptWeight:  0.5,
		CulturalWeight: 0.5,
		ErrorPenalty:   0.15,
		MinConcepts:    2,
		MinCulturalLen: 100,
		Threshold:      0.7,
	}
}

// Input is the slice of pipeline output the validator inspects
type Input struct {
	TheoryConcepts  []string
	CulturalContext string
	StageErrorCount int
}

// Report breaks the aggregate score into its dimensions
type Report struct {
	ConceptScore  float64 `json:"concept_score"`
	CulturalScore float64 `json:"cultural_score"`
	ErrorCount    int     `json:"error_count"`
	Aggregate     float64 `json:"aggregate"`
}

// Validator scores a completed pipeline run. Scoring is deterministic for
// identical input.
type Validator struct {
	cfg Config
}

func NewValidator(cfg Config) *Validator {
	if cfg.ConceptWeight <= 0 && cfg.CulturalWeight <= 0 {
		cfg = DefaultConfig()
	}
	if cfg.MinConcepts <= 0 {
		cfg.MinConcepts = 2
	}
	if cfg.MinCulturalLen <= 0 {
		cfg.MinCulturalLen = 100
	}
	return &Validator{cfg: cfg}
}

func (v *Validator) Threshold() float64 {
	return v.cfg.Threshold
}

// Score computes proportional credit for concept count and cultural-context
// length, subtracts a fixed penalty per stage error, and clamps to [0,1].
// Cultural length is measured in runes so non-ASCII text is not over-credited.
func (v *Validator) Score(in Input) Report {
	conceptScore := proportion(len(in.TheoryConcepts), v.cfg.MinConcepts)
	culturalScore := proportion(utf8.RuneCountInString(in.CulturalContext), v.cfg.MinCulturalLen)

	aggregate := conceptScore*v.cfg.ConceptWeight + culturalScore*v.cfg.CulturalWeight
	aggregate -= float64(in.StageErrorCount) * v.cfg.ErrorPenalty
	aggregate = clamp(aggregate)

	return Report{
		ConceptScore:  conceptScore,
		CulturalScore: culturalScore,
		ErrorCount:    in.StageErrorCount,
		Aggregate:     aggregate,
	}
}

func proportion(have, want int) float64 {
	if want <= 0 || have >= want {
		return 1.0
	}
	if have <= 0 {
		return 0.0
	}
	return float64(have) / float64(want)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
