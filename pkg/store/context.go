package store

import "strings"

// Skill levels
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Research snippet quality tiers
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// ResearchSnippet is a filtered web search result attached to the gathered context
type ResearchSnippet struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	Tier    string `json:"tier"`
	Recency string `json:"recency"` // "recent" | "undated"
}

// GatheredContext holds the structured facts accumulated over a conversation.
// All fields are merge-only: a later turn can add or refine, never clear.
type GatheredContext struct {
	Genres             []string          `json:"genres,omitempty"`
	SkillLevel         string            `json:"skill_level,omitempty"`
	LearningObjectives []string          `json:"learning_objectives,omitempty"`
	CulturalFocus      []string          `json:"cultural_focus,omitempty"`
	TargetAudience     string            `json:"target_audience,omitempty"`
	WebResearch        []ResearchSnippet `json:"web_research,omitempty"`
}

// Merge folds a partial extraction into the context. Empty fields in the
// partial never clear previously gathered values; list fields accumulate
// with de-duplication.
func (c *GatheredContext) Merge(partial GatheredContext) {
	c.Genres = appendUnique(c.Genres, partial.Genres)
	c.LearningObjectives = appendUnique(c.LearningObjectives, partial.LearningObjectives)
	c.CulturalFocus = appendUnique(c.CulturalFocus, partial.CulturalFocus)

	if partial.SkillLevel != "" {
		c.SkillLevel = partial.SkillLevel
	}
	if partial.TargetAudience != "" {
		c.TargetAudience = partial.TargetAudience
	}

	c.MergeResearch(partial.WebResearch)
}

// MergeResearch appends snippets, de-duplicating by URL
func (c *GatheredContext) MergeResearch(snippets []ResearchSnippet) {
	if len(snippets) == 0 {
		return
	}
	seen := make(map[string]bool, len(c.WebResearch))
	for _, s := range c.WebResearch {
		seen[s.URL] = true
	}
	for _, s := range snippets {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		c.WebResearch = append(c.WebResearch, s)
		seen[s.URL] = true
	}
}

// Clone returns a deep copy safe to use outside the session lock
func (c GatheredContext) Clone() GatheredContext {
	out := c
	out.Genres = append([]string(nil), c.Genres...)
	out.LearningObjectives = append([]string(nil), c.LearningObjectives...)
	out.CulturalFocus = append([]string(nil), c.CulturalFocus...)
	out.WebResearch = append([]ResearchSnippet(nil), c.WebResearch...)
	return out
}

func appendUnique(existing, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[strings.ToLower(v)] = true
	}
	for _, v := range incoming {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		existing = append(existing, strings.TrimSpace(v))
		seen[key] = true
	}
	return existing
}
