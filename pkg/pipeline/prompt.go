package pipeline

import (
	"fmt"
	"strings"

	"lit-mashup-be/pkg/store"
)

// formatContext renders the gathered context as a prompt block shared by
// every stage.
func formatContext(ctx store.GatheredContext) string {
	var b strings.Builder

	if len(ctx.Genres) > 0 {
		fmt.Fprintf(&b, "Genres: %s\n", strings.Join(ctx.Genres, ", "))
	}
	if ctx.SkillLevel != "" {
		fmt.Fprintf(&b, "Skill level: %s\n", ctx.SkillLevel)
	}
	if len(ctx.LearningObjectives) > 0 {
		fmt.Fprintf(&b, "Learning objectives: %s\n", strings.Join(ctx.LearningObjectives, ", "))
	}
	if len(ctx.CulturalFocus) > 0 {
		fmt.Fprintf(&b, "Cultural focus: %s\n", strings.Join(ctx.CulturalFocus, ", "))
	}
	if ctx.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", ctx.TargetAudience)
	}
	for i, snippet := range ctx.WebResearch {
		if i == 0 {
			b.WriteString("Research:\n")
		}
		fmt.Fprintf(&b, "- %s: %s\n", snippet.Title, truncate(snippet.Excerpt, 200))
	}

	if b.Len() == 0 {
		return "No context gathered.\n"
	}
	return b.String()
}

func skillDirective(level string) string {
	switch level {
	case store.SkillBeginner:
		return "Explain in simple terms suitable for beginners with no prior music theory knowledge."
	case store.SkillAdvanced:
		return "Offer advanced-level content with detailed technical analysis and sophisticated concepts."
	default:
		return "Use moderately technical language suitable for learners with some music background."
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
