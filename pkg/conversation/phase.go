package conversation

import (
	"lit-mashup-be/pkg/store"
)

// Ready reports whether enough context has been gathered to run generation:
// some educational context, at least two genres, a skill level, and at least
// one learning objective.
func Ready(ctx store.GatheredContext) bool {
	educational := ctx.TargetAudience != "" || len(ctx.CulturalFocus) > 0
	return educational &&
		len(ctx.Genres) >= 2 &&
		ctx.SkillLevel != "" &&
		len(ctx.LearningObjectives) > 0
}

// Next computes the phase after a turn's extraction has been merged into the
// context. A turn advances at most one phase; transitions are forward-only.
// The READY_FOR_GENERATION -> COMPLETED edge is driven by the explicit
// generation trigger, not by context, so it is handled by the caller.
func Next(current string, ctx store.GatheredContext) string {
	switch current {
	case store.PhaseInitial:
		if len(ctx.Genres) >= 1 {
			return store.PhaseGenreExploration
		}
	case store.PhaseGenreExploration:
		if len(ctx.Genres) >= 2 {
			return store.PhaseEducationalClarification
		}
	case store.PhaseEducationalClarification:
		if len(ctx.LearningObjectives) > 0 && ctx.SkillLevel != "" {
			return store.PhaseCulturalResearch
		}
	case store.PhaseCulturalResearch:
		if Ready(ctx) {
			return store.PhaseReadyForGeneration
		}
	}
	return current
}
