package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lit-mashup-be/pkg/llm"
	"lit-mashup-be/pkg/pipeline/fallback"
	"lit-mashup-be/pkg/pipeline/quality"
	"lit-mashup-be/pkg/store"
)

// Pipeline sequences the five generation stages, gates the result on the
// quality score, retries once from genre analysis onward when the score is
// too low, and falls back to the template result when retries are exhausted.
// Run never returns an error: the public contract is that a result is always
// produced, possibly degraded.
type Pipeline struct {
	provider   llm.Provider
	validator  *quality.Validator
	fallback   *fallback.Provider
	maxRetries int
	stages     []Stage
	logger     *log.Logger
	now        func() time.Time
}

func NewPipeline(provider llm.Provider, validator *quality.Validator, fb *fallback.Provider, maxRetries int, logger *log.Logger) *Pipeline {
	if maxRetries < 0 {
		maxRetries = 1
	}
	return &Pipeline{
		provider:   provider,
		validator:  validator,
		fallback:   fb,
		maxRetries: maxRetries,
		stages: []Stage{
			contextStage{},
			genreStage{},
			hookStage{},
			lyricsStage{},
			theoryStage{},
		},
		logger: logger,
		now:    time.Now,
	}
}

func (p *Pipeline) Run(ctx context.Context, sessionID string, gctx store.GatheredContext) store.GenerationResult {
	st := NewState(sessionID, gctx)

	p.logger.Printf("[PIPELINE] Starting generation for session %s", sessionID)
	p.runStages(ctx, st, p.stages)

	report := p.score(st)
	p.logger.Printf("[PIPELINE] Initial quality score: %.2f (threshold %.2f)", report.Aggregate, p.validator.Threshold())

	for report.Aggregate < p.validator.Threshold() && st.RetryCount < p.maxRetries {
		st.RetryCount++
		retried := p.stages[1:]
		names := make([]string, 0, len(retried))
		for _, s := range retried {
			names = append(names, s.Name())
		}
		st.ClearErrorsFrom(names)

		p.logger.Printf("[PIPELINE] Retry %d: re-running %d stages", st.RetryCount, len(retried))
		p.runStages(ctx, st, retried)

		report = p.score(st)
		p.logger.Printf("[PIPELINE] Retry quality score: %.2f", report.Aggregate)
	}

	if report.Aggregate < p.validator.Threshold() {
		p.logger.Printf("[PIPELINE] Quality unrecoverable for session %s, using fallback", sessionID)
		err := fmt.Errorf("quality score %.2f below threshold %.2f after %d retries: %w",
			report.Aggregate, p.validator.Threshold(), st.RetryCount, errQualityThreshold)
		result := p.fallback.Build(sessionID, st.Context, err)
		result.Metadata["retry_count"] = st.RetryCount
		result.Metadata["stage_errors"] = st.ErrorsFor()
		return result
	}

	return p.buildResult(st, report)
}

var errQualityThreshold = errors.New("quality threshold not met")

func (p *Pipeline) runStages(ctx context.Context, st *State, stages []Stage) {
	for _, stage := range stages {
		if err := stage.Run(ctx, p.provider, st); err != nil {
			p.logger.Printf("[WARN] Stage %s failed: %v", stage.Name(), err)
			st.RecordError(stage.Name(), err)
		}
	}
}

func (p *Pipeline) score(st *State) quality.Report {
	return p.validator.Score(quality.Input{
		TheoryConcepts:  st.Theory.TheoryConcepts,
		CulturalContext: st.Theory.CulturalContext,
		StageErrorCount: len(st.StageErrors),
	})
}

func (p *Pipeline) buildResult(st *State, report quality.Report) store.GenerationResult {
	return store.GenerationResult{
		SessionID: st.SessionID,
		Title:     orDefault(st.Hook.Title, "Untitled Mashup"),
		Lyrics:    st.Lyrics.Lyrics,
		Educational: store.EducationalContent{
			TheoryConcepts:  st.Theory.TheoryConcepts,
			CulturalContext: st.Theory.CulturalContext,
			TeachingNotes:   st.Theory.TeachingNotes,
		},
		QualityScore: report.Aggregate,
		FallbackUsed: false,
		Metadata: map[string]any{
			"retry_count":    st.RetryCount,
			"stage_errors":   st.ErrorsFor(),
			"concept_score":  report.ConceptScore,
			"cultural_score": report.CulturalScore,
		},
		GeneratedAt: p.now(),
	}
}
