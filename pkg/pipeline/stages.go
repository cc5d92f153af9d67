package pipeline

import (
	"context"
	"fmt"

	"lit-mashup-be/pkg/llm"
)

// Stage is one step of the generation pipeline. Run reads upstream outputs
// from the state, calls the model, and writes its own typed output back. A
// returned error means the output could not be decoded; the pipeline records
// it and continues with the zero placeholder.
type Stage interface {
	Name() string
	Run(ctx context.Context, provider llm.Provider, st *State) error
}

type contextStage struct{}

func (contextStage) Name() string { return StageContextFraming }

func (contextStage) Run(ctx context.Context, provider llm.Provider, st *State) error {
	prompt := fmt.Sprintf(`You are framing an educational music mashup project.

%s
%s
Summarize the project in 2-3 sentences, name the audience, and state the
educational angle the mashup should take.

Respond with JSON only, exactly these keys:
{"summary": "...", "audience": "...", "educational_angle": "..."}`,
		formatContext(st.Context), skillDirective(st.Context.SkillLevel))

	raw, err := provider.Generate(ctx, prompt, llm.WithJSONOutput(), llm.WithTemperature(0.3))
	if err != nil {
		return llm.NewParseError(StageContextFraming, "", err)
	}

	var frame ContextFrame
	if err := llm.DecodeStrict(StageContextFraming, raw, &frame); err != nil {
		return err
	}
	st.Frame = frame
	return nil
}

type genreStage struct{}

func (genreStage) Name() string { return StageGenreAnalysis }

func (genreStage) Run(ctx context.Context, provider llm.Provider, st *State) error {
	prompt := fmt.Sprintf(`Analyze the genres for an educational music mashup.

Project: %s
%s
For each genre describe its musical characteristics and cultural roots, then
propose a strategy for blending them.

Respond with JSON only, exactly these keys:
{"genres": [{"name": "...", "characteristics": "...", "cultural_roots": "..."}], "blend_strategy": "..."}`,
		orDefault(st.Frame.Summary, "an educational music mashup"),
		formatContext(st.Context))

	raw, err := provider.Generate(ctx, prompt, llm.WithJSONOutput(), llm.WithTemperature(0.5))
	if err != nil {
		return llm.NewParseError(StageGenreAnalysis, "", err)
	}

	var analysis GenreAnalysis
	if err := llm.DecodeStrict(StageGenreAnalysis, raw, &analysis); err != nil {
		return err
	}
	st.Analysis = analysis
	return nil
}

type hookStage struct{}

func (hookStage) Name() string { return StageHookGeneration }

func (hookStage) Run(ctx context.Context, provider llm.Provider, st *State) error {
	prompt := fmt.Sprintf(`Write a title and a memorable hook for an educational music mashup.

Project: %s
Blend strategy: %s
%s
Respond with JSON only, exactly these keys:
{"title": "...", "hook": "..."}`,
		orDefault(st.Frame.Summary, "an educational music mashup"),
		orDefault(st.Analysis.BlendStrategy, "combine the genres evenly"),
		formatContext(st.Context))

	raw, err := provider.Generate(ctx, prompt, llm.WithJSONOutput(), llm.WithTemperature(0.8))
	if err != nil {
		return llm.NewParseError(StageHookGeneration, "", err)
	}

	var hook Hook
	if err := llm.DecodeStrict(StageHookGeneration, raw, &hook); err != nil {
		return err
	}
	st.Hook = hook
	return nil
}

type lyricsStage struct{}

func (lyricsStage) Name() string { return StageLyricsWriting }

func (lyricsStage) Run(ctx context.Context, provider llm.Provider, st *State) error {
	prompt := fmt.Sprintf(`Compose lyrics for an educational music mashup.

Title: %s
Hook: %s
Blend strategy: %s
%s
%s
Weave the hook into the chorus and keep the lyrics teachable.

Respond with JSON only, exactly these keys:
{"lyrics": "...", "structure": "..."}`,
		orDefault(st.Hook.Title, "Untitled Mashup"),
		orDefault(st.Hook.Hook, "a recurring melodic phrase"),
		orDefault(st.Analysis.BlendStrategy, "combine the genres evenly"),
		formatContext(st.Context),
		skillDirective(st.Context.SkillLevel))

	raw, err := provider.Generate(ctx, prompt, llm.WithJSONOutput(), llm.WithTemperature(0.8))
	if err != nil {
		return llm.NewParseError(StageLyricsWriting, "", err)
	}

	var lyrics Lyrics
	if err := llm.DecodeStrict(StageLyricsWriting, raw, &lyrics); err != nil {
		return err
	}
	st.Lyrics = lyrics
	return nil
}

type theoryStage struct{}

func (theoryStage) Name() string { return StageTheoryIntegrate }

func (theoryStage) Run(ctx context.Context, provider llm.Provider, st *State) error {
	prompt := fmt.Sprintf(`Extract the educational content from this music mashup.

Title: %s
Lyrics:
%s
%s
%s
List at least two music theory concepts the mashup demonstrates, write a
cultural context paragraph (at least 100 characters), and add teaching notes
for an educator.

Respond with JSON only, exactly these keys:
{"theory_concepts": ["..."], "cultural_context": "...", "teaching_notes": "..."}`,
		orDefault(st.Hook.Title, "Untitled Mashup"),
		orDefault(st.Lyrics.Lyrics, "(lyrics unavailable)"),
		formatContext(st.Context),
		skillDirective(st.Context.SkillLevel))

	raw, err := provider.Generate(ctx, prompt, llm.WithJSONOutput(), llm.WithTemperature(0.4))
	if err != nil {
		return llm.NewParseError(StageTheoryIntegrate, "", err)
	}

	var theory Theory
	if err := llm.DecodeStrict(StageTheoryIntegrate, raw, &theory); err != nil {
		return err
	}
	st.Theory = theory
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
