package pipeline

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"lit-mashup-be/pkg/llm"
	"lit-mashup-be/pkg/pipeline/fallback"
	"lit-mashup-be/pkg/pipeline/quality"
	"lit-mashup-be/pkg/store"
)

// scriptedLLM answers each stage prompt with a fixed response, keyed on a
// distinctive substring of the prompt.
type scriptedLLM struct {
	responses map[string]string
	calls     map[string]int
}

func newScriptedLLM(responses map[string]string) *scriptedLLM {
	return &scriptedLLM{responses: responses, calls: map[string]int{}}
}

func (m *scriptedLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	for key, resp := range m.responses {
		if strings.Contains(prompt, key) {
			m.calls[key]++
			return resp, nil
		}
	}
	m.calls["unmatched"]++
	return "", nil
}

func (m *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", nil
	}
	return m.Generate(ctx, history[len(history)-1].Content, opts...)
}

// prompt substrings unique to each stage
const (
	promptFraming = "framing an educational music mashup"
	promptGenre   = "Analyze the genres"
	promptHook    = "memorable hook"
	promptLyrics  = "Compose lyrics"
	promptTheory  = "Extract the educational content"
)

func goodResponses() map[string]string {
	return map[string]string{
		promptFraming: `{"summary": "A jazz and blues mashup for teens", "audience": "high school", "educational_angle": "blue notes"}`,
		promptGenre:   `{"genres": [{"name": "jazz", "characteristics": "swing", "cultural_roots": "New Orleans"}], "blend_strategy": "alternate sections"}`,
		promptHook:    `{"title": "Blue Swing", "hook": "where the blue notes swing"}`,
		promptLyrics:  `{"lyrics": "Verse one about swing...", "structure": "verse-chorus"}`,
		promptTheory:  `{"theory_concepts": ["blue notes", "swing rhythm", "call and response"], "cultural_context": "` + strings.Repeat("Jazz and blues share deep roots. ", 5) + `", "teaching_notes": "Start with listening examples."}`,
	}
}

func testPipeline(provider llm.Provider, maxRetries int) *Pipeline {
	return NewPipeline(
		provider,
		quality.NewValidator(quality.DefaultConfig()),
		fallback.NewProvider(),
		maxRetries,
		log.New(io.Discard, "", 0),
	)
}

func fullContext() store.GatheredContext {
	return store.GatheredContext{
		Genres:             []string{"jazz", "blues"},
		SkillLevel:         store.SkillBeginner,
		LearningObjectives: []string{"teaching"},
		TargetAudience:     "higher_education",
	}
}

func TestRunProducesResultFromStages(t *testing.T) {
	mock := newScriptedLLM(goodResponses())
	p := testPipeline(mock, 1)

	result := p.Run(context.Background(), "sess-1", fullContext())

	if result.FallbackUsed {
		t.Fatalf("good responses should not fall back: %+v", result.Metadata)
	}
	if result.Title != "Blue Swing" {
		t.Errorf("title = %q", result.Title)
	}
	if result.QualityScore < 0.7 {
		t.Errorf("quality = %.2f, want >= 0.7", result.QualityScore)
	}
	if len(result.Educational.TheoryConcepts) != 3 {
		t.Errorf("concepts = %v", result.Educational.TheoryConcepts)
	}
	if mock.calls[promptFraming] != 1 {
		t.Errorf("context framing ran %d times, want 1", mock.calls[promptFraming])
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first := testPipeline(newScriptedLLM(goodResponses()), 1).
		Run(context.Background(), "sess-d", fullContext())
	second := testPipeline(newScriptedLLM(goodResponses()), 1).
		Run(context.Background(), "sess-d", fullContext())

	if first.QualityScore != second.QualityScore {
		t.Errorf("quality scores differ: %.4f vs %.4f", first.QualityScore, second.QualityScore)
	}
	if first.Title != second.Title || first.Lyrics != second.Lyrics {
		t.Errorf("content differs across identical runs")
	}
}

func TestRunRetriesOnceThenFallsBack(t *testing.T) {
	// Weak theory output keeps the score below threshold on every attempt
	responses := goodResponses()
	responses[promptTheory] = `{"theory_concepts": ["one"], "cultural_context": "short", "teaching_notes": ""}`
	mock := newScriptedLLM(responses)
	p := testPipeline(mock, 1)

	ctx := fullContext()
	ctx.SkillLevel = ""
	result := p.Run(context.Background(), "sess-2", ctx)

	if !result.FallbackUsed {
		t.Fatal("exhausted retries should produce the fallback result")
	}
	if mock.calls[promptFraming] != 1 {
		t.Errorf("context framing ran %d times, want 1 (never retried)", mock.calls[promptFraming])
	}
	if mock.calls[promptTheory] != 2 {
		t.Errorf("theory stage ran %d times, want 2 (initial + one retry)", mock.calls[promptTheory])
	}
	if result.Metadata["retry_count"] != 1 {
		t.Errorf("retry_count = %v, want 1", result.Metadata["retry_count"])
	}
	if result.Metadata["error"] == nil {
		t.Error("fallback metadata should record the triggering error")
	}

	// Fallback structural guarantees
	if result.Title == "" || result.Lyrics == "" {
		t.Error("fallback must have a title and lyrics")
	}
	if len(result.Educational.TheoryConcepts) < 2 {
		t.Errorf("fallback concepts = %d, want >= 2", len(result.Educational.TheoryConcepts))
	}
	if n := utf8.RuneCountInString(result.Educational.CulturalContext); n < 100 {
		t.Errorf("fallback cultural context = %d chars, want >= 100", n)
	}
}

func TestStageParseErrorUsesPlaceholderAndContinues(t *testing.T) {
	responses := goodResponses()
	responses[promptGenre] = "I refuse to answer in JSON."
	mock := newScriptedLLM(responses)
	p := testPipeline(mock, 0)

	result := p.Run(context.Background(), "sess-3", fullContext())

	// Downstream stages still ran despite the failed genre analysis
	if mock.calls[promptTheory] != 1 {
		t.Errorf("theory stage ran %d times, want 1", mock.calls[promptTheory])
	}

	stageErrors, ok := result.Metadata["stage_errors"].([]string)
	if !ok || len(stageErrors) != 1 || stageErrors[0] != StageGenreAnalysis {
		t.Errorf("stage_errors = %v, want [%s]", result.Metadata["stage_errors"], StageGenreAnalysis)
	}
}
