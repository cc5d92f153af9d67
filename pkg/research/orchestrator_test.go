package research

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"lit-mashup-be/pkg/search"
	"lit-mashup-be/pkg/store"
)

type fakeProvider struct {
	available bool
	results   map[string][]search.Result
	hang      string // query substring that blocks until the context expires
}

func (f *fakeProvider) Available() bool { return f.available }

func (f *fakeProvider) Search(ctx context.Context, query string, _ int) ([]search.Result, error) {
	if f.hang != "" && strings.Contains(query, f.hang) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	for key, res := range f.results {
		if strings.Contains(query, key) {
			return res, nil
		}
	}
	return nil, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func longContent(s string) string {
	return s + strings.Repeat(" more detail", 10)
}

func TestEnrichWithoutProviderReturnsNothing(t *testing.T) {
	o := NewOrchestrator(&fakeProvider{available: false}, DefaultOptions(), testLogger())

	snippets, calls := o.Enrich(context.Background(), []string{"jazz"}, store.GatheredContext{})
	if snippets != nil || calls != nil {
		t.Errorf("unavailable provider should degrade silently, got %v / %v", snippets, calls)
	}

	o = NewOrchestrator(nil, DefaultOptions(), testLogger())
	snippets, calls = o.Enrich(context.Background(), []string{"jazz"}, store.GatheredContext{})
	if snippets != nil || calls != nil {
		t.Errorf("nil provider should degrade silently, got %v / %v", snippets, calls)
	}
}

func TestEnrichSurvivesSingleQueryTimeout(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		hang:      "blues",
		results: map[string][]search.Result{
			"jazz": {
				{Title: "Jazz History", URL: "https://music.university.edu/jazz", Content: longContent("jazz origins")},
			},
		},
	}

	opts := DefaultOptions()
	opts.PerQueryTimeout = 50 * time.Millisecond
	o := NewOrchestrator(provider, opts, testLogger())

	snippets, calls := o.Enrich(context.Background(), []string{"jazz", "blues"}, store.GatheredContext{})

	if len(snippets) != 1 {
		t.Fatalf("snippets = %d, want the surviving query's result", len(snippets))
	}
	if snippets[0].Title != "Jazz History" {
		t.Errorf("unexpected snippet: %+v", snippets[0])
	}

	if len(calls) != 2 {
		t.Fatalf("tool calls = %d, want one per query", len(calls))
	}
	var succeeded, failed int
	for _, c := range calls {
		if c.Success {
			succeeded++
		} else {
			failed++
			if c.Error == "" {
				t.Error("failed call should carry an error message")
			}
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 1/1", succeeded, failed)
	}
}

func TestEnrichFiltersAndRanksResults(t *testing.T) {
	provider := &fakeProvider{
		available: true,
		results: map[string][]search.Result{
			"jazz": {
				{Title: "Short", URL: "https://blog.example.com/short", Content: "too short"},
				{Title: "", URL: "https://no-title.example.com", Content: longContent("untitled")},
				{Title: "Blog Post", URL: "https://blog.example.com/jazz", Content: longContent("a personal take")},
				{Title: "University Page", URL: "https://music.university.edu/jazz", Content: longContent("course notes")},
				{Title: "Wikipedia", URL: "https://en.wikipedia.org/wiki/Jazz", Content: longContent("encyclopedia entry")},
			},
		},
	}

	opts := DefaultOptions()
	opts.TopK = 2
	o := NewOrchestrator(provider, opts, testLogger())

	snippets, _ := o.Enrich(context.Background(), []string{"jazz"}, store.GatheredContext{})

	if len(snippets) != 2 {
		t.Fatalf("snippets = %d, want capped at 2", len(snippets))
	}
	if snippets[0].Tier != store.TierHigh {
		t.Errorf("first snippet tier = %s, want high", snippets[0].Tier)
	}
	for _, s := range snippets {
		if s.Tier == store.TierLow {
			t.Errorf("low-tier snippet ranked above better sources: %+v", s)
		}
	}
}

func TestEnhanceQuery(t *testing.T) {
	got := EnhanceQuery("jazz history", store.GatheredContext{SkillLevel: store.SkillBeginner})
	if !strings.Contains(got, "music theory basics") {
		t.Errorf("beginner skill should bias the query: %q", got)
	}
	if !strings.Contains(got, "music education") {
		t.Errorf("educational bias missing: %q", got)
	}

	got = EnhanceQuery("latest jazz trends", store.GatheredContext{})
	if !strings.Contains(got, "202") {
		t.Errorf("recency hint should append the current year: %q", got)
	}
}
