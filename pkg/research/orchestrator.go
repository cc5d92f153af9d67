package research

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"lit-mashup-be/pkg/search"
	"lit-mashup-be/pkg/store"
)

const toolWebSearch = "web_search"

// Options bound the enrichment fan-out
type Options struct {
	MaxConcurrent   int
	PerQueryTimeout time.Duration
	MinContentLen   int
	TopK            int
}

func DefaultOptions() Options {
	return Options{
		MaxConcurrent:   3,
		PerQueryTimeout: 10 * time.Second,
		MinContentLen:   50,
		TopK:            3,
	}
}

// Orchestrator fans enrichment queries out to a search provider, bounds each
// query with its own timeout, and folds the survivors into quality-tiered
// research snippets. A missing or unconfigured provider is not an error:
// enrichment silently degrades to nothing.
type Orchestrator struct {
	provider search.Provider
	opts     Options
	logger   *log.Logger
	now      func() time.Time
}

func NewOrchestrator(provider search.Provider, opts Options, logger *log.Logger) *Orchestrator {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}
	if opts.PerQueryTimeout <= 0 {
		opts.PerQueryTimeout = 10 * time.Second
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	return &Orchestrator{
		provider: provider,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

type queryOutcome struct {
	call     store.ToolCall
	snippets []store.ResearchSnippet
}

// Enrich runs all queries concurrently and returns the top snippets plus a
// ToolCall record per query. One query failing or timing out never aborts
// the others.
func (o *Orchestrator) Enrich(ctx context.Context, queries []string, gctx store.GatheredContext) ([]store.ResearchSnippet, []store.ToolCall) {
	if o.provider == nil || !o.provider.Available() {
		return nil, nil
	}
	if len(queries) == 0 {
		return nil, nil
	}

	o.logger.Printf("[RESEARCH] Dispatching %d enrichment queries", len(queries))

	outcomes := make([]queryOutcome, len(queries))
	sem := make(chan struct{}, o.opts.MaxConcurrent)
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[idx] = o.runQuery(ctx, query, gctx)
		}(i, q)
	}
	wg.Wait()

	var all []store.ResearchSnippet
	calls := make([]store.ToolCall, 0, len(queries))
	for _, out := range outcomes {
		calls = append(calls, out.call)
		all = append(all, out.snippets...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return tierRank(all[i].Tier) > tierRank(all[j].Tier)
	})
	if len(all) > o.opts.TopK {
		all = all[:o.opts.TopK]
	}

	return all, calls
}

func (o *Orchestrator) runQuery(ctx context.Context, query string, gctx store.GatheredContext) queryOutcome {
	enhanced := EnhanceQuery(query, gctx)
	call := store.ToolCall{
		Tool:     toolWebSearch,
		Query:    enhanced,
		CalledAt: o.now(),
	}

	qctx, cancel := context.WithTimeout(ctx, o.opts.PerQueryTimeout)
	defer cancel()

	results, err := o.provider.Search(qctx, enhanced, o.opts.TopK)
	if err != nil {
		if qctx.Err() == context.DeadlineExceeded {
			call.Error = fmt.Sprintf("search timed out after %s", o.opts.PerQueryTimeout)
		} else {
			call.Error = err.Error()
		}
		o.logger.Printf("[WARN] Enrichment query failed: %v", err)
		return queryOutcome{call: call}
	}

	snippets := o.filter(results)
	call.Success = true
	call.ResultCount = len(snippets)
	return queryOutcome{call: call, snippets: snippets}
}

func (o *Orchestrator) filter(results []search.Result) []store.ResearchSnippet {
	var out []store.ResearchSnippet
	for _, r := range results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		if len(r.Content) < o.opts.MinContentLen {
			continue
		}
		recency := "undated"
		if r.PublishedAt != nil {
			recency = "recent"
		}
		out = append(out, store.ResearchSnippet{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: r.Content,
			Tier:    classifyDomain(r.URL),
			Recency: recency,
		})
	}
	return out
}

var referenceSites = []string{
	"wikipedia.org", "britannica.com", "khanacademy.org",
	"musictheory.net", "teoria.com",
}

func classifyDomain(url string) string {
	lower := strings.ToLower(url)
	if strings.Contains(lower, ".edu") || strings.Contains(lower, ".gov") || strings.Contains(lower, ".org") {
		return store.TierHigh
	}
	for _, site := range referenceSites {
		if strings.Contains(lower, site) {
			return store.TierMedium
		}
	}
	return store.TierLow
}

func tierRank(tier string) int {
	switch tier {
	case store.TierHigh:
		return 2
	case store.TierMedium:
		return 1
	default:
		return 0
	}
}

var recencyHints = []string{"recent", "latest", "new", "current", "modern", "today"}

// EnhanceQuery biases a raw query toward educational music sources using the
// gathered context, mirroring how the queries are built per phase.
func EnhanceQuery(query string, gctx store.GatheredContext) string {
	parts := []string{query}

	switch gctx.SkillLevel {
	case store.SkillBeginner:
		parts = append(parts, "music theory basics")
	case store.SkillAdvanced:
		parts = append(parts, "advanced music theory")
	}

	parts = append(parts, "music education")

	lower := strings.ToLower(query)
	for _, hint := range recencyHints {
		if strings.Contains(lower, hint) {
			parts = append(parts, fmt.Sprintf("%d", time.Now().Year()))
			break
		}
	}

	return strings.Join(parts, " ")
}

// GenreQueries builds one exploration query per genre
func GenreQueries(genres []string) []string {
	queries := make([]string, 0, len(genres))
	for _, g := range genres {
		queries = append(queries, fmt.Sprintf("%s music history cultural significance educational", g))
	}
	return queries
}

// CulturalQueries builds one research query per cultural element
func CulturalQueries(elements []string) []string {
	queries := make([]string, 0, len(elements))
	for _, e := range elements {
		queries = append(queries, fmt.Sprintf("%s music culture history significance", e))
	}
	return queries
}
