// Package api is the downstream contract of spec.md §6: one synchronous
// function, analyze(pages, start, end, default_language, batch_size?),
// that serializes the scoring pipeline's result into the JSON envelope
// described in spec.md §4.6. This is the only layer where internal types
// become transport-shaped ones.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/matrix"
	"github.com/opsci/wikisense/internal/metrics"
	"github.com/opsci/wikisense/internal/orchestrator"
	"github.com/opsci/wikisense/internal/resolver"
	"github.com/opsci/wikisense/internal/scorer"
)

// Options configures one Analyze call's collector wiring. Client,
// Blacklist and Suspects are required; the rest fall back to spec.md's
// stated defaults.
type Options struct {
	Client          *client.Client
	Blacklist       map[string]bool // lower-cased domain substrings
	Suspects        map[string]bool // sockpuppet usernames, case preserved (exact match)
	BatchSize       int             // 0 -> orchestrator default (20)
	WorkerBase      int             // 0 -> orchestrator default (16)
	ExcludeBots     bool            // Edits spike: drop bot-named authors
	ExcludePrivileged bool          // Add/delete ratio: drop sysop/bot authors
	Logger          zerolog.Logger
}

// Scores is the per-page composite bundle, spec.md §4.6 "scores".
type Scores struct {
	Heat        float64 `json:"heat"`
	Quality     float64 `json:"quality"`
	Risk        float64 `json:"risk"`
	Sensitivity float64 `json:"sensitivity"`
}

// PageResult is one element of the "pages" array of the JSON envelope.
type PageResult struct {
	Title               string             `json:"title"`
	OriginalInput       string             `json:"original_input"`
	Language            string             `json:"language"`
	UniqueKey           string             `json:"unique_key"`
	Status              string             `json:"status"`
	Scores              Scores             `json:"scores"`
	Metrics             map[string]float64 `json:"metrics"`
	DetectedSockpuppets []string           `json:"detected_sockpuppets,omitempty"`
}

// Summary is the envelope's per-run bookkeeping, spec.md §4.6 "summary".
type Summary struct {
	RunID             string         `json:"run_id"`
	TotalPages        int            `json:"total_pages"`
	PagesPerLanguage  map[string]int `json:"pages_per_language"`
	BatchSize         int            `json:"batch_size"`
	ProcessingSeconds float64        `json:"processing_seconds"`
}

// AnalysisResult is the JSON-shaped envelope spec.md §4.6 describes.
type AnalysisResult struct {
	Pages   []PageResult `json:"pages"`
	Summary Summary      `json:"summary"`
	Error   string       `json:"error,omitempty"`
}

// Analyze is the core's single downstream entrypoint (spec.md §6).
func Analyze(ctx context.Context, pages []string, startDate, endDate, defaultLanguage string, opts Options) (*AnalysisResult, error) {
	started := time.Now()

	resolved := resolver.Resolve(pages, defaultLanguage)
	if len(resolved) == 0 {
		return &AnalysisResult{
			Pages:   []PageResult{},
			Summary: Summary{PagesPerLanguage: map[string]int{}, BatchSize: effectiveBatchSize(opts.BatchSize)},
		}, nil
	}

	window := metrics.NewWindow(startDate, endDate)
	sockpuppets := &metrics.Sockpuppets{Client: opts.Client, Suspects: opts.Suspects}
	collectors := buildCollectors(opts, window, sockpuppets)

	orch := &orchestrator.Orchestrator{
		Collectors: collectors,
		BatchSize:  opts.BatchSize,
		WorkerBase: opts.WorkerBase,
		Logger:     opts.Logger,
	}

	m, err := runOrchestrator(ctx, orch, resolved)
	if err != nil {
		return &AnalysisResult{Error: fmt.Sprintf("analysis failed: %v", err)}, err
	}

	uniqueKeys := make([]string, len(resolved))
	for i, p := range resolved {
		uniqueKeys[i] = p.UniqueKey
	}
	scores := scorer.Score(m, uniqueKeys)

	pagesResult := make([]PageResult, 0, len(resolved))
	perLanguage := make(map[string]int)
	for _, p := range resolved {
		perLanguage[p.Language]++
		s := scores[p.UniqueKey]
		pagesResult = append(pagesResult, PageResult{
			Title:         p.CleanTitle,
			OriginalInput: p.OriginalInput,
			Language:      p.Language,
			UniqueKey:     p.UniqueKey,
			Status:        "ok",
			Scores: Scores{
				Heat:        s.Heat,
				Quality:     s.Quality,
				Risk:        s.Risk,
				Sensitivity: s.Sensitivity,
			},
			Metrics:             metricsForKey(m, p.UniqueKey),
			DetectedSockpuppets: sockpuppets.Matched[p.UniqueKey],
		})
	}

	return &AnalysisResult{
		Pages: pagesResult,
		Summary: Summary{
			RunID:             uuid.NewString(),
			TotalPages:        len(resolved),
			PagesPerLanguage:  perLanguage,
			BatchSize:         effectiveBatchSize(opts.BatchSize),
			ProcessingSeconds: time.Since(started).Seconds(),
		},
	}, nil
}

// runOrchestrator recovers from a catastrophic orchestration panic,
// turning it into the "analysis cannot produce a matrix at all" error
// path of spec.md §7.
func runOrchestrator(ctx context.Context, orch *orchestrator.Orchestrator, pages []resolver.PageInfo) (m matrix.Matrix, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("orchestrator panic: %v", r)
		}
	}()
	m = orch.Run(ctx, pages)
	return m, nil
}

func metricsForKey(m matrix.Matrix, key string) map[string]float64 {
	out := make(map[string]float64, len(m))
	for name, row := range m {
		out[name] = row[key] * 100.0
	}
	return out
}

func effectiveBatchSize(batchSize int) int {
	if batchSize <= 0 {
		return 20
	}
	return batchSize
}

func buildCollectors(opts Options, window metrics.Window, sockpuppets *metrics.Sockpuppets) []metrics.Collector {
	return []metrics.Collector{
		// Heat
		&metrics.ViewsSpike{Client: opts.Client, Window: window},
		&metrics.EditsSpike{Client: opts.Client, Window: window, ExcludeBots: opts.ExcludeBots},
		&metrics.RevertRisk{Client: opts.Client, Window: window},
		&metrics.Protection{Client: opts.Client},
		&metrics.DiscussionIntensity{Client: opts.Client, Window: window},
		// Quality
		&metrics.SuspiciousSources{Client: opts.Client, Blacklist: opts.Blacklist},
		&metrics.FeaturedArticle{Client: opts.Client},
		&metrics.CitationGaps{Client: opts.Client},
		&metrics.Staleness{Client: opts.Client, Window: window},
		&metrics.SourceConcentration{Client: opts.Client},
		&metrics.AddDeleteRatio{Client: opts.Client, Window: window, ExcludePrivileged: opts.ExcludePrivileged},
		// Risk
		sockpuppets,
		&metrics.Anonymity{Client: opts.Client, Window: window},
		&metrics.ContributorsConcentration{Client: opts.Client, Window: window},
		&metrics.Sporadicity{Client: opts.Client, Window: window},
		&metrics.ContributorAddDeleteRatio{Client: opts.Client, Window: window},
	}
}
