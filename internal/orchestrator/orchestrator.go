// Package orchestrator implements the fan-out scoring pipeline of
// spec.md §4.4: group pages by language, batch each group, dispatch a
// (metric, language, batch) work item per combination onto a bounded
// worker pool, and accumulate results into a dense metric matrix.
//
// The accumulator is owned by a single receiver goroutine reading off a
// results channel, per spec.md §4.4 Design Notes ("prefer a pattern
// where each worker returns its result through a typed channel, and a
// single receiver writes into the matrix — eliminates locking
// entirely"), the same shape WikiSurge's processor pipeline uses for
// its buffered indexing stage.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/matrix"
	"github.com/opsci/wikisense/internal/metrics"
	"github.com/opsci/wikisense/internal/resolver"
	"github.com/opsci/wikisense/internal/utils"
)

// defaultBatchSize is spec.md §4.4's default B.
const defaultBatchSize = 20

// defaultWorkerBase is spec.md §4.4's default W_base.
const defaultWorkerBase = 16

// workItemDeadline is spec.md §4.4's "~120s" per-work-item hard deadline.
const workItemDeadline = 120 * time.Second

// Orchestrator runs the metric collectors for a resolved page list over
// a bounded worker pool.
type Orchestrator struct {
	Collectors []metrics.Collector
	BatchSize  int // 0 uses defaultBatchSize
	WorkerBase int // 0 uses defaultWorkerBase
	Logger     zerolog.Logger
}

// workItem is the unit of parallelism: spec.md GLOSSARY "Work item".
type workItem struct {
	collector metrics.Collector
	language  string
	batch     []resolver.PageInfo
}

// result is what a worker sends back after running one work item.
type result struct {
	metric string
	scores map[string]float64 // clean_title -> score
	byKey  map[string]string  // clean_title -> unique_key, for this batch
}

// Run executes every collector against every language-grouped batch of
// pages and returns the dense metric matrix.
func (o *Orchestrator) Run(ctx context.Context, pages []resolver.PageInfo) matrix.Matrix {
	batchSize := o.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	workerBase := o.WorkerBase
	if workerBase <= 0 {
		workerBase = defaultWorkerBase
	}

	metricNames := make([]string, len(o.Collectors))
	for i, c := range o.Collectors {
		metricNames[i] = c.Name()
	}
	uniqueKeys := make([]string, len(pages))
	for i, p := range pages {
		uniqueKeys[i] = p.UniqueKey
	}

	items := buildWorkItems(o.Collectors, pages, batchSize)
	workers := scaleWorkers(len(items), workerBase)

	o.Logger.Info().
		Int("work_items", len(items)).
		Int("workers", workers).
		Int("pages", len(pages)).
		Msg("orchestrator starting analysis")

	m := matrix.New(metricNames)
	if len(items) == 0 {
		m.Densify(metricNames, uniqueKeys)
		return m
	}

	itemCh := make(chan workItem, len(items))
	resultCh := make(chan result, len(items))
	for _, it := range items {
		itemCh <- it
	}
	close(itemCh)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go o.worker(ctx, &wg, itemCh, resultCh)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		for title, score := range res.scores {
			key, ok := res.byKey[title]
			if !ok {
				continue
			}
			m.Set(res.metric, key, score)
		}
	}

	m.Densify(metricNames, uniqueKeys)
	return m
}

func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, items <-chan workItem, results chan<- result) {
	defer wg.Done()

	for it := range items {
		itemCtx, cancel := context.WithTimeout(ctx, workItemDeadline)

		byKey := make(map[string]string, len(it.batch))
		titles := make([]string, len(it.batch))
		for i, p := range it.batch {
			titles[i] = p.CleanTitle
			byKey[p.CleanTitle] = p.UniqueKey
		}

		scores := o.collect(itemCtx, it, titles)
		cancel()

		results <- result{metric: it.collector.Name(), scores: scores, byKey: byKey}
	}
}

// collect runs one work item's collector, absorbing the per-item
// deadline into an all-zero result per spec.md §7 "Work-item timeout".
func (o *Orchestrator) collect(ctx context.Context, it workItem, titles []string) map[string]float64 {
	done := make(chan map[string]float64, 1)
	go func() {
		done <- it.collector.Collect(ctx, titles, it.language)
	}()

	select {
	case scores := <-done:
		return scores
	case <-ctx.Done():
		log.Warn().Str("metric", it.collector.Name()).Str("lang", it.language).Msg("work item timed out, zeroing batch")
		zeroed := make(map[string]float64, len(titles))
		for _, t := range titles {
			zeroed[t] = 0.0
		}
		return zeroed
	}
}

// buildWorkItems groups pages by language, splits each group into
// batches of size <= batchSize, and crosses the result with every
// collector (spec.md §4.4 steps 1-2).
func buildWorkItems(collectors []metrics.Collector, pages []resolver.PageInfo, batchSize int) []workItem {
	byLanguage := make(map[string][]resolver.PageInfo)
	var languageOrder []string
	for _, p := range pages {
		if _, ok := byLanguage[p.Language]; !ok {
			languageOrder = append(languageOrder, p.Language)
		}
		byLanguage[p.Language] = append(byLanguage[p.Language], p)
	}

	var items []workItem
	for _, lang := range languageOrder {
		group := byLanguage[lang]
		for start := 0; start < len(group); start += batchSize {
			end := start + batchSize
			if end > len(group) {
				end = len(group)
			}
			batch := group[start:end]
			for _, c := range collectors {
				items = append(items, workItem{collector: c, language: lang, batch: batch})
			}
		}
	}
	return items
}

// scaleWorkers implements spec.md §4.4 step 3's pool-sizing rule.
func scaleWorkers(workItemCount, workerBase int) int {
	switch {
	case workItemCount > 100:
		return utils.Min(3*workerBase, 48)
	case workItemCount > 50:
		return utils.Min(2*workerBase, 32)
	default:
		return workerBase
	}
}
