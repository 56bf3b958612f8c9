package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsci/wikisense/internal/metrics"
	"github.com/opsci/wikisense/internal/resolver"
)

// stubCollector records every (titles, lang) invocation it receives and
// returns a fixed or computed score per title.
type stubCollector struct {
	name string

	mu    sync.Mutex
	calls []stubCall

	score func(title, lang string) float64
	delay time.Duration
}

type stubCall struct {
	titles []string
	lang   string
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, stubCall{titles: append([]string(nil), titles...), lang: lang})
	s.mu.Unlock()

	out := make(map[string]float64, len(titles))
	for _, t := range titles {
		if s.score != nil {
			out[t] = s.score(t, lang)
		} else {
			out[t] = 1.0
		}
	}
	return out
}

var _ metrics.Collector = (*stubCollector)(nil)

func pages(n int, lang string) []resolver.PageInfo {
	infos := make([]resolver.PageInfo, n)
	for i := 0; i < n; i++ {
		title := lang + "Page" + string(rune('A'+i))
		infos[i] = resolver.PageInfo{
			OriginalInput: title,
			CleanTitle:    title,
			Language:      lang,
			UniqueKey:     title + "___" + lang,
		}
	}
	return infos
}

func TestScaleWorkers(t *testing.T) {
	assert.Equal(t, 16, scaleWorkers(10, 16))
	assert.Equal(t, 32, scaleWorkers(51, 16))
	assert.Equal(t, 48, scaleWorkers(101, 16))
	// 2*base capped at 32 even if base is large.
	assert.Equal(t, 32, scaleWorkers(60, 20))
}

func TestBuildWorkItems_BatchesByLanguage(t *testing.T) {
	// spec.md §8 scenario 3: 40 pages in one language, batch size 20 -> 2
	// batches per metric.
	c1 := &stubCollector{name: "M1"}

	items := buildWorkItems([]metrics.Collector{c1}, pages(40, "en"), 20)
	require.Len(t, items, 2)
	assert.Len(t, items[0].batch, 20)
	assert.Len(t, items[1].batch, 20)
}

func TestRun_LanguageIsolationAndScoring(t *testing.T) {
	en := pages(2, "en")
	fr := pages(2, "fr")
	all := append(append([]resolver.PageInfo{}, en...), fr...)

	collector := &stubCollector{
		name: "Lang check",
		score: func(title, lang string) float64 {
			if lang == "fr" {
				return 1.0
			}
			return 0.0
		},
	}

	o := &Orchestrator{
		Collectors: []metrics.Collector{collector},
		BatchSize:  20,
		WorkerBase: 4,
		Logger:     zerolog.Nop(),
	}

	m := o.Run(context.Background(), all)

	for _, p := range en {
		assert.Equal(t, 0.0, m.Get("Lang check", p.UniqueKey))
	}
	for _, p := range fr {
		assert.Equal(t, 1.0, m.Get("Lang check", p.UniqueKey))
	}

	collector.mu.Lock()
	defer collector.mu.Unlock()
	for _, call := range collector.calls {
		for _, title := range call.titles {
			assert.Contains(t, title, call.lang)
		}
	}
}

func TestRun_DensifiesEveryCell(t *testing.T) {
	all := pages(3, "en")
	c1 := &stubCollector{name: "A"}
	c2 := &stubCollector{name: "B"}

	o := &Orchestrator{Collectors: []metrics.Collector{c1, c2}, Logger: zerolog.Nop()}
	m := o.Run(context.Background(), all)

	for _, metricName := range []string{"A", "B"} {
		for _, p := range all {
			_, ok := m[metricName][p.UniqueKey]
			assert.True(t, ok)
		}
	}
}

func TestRun_NoPages_ReturnsDenseEmptyMatrix(t *testing.T) {
	c1 := &stubCollector{name: "A"}
	o := &Orchestrator{Collectors: []metrics.Collector{c1}, Logger: zerolog.Nop()}

	m := o.Run(context.Background(), nil)
	row, ok := m["A"]
	require.True(t, ok)
	assert.Empty(t, row)
}

func TestCollect_TimeoutZeroesOnlyItsBatch(t *testing.T) {
	slow := &stubCollector{name: "Slow", delay: 50 * time.Millisecond}

	o := &Orchestrator{Logger: zerolog.Nop()}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	scores := o.collect(ctx, workItem{collector: slow, language: "en", batch: pages(1, "en")}, []string{"enPageA"})
	assert.Equal(t, map[string]float64{"enPageA": 0.0}, scores)
}
