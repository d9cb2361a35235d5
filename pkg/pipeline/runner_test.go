package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/store"
)

func testLabels() []cloud.Label {
	return []cloud.Label{
		{Text: "gopher", Weight: 10},
		{Text: "channel", Weight: 6},
		{Text: "goroutine", Weight: 4},
		{Text: "select", Weight: 2},
		{Text: "defer", Weight: 1},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	st, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	r := NewRunner(c, nil, st, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil...) left nil fields: %+v", r)
	}
	if r.Store != nil {
		t.Error("Store should stay nil")
	}
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	opts := Options{Width: 400, Height: 300}
	a, sa, err := GenerateLayout(testLabels(), opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error = %v", err)
	}
	b, sb, err := GenerateLayout(testLabels(), opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error = %v", err)
	}
	if sa != sb {
		t.Errorf("stats differ: %+v vs %+v", sa, sb)
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Error("same labels and options should give the same layout")
	}
	if sa.Input != 5 || sa.Placed+sa.Omitted != 5 {
		t.Errorf("stats = %+v, want 5 inputs accounted for", sa)
	}
	if a.Width != 400 || a.Height != 300 {
		t.Errorf("layout canvas = %dx%d, want 400x300", a.Width, a.Height)
	}
}

func TestGenerateLayoutEmpty(t *testing.T) {
	l, stats, err := GenerateLayout(nil, Options{})
	if err != nil {
		t.Fatalf("GenerateLayout(nil) error = %v", err)
	}
	if len(l.Words) != 0 || stats.Placed != 0 {
		t.Errorf("GenerateLayout(nil) placed %d words", len(l.Words))
	}
}

func TestGenerateLayoutProgress(t *testing.T) {
	var calls int
	var last cloud.Stats
	opts := Options{Width: 400, Height: 300, Progress: func(s cloud.Stats) {
		calls++
		last = s
	}}
	_, stats, err := GenerateLayout(testLabels(), opts)
	if err != nil {
		t.Fatalf("GenerateLayout() error = %v", err)
	}
	if calls != 5 {
		t.Errorf("progress called %d times, want 5", calls)
	}
	if last.Placed != stats.Placed || last.Omitted != stats.Omitted {
		t.Errorf("last progress = %+v, want final stats %+v", last, stats)
	}
}

func TestGenerateLayoutInvalidOptions(t *testing.T) {
	if _, _, err := GenerateLayout(testLabels(), Options{Measurer: "ruler"}); err == nil {
		t.Error("expected error for unknown measurer")
	}
}

func TestRenderFromLayout(t *testing.T) {
	l, _, err := GenerateLayout(testLabels(), Options{Width: 200, Height: 150})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := RenderFromLayout(l, Options{Formats: []string{"svg", "png", "pdf", "json"}})
	if err != nil {
		t.Fatalf("RenderFromLayout() error = %v", err)
	}
	if !bytes.HasPrefix(artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact does not start with <svg")
	}
	if !bytes.HasPrefix(artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact missing PNG signature")
	}
	if !bytes.HasPrefix(artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf artifact missing PDF header")
	}
	var decoded struct {
		Words []cloud.Placed `json:"words"`
	}
	if err := json.Unmarshal(artifacts["json"], &decoded); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if len(decoded.Words) != len(l.Words) {
		t.Errorf("json artifact has %d words, want %d", len(decoded.Words), len(l.Words))
	}
}

func TestRunnerExecuteCachesSecondRun(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Width: 300, Height: 200, Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, testLabels(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if first.ID == "" {
		t.Error("Execute() with a store should return an ID")
	}

	second, err := r.Execute(ctx, testLabels(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from the rendered one")
	}
	if first.Stats.Placement != second.Stats.Placement {
		t.Errorf("cached stats differ: %+v vs %+v", first.Stats.Placement, second.Stats.Placement)
	}
	if first.ID == second.ID {
		t.Error("each run should be recorded separately")
	}

	recs, err := r.Store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("List() = %d records, want 2", len(recs))
	}
}

func TestRunnerRefreshSkipsLayoutCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Width: 300, Height: 200}

	if _, _, _, err := r.GenerateLayoutWithCacheInfo(ctx, testLabels(), opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	_, _, hit, err := r.GenerateLayoutWithCacheInfo(ctx, testLabels(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Refresh should bypass the layout cache")
	}
}

func TestRunnerOptionsChangeCacheKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, _, _, err := r.GenerateLayoutWithCacheInfo(ctx, testLabels(), Options{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	_, _, hit, err := r.GenerateLayoutWithCacheInfo(ctx, testLabels(), Options{Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("a different seed must not hit the cache")
	}
}

func TestRunnerSaveWithoutStore(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	id, err := r.Save(context.Background(), testLabels(), render.Layout{}, cloud.Stats{}, Options{})
	if err != nil || id != "" {
		t.Errorf("Save() without store = (%q, %v), want empty ID and nil", id, err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	renders int
	saves   int
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *recordingHooks) OnSave(context.Context, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
}

func TestRunnerCallsPipelineHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, testLabels(), Options{Width: 200, Height: 200}); err != nil {
			t.Fatal(err)
		}
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.layouts != 1 || hooks.renders != 1 {
		t.Errorf("layouts=%d renders=%d, want 1 each (second run cached)", hooks.layouts, hooks.renders)
	}
	if hooks.saves != 2 {
		t.Errorf("saves = %d, want 2", hooks.saves)
	}
}
