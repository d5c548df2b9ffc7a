package state

import (
	"testing"

	"github.com/kk-code-lab/tocview/internal/api"
)

// ===== DETAILS PANEL TESTS =====

func searchFor(t *testing.T, f *fixture, needle string, results ...api.SearchResult) {
	t.Helper()
	f.backend.results[needle] = results
	typeQuery(t, f, needle)
	f.reduce(t, InputSubmitAction{})
}

func TestDetailsSecondRequestServedFromCache(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "tex", api.SearchResult{ID: "tex", Index: 0, Archive: "a0", Size: 512})

	f.reduce(t, SelectResultAction{Index: 0})
	first := f.state.Details
	if !first.Loaded || first.Cached || first.Info.Type != "Texture" {
		t.Fatalf("unexpected first details %+v", first)
	}

	f.reduce(t, SelectResultAction{Index: 0})
	second := f.state.Details
	if !second.Cached {
		t.Fatalf("second request should come from the cache")
	}
	if second.Info != first.Info {
		t.Fatalf("cached render differs: %+v vs %+v", second.Info, first.Info)
	}
	if calls := f.fetcher.calls.Load(); calls != 1 {
		t.Fatalf("expected exactly one extraction, got %d", calls)
	}
}

func TestDetailsFailureRetries(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "tex", api.SearchResult{ID: "tex", Index: 0})
	f.fetcher.fail.Store(true)

	f.reduce(t, SelectResultAction{Index: 0})
	if f.state.Details.Err != "extract failed" || f.state.Details.Loading {
		t.Fatalf("expected inline failure, got %+v", f.state.Details)
	}
	if _, ok := f.cache.Get(0); ok {
		t.Fatal("failure must not be cached")
	}

	f.fetcher.fail.Store(false)
	f.reduce(t, SelectResultAction{Index: 0})
	if !f.state.Details.Loaded || f.state.Details.Err != "" {
		t.Fatalf("retry should succeed, got %+v", f.state.Details)
	}
	if calls := f.fetcher.calls.Load(); calls != 2 {
		t.Fatalf("expected a fresh request after failure, got %d calls", calls)
	}
}

func TestDetailsApplicationErrorIsInline(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "ghost", api.SearchResult{ID: "ghost", Index: 99})

	f.reduce(t, SelectResultAction{Index: 0})
	if f.state.Details.Err != "bad index" {
		t.Fatalf("expected server message, got %q", f.state.Details.Err)
	}
	if f.state.LastError != nil || f.state.SearchError != "" {
		t.Fatal("extraction failure must stay in the details panel")
	}
}

func TestModelDetailsOfferViewer(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "aid3", api.SearchResult{ID: "aid3", Index: 5})

	f.reduce(t, SelectResultAction{Index: 0})
	if !f.state.Details.ShowsModel() {
		t.Fatalf("model asset should offer the viewer: %+v", f.state.Details)
	}
	if want := "http://localhost:8000/api/model?index=5"; f.state.Details.ViewerURL != want {
		t.Fatalf("ViewerURL = %q, want %q", f.state.Details.ViewerURL, want)
	}

	searchFor(t, f, "tex", api.SearchResult{ID: "tex", Index: 0})
	f.reduce(t, SelectResultAction{Index: 0})
	if f.state.Details.ShowsModel() {
		t.Fatal("texture must not offer the viewer")
	}
}

func TestStaleDetailsCompletionIsDiscardedButCached(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "m",
		api.SearchResult{ID: "m1", Index: 1},
		api.SearchResult{ID: "m2", Index: 0},
	)
	f.captureDispatch()

	f.reduce(t, SelectResultAction{Index: 0}, SelectResultAction{Index: 1})
	if !f.state.Details.Loading || f.state.Details.Result.Index != 0 {
		t.Fatalf("expected pending details for index 0, got %+v", f.state.Details)
	}

	byIndex := map[int]DetailsResultAction{}
	for i := 0; i < 2; i++ {
		a := f.next(t).(DetailsResultAction)
		byIndex[a.Index] = a
	}

	f.reduce(t, byIndex[0], byIndex[1])
	if f.state.Details.Result.Index != 0 || f.state.Details.Info.Type != "Texture" {
		t.Fatalf("stale completion replaced the panel: %+v", f.state.Details)
	}
	if _, ok := f.cache.Get(1); !ok {
		t.Fatal("stale extraction should still populate the cache")
	}
}

func TestDetailsResetOnReload(t *testing.T) {
	f := newFixture(t)
	searchFor(t, f, "tex", api.SearchResult{ID: "tex", Index: 0})
	f.reduce(t, SelectResultAction{Index: 0})

	f.reduce(t, OpenSplashAction{}, InputSubmitAction{})
	if f.state.Details.HasAsset {
		t.Fatal("reload should return the details panel to the summary")
	}
	if len(f.state.SearchResults) != 0 || f.state.SearchSelected != -1 {
		t.Fatal("reload should clear search results")
	}
}
