package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/assets"
	"github.com/kk-code-lab/tocview/internal/toc"
)

// sampleTOC is the tree used across reducer tests:
//
//	a/
//	  deep/
//	    x.model  (aid3, [5])
//	  b.txt      (aid1, [0])
//	z/
//	c.txt        (aid2, [1, 2])
func sampleTOC() *toc.TOC {
	return toc.New(2, 4, toc.NewDirectory(map[string]*toc.Node{
		"c.txt": toc.NewFile("aid2", 1, 2),
		"z":     toc.NewDirectory(nil),
		"a": toc.NewDirectory(map[string]*toc.Node{
			"b.txt": toc.NewFile("aid1", 0),
			"deep": toc.NewDirectory(map[string]*toc.Node{
				"x.model": toc.NewFile("aid3", 5),
			}),
		}),
	}))
}

type fakeBackend struct {
	mu          sync.Mutex
	tocs        map[string]*toc.TOC
	results     map[string][]api.SearchResult
	searchErr   error
	loadCalls   []string
	searchCalls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tocs:    map[string]*toc.TOC{"toc": sampleTOC()},
		results: map[string][]api.SearchResult{},
	}
}

func (f *fakeBackend) LoadTOC(ctx context.Context, tocPath string) (*toc.TOC, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls = append(f.loadCalls, tocPath)
	t, ok := f.tocs[tocPath]
	if !ok {
		return nil, &api.Error{Endpoint: "load_toc", Message: "no such toc"}
	}
	return t, nil
}

func (f *fakeBackend) SearchAssets(ctx context.Context, needle string) ([]api.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, needle)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[needle], nil
}

func (f *fakeBackend) ModelURL(index int) string {
	return fmt.Sprintf("http://localhost:8000/api/model?index=%d", index)
}

func (f *fakeBackend) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func (f *fakeBackend) needles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

type fakePrefs struct {
	tocPaths []string
	locales  []string
	err      error
}

func (p *fakePrefs) SetTOCPath(tocPath string) error {
	p.tocPaths = append(p.tocPaths, tocPath)
	return p.err
}

func (p *fakePrefs) SetLocale(locale string) error {
	p.locales = append(p.locales, locale)
	return p.err
}

// countingFetcher backs a real assets.Cache.
type countingFetcher struct {
	calls atomic.Int32
	infos map[int]api.AssetInfo
	fail  atomic.Bool
}

func (f *countingFetcher) fetch(ctx context.Context, index int) (api.AssetInfo, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return api.AssetInfo{}, errors.New("extract failed")
	}
	info, ok := f.infos[index]
	if !ok {
		return api.AssetInfo{}, &api.Error{Endpoint: "extract_asset", Message: "bad index"}
	}
	return info, nil
}

type fixture struct {
	state    *AppState
	reducer  *StateReducer
	backend  *fakeBackend
	prefs    *fakePrefs
	fetcher  *countingFetcher
	cache    *assets.Cache
	captured chan Action
}

// newFixture returns a state with sampleTOC loaded and requests running
// inline.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend: newFakeBackend(),
		prefs:   &fakePrefs{},
		fetcher: &countingFetcher{infos: map[int]api.AssetInfo{
			0: {Type: "Texture", Magic: "0x5C4580B9", Sections: 2},
			1: {Type: "Model", Magic: "0x98906B9F", Sections: 12},
			2: {Type: "Model", Magic: "0x98906B9F", Sections: 12},
			5: {Type: "Model", Magic: "0x98906B9F", Sections: 7},
		}},
	}
	f.cache = assets.New(f.fetcher.fetch, assets.PolicySingleFlight)
	f.reducer = NewStateReducer(context.Background(), Services{
		Backend: f.backend,
		Assets:  f.cache,
		Prefs:   f.prefs,
	})
	f.state = NewAppState("toc", "en")
	f.state.ScreenWidth = 120
	f.state.ScreenHeight = 40

	f.reduce(t, InputSubmitAction{})
	if !f.state.Loaded() {
		t.Fatalf("fixture TOC did not load: %q", f.state.TOCLoadError)
	}
	return f
}

// captureDispatch makes requests asynchronous; their completions are
// collected instead of being reduced.
func (f *fixture) captureDispatch() {
	f.captured = make(chan Action, 16)
	f.state.SetDispatch(func(a Action) { f.captured <- a })
}

func (f *fixture) next(t *testing.T) Action {
	t.Helper()
	select {
	case a := <-f.captured:
		return a
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
		return nil
	}
}

func (f *fixture) reduce(t *testing.T, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := f.reducer.Reduce(f.state, a); err != nil {
			t.Fatalf("Reduce(%T): %v", a, err)
		}
	}
}

func (f *fixture) navigate(t *testing.T, path string) {
	t.Helper()
	f.reduce(t, NavigateToAction{Path: path})
}

func itemNames(items []ListItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}
