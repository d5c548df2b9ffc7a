package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/assets"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/toc"
)

type stubBackend struct {
	results map[string][]api.SearchResult
}

func (b *stubBackend) LoadTOC(ctx context.Context, tocPath string) (*toc.TOC, error) {
	if tocPath != "toc" {
		return nil, &api.Error{Endpoint: "load_toc", Message: "no such toc"}
	}
	return toc.New(2, 4, toc.NewDirectory(map[string]*toc.Node{
		"c.txt": toc.NewFile("aid2", 1, 2),
		"z":     toc.NewDirectory(nil),
		"a": toc.NewDirectory(map[string]*toc.Node{
			"b.txt": toc.NewFile("aid1", 0),
			"deep": toc.NewDirectory(map[string]*toc.Node{
				"x.model": toc.NewFile("aid3", 5),
			}),
		}),
	})), nil
}

func (b *stubBackend) SearchAssets(ctx context.Context, needle string) ([]api.SearchResult, error) {
	return b.results[needle], nil
}

func (b *stubBackend) ModelURL(index int) string {
	return fmt.Sprintf("http://localhost:8000/api/model?index=%d", index)
}

type harness struct {
	t        *testing.T
	screen   tcell.SimulationScreen
	renderer *Renderer
	reducer  *statepkg.StateReducer
	backend  *stubBackend
	state    *statepkg.AppState
}

func newHarness(t *testing.T, w, h int) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	backend := &stubBackend{results: map[string][]api.SearchResult{}}
	cache := assets.New(func(ctx context.Context, index int) (api.AssetInfo, error) {
		if index == 5 {
			return api.AssetInfo{Type: "Model", Magic: "0x98906B9F", Sections: 1200}, nil
		}
		return api.AssetInfo{Type: "Texture", Magic: "0x5C4580B9", Sections: 2}, nil
	}, assets.PolicySingleFlight)

	state := statepkg.NewAppState("toc", "en")
	state.ScreenWidth = w
	state.ScreenHeight = h
	return &harness{
		t:        t,
		screen:   screen,
		renderer: NewRenderer(screen),
		reducer:  statepkg.NewStateReducer(context.Background(), statepkg.Services{Backend: backend, Assets: cache}),
		backend:  backend,
		state:    state,
	}
}

func (h *harness) reduce(actions ...statepkg.Action) {
	h.t.Helper()
	for _, a := range actions {
		if _, err := h.reducer.Reduce(h.state, a); err != nil {
			h.t.Fatalf("Reduce(%T): %v", a, err)
		}
	}
}

func (h *harness) load() {
	h.t.Helper()
	h.reduce(statepkg.InputSubmitAction{})
	if !h.state.Loaded() {
		h.t.Fatalf("load failed: %s", h.state.TOCLoadError)
	}
}

func (h *harness) search(needle string, results ...api.SearchResult) {
	h.t.Helper()
	h.backend.results[needle] = results
	h.reduce(statepkg.FocusSearchAction{}, statepkg.InputResetAction{})
	for _, r := range needle {
		h.reduce(statepkg.InputCharAction{Char: r})
	}
	h.reduce(statepkg.InputSubmitAction{})
}

// lines renders the state and returns the screen as text rows.
func (h *harness) lines() []string {
	h.t.Helper()
	h.renderer.Render(h.state)
	cells, w, height := h.screen.GetContents()
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(string(c.Runes))
		}
		rows[y] = b.String()
	}
	return rows
}

func (h *harness) text() string {
	return strings.Join(h.lines(), "\n")
}

func assertContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Fatalf("expected screen to contain %q:\n%s", want, text)
		}
	}
}

func TestRenderSplash(t *testing.T) {
	h := newHarness(t, 80, 20)
	h.state.TOCPathInput = "/data/game.toc"

	assertContains(t, h.text(), "tocview", "TOC path:", "/data/game.toc", "Enter to load")
}

func TestRenderSplashShowsLoadError(t *testing.T) {
	h := newHarness(t, 80, 20)
	h.state.TOCPathInput = "missing"
	h.reduce(statepkg.InputSubmitAction{})

	assertContains(t, h.text(), "Load failed: no such toc")
}

func TestRenderBrowserPanes(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()

	text := h.text()
	assertContains(t, text, "Tree", "Contents", "Results", "Details", "home", "c.txt", "[2]", "2 archives, 4 assets")
}

func TestRenderBreadcrumbsAndLayout(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.reduce(statepkg.NavigateToAction{Path: "a/deep"})

	header := h.lines()[0]
	if !strings.HasPrefix(header, "tocview home › a › deep") {
		t.Fatalf("header = %q", header)
	}

	layout := h.renderer.LastLayout()
	if len(layout.Crumbs) != 3 {
		t.Fatalf("expected 3 crumb spans, got %+v", layout.Crumbs)
	}
	aSpan := layout.Crumbs[1]
	if path, ok := layout.CrumbAt(aSpan.Start, 0); !ok || path != "a" {
		t.Fatalf("CrumbAt(a) = %q, %v", path, ok)
	}
	if _, ok := layout.CrumbAt(aSpan.End, 0); ok {
		t.Fatal("separator should not hit a crumb")
	}
	if _, ok := layout.CrumbAt(aSpan.Start, 1); ok {
		t.Fatal("only the header row holds crumbs")
	}
}

func TestRenderHeaderShowsFileName(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.reduce(statepkg.NavigateToAction{Path: "a/b.txt"})

	header := h.lines()[0]
	if !strings.Contains(header, "home › a › b.txt") {
		t.Fatalf("header = %q", header)
	}
	if got := len(h.renderer.LastLayout().Crumbs); got != 2 {
		t.Fatalf("file name must not be clickable, got %d spans", got)
	}
}

func TestLayoutRowAtMapsContentsRows(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.lines()

	layout := h.renderer.LastLayout()
	var contents PaneArea
	found := false
	for _, p := range layout.Panes {
		if p.Pane == statepkg.FocusContents {
			contents, found = p, true
		}
	}
	if !found {
		t.Fatal("contents pane not recorded")
	}

	pane, row, ok := layout.RowAt(contents.List.X+2, contents.List.Y+1)
	if !ok || pane != statepkg.FocusContents || row != 1 {
		t.Fatalf("RowAt = %v, %d, %v", pane, row, ok)
	}
	if _, _, ok := layout.RowAt(contents.List.X+2, 1); ok {
		t.Fatal("search line must not map to a pane row")
	}
}

func TestRenderResultsStates(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()

	h.search("nothing")
	assertContains(t, h.text(), "No results found")

	h.search("tex",
		api.SearchResult{ID: "tex", Index: 0, Archive: "textures.arc", Size: 2048},
		api.SearchResult{ID: "tex", Index: 7, Archive: "extra.arc", Size: 512},
	)
	assertContains(t, h.text(), "2 results found:", "textures.arc", "2.0 KiB", "512 B")
}

func TestRenderDetailsForModel(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.search("aid3", api.SearchResult{ID: "aid3", Index: 5, Archive: "models.arc", Size: 1 << 20})
	h.reduce(statepkg.SelectResultAction{Index: 0})

	assertContains(t, h.text(), "Model", "0x98906B9F", "1,200", "1.0 MiB", "v: open in viewer")
}

func TestDetailsLines(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()

	lines := detailsLines(h.state, h.renderer.tr)
	if len(lines) != 2 || lines[0].value != "2 archives, 4 assets" || lines[1].value != "toc" {
		t.Fatalf("summary lines = %+v", lines)
	}

	h.search("tex", api.SearchResult{ID: "tex", Index: 0, Size: 10})
	h.reduce(statepkg.SelectResultAction{Index: 0})
	lines = detailsLines(h.state, h.renderer.tr)
	for _, l := range lines {
		if l.kind == lineAction {
			t.Fatal("textures must not offer the viewer")
		}
	}

	h.state.Details.Loaded = false
	h.state.Details.Err = "bad index"
	lines = detailsLines(h.state, h.renderer.tr)
	last := lines[len(lines)-1]
	if last.kind != lineError || last.value != "Extract failed: bad index" {
		t.Fatalf("error line = %+v", last)
	}
}

func TestRenderLocalized(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.state.Locale = "ru"

	assertContains(t, h.text(), "Дерево", "Содержимое", "домой", "архивов: 2, ассетов: 4")
}

func TestRenderSettingsOverlay(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.reduce(statepkg.SettingsToggleAction{})

	assertContains(t, h.text(), "Settings", "Language", "English")
}

func TestRenderStatusMessage(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.reduce(statepkg.StatusAction{Message: "Copied a/b.txt"})

	rows := h.lines()
	if !strings.Contains(rows[len(rows)-1], "Copied a/b.txt") {
		t.Fatalf("status line = %q", rows[len(rows)-1])
	}
}

func TestRenderSettingsOverlayOnSplash(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.reduce(statepkg.SettingsToggleAction{}, statepkg.CycleLocaleAction{Delta: 1})

	if h.state.Mode != statepkg.ModeSplash {
		t.Fatalf("expected splash, got %v", h.state.Mode)
	}
	assertContains(t, h.text(), "Язык", "русский")
}

func TestRenderPrefsErrorIsLocalized(t *testing.T) {
	h := newHarness(t, 120, 30)
	h.load()
	h.state.Locale = "ru"
	h.state.LastError = &statepkg.PrefsError{Field: "locale", Err: errors.New("read-only file system")}

	rows := h.lines()
	want := "Не удалось сохранить настройки: read-only file system"
	if !strings.Contains(rows[len(rows)-1], want) {
		t.Fatalf("status line = %q, want %q", rows[len(rows)-1], want)
	}

	h.reduce(statepkg.OpenSplashAction{})
	assertContains(t, h.text(), want)
}

func TestRenderTinyScreenDoesNotPanic(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {10, 3}, {40, 6}, {70, 10}} {
		h := newHarness(t, size[0], size[1])
		h.lines()
		h.load()
		h.reduce(statepkg.SettingsToggleAction{})
		h.lines()
	}
}

func TestFitCrumbs(t *testing.T) {
	labels := []string{"home", "models", "characters", "hero"}
	tests := []struct {
		width int
		want  int
	}{
		{80, 0},
		{30, 1},
		{10, 3},
	}
	for _, tt := range tests {
		if got := fitCrumbs(labels, "", tt.width); got != tt.want {
			t.Fatalf("fitCrumbs(width=%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestVisibleStart(t *testing.T) {
	tests := []struct {
		cursor, scroll, rows, count, want int
	}{
		{0, 0, 5, 10, 0},
		{7, 0, 5, 10, 3},
		{2, 6, 5, 10, 2},
		{9, 8, 5, 10, 5},
		{0, 3, 5, 2, 0},
	}
	for _, tt := range tests {
		if got := visibleStart(tt.cursor, tt.scroll, tt.rows, tt.count); got != tt.want {
			t.Fatalf("visibleStart(%d,%d,%d,%d) = %d, want %d", tt.cursor, tt.scroll, tt.rows, tt.count, got, tt.want)
		}
	}
}

func TestComputeLayoutColumns(t *testing.T) {
	state := statepkg.NewAppState("", "en")
	state.ScreenWidth, state.ScreenHeight = 120, 30

	m := computeLayout(state, 120)
	if m.tree.W != 28 || m.contents.X != 29 {
		t.Fatalf("tree/contents = %+v %+v", m.tree, m.contents)
	}
	if m.results.X <= m.contents.X || m.details.Y != m.results.Y+m.results.H {
		t.Fatalf("results %+v details %+v", m.results, m.details)
	}
	if m.results.H-1 != state.PaneRows(statepkg.FocusResults) {
		t.Fatalf("results rows %d, reducer pages by %d", m.results.H-1, state.PaneRows(statepkg.FocusResults))
	}
	if m.tree.H-1 != state.PaneRows(statepkg.FocusTree) {
		t.Fatalf("tree rows %d, reducer pages by %d", m.tree.H-1, state.PaneRows(statepkg.FocusTree))
	}

	narrow := computeLayout(state, 30)
	if narrow.tree.W != 0 || narrow.details.W != 0 || narrow.results.Y <= narrow.contents.Y {
		t.Fatalf("narrow layout = %+v", narrow)
	}
}
