package state

import (
	"strings"

	"github.com/kk-code-lab/tocview/internal/toc"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// triggerLoad dispatches loadToc for the splash input and records the path
// in the preferences.
func (r *StateReducer) triggerLoad(state *AppState) error {
	tocPath := state.TOCPathInput

	state.TOCLoadEpoch++
	epoch := state.TOCLoadEpoch
	state.TOCLoadInFlight = true
	state.TOCLoadError = ""

	var prefsErr error
	if r.prefs != nil {
		if err := r.prefs.SetTOCPath(tocPath); err != nil {
			prefsErr = &PrefsError{Field: "toc_path", Err: err}
		}
	}

	if r.backend == nil {
		state.TOCLoadInFlight = false
		state.TOCLoadError = "no server configured"
		return prefsErr
	}

	backend := r.backend
	ctx := r.ctx
	r.run(state, func() Action {
		loaded, err := backend.LoadTOC(ctx, tocPath)
		return TOCLoadedAction{Epoch: epoch, Path: tocPath, TOC: loaded, Err: err}
	})
	return prefsErr
}

func (r *StateReducer) completeLoad(state *AppState, a TOCLoadedAction) {
	if a.Epoch != state.TOCLoadEpoch {
		r.log.Debug("stale load discarded",
			zap.Int("epoch", a.Epoch),
			zap.Int("current", state.TOCLoadEpoch),
			zap.String("path", a.Path))
		return
	}

	state.TOCLoadInFlight = false
	if a.Err != nil {
		state.TOCLoadError = a.Err.Error()
		r.log.Info("load failed", zap.String("path", a.Path), zap.Error(a.Err))
		return
	}
	if a.TOC == nil {
		state.TOCLoadError = "server returned no toc"
		return
	}

	r.replaceTOC(state, a.Path, a.TOC)
	r.log.Info("toc loaded",
		zap.String("path", a.Path),
		zap.Int("archives", a.TOC.ArchiveCount),
		zap.Int("assets", a.TOC.AssetCount))
}

// replaceTOC installs t wholesale. Everything derived from the previous tree
// is dropped and the browser returns home.
func (r *StateReducer) replaceTOC(state *AppState, tocPath string, t *toc.TOC) {
	state.TOC = t
	state.TOCPath = tocPath
	state.Tree = BuildTree(t)
	state.TreeCursor = 0
	state.TreeScroll = 0
	state.Browser = Browser{}

	state.SearchEpoch++
	state.SearchInFlight = false
	state.SearchDone = false
	state.SearchError = ""
	state.SearchResults = nil
	state.SearchSelected = -1
	state.SearchScroll = 0
	state.resetDetails()

	state.Mode = ModeBrowse
	state.Focus = FocusContents
	r.navigate(state, "")
}

// navigate resolves path and refreshes the listing, the tree highlight and,
// for files, the search box.
func (r *StateReducer) navigate(state *AppState, path string) {
	if state.TOC == nil {
		return
	}
	path = norm.NFC.String(strings.Trim(path, toc.Separator))

	info := toc.Resolve(state.TOC, path)
	state.Entry = info
	state.Browser.Show(info)
	state.Browser.Scroll = ensureVisible(state.Browser.Cursor, state.Browser.Scroll, state.PaneRows(FocusContents))

	state.Tree.Sync(info)
	if row, ok := state.Tree.HighlightedRow(); ok {
		state.TreeCursor = row
		state.TreeScroll = ensureVisible(row, state.TreeScroll, state.PaneRows(FocusTree))
	}

	if !info.Resolved {
		r.log.Debug("path did not resolve", zap.String("path", path), zap.Int("depth", info.Depth))
	}

	if info.IsFile {
		state.SearchQuery = info.AssetID
		r.triggerSearch(state)
	}
}
