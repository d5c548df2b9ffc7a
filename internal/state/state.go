package state

import (
	"context"
	"time"

	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/assets"
	"github.com/kk-code-lab/tocview/internal/toc"
)

// Mode selects the top-level screen.
type Mode int

const (
	ModeSplash Mode = iota
	ModeBrowse
)

// Focus names the pane that receives cursor keys.
type Focus int

const (
	FocusTree Focus = iota
	FocusContents
	FocusResults
	FocusSearch
)

// Layout rows shared by the reducer and the renderer.
const (
	HeaderRows = 2 // breadcrumb line, search line
	FooterRows = 1 // status line
)

// YankFlashPeriod is how long the status line flashes after a yank.
const YankFlashPeriod = 100 * time.Millisecond

// Backend is the archive index server.
type Backend interface {
	LoadTOC(ctx context.Context, tocPath string) (*toc.TOC, error)
	SearchAssets(ctx context.Context, needle string) ([]api.SearchResult, error)
	ModelURL(index int) string
}

// DetailsSource memoizes asset extraction. *assets.Cache satisfies it.
type DetailsSource interface {
	Get(index int) (api.AssetInfo, bool)
	Request(ctx context.Context, index int) <-chan assets.Result
}

// PrefsWriter persists user preferences. *prefs.Store satisfies it.
type PrefsWriter interface {
	SetTOCPath(tocPath string) error
	SetLocale(locale string) error
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	Mode            Mode
	Focus           Focus
	prevFocus       Focus
	SettingsVisible bool
	Locale          string

	// Load splash
	TOCPathInput    string
	TOCLoadInFlight bool
	TOCLoadEpoch    int // bumped on every loadToc dispatch
	TOCLoadError    string

	// Loaded index; replaced wholesale by every successful load
	TOC     *toc.TOC
	TOCPath string

	// Navigation
	Entry      toc.EntryInfo
	Browser    Browser
	Tree       *TreeWidget
	TreeCursor int
	TreeScroll int

	// Search
	SearchQuery    string
	SearchInFlight bool
	SearchEpoch    int // bumped on every searchAssets dispatch
	SearchDone     bool
	SearchError    string
	SearchResults  []api.SearchResult
	SearchSelected int // -1 when nothing is selected
	ResultsCursor  int
	SearchScroll   int

	// Details
	Details      DetailsPanel
	DetailsEpoch int // bumped on every requestDetails

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	ViewerAvailable    bool
	LastYankTime       time.Time
	StatusMessage      string

	// Error state
	LastError error

	dispatchAction func(Action)
}

// NewAppState returns the state shown before any TOC is loaded.
func NewAppState(tocPath, locale string) *AppState {
	return &AppState{
		Mode:           ModeSplash,
		Focus:          FocusContents,
		Locale:         locale,
		TOCPathInput:   tocPath,
		SearchSelected: -1,
	}
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// Loaded reports whether a TOC is available.
func (s *AppState) Loaded() bool {
	return s.TOC != nil
}

// SelectedResult returns the selected search result.
func (s *AppState) SelectedResult() (api.SearchResult, bool) {
	if s.SearchSelected < 0 || s.SearchSelected >= len(s.SearchResults) {
		return api.SearchResult{}, false
	}
	return s.SearchResults[s.SearchSelected], true
}

// YankText returns what `y` copies: the selected result's asset id in the
// results pane, otherwise the current path.
func (s *AppState) YankText() string {
	if s.Focus == FocusResults {
		if res, ok := s.SelectedResult(); ok {
			return res.ID
		}
	}
	return s.Entry.Path
}

// YankFlashing reports whether a yank happened within YankFlashPeriod of now.
func (s *AppState) YankFlashing(now time.Time) bool {
	if s.LastYankTime.IsZero() {
		return false
	}
	return now.Sub(s.LastYankTime) < YankFlashPeriod
}

// BodyRows is the height of the pane area between header and footer.
func (s *AppState) BodyRows() int {
	rows := s.ScreenHeight - HeaderRows - FooterRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ResultsRows is the number of result rows visible under the results header.
func (s *AppState) ResultsRows() int {
	rows := s.BodyRows()/2 - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// PaneRows returns the number of list rows of a pane.
func (s *AppState) PaneRows(f Focus) int {
	if f == FocusResults {
		return s.ResultsRows()
	}
	rows := s.BodyRows() - 1 // pane title
	if rows < 1 {
		rows = 1
	}
	return rows
}

// PrefsError reports a preferences write that failed. The change it
// belonged to still applies in memory.
type PrefsError struct {
	Field string
	Err   error
}

func (e *PrefsError) Error() string {
	return "save " + e.Field + ": " + e.Err.Error()
}

func (e *PrefsError) Unwrap() error { return e.Err }
