package state

import (
	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/toc"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== TEXT INPUT ACTIONS =====
// Applied to the splash path input or the search box, whichever is active.

type InputCharAction struct {
	Char rune
}
type InputBackspaceAction struct{}
type InputResetAction struct{}
type InputSubmitAction struct{}

// ===== LOAD ACTIONS =====

type OpenSplashAction struct{}
type CloseSplashAction struct{}

// TOCLoadedAction carries a loadToc completion.
type TOCLoadedAction struct {
	Epoch int
	Path  string
	TOC   *toc.TOC
	Err   error
}

// ===== NAVIGATION ACTIONS =====

type NavigateToAction struct {
	Path string
}
type NavigateParentAction struct{}

type CursorUpAction struct{}
type CursorDownAction struct{}
type CursorPageUpAction struct{}
type CursorPageDownAction struct{}
type CursorHomeAction struct{}
type CursorEndAction struct{}

// ActivateAction opens the row under the cursor of the focused pane.
type ActivateAction struct{}

// ToggleCollapseAction expands or collapses the tree row under the cursor.
type ToggleCollapseAction struct{}

// ===== FOCUS ACTIONS =====

type FocusNextAction struct{}
type FocusPrevAction struct{}
type FocusSearchAction struct{}
type FocusBlurAction struct{}

// MouseSelectAction moves the cursor of a pane to a row.
type MouseSelectAction struct {
	Pane Focus
	Row  int
}

// ===== SEARCH ACTIONS =====

// SearchResultsAction carries a searchAssets completion.
type SearchResultsAction struct {
	Epoch   int
	Needle  string
	Results []api.SearchResult
	Err     error
}

// SelectResultAction selects a result and requests its details.
type SelectResultAction struct {
	Index int
}

// ===== DETAILS ACTIONS =====

// DetailsResultAction carries an extraction completion.
type DetailsResultAction struct {
	Epoch  int
	Index  int
	Info   api.AssetInfo
	Err    error
	Shared bool
}

type OpenViewerAction struct{}

// ===== SETTINGS ACTIONS =====

type SettingsToggleAction struct{}
type SettingsHideAction struct{}
type CycleLocaleAction struct {
	Delta int
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type YankAction struct{}

// StatusAction shows a transient status line message.
type StatusAction struct {
	Message string
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{} // Ctrl+Z
