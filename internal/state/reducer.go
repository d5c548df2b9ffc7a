package state

import (
	"context"
	"fmt"

	"github.com/kk-code-lab/tocview/internal/i18n"
	"github.com/kk-code-lab/tocview/internal/logging"
	"go.uber.org/zap"
)

// ===== REDUCER =====

// Services are the collaborators the reducer starts requests against.
type Services struct {
	Backend Backend
	Assets  DetailsSource
	Prefs   PrefsWriter
}

// StateReducer applies actions to state
type StateReducer struct {
	ctx     context.Context
	backend Backend
	assets  DetailsSource
	prefs   PrefsWriter
	log     *zap.Logger
}

// NewStateReducer creates a new reducer. Requests it starts run under ctx.
func NewStateReducer(ctx context.Context, svc Services) *StateReducer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &StateReducer{
		ctx:     ctx,
		backend: svc.Backend,
		assets:  svc.Assets,
		prefs:   svc.Prefs,
		log:     logging.Named("state"),
	}
}

// run executes job on its own goroutine and dispatches the resulting action.
// Without a dispatch hook the job runs inline and its action is reduced
// immediately.
func (r *StateReducer) run(state *AppState, job func() Action) {
	dispatch := state.getDispatch()
	if dispatch == nil {
		if _, err := r.Reduce(state, job()); err != nil {
			state.LastError = err
		}
		return
	}
	go func() {
		dispatch(job())
	}()
}

// Reduce applies an action to state. All mutation happens here, on the
// caller's goroutine.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== TEXT INPUT =====

	case InputCharAction:
		if a.Char < ' ' {
			return state, nil
		}
		switch {
		case state.Mode == ModeSplash:
			state.TOCPathInput += string(a.Char)
		case state.Focus == FocusSearch:
			state.SearchQuery += string(a.Char)
		}
		return state, nil

	case InputBackspaceAction:
		switch {
		case state.Mode == ModeSplash:
			state.TOCPathInput = dropLastRune(state.TOCPathInput)
		case state.Focus == FocusSearch:
			state.SearchQuery = dropLastRune(state.SearchQuery)
		}
		return state, nil

	case InputResetAction:
		switch {
		case state.Mode == ModeSplash:
			state.TOCPathInput = ""
		case state.Focus == FocusSearch:
			state.SearchQuery = ""
		}
		return state, nil

	case InputSubmitAction:
		if state.Mode == ModeSplash {
			return state, r.triggerLoad(state)
		}
		if state.Focus == FocusSearch {
			r.triggerSearch(state)
			state.Focus = FocusResults
		}
		return state, nil

	// ===== LOAD =====

	case OpenSplashAction:
		state.Mode = ModeSplash
		state.SettingsVisible = false
		if state.TOCPath != "" {
			state.TOCPathInput = state.TOCPath
		}
		return state, nil

	case CloseSplashAction:
		if state.Loaded() {
			state.Mode = ModeBrowse
		}
		return state, nil

	case TOCLoadedAction:
		r.completeLoad(state, a)
		return state, nil

	// ===== NAVIGATION =====

	case NavigateToAction:
		r.navigate(state, a.Path)
		return state, nil

	case NavigateParentAction:
		if path, ok := state.Browser.ParentPath(); ok {
			r.navigate(state, path)
		}
		return state, nil

	case CursorUpAction:
		state.moveCursor(moveUp)
		return state, nil
	case CursorDownAction:
		state.moveCursor(moveDown)
		return state, nil
	case CursorPageUpAction:
		state.moveCursor(movePageUp)
		return state, nil
	case CursorPageDownAction:
		state.moveCursor(movePageDown)
		return state, nil
	case CursorHomeAction:
		state.moveCursor(moveHome)
		return state, nil
	case CursorEndAction:
		state.moveCursor(moveEnd)
		return state, nil

	case ActivateAction:
		r.activate(state)
		return state, nil

	case ToggleCollapseAction:
		if state.Focus != FocusTree {
			return state, nil
		}
		rows := state.Tree.Rows()
		if state.TreeCursor < 0 || state.TreeCursor >= len(rows) {
			return state, nil
		}
		item := rows[state.TreeCursor].Item
		if item.IsDir && !item.Home {
			item.Collapsed = !item.Collapsed
		}
		return state, nil

	case MouseSelectAction:
		r.mouseSelect(state, a)
		return state, nil

	// ===== FOCUS =====

	case FocusNextAction:
		state.Focus = cycleFocus(state.Focus, 1)
		return state, nil

	case FocusPrevAction:
		state.Focus = cycleFocus(state.Focus, -1)
		return state, nil

	case FocusSearchAction:
		if state.Focus != FocusSearch {
			state.prevFocus = state.Focus
			state.Focus = FocusSearch
		}
		return state, nil

	case FocusBlurAction:
		if state.Focus == FocusSearch {
			state.Focus = state.prevFocus
		}
		return state, nil

	// ===== SEARCH =====

	case SearchResultsAction:
		r.completeSearch(state, a)
		return state, nil

	case SelectResultAction:
		state.Focus = FocusResults
		r.selectResult(state, a.Index)
		return state, nil

	// ===== DETAILS =====

	case DetailsResultAction:
		r.completeDetails(state, a)
		return state, nil

	// ===== SETTINGS =====

	case SettingsToggleAction:
		state.SettingsVisible = !state.SettingsVisible
		return state, nil

	case SettingsHideAction:
		state.SettingsVisible = false
		return state, nil

	case CycleLocaleAction:
		if !state.SettingsVisible {
			return state, nil
		}
		state.Locale = i18n.Cycle(state.Locale, a.Delta)
		if r.prefs != nil {
			if err := r.prefs.SetLocale(state.Locale); err != nil {
				return state, &PrefsError{Field: "locale", Err: err}
			}
		}
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.TreeScroll = ensureVisible(state.TreeCursor, state.TreeScroll, state.PaneRows(FocusTree))
		state.Browser.Scroll = ensureVisible(state.Browser.Cursor, state.Browser.Scroll, state.PaneRows(FocusContents))
		state.SearchScroll = ensureVisible(state.ResultsCursor, state.SearchScroll, state.PaneRows(FocusResults))
		return state, nil

	case StatusAction:
		state.StatusMessage = a.Message
		return state, nil

	// Side effects owned by the application shell.
	case YankAction, OpenViewerAction, QuitAction, SuspendAction:
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

func (r *StateReducer) activate(state *AppState) {
	switch state.Focus {
	case FocusTree:
		rows := state.Tree.Rows()
		if state.TreeCursor >= 0 && state.TreeCursor < len(rows) {
			r.navigate(state, rows[state.TreeCursor].Item.Path)
		}
	case FocusContents:
		if item, ok := state.Browser.CurrentItem(); ok {
			r.navigate(state, item.Path)
		}
	case FocusResults:
		r.selectResult(state, state.ResultsCursor)
	}
}

func (r *StateReducer) mouseSelect(state *AppState, a MouseSelectAction) {
	switch a.Pane {
	case FocusTree:
		if a.Row < 0 || a.Row >= len(state.Tree.Rows()) {
			return
		}
		state.Focus = FocusTree
		state.TreeCursor = a.Row
		r.activate(state)
	case FocusContents:
		if a.Row < 0 || a.Row >= len(state.Browser.Items) {
			return
		}
		state.Focus = FocusContents
		state.Browser.Cursor = a.Row
		r.activate(state)
	case FocusResults:
		if a.Row < 0 || a.Row >= len(state.SearchResults) {
			return
		}
		state.Focus = FocusResults
		r.selectResult(state, a.Row)
	}
}

var focusOrder = []Focus{FocusTree, FocusContents, FocusResults}

func cycleFocus(current Focus, delta int) Focus {
	idx := 0
	for i, f := range focusOrder {
		if f == current {
			idx = i
			break
		}
	}
	n := len(focusOrder)
	return focusOrder[((idx+delta)%n+n)%n]
}

type cursorMove int

const (
	moveUp cursorMove = iota
	moveDown
	movePageUp
	movePageDown
	moveHome
	moveEnd
)

func applyMove(m cursorMove, cursor, count, page int) int {
	if count <= 0 {
		return 0
	}
	switch m {
	case moveUp:
		cursor--
	case moveDown:
		cursor++
	case movePageUp:
		cursor -= page
	case movePageDown:
		cursor += page
	case moveHome:
		cursor = 0
	case moveEnd:
		cursor = count - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > count-1 {
		cursor = count - 1
	}
	return cursor
}

func (s *AppState) moveCursor(m cursorMove) {
	switch s.Focus {
	case FocusTree:
		page := s.PaneRows(FocusTree)
		s.TreeCursor = applyMove(m, s.TreeCursor, len(s.Tree.Rows()), page)
		s.TreeScroll = ensureVisible(s.TreeCursor, s.TreeScroll, page)
	case FocusContents:
		page := s.PaneRows(FocusContents)
		s.Browser.Cursor = applyMove(m, s.Browser.Cursor, len(s.Browser.Items), page)
		s.Browser.Scroll = ensureVisible(s.Browser.Cursor, s.Browser.Scroll, page)
	case FocusResults:
		page := s.PaneRows(FocusResults)
		s.ResultsCursor = applyMove(m, s.ResultsCursor, len(s.SearchResults), page)
		s.SearchScroll = ensureVisible(s.ResultsCursor, s.SearchScroll, page)
	}
}

// ensureVisible returns the scroll offset that keeps cursor inside a window
// of rows lines.
func ensureVisible(cursor, scroll, rows int) int {
	if rows < 1 {
		rows = 1
	}
	if cursor < scroll {
		scroll = cursor
	}
	if cursor >= scroll+rows {
		scroll = cursor - rows + 1
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
