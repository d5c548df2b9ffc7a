package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) {
	ih.actionChan <- action
}

// processKeyEvent dispatches by screen: settings overlay, splash, search box,
// then the browser panes.
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.emit(statepkg.QuitAction{})
		return false
	}

	switch {
	case ih.state == nil:
		return true
	case ih.state.SettingsVisible:
		ih.processSettingsKey(ev)
	case ih.state.Mode == statepkg.ModeSplash:
		ih.processSplashKey(ev)
	case ih.state.Focus == statepkg.FocusSearch:
		ih.processSearchKey(ev)
	default:
		return ih.processBrowseKey(ev)
	}
	return true
}

// processTextKey handles the keys shared by the splash input and the search
// box. It reports whether the key was consumed.
func (ih *InputHandler) processTextKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		ih.emit(statepkg.InputSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.InputBackspaceAction{})
	case tcell.KeyCtrlU:
		ih.emit(statepkg.InputResetAction{})
	case tcell.KeyRune:
		r := ev.Rune()
		if !unicode.IsPrint(r) {
			return true
		}
		ih.emit(statepkg.InputCharAction{Char: r})
	default:
		return false
	}
	return true
}

func (ih *InputHandler) processSplashKey(ev *tcell.EventKey) {
	if ih.processTextKey(ev) {
		return
	}
	if ev.Key() != tcell.KeyEscape {
		return
	}
	// Esc goes back to a loaded TOC; before the first load it opens settings.
	if ih.state.Loaded() {
		ih.emit(statepkg.CloseSplashAction{})
	} else {
		ih.emit(statepkg.SettingsToggleAction{})
	}
}

func (ih *InputHandler) processSettingsKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		ih.emit(statepkg.SettingsHideAction{})
	case tcell.KeyLeft:
		ih.emit(statepkg.CycleLocaleAction{Delta: -1})
	case tcell.KeyRight:
		ih.emit(statepkg.CycleLocaleAction{Delta: 1})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			ih.emit(statepkg.CycleLocaleAction{Delta: -1})
		case 'l':
			ih.emit(statepkg.CycleLocaleAction{Delta: 1})
		case 'q':
			ih.emit(statepkg.SettingsHideAction{})
		}
	}
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) {
	if ih.processTextKey(ev) {
		return
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.FocusBlurAction{})
	case tcell.KeyTab:
		ih.emit(statepkg.FocusBlurAction{})
		ih.emit(statepkg.FocusNextAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.FocusBlurAction{})
	}
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.emit(statepkg.CursorUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.CursorDownAction{})
	case tcell.KeyPgUp:
		ih.emit(statepkg.CursorPageUpAction{})
	case tcell.KeyPgDn:
		ih.emit(statepkg.CursorPageDownAction{})
	case tcell.KeyHome:
		ih.emit(statepkg.CursorHomeAction{})
	case tcell.KeyEnd:
		ih.emit(statepkg.CursorEndAction{})
	case tcell.KeyEnter, tcell.KeyRight:
		ih.emit(statepkg.ActivateAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		ih.emit(statepkg.NavigateParentAction{})
	case tcell.KeyTab:
		ih.emit(statepkg.FocusNextAction{})
	case tcell.KeyBacktab:
		ih.emit(statepkg.FocusPrevAction{})
	case tcell.KeyEscape:
		ih.emit(statepkg.SettingsToggleAction{})
	case tcell.KeyCtrlO:
		ih.emit(statepkg.OpenSplashAction{})
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
	case tcell.KeyRune:
		return ih.processBrowseRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processBrowseRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.emit(statepkg.QuitAction{})
		return false
	case '/':
		ih.emit(statepkg.FocusSearchAction{})
	case ' ':
		ih.emit(statepkg.ToggleCollapseAction{})
	case 'y':
		ih.emit(statepkg.YankAction{})
	case 'v':
		ih.emit(statepkg.OpenViewerAction{})
	case 'j':
		ih.emit(statepkg.CursorDownAction{})
	case 'k':
		ih.emit(statepkg.CursorUpAction{})
	case 'g':
		ih.emit(statepkg.CursorHomeAction{})
	case 'G':
		ih.emit(statepkg.CursorEndAction{})
	case 'l':
		ih.emit(statepkg.ActivateAction{})
	case 'h':
		ih.emit(statepkg.NavigateParentAction{})
	}
	return true
}
