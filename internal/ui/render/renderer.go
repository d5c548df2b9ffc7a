package render

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/textutil"
)

const (
	appTitle       = "tocview"
	crumbSeparator = " › "
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths runeWidths
	tr     *i18n.Translator
	layout Layout
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		tr:     i18n.New(""),
	}
}

// LastLayout returns the clickable regions of the last frame.
func (r *Renderer) LastLayout() Layout {
	return r.layout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.layout = Layout{}
	if state == nil {
		r.screen.Show()
		return
	}
	if r.tr.Code() != i18n.Match(state.Locale).String() {
		r.tr = i18n.New(state.Locale)
	}

	w, h := r.screen.Size()
	if state.Mode == statepkg.ModeSplash {
		r.drawSplash(state, w, h)
		if state.SettingsVisible {
			r.drawSettingsOverlay(state, w, h)
		}
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawSearchLine(state, w)

	m := computeLayout(state, w)
	r.drawTreePane(state, m.tree)
	r.drawContentsPane(state, m.contents)
	r.drawResultsPane(state, m.results)
	r.drawDetailsPane(state, m.details)
	r.drawSeparators(m)
	r.drawStatusLine(state, w, h)

	if state.SettingsVisible {
		r.drawSettingsOverlay(state, w, h)
	}
	r.screen.Show()
}

// drawHeader renders the title and the breadcrumb trail, recording each
// crumb's cells for mouse hit-testing.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	crumbStyle := headerStyle.Foreground(r.theme.DirectoryFg)
	lastStyle := crumbStyle.Bold(true)

	x := r.drawText(0, 0, w, appTitle+" ", headerStyle.Bold(true))

	crumbs := state.Browser.Crumbs
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		if c.Home {
			labels[i] = r.tr.T(i18n.Home)
		} else {
			labels[i] = textutil.Clean(c.Label)
		}
	}

	fileName := ""
	if state.Entry.IsFile {
		fileName = textutil.Clean(state.Entry.Name())
	}

	first := fitCrumbs(labels, fileName, w-x)
	if first > 0 {
		x = r.drawText(x, 0, w, textutil.Ellipsis+crumbSeparator, headerStyle)
	}
	for i := first; i < len(crumbs); i++ {
		if i > first {
			x = r.drawText(x, 0, w, crumbSeparator, headerStyle)
		}
		style := crumbStyle
		if i == len(crumbs)-1 && fileName == "" {
			style = lastStyle
		}
		start := x
		x = r.drawText(x, 0, w, labels[i], style)
		if x > start {
			r.layout.Crumbs = append(r.layout.Crumbs, CrumbSpan{Start: start, End: x, Path: crumbs[i].Path})
		}
	}
	if fileName != "" {
		x = r.drawText(x, 0, w, crumbSeparator, headerStyle)
		x = r.drawText(x, 0, w, textutil.TruncateLeft(fileName, w-x), headerStyle.Bold(true))
	}
	r.fill(x, 0, w, headerStyle)
}

// fitCrumbs returns the index of the first crumb to draw so that the trail
// and the file name fit in width. Leading crumbs are dropped first.
func fitCrumbs(labels []string, fileName string, width int) int {
	sepW := textutil.Width(crumbSeparator)
	total := 0
	for i, l := range labels {
		if i > 0 {
			total += sepW
		}
		total += textutil.Width(l)
	}
	if fileName != "" {
		total += sepW + textutil.Width(fileName)
	}

	first := 0
	prefixW := textutil.Width(textutil.Ellipsis) + sepW
	for total > width && first < len(labels)-1 {
		total -= textutil.Width(labels[first]) + sepW
		if first == 0 {
			total += prefixW
		}
		first++
	}
	return first
}

func (r *Renderer) drawSearchLine(state *statepkg.AppState, w int) {
	y := 1
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	promptStyle := base.Foreground(r.theme.MutedFg)
	if state.Focus == statepkg.FocusSearch {
		promptStyle = base.Foreground(r.theme.TitleActiveBg).Bold(true)
	}

	x := r.drawText(0, y, w, r.tr.T(i18n.SearchPrompt)+" ", promptStyle)
	x = r.drawText(x, y, w, textutil.Clean(state.SearchQuery), base)
	if state.Focus == statepkg.FocusSearch && x < w {
		x = r.drawText(x, y, w, "█", base.Foreground(r.theme.CursorBg))
	}
	r.fill(x, y, w, base)

	if state.SearchInFlight {
		r.drawRight(x+1, y, w, r.tr.T(i18n.Searching), base.Foreground(r.theme.MutedFg))
	}
}

func (r *Renderer) drawSeparators(m layoutMetrics) {
	style := tcell.StyleDefault.Foreground(r.theme.SeparatorColor)
	vline := func(x int, area Rect) {
		for y := area.Y; y < area.Y+area.H; y++ {
			r.screen.SetContent(x, y, '│', nil, style)
		}
	}
	if m.tree.W > 0 {
		vline(m.tree.X+m.tree.W, m.tree)
	}
	if m.results.W > 0 && m.results.X > m.contents.X {
		vline(m.contents.X+m.contents.W, m.contents)
	}
}

// drawStatusLine renders the bottom row: a transient message, the last
// error, or the key hint. It flashes briefly after a yank.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < statepkg.HeaderRows {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if state.YankFlashing(time.Now()) {
		style = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}

	text := r.tr.T(i18n.BrowserHint)
	switch {
	case state.StatusMessage != "":
		text = state.StatusMessage
	case state.LastError != nil:
		text = r.errorText(state.LastError)
		style = style.Foreground(r.theme.ErrorFg)
	}
	r.drawRow(0, y, w, " "+textutil.Clean(text), style)
}

// errorText localizes errors the user can act on and passes others through.
func (r *Renderer) errorText(err error) string {
	var prefsErr *statepkg.PrefsError
	if errors.As(err, &prefsErr) {
		return r.tr.T(i18n.PrefsSaveError, prefsErr.Err.Error())
	}
	return err.Error()
}

// visibleStart keeps cursor inside a window of rows starting near scroll.
func visibleStart(cursor, scroll, rows, count int) int {
	if rows < 1 {
		rows = 1
	}
	if cursor < scroll {
		scroll = cursor
	}
	if cursor >= scroll+rows {
		scroll = cursor - rows + 1
	}
	if scroll > count-rows {
		scroll = count - rows
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
