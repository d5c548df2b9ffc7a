package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/textutil"
)

// drawSplash renders the load screen: the TOC path input, the load state and
// the key hint.
func (r *Renderer) drawSplash(state *statepkg.AppState, w, h int) {
	base := r.baseStyle()
	for y := 0; y < h; y++ {
		r.fill(0, y, w, base)
	}
	if w <= 4 || h <= 0 {
		return
	}

	margin := 2
	width := w - 2*margin
	row := 1
	line := func(text string, style tcell.Style) {
		if row >= h-1 {
			return
		}
		r.drawRow(margin, row, width, text, style)
		row++
	}

	line(appTitle, base.Bold(true))
	row++
	line(r.tr.T(i18n.TOCPathPrompt), base.Foreground(r.theme.MutedFg))

	if row < h-1 {
		input := textutil.TruncateLeft(textutil.Clean(state.TOCPathInput), width-1)
		x := r.drawText(margin, row, margin+width, input, base.Underline(true))
		if !state.TOCLoadInFlight {
			x = r.drawText(x, row, margin+width, "█", base.Foreground(r.theme.CursorBg))
		}
		r.fill(x, row, margin+width, base)
		row++
	}
	row++

	switch {
	case state.TOCLoadInFlight:
		line(r.tr.T(i18n.Loading), base.Foreground(r.theme.MutedFg))
	case state.TOCLoadError != "":
		line(textutil.Clean(r.tr.T(i18n.LoadFailed, state.TOCLoadError)), base.Foreground(r.theme.ErrorFg))
	}
	if state.LastError != nil {
		line(textutil.Clean(r.errorText(state.LastError)), base.Foreground(r.theme.ErrorFg))
	}

	footer := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.drawRow(0, h-1, w, " "+r.tr.T(i18n.LoadHint), footer)
}
