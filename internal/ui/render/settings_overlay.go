package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/textutil"
)

type settingsEntry struct {
	label string
	value string
}

func buildSettingsEntries(state *statepkg.AppState, tr *i18n.Translator) []settingsEntry {
	return []settingsEntry{
		{label: tr.T(i18n.Language), value: fmt.Sprintf("‹ %s ›", i18n.DisplayName(state.Locale))},
	}
}

// drawSettingsOverlay draws a centered box over the browser.
func (r *Renderer) drawSettingsOverlay(state *statepkg.AppState, w, h int) {
	entries := buildSettingsEntries(state, r.tr)
	title := " " + r.tr.T(i18n.Settings) + " "
	hint := r.tr.T(i18n.SettingsHint)

	labelW := 0
	boxW := max(textutil.Width(title), textutil.Width(hint)) + 4
	for _, e := range entries {
		labelW = max(labelW, textutil.Width(e.label))
	}
	for _, e := range entries {
		boxW = max(boxW, labelW+textutil.Width(e.value)+6)
	}
	boxW = min(boxW, w)
	boxH := min(len(entries)+4, h)
	if boxW <= 2 || boxH <= 2 {
		return
	}

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	style := tcell.StyleDefault.Background(r.theme.OverlayBg).Foreground(r.theme.OverlayFg)
	for y := y0; y < y0+boxH; y++ {
		r.fill(x0, y, x0+boxW, style)
	}

	titleStyle := tcell.StyleDefault.Background(r.theme.TitleActiveBg).Foreground(r.theme.TitleActiveFg).Bold(true)
	r.drawRow(x0, y0, boxW, title, titleStyle)

	for i, e := range entries {
		y := y0 + 2 + i
		if y >= y0+boxH-1 {
			break
		}
		line := "  " + textutil.PadRight(e.label, labelW) + "  " + e.value
		r.drawRow(x0, y, boxW, line, style)
	}
	r.drawRow(x0, y0+boxH-1, boxW, " "+hint, style.Foreground(r.theme.MutedFg))
}
