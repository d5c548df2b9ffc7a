package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/textutil"
)

func (r *Renderer) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
}

// drawTitle renders a pane's first row. The focused pane gets the active
// style.
func (r *Renderer) drawTitle(area Rect, title, right string, focused bool) {
	style := r.baseStyle().Foreground(r.theme.TitleFg).Bold(true)
	if focused {
		style = tcell.StyleDefault.Background(r.theme.TitleActiveBg).Foreground(r.theme.TitleActiveFg).Bold(true)
	}
	r.drawRow(area.X, area.Y, area.W, " "+title, style)
	if right != "" {
		r.drawRight(area.X+textutil.Width(title)+2, area.Y, area.X+area.W-1, right, style)
	}
}

func (r *Renderer) rowStyle(isCursor, focused bool, fg tcell.Color) tcell.Style {
	switch {
	case isCursor && focused:
		return tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
	case isCursor:
		return r.baseStyle().Background(r.theme.CursorIdleBg).Foreground(fg)
	default:
		return r.baseStyle().Foreground(fg)
	}
}

func (r *Renderer) clearArea(area Rect) {
	style := r.baseStyle()
	for y := area.Y; y < area.Y+area.H; y++ {
		r.fill(area.X, y, area.X+area.W, style)
	}
}

// drawListRow draws text on the left of a list row and right at its end,
// truncating text so the two never overlap.
func (r *Renderer) drawListRow(list Rect, y int, text, right string, style, rightStyle tcell.Style) {
	if right == "" {
		r.drawRow(list.X, y, list.W, text, style)
		return
	}
	rightW := textutil.Width(right) + 1
	if rightW >= list.W/2 {
		r.drawRow(list.X, y, list.W, text, style)
		return
	}
	r.drawRow(list.X, y, list.W-rightW, text, style)
	r.fill(list.X+list.W-rightW, y, list.X+list.W, style)
	r.drawRight(list.X, y, list.X+list.W-1, right, rightStyle)
}

// listArea is the part of a pane below its title.
func listArea(area Rect) Rect {
	return Rect{X: area.X, Y: area.Y + 1, W: area.W, H: area.H - 1}
}

func badge(count int) string {
	if count <= 1 {
		return ""
	}
	return fmt.Sprintf("[%d]", count)
}

// ===== TREE =====

func (r *Renderer) drawTreePane(state *statepkg.AppState, area Rect) {
	if area.W <= 0 || area.H <= 0 {
		return
	}
	focused := state.Focus == statepkg.FocusTree
	r.clearArea(area)
	r.drawTitle(area, r.tr.T(i18n.TreeTitle), "", focused)

	list := listArea(area)
	if list.H <= 0 {
		return
	}
	rows := state.Tree.Rows()
	scroll := visibleStart(state.TreeCursor, state.TreeScroll, list.H, len(rows))
	r.layout.Panes = append(r.layout.Panes, PaneArea{Pane: statepkg.FocusTree, List: list, Scroll: scroll})

	for i := 0; i < list.H && scroll+i < len(rows); i++ {
		idx := scroll + i
		row := rows[idx]
		item := row.Item

		fg := r.theme.FileFg
		if item.IsDir {
			fg = r.theme.DirectoryFg
		}
		style := r.rowStyle(idx == state.TreeCursor, focused, fg)
		if item.Highlighted && idx != state.TreeCursor {
			style = tcell.StyleDefault.Background(r.theme.HighlightBg).Foreground(r.theme.HighlightFg)
		}

		y := list.Y + i
		r.drawListRow(list, y, treeLine(item, row.Depth, r.tr), badge(item.Count), style, style.Foreground(r.theme.BadgeFg))
	}
}

func treeLine(item *statepkg.TreeItem, depth int, tr *i18n.Translator) string {
	icon := " "
	if item.IsDir && !item.Home {
		icon = "▾"
		if item.Collapsed {
			icon = "▸"
		}
	}
	label := textutil.Clean(item.Label)
	if item.Home {
		label = tr.T(i18n.Home)
	}
	return " " + strings.Repeat("  ", depth) + icon + " " + label
}

// ===== CONTENTS =====

func (r *Renderer) drawContentsPane(state *statepkg.AppState, area Rect) {
	if area.W <= 0 || area.H <= 0 {
		return
	}
	focused := state.Focus == statepkg.FocusContents
	r.clearArea(area)

	title := r.tr.T(i18n.ContentsTitle)
	r.drawTitle(area, title, textutil.TruncateLeft(textutil.Clean(state.Browser.BaseDir()), area.W/2), focused)

	list := listArea(area)
	if list.H <= 0 {
		return
	}
	items := state.Browser.Items
	scroll := visibleStart(state.Browser.Cursor, state.Browser.Scroll, list.H, len(items))
	r.layout.Panes = append(r.layout.Panes, PaneArea{Pane: statepkg.FocusContents, List: list, Scroll: scroll})

	for i := 0; i < list.H && scroll+i < len(items); i++ {
		idx := scroll + i
		item := items[idx]

		fg := r.theme.FileFg
		switch {
		case item.Selected:
			fg = r.theme.SelectedFg
		case item.IsDir:
			fg = r.theme.DirectoryFg
		}
		style := r.rowStyle(idx == state.Browser.Cursor, focused, fg)
		if item.Selected {
			style = style.Bold(true)
		}

		y := list.Y + i
		r.drawListRow(list, y, contentsLine(item), badge(item.Count), style, style.Foreground(r.theme.BadgeFg))
	}
}

func contentsLine(item statepkg.ListItem) string {
	icon := " "
	switch {
	case item.IsDir:
		icon = "/"
	case item.Selected:
		icon = "•"
	}
	return " " + icon + " " + textutil.Clean(item.Name)
}

// ===== RESULTS =====

// resultsHeader is the line shown above the result rows.
func resultsHeader(state *statepkg.AppState, tr *i18n.Translator) string {
	switch {
	case state.SearchInFlight:
		return tr.T(i18n.Searching)
	case state.SearchError != "":
		return tr.T(i18n.SearchFailed, state.SearchError)
	case !state.SearchDone:
		return tr.T(i18n.ResultsTitle)
	case len(state.SearchResults) == 0:
		return tr.T(i18n.NoResults)
	default:
		return tr.T(i18n.ResultsFound, len(state.SearchResults))
	}
}

func (r *Renderer) drawResultsPane(state *statepkg.AppState, area Rect) {
	if area.W <= 0 || area.H <= 0 {
		return
	}
	focused := state.Focus == statepkg.FocusResults
	r.clearArea(area)
	r.drawTitle(area, textutil.Clean(resultsHeader(state, r.tr)), "", focused)

	list := listArea(area)
	if list.H <= 0 {
		return
	}
	results := state.SearchResults
	scroll := visibleStart(state.ResultsCursor, state.SearchScroll, list.H, len(results))
	r.layout.Panes = append(r.layout.Panes, PaneArea{Pane: statepkg.FocusResults, List: list, Scroll: scroll})

	for i := 0; i < list.H && scroll+i < len(results); i++ {
		idx := scroll + i
		res := results[idx]
		selected := idx == state.SearchSelected

		fg := r.theme.FileFg
		if selected {
			fg = r.theme.SelectedFg
		}
		style := r.rowStyle(idx == state.ResultsCursor, focused, fg)
		if selected {
			style = style.Bold(true)
		}

		y := list.Y + i
		size := humanize.IBytes(uint64(max(res.Size, 0)))
		r.drawListRow(list, y, resultLine(res.ID, res.Index, res.Archive, selected), size, style, style.Foreground(r.theme.MutedFg))
	}
}

func resultLine(id string, index int, archive string, selected bool) string {
	mark := " "
	if selected {
		mark = "•"
	}
	return fmt.Sprintf(" %s %s  #%d %s", mark, textutil.Clean(id), index, textutil.Clean(archive))
}
