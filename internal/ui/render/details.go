package render

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/textutil"
)

type lineKind int

const (
	lineText lineKind = iota
	lineField
	lineMuted
	lineError
	lineAction
)

type detailLine struct {
	kind  lineKind
	label string
	value string
}

// detailsLines builds the details panel body: the TOC summary before any
// selection, otherwise the selected result and its extracted metadata.
func detailsLines(state *statepkg.AppState, tr *i18n.Translator) []detailLine {
	d := state.Details
	if !d.HasAsset {
		if state.TOC == nil {
			return nil
		}
		lines := []detailLine{{kind: lineText, value: tr.T(i18n.TOCSummary, state.TOC.ArchiveCount, state.TOC.AssetCount)}}
		if state.TOCPath != "" {
			lines = append(lines, detailLine{kind: lineMuted, value: state.TOCPath})
		}
		return lines
	}

	res := d.Result
	lines := []detailLine{
		{kind: lineField, label: tr.T(i18n.LabelID), value: res.ID},
		{kind: lineField, label: tr.T(i18n.LabelIndex), value: strconv.Itoa(res.Index)},
		{kind: lineField, label: tr.T(i18n.LabelArchive), value: res.Archive},
		{kind: lineField, label: tr.T(i18n.LabelSize), value: humanize.IBytes(uint64(max(res.Size, 0)))},
	}

	switch {
	case d.Loading:
		lines = append(lines, detailLine{kind: lineMuted, value: tr.T(i18n.Extracting)})
	case d.Err != "":
		lines = append(lines, detailLine{kind: lineError, value: tr.T(i18n.ExtractFailed, d.Err)})
	case d.Loaded:
		lines = append(lines,
			detailLine{kind: lineField, label: tr.T(i18n.LabelType), value: d.Info.Type},
			detailLine{kind: lineField, label: tr.T(i18n.LabelMagic), value: d.Info.Magic},
			detailLine{kind: lineField, label: tr.T(i18n.LabelSections), value: humanize.Comma(int64(d.Info.Sections))},
		)
		if d.ShowsModel() {
			lines = append(lines, detailLine{kind: lineAction, value: tr.T(i18n.OpenInViewer)})
		}
	}
	return lines
}

func (r *Renderer) drawDetailsPane(state *statepkg.AppState, area Rect) {
	if area.W <= 0 || area.H <= 0 {
		return
	}
	r.clearArea(area)
	r.drawTitle(area, r.tr.T(i18n.DetailsTitle), "", false)

	lines := detailsLines(state, r.tr)
	labelW := 0
	for _, l := range lines {
		if l.kind == lineField {
			labelW = max(labelW, textutil.Width(l.label))
		}
	}

	base := r.baseStyle()
	list := listArea(area)
	for i := 0; i < list.H && i < len(lines); i++ {
		l := lines[i]
		y := list.Y + i
		switch l.kind {
		case lineField:
			label := " " + textutil.PadRight(l.label, labelW) + "  "
			x := r.drawText(list.X, y, list.X+list.W, textutil.Truncate(label, list.W), base.Foreground(r.theme.MutedFg))
			if rest := list.X + list.W - x; rest > 0 {
				r.drawRow(x, y, rest, textutil.Clean(l.value), base)
			}
		default:
			r.drawRow(list.X, y, list.W, " "+textutil.Clean(l.value), r.lineStyle(l.kind))
		}
	}
}

func (r *Renderer) lineStyle(kind lineKind) tcell.Style {
	base := r.baseStyle()
	switch kind {
	case lineMuted:
		return base.Foreground(r.theme.MutedFg)
	case lineError:
		return base.Foreground(r.theme.ErrorFg)
	case lineAction:
		return base.Foreground(r.theme.SelectedFg).Bold(true)
	}
	return base
}
