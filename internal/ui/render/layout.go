package render

import statepkg "github.com/kk-code-lab/tocview/internal/state"

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the region.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CrumbSpan is the header cells covered by one breadcrumb.
type CrumbSpan struct {
	Start, End int // [Start, End) on row 0
	Path       string
}

// PaneArea is the list region of a pane, below its title row.
type PaneArea struct {
	Pane   statepkg.Focus
	List   Rect
	Scroll int
}

// Layout records where the last frame drew clickable things.
type Layout struct {
	Crumbs []CrumbSpan
	Panes  []PaneArea
}

// CrumbAt returns the path of the breadcrumb drawn at (x, y).
func (l Layout) CrumbAt(x, y int) (string, bool) {
	if y != 0 {
		return "", false
	}
	for _, c := range l.Crumbs {
		if x >= c.Start && x < c.End {
			return c.Path, true
		}
	}
	return "", false
}

// RowAt maps a click to a pane and the item index under it. The index may be
// past the end of the pane's items; the reducer ignores those.
func (l Layout) RowAt(x, y int) (statepkg.Focus, int, bool) {
	for _, p := range l.Panes {
		if p.List.Contains(x, y) {
			return p.Pane, p.Scroll + (y - p.List.Y), true
		}
	}
	return 0, 0, false
}

type layoutMetrics struct {
	tree     Rect
	contents Rect
	results  Rect
	details  Rect
}

const (
	minContentsWidth = 24
	rightColumnRatio = 0.45
)

// computeLayout splits the body into the tree on the left, the listing in the
// middle and results over details on the right.
func computeLayout(state *statepkg.AppState, w int) layoutMetrics {
	if w < 0 {
		w = 0
	}
	top := statepkg.HeaderRows
	body := state.BodyRows()

	m := layoutMetrics{}
	treeW := treeWidthForWidth(w)
	x := 0
	if treeW > 0 {
		m.tree = Rect{X: 0, Y: top, W: treeW, H: body}
		x = treeW + 1
	}

	rest := w - x
	if rest < 0 {
		rest = 0
	}
	rightW := int(float64(rest)*rightColumnRatio + 0.5)
	if rest-rightW-1 < minContentsWidth {
		rightW = rest - minContentsWidth - 1
	}
	if rightW < 12 {
		// too narrow for a third column: results and details take the
		// lower half of the listing column
		rightW = 0
	}

	contentsW := rest
	if rightW > 0 {
		contentsW = rest - rightW - 1
	}
	m.contents = Rect{X: x, Y: top, W: contentsW, H: body}

	resultsH := state.ResultsRows() + 1
	if resultsH > body {
		resultsH = body
	}
	if rightW > 0 {
		rx := x + contentsW + 1
		m.results = Rect{X: rx, Y: top, W: rightW, H: resultsH}
		m.details = Rect{X: rx, Y: top + resultsH, W: rightW, H: body - resultsH}
		return m
	}

	// Stacked fallback for narrow terminals.
	half := body / 2
	m.contents.H = body - half
	m.results = Rect{X: x, Y: top + m.contents.H, W: contentsW, H: half}
	m.details = Rect{}
	return m
}

func treeWidthForWidth(w int) int {
	switch {
	case w >= 150:
		return 32
	case w >= 120:
		return 28
	case w >= 100:
		return 24
	case w >= 80:
		return 20
	case w >= 65:
		return 16
	default:
		return 0
	}
}
