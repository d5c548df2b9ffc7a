package state

import (
	"github.com/kk-code-lab/tocview/internal/toc"
)

// TreeItem is one node of the tree widget.
type TreeItem struct {
	Label       string
	Path        string
	IsDir       bool
	Home        bool
	Count       int
	Collapsed   bool
	Highlighted bool
	Children    []*TreeItem
}

// TreeRow is a visible tree item with its indentation depth.
type TreeRow struct {
	Item  *TreeItem
	Depth int
}

// TreeWidget mirrors the whole TOC. It is built once per load and keeps
// exactly one highlighted item, or none.
type TreeWidget struct {
	Home        *TreeItem
	highlighted *TreeItem
}

// BuildTree creates the widget for t with every directory collapsed.
func BuildTree(t *toc.TOC) *TreeWidget {
	home := &TreeItem{Home: true, IsDir: true}
	home.Children = buildTreeItems(t.Root(), "")
	return &TreeWidget{Home: home}
}

func buildTreeItems(dir *toc.Node, prefix string) []*TreeItem {
	children := dir.SortedChildren()
	if len(children) == 0 {
		return nil
	}
	items := make([]*TreeItem, 0, len(children))
	for _, child := range children {
		item := &TreeItem{
			Label: child.Name,
			Path:  prefix + child.Name,
			IsDir: child.Node.IsDir(),
		}
		if item.IsDir {
			item.Collapsed = true
			item.Children = buildTreeItems(child.Node, item.Path+toc.Separator)
		} else if n := child.Node.IndexCount(); n > 1 {
			item.Count = n
		}
		items = append(items, item)
	}
	return items
}

// Highlighted returns the highlighted item, or nil.
func (w *TreeWidget) Highlighted() *TreeItem {
	if w == nil {
		return nil
	}
	return w.highlighted
}

// Sync moves the highlight to the item named by info's crumbs, expanding
// every directory entered on the way. When a crumb cannot be matched the
// widget is left without a highlight.
func (w *TreeWidget) Sync(info toc.EntryInfo) {
	if w == nil {
		return
	}
	if w.highlighted != nil {
		w.highlighted.Highlighted = false
		w.highlighted = nil
	}

	node := w.Home
	for _, crumb := range info.Crumbs {
		if !node.IsDir {
			return
		}
		var next *TreeItem
		for _, child := range node.Children {
			if child.Label == crumb {
				next = child
				break
			}
		}
		if next == nil {
			return
		}
		node.Collapsed = false
		node = next
	}

	node.Highlighted = true
	w.highlighted = node
}

// HighlightedCount walks the whole widget and counts highlighted items.
func (w *TreeWidget) HighlightedCount() int {
	if w == nil {
		return 0
	}
	var count func(item *TreeItem) int
	count = func(item *TreeItem) int {
		n := 0
		if item.Highlighted {
			n++
		}
		for _, child := range item.Children {
			n += count(child)
		}
		return n
	}
	return count(w.Home)
}

// Rows flattens the expanded part of the widget. The home item is row 0.
func (w *TreeWidget) Rows() []TreeRow {
	if w == nil {
		return nil
	}
	rows := []TreeRow{{Item: w.Home}}
	var walk func(items []*TreeItem, depth int)
	walk = func(items []*TreeItem, depth int) {
		for _, item := range items {
			rows = append(rows, TreeRow{Item: item, Depth: depth})
			if item.IsDir && !item.Collapsed {
				walk(item.Children, depth+1)
			}
		}
	}
	walk(w.Home.Children, 1)
	return rows
}

// HighlightedRow returns the row index of the highlighted item.
func (w *TreeWidget) HighlightedRow() (int, bool) {
	if w.Highlighted() == nil {
		return 0, false
	}
	for i, row := range w.Rows() {
		if row.Item == w.highlighted {
			return i, true
		}
	}
	return 0, false
}
