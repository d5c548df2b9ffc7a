package state

import (
	"strings"

	"github.com/kk-code-lab/tocview/internal/toc"
)

// Breadcrumb is one clickable segment of the header trail.
type Breadcrumb struct {
	Label string
	Path  string
	Home  bool
}

// ListItem is one row of the directory listing.
type ListItem struct {
	Name     string
	Path     string
	IsDir    bool
	AssetID  string
	Count    int // index count badge, 0 when there is at most one index
	Selected bool
}

// Browser holds the breadcrumb trail and listing of the directory being
// shown. It rebuilds only when the shown directory changes.
type Browser struct {
	Crumbs []Breadcrumb
	Items  []ListItem
	Cursor int
	Scroll int

	// Rebuilds counts listing constructions.
	Rebuilds int

	madeFor string
	built   bool
}

// Invalidate forces the next Show to rebuild.
func (b *Browser) Invalidate() {
	b.built = false
	b.madeFor = ""
}

// BaseDir returns the directory the listing was built for.
func (b *Browser) BaseDir() string {
	return b.madeFor
}

// Show presents info. It returns true when the listing was rebuilt; otherwise
// only the selected file entry changes.
func (b *Browser) Show(info toc.EntryInfo) bool {
	rebuilt := false
	if !b.built || b.madeFor != info.BaseDir {
		b.rebuild(info)
		rebuilt = true
	}
	b.selectFile(info)
	return rebuilt
}

func (b *Browser) rebuild(info toc.EntryInfo) {
	b.Crumbs = buildBreadcrumbs(info.DirCrumbs())
	b.Items = b.Items[:0]
	for _, child := range info.Node.SortedChildren() {
		item := ListItem{
			Name:  child.Name,
			Path:  info.ChildPath(child.Name),
			IsDir: child.Node.IsDir(),
		}
		if child.Node.IsFile() {
			item.AssetID = child.Node.AssetID()
			if n := child.Node.IndexCount(); n > 1 {
				item.Count = n
			}
		}
		b.Items = append(b.Items, item)
	}
	b.Cursor = 0
	b.Scroll = 0
	b.madeFor = info.BaseDir
	b.built = true
	b.Rebuilds++
}

func (b *Browser) selectFile(info toc.EntryInfo) {
	name := ""
	if info.IsFile {
		name = info.Name()
	}
	for i := range b.Items {
		selected := name != "" && !b.Items[i].IsDir && b.Items[i].Name == name
		b.Items[i].Selected = selected
		if selected {
			b.Cursor = i
		}
	}
}

// SelectedCount returns how many listing entries are marked selected.
func (b *Browser) SelectedCount() int {
	n := 0
	for _, item := range b.Items {
		if item.Selected {
			n++
		}
	}
	return n
}

// CurrentItem returns the row under the cursor.
func (b *Browser) CurrentItem() (ListItem, bool) {
	if b.Cursor < 0 || b.Cursor >= len(b.Items) {
		return ListItem{}, false
	}
	return b.Items[b.Cursor], true
}

// ParentPath returns the path of the crumb before the last one.
func (b *Browser) ParentPath() (string, bool) {
	if len(b.Crumbs) < 2 {
		return "", false
	}
	return b.Crumbs[len(b.Crumbs)-2].Path, true
}

func buildBreadcrumbs(dirs []string) []Breadcrumb {
	crumbs := make([]Breadcrumb, 0, len(dirs)+1)
	crumbs = append(crumbs, Breadcrumb{Path: "", Home: true})
	for i, name := range dirs {
		crumbs = append(crumbs, Breadcrumb{
			Label: name,
			Path:  strings.Join(dirs[:i+1], toc.Separator),
		})
	}
	return crumbs
}
