package toc

import "strings"

// Separator joins crumbs in TOC paths.
const Separator = "/"

// EntryInfo describes where a path landed in the tree. It only points into the
// tree and never modifies it.
type EntryInfo struct {
	Path    string
	Crumbs  []string
	Node    *Node // directory shown for this entry; parent directory when IsFile
	IsFile  bool
	AssetID string
	BaseDir string
	// Depth is how many leading crumbs were walked as directories.
	Depth int
	// Resolved is false when the walk stopped early: a crumb named a file
	// before the end of the path, or a crumb did not exist.
	Resolved bool
}

// Resolve maps a slash separated path onto the tree. It never fails: a walk
// that cannot continue stops at the deepest directory reached.
func Resolve(t *TOC, path string) EntryInfo {
	info := EntryInfo{
		Path:     path,
		Crumbs:   []string{},
		Node:     t.Root(),
		Resolved: true,
	}
	if path != "" {
		info.Crumbs = strings.Split(path, Separator)
	}
	if len(info.Crumbs) == 0 || info.Node == nil {
		info.Resolved = info.Node != nil || len(info.Crumbs) == 0
		return info
	}

	last := len(info.Crumbs) - 1
	for i := 0; i < last; i++ {
		child, ok := info.Node.Child(info.Crumbs[i])
		if !ok || child.IsFile() {
			info.Resolved = false
			info.BaseDir = joinBaseDir(info.Crumbs[:info.Depth])
			return info
		}
		info.Node = child
		info.Depth++
	}

	child, ok := info.Node.Child(info.Crumbs[last])
	switch {
	case !ok:
		info.Resolved = false
	case child.IsFile():
		info.IsFile = true
		info.AssetID = child.AssetID()
	default:
		info.Node = child
		info.Depth++
	}
	info.BaseDir = joinBaseDir(info.Crumbs[:info.Depth])
	return info
}

// Name returns the final crumb, or "" for the root.
func (e EntryInfo) Name() string {
	if len(e.Crumbs) == 0 {
		return ""
	}
	return e.Crumbs[len(e.Crumbs)-1]
}

// DirCrumbs returns the crumbs that were walked as directories.
func (e EntryInfo) DirCrumbs() []string {
	if e.Depth > len(e.Crumbs) {
		return e.Crumbs
	}
	return e.Crumbs[:e.Depth]
}

// ChildPath builds the path of an entry listed under this entry's directory.
func (e EntryInfo) ChildPath(name string) string {
	return e.BaseDir + name
}

func joinBaseDir(crumbs []string) string {
	if len(crumbs) == 0 {
		return ""
	}
	return strings.Join(crumbs, Separator) + Separator
}
