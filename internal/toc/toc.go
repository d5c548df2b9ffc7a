package toc

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Kind distinguishes directory nodes from file entries.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

// Node is either a directory (name -> child) or a file entry (asset id plus
// the physical indices it resolves to). Nodes are never mutated once a TOC is
// built.
type Node struct {
	kind     Kind
	children map[string]*Node
	assetID  string
	indices  []int
}

// Child pairs a node with the name it is stored under in its parent.
type Child struct {
	Name string
	Node *Node
}

// TOC is a loaded archive index.
type TOC struct {
	ArchiveCount int
	AssetCount   int
	Tree         *Node
}

// NewDirectory builds a directory node. The map is copied.
func NewDirectory(children map[string]*Node) *Node {
	copied := make(map[string]*Node, len(children))
	for name, child := range children {
		copied[name] = child
	}
	return &Node{kind: KindDirectory, children: copied}
}

// NewFile builds a file entry. Index order is preserved.
func NewFile(assetID string, indices ...int) *Node {
	return &Node{
		kind:    KindFile,
		assetID: assetID,
		indices: append([]int(nil), indices...),
	}
}

// New wraps a tree into a TOC, defaulting to an empty root.
func New(archiveCount, assetCount int, tree *Node) *TOC {
	if tree == nil || !tree.IsDir() {
		tree = NewDirectory(nil)
	}
	return &TOC{ArchiveCount: archiveCount, AssetCount: assetCount, Tree: tree}
}

func (n *Node) IsFile() bool { return n != nil && n.kind == KindFile }
func (n *Node) IsDir() bool  { return n != nil && n.kind == KindDirectory }

// AssetID returns the logical asset id of a file entry.
func (n *Node) AssetID() string {
	if !n.IsFile() {
		return ""
	}
	return n.assetID
}

// Indices returns a copy of the physical indices of a file entry.
func (n *Node) Indices() []int {
	if !n.IsFile() {
		return nil
	}
	return append([]int(nil), n.indices...)
}

// IndexCount reports how many physical instances back a file entry.
func (n *Node) IndexCount() int {
	if !n.IsFile() {
		return 0
	}
	return len(n.indices)
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsDir() {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if !n.IsDir() {
		return 0
	}
	return len(n.children)
}

// SortedChildren returns directories first, then files, each group in
// ascending name order.
func (n *Node) SortedChildren() []Child {
	if !n.IsDir() {
		return nil
	}
	dirs := make([]Child, 0, len(n.children))
	files := make([]Child, 0, len(n.children))
	for name, child := range n.children {
		if child.IsFile() {
			files = append(files, Child{Name: name, Node: child})
		} else {
			dirs = append(dirs, Child{Name: name, Node: child})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return append(dirs, files...)
}

// Root returns the tree root.
func (t *TOC) Root() *Node {
	if t == nil {
		return nil
	}
	return t.Tree
}

// FromWire converts a decoded wire tree into nodes. Directories arrive as
// string-keyed maps and files as a two-element array [assetId, [indices...]].
// Both encoding/json and CBOR generic decodes are accepted.
func FromWire(v any) (*Node, error) {
	return fromWire(v, "")
}

func fromWire(v any, path string) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return NewDirectory(nil), nil
	case map[string]any:
		children := make(map[string]*Node, len(val))
		for rawName, rawChild := range val {
			name := norm.NFC.String(rawName)
			child, err := fromWire(rawChild, path+"/"+name)
			if err != nil {
				return nil, err
			}
			children[name] = child
		}
		return &Node{kind: KindDirectory, children: children}, nil
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, child := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("toc: non-string key %v under %q", k, displayPath(path))
			}
			converted[key] = child
		}
		return fromWire(converted, path)
	case []any:
		return fileFromWire(val, path)
	default:
		return nil, fmt.Errorf("toc: unexpected %T at %q", v, displayPath(path))
	}
}

func fileFromWire(val []any, path string) (*Node, error) {
	if len(val) != 2 {
		return nil, fmt.Errorf("toc: file entry %q has %d fields, want 2", displayPath(path), len(val))
	}
	assetID, ok := val[0].(string)
	if !ok {
		return nil, fmt.Errorf("toc: file entry %q has non-string asset id", displayPath(path))
	}
	rawIndices, ok := val[1].([]any)
	if !ok {
		return nil, fmt.Errorf("toc: file entry %q has no index list", displayPath(path))
	}
	indices := make([]int, 0, len(rawIndices))
	for _, raw := range rawIndices {
		idx, err := wireInt(raw)
		if err != nil {
			return nil, fmt.Errorf("toc: file entry %q: %w", displayPath(path), err)
		}
		indices = append(indices, idx)
	}
	return &Node{kind: KindFile, assetID: assetID, indices: indices}, nil
}

func wireInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("index %v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("index %v is not an integer", n)
		}
		return int(i), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("index has type %T", v)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
