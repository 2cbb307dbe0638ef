package output

import (
	"strings"

	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/store"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string          `json:"id,omitempty"`
	Label    string          `json:"label"`
	Kind     models.ItemKind `json:"kind"`
	Disabled bool            `json:"disabled,omitempty"`
	Children []TreeNode      `json:"children,omitempty"`
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth int  // 0 = unlimited
	ShowIDs  bool // Whether to prefix labels with item ids
	ShowKind bool // Whether to show the item kind
}

// mark returns a trailing marker for a node
func mark(n TreeNode) string {
	switch {
	case n.Disabled:
		return " \u2717" // ✗
	case n.Kind == models.KindContainer:
		return "/"
	default:
		return ""
	}
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		var parts []string
		if opts.ShowKind {
			parts = append(parts, string(node.Kind))
		}
		if opts.ShowIDs && node.ID != "" {
			parts = append(parts, node.ID+":")
		}
		parts = append(parts, node.Label+mark(node))
		lines = append(lines, prefix+connector+strings.Join(parts, " "))

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}
	return lines
}

// BoardTree converts a board into one root per column, with folder
// contents nested under their folder.
func BoardTree(b *store.Board) []TreeNode {
	roots := make([]TreeNode, 0, len(b.Columns))
	for _, col := range b.Columns {
		root := TreeNode{ID: col.ID, Label: col.Name, Kind: "column"}
		for _, it := range col.Items {
			n := itemNode(it)
			for _, child := range col.Folders[it.ID] {
				n.Children = append(n.Children, itemNode(child))
			}
			root.Children = append(root.Children, n)
		}
		roots = append(roots, root)
	}
	return roots
}

func itemNode(it models.Item) TreeNode {
	return TreeNode{ID: it.ID, Label: it.Label, Kind: it.Kind, Disabled: it.Disabled}
}

// RenderBoard renders b as a tree headed by the board name.
func RenderBoard(b *store.Board, opts TreeRenderOptions) string {
	lines := append([]string{b.Name}, RenderTreeLines(BoardTree(b), opts)...)
	return strings.Join(lines, "\n")
}
