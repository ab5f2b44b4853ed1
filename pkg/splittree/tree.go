package splittree

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// Node is one region of the recursion.
type Node struct {
	Bounds   image.Rectangle
	Color    color.RGBA // set for leaves only
	Children []*Node    // nil for leaves
	Depth    int
}

// Leaf reports whether n was painted rather than split.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Walk calls fn for n and every descendant in depth-first order.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Build paints dst like [mondrian.Generate] and returns the recursion tree.
func Build(dst draw.Image, mode mondrian.Mode, rng mondrian.Rand) (*Node, mondrian.Stats) {
	root := &Node{Bounds: dst.Bounds()}
	// Regions of one partition tree are either nested or disjoint, and parts
	// are strictly smaller than their parent, so bounds identify nodes.
	nodes := map[image.Rectangle]*Node{root.Bounds: root}

	st := mondrian.Generate(dst, mode, rng,
		mondrian.WithSplitHook(func(parent image.Rectangle, parts []image.Rectangle) {
			p := nodes[parent]
			p.Children = make([]*Node, len(parts))
			for i, r := range parts {
				c := &Node{Bounds: r, Depth: p.Depth + 1}
				p.Children[i] = c
				nodes[r] = c
			}
		}),
		mondrian.WithLeafHook(func(leaf image.Rectangle, c color.RGBA) {
			nodes[leaf].Color = c
		}),
	)
	return root, st
}
