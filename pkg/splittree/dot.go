package splittree

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Options configures DOT generation.
type Options struct {
	// MaxDepth collapses everything below this depth into a single summary
	// node per subtree. Zero means unlimited.
	MaxDepth int
}

// ToDOT converts a split tree to Graphviz DOT format.
// Leaves are filled with their paint color; splits are drawn as plain boxes
// labelled with the region they cut.
func ToDOT(root *Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	id := 0
	var visit func(n *Node) int
	visit = func(n *Node) int {
		self := id
		id++
		if opts.MaxDepth > 0 && n.Depth >= opts.MaxDepth && !n.Leaf() {
			fmt.Fprintf(&buf, "  n%d [label=%q, style=\"rounded,dashed\"];\n", self, fmtRect(n)+"\n+"+fmt.Sprint(n.Count()-1)+" regions")
			return self
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", self, strings.Join(fmtAttrs(n), ", "))
		for _, c := range n.Children {
			child := visit(c)
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", self, child)
		}
		return self
	}
	visit(root)

	buf.WriteString("}\n")
	return buf.String()
}

func fmtRect(n *Node) string {
	r := n.Bounds
	return fmt.Sprintf("(%d,%d) %dx%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func fmtAttrs(n *Node) []string {
	if !n.Leaf() {
		return []string{fmt.Sprintf("label=%q", fmtRect(n))}
	}
	attrs := []string{
		fmt.Sprintf("label=%q", fmtRect(n)+"\n"+hex(n.Color)),
		fmt.Sprintf("fillcolor=%q", hex(n.Color)),
	}
	if n.Bounds.Dx() <= 2 || n.Bounds.Dy() <= 2 {
		// Too thin to have an interior, so nothing was painted.
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if dark(n.Color) {
		attrs = append(attrs, "fontcolor=white")
	}
	return attrs
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// dark uses the Rec. 601 luma to pick a readable label color.
func dark(c color.RGBA) bool {
	return 299*int(c.R)+587*int(c.G)+114*int(c.B) < 128*1000
}

// Render lays out a DOT graph with Graphviz.
// FormatDOT returns the input unchanged.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q (must be one of: dot, svg, png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
