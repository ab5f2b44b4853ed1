package splittree

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

func TestBuildMatchesStats(t *testing.T) {
	for _, mode := range mondrian.Modes {
		img := canvas.New(400, 300)
		root, st := Build(img, mode, mondrian.NewRand(21))

		leaves, splits := 0, 0
		root.Walk(func(n *Node) bool {
			if n.Leaf() {
				leaves++
			} else {
				splits++
			}
			return true
		})
		if leaves != st.Leaves || splits != st.Splits {
			t.Errorf("%s: tree has %d leaves / %d splits, stats %d / %d", mode, leaves, splits, st.Leaves, st.Splits)
		}

		ref := canvas.New(400, 300)
		mondrian.Generate(ref, mode, mondrian.NewRand(21))
		if !canvas.Equal(img, ref) {
			t.Errorf("%s: Build painted a different image than Generate", mode)
		}
	}
}

func TestBuildChildrenPartitionParent(t *testing.T) {
	root, _ := Build(canvas.New(256, 256), mondrian.ModeComplex, mondrian.NewRand(4))

	root.Walk(func(n *Node) bool {
		if n.Leaf() {
			return true
		}
		if len(n.Children) != 2 && len(n.Children) != 4 {
			t.Fatalf("%v has %d children", n.Bounds, len(n.Children))
		}
		area := 0
		for _, c := range n.Children {
			if !c.Bounds.In(n.Bounds) || c.Bounds.Eq(n.Bounds) {
				t.Fatalf("child %v not strictly inside %v", c.Bounds, n.Bounds)
			}
			if c.Depth != n.Depth+1 {
				t.Fatalf("child depth %d under parent depth %d", c.Depth, n.Depth)
			}
			area += c.Bounds.Dx() * c.Bounds.Dy()
		}
		if area != n.Bounds.Dx()*n.Bounds.Dy() {
			t.Fatalf("children of %v cover %d pixels", n.Bounds, area)
		}
		return true
	})
}

func TestBuildSingleLeaf(t *testing.T) {
	root, st := Build(canvas.New(1, 1), mondrian.ModeBasic, mondrian.NewRand(1))
	if !root.Leaf() || st.Leaves != 1 {
		t.Fatalf("1x1 canvas: leaf=%v stats=%+v", root.Leaf(), st)
	}
	if root.Color.A != 255 {
		t.Error("leaf color not recorded")
	}
	if root.Count() != 1 {
		t.Errorf("Count() = %d", root.Count())
	}
}

func TestToDOT(t *testing.T) {
	leafA := &Node{Bounds: image.Rect(0, 0, 10, 20), Color: mondrian.Palette[0], Depth: 1}
	leafB := &Node{Bounds: image.Rect(10, 0, 20, 20), Color: mondrian.Palette[3], Depth: 1}
	root := &Node{Bounds: image.Rect(0, 0, 20, 20), Children: []*Node{leafA, leafB}}

	dot := ToDOT(root, Options{})
	for _, want := range []string{
		"digraph G {",
		`n0 [label="(0,0) 20x20"]`,
		`fillcolor="#ff0000"`,
		`fillcolor="#ffffff"`,
		"n0 -> n1;",
		"n0 -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `label="(0,0) 10x20\n#ff0000", fillcolor="#ff0000", fontcolor=white`) {
		t.Errorf("dark leaf should get white text:\n%s", dot)
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	root, _ := Build(canvas.New(300, 300), mondrian.ModeBasic, mondrian.NewRand(8))
	if root.Leaf() {
		t.Skip("seed produced a single leaf")
	}

	dot := ToDOT(root, Options{MaxDepth: 1})
	if !strings.Contains(dot, "regions") {
		t.Errorf("collapsed subtrees should be summarized:\n%s", dot)
	}
	if got, max := strings.Count(dot, "->"), 4; got > max {
		t.Errorf("depth-limited DOT has %d edges, want at most %d", got, max)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), "digraph G {}", FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "digraph G {}" {
		t.Errorf("Render(dot) = %q", out)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	if _, err := Render(context.Background(), "digraph G {}", "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderSVG(t *testing.T) {
	root, _ := Build(canvas.New(64, 64), mondrian.ModeComplex, mondrian.NewRand(2))
	svg, err := Render(context.Background(), ToDOT(root, Options{MaxDepth: 2}), FormatSVG)
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}
