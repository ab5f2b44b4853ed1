package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/splittree"
)

func TestRunTreeDOT(t *testing.T) {
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)
	out := filepath.Join(t.TempDir(), "tree.dot")

	opts := treeOpts{mode: mondrian.ModeBasic, width: 60, height: 60, seed: 3, format: "DOT", output: out}
	if err := c.runTree(ctx, opts); err != nil {
		t.Fatalf("runTree() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("output is not a DOT graph:\n%.80s", dot)
	}
	if !strings.Contains(dot, "n0 -> n1") {
		t.Error("a 60x60 canvas should split at least once")
	}
}

func TestTreeUsesGenerateConfig(t *testing.T) {
	c := newTestCLI()
	c.Config.Generate.Mode = "complex"
	c.Config.Generate.Width = 80
	c.Config.Generate.Height = 50
	c.Config.Generate.Seed = 11
	out := filepath.Join(t.TempDir(), "tree.dot")

	cmd := c.treeCommand()
	cmd.SetArgs([]string{"-H", "70", "-f", "dot", "--max-depth", "0", "-o", out})
	if err := cmd.ExecuteContext(withLogger(context.Background(), c.Logger)); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	// The height flag wins over the config; everything else comes from it.
	root, _ := splittree.Build(canvas.New(80, 70), mondrian.ModeComplex, mondrian.NewRand(11))
	if want := splittree.ToDOT(root, splittree.Options{}); string(got) != want {
		t.Error("tree did not use the [generate] config for unset flags")
	}
}

func TestRunTreeErrors(t *testing.T) {
	c := newTestCLI()
	ctx := withLogger(context.Background(), c.Logger)
	dir := t.TempDir()

	tests := []struct {
		name string
		opts treeOpts
		code errors.Code
	}{
		{"negative depth", treeOpts{format: "dot", maxDepth: -1}, errors.ErrCodeInvalidInput},
		{"bad format", treeOpts{format: "pdf", width: 20, height: 20, output: filepath.Join(dir, "t.pdf")}, errors.ErrCodeInvalidFormat},
		{"bad size", treeOpts{format: "dot", width: -3}, errors.ErrCodeInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.runTree(ctx, tt.opts); !errors.Is(err, tt.code) {
				t.Errorf("runTree() error = %v, want %s", err, tt.code)
			}
		})
	}
}
