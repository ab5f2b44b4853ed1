package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/splittree"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	mode     mondrian.Mode
	width    int
	height   int
	seed     uint64
	format   string
	output   string
	maxDepth int
}

// treeCommand creates the tree command, which draws the recursion tree of a
// generation as a Graphviz diagram.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: splittree.FormatSVG, maxDepth: 4}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Draw the split tree of a picture",
		Long: `Draw the split tree of a picture as a Graphviz diagram.

Every box is a region; splits point to their parts in painting order and
leaves are filled with the color they were painted. Using the same mode, size
and seed as "generate" explains that exact picture.`,
		Example: `  mondrian tree -m complex --seed 42
  mondrian tree -W 300 -H 300 --seed 7 -f dot -o tree.dot
  mondrian tree --max-depth 0 -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyCanvasConfig(cmd, &opts.mode, &opts.width, &opts.height, &opts.seed)
			return c.runTree(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.mode, "mode", "m", "coloring mode: 1/basic, 2/complex (default basic)")
	flags.IntVarP(&opts.width, "width", "W", 0, fmt.Sprintf("canvas width in pixels (default %d)", pipeline.DefaultWidth))
	flags.IntVarP(&opts.height, "height", "H", 0, fmt.Sprintf("canvas height in pixels (default %d)", pipeline.DefaultHeight))
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (default random)")
	flags.StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default <mode>-tree.<format>)")
	flags.IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "collapse subtrees below this depth (0 = full tree)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{splittree.FormatDOT, splittree.FormatSVG, splittree.FormatPNG}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runTree(ctx context.Context, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	if opts.maxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max-depth must not be negative, got %d", opts.maxDepth)
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))

	// Reuse pipeline validation so tree and generate agree on defaults.
	po := pipeline.Options{Mode: opts.mode, Width: opts.width, Height: opts.height, Seed: opts.seed}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}
	seed := po.Seed
	if seed == 0 {
		seed = mondrian.NewSeed()
	}

	prog := newProgress(logger)
	root, st := splittree.Build(canvas.New(po.Width, po.Height), po.Mode, mondrian.NewRand(seed))
	logger.Debug("split tree built", "nodes", root.Count(), "leaves", st.Leaves, "depth", st.MaxDepth)

	dot := splittree.ToDOT(root, splittree.Options{MaxDepth: opts.maxDepth})

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d nodes with Graphviz...", root.Count()))
	spinner.Start()
	data, err := splittree.Render(ctx, dot, format)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s-tree.%s", po.Mode, format)
	}
	if err := writeArtifact(path, data); err != nil {
		return err
	}
	prog.done("tree rendered", "format", format, "nodes", root.Count())

	printSuccess("Drew split tree of a %s picture %s", po.Mode, StyleDim.Render(fmt.Sprintf("(%dx%d)", po.Width, po.Height)))
	printFile(path)
	printStats(st.Leaves, seed, false)
	printNextStep("Paint it", fmt.Sprintf("%s generate -m %s -W %d -H %d --seed %d",
		appName, po.Mode, po.Width, po.Height, seed))
	return nil
}
