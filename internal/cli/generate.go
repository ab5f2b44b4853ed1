package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	mode        mondrian.Mode
	width       int
	height      int
	seed        uint64
	formats     string // comma-separated
	output      string // file path, or base path for several files
	count       int
	jpegQuality int
	show        bool
	noCache     bool
	noPrompt    bool
}

// generateCommand creates the generate command.
//
// Flags left unset fall back to the [generate] section of the config file.
// When mode or size is still missing and both stdin and stdout are terminals,
// an interactive wizard asks for them.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{count: 1}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Paint Mondrian-style pictures",
		Example: `  mondrian generate
  mondrian generate -m complex -W 800 -H 600 -o art.png --show
  mondrian generate -m 1 -W 300 -H 300 --seed 42 -f png,jpeg
  mondrian generate -m basic -n 5 -o gallery/basic.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateConfig(cmd, &opts)
			if err := c.promptMissing(cmd.Context(), &opts); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.mode, "mode", "m", "coloring mode: 1/basic, 2/complex")
	flags.IntVarP(&opts.width, "width", "W", 0, fmt.Sprintf("canvas width in pixels (default %d)", pipeline.DefaultWidth))
	flags.IntVarP(&opts.height, "height", "H", 0, fmt.Sprintf("canvas height in pixels (default %d)", pipeline.DefaultHeight))
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible picture (default random)")
	flags.StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(sink.Formats(), ", ")+" (comma-separated)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file, or base path for several files (default <mode>.<ext>)")
	flags.IntVarP(&opts.count, "count", "n", opts.count, "number of pictures to generate")
	flags.IntVar(&opts.jpegQuality, "jpeg-quality", 0, fmt.Sprintf("JPEG quality 1-100 (default %d)", sink.DefaultJPEGQuality))
	flags.BoolVar(&opts.show, "show", false, "preview the picture in the terminal when done")
	flags.BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the artifact cache")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "never ask interactively; use defaults for missing values")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"basic\tpalette colors", "complex\tquadrant-biased colors"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sink.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// applyGenerateConfig fills flags the user did not set from the config file.
func (c *CLI) applyGenerateConfig(cmd *cobra.Command, opts *generateOpts) {
	g := c.Config.Generate
	changed := cmd.Flags().Changed

	c.applyCanvasConfig(cmd, &opts.mode, &opts.width, &opts.height, &opts.seed)
	if !changed("format") && len(g.Formats) > 0 {
		opts.formats = strings.Join(g.Formats, ",")
	}
	if !changed("output") && g.Output != "" {
		opts.output = g.Output
	}
	if !changed("jpeg-quality") && g.JPEGQuality > 0 {
		opts.jpegQuality = g.JPEGQuality
	}
}

// promptMissing runs the wizard for a missing mode or size.
func (c *CLI) promptMissing(ctx context.Context, opts *generateOpts) error {
	askMode := opts.mode == 0
	askSize := opts.width == 0 || opts.height == 0
	if !askMode && !askSize {
		return nil
	}
	if opts.noPrompt || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		c.Logger.Debug("using defaults for unset options", "mode", askMode, "size", askSize)
		return nil
	}

	m, err := runWizard(ctx, os.Stdin, os.Stdout, askMode, askSize)
	if err != nil {
		return err
	}
	if askMode {
		opts.mode = m.Mode
	}
	if opts.width == 0 {
		opts.width = m.Width
	}
	if opts.height == 0 {
		opts.height = m.Height
	}
	return nil
}

// applyCanvasConfig fills the mode, size and seed flags the user did not set
// from the [generate] config section. Both generate and tree use it, so
// "mondrian tree" explains the picture "mondrian generate" paints.
func (c *CLI) applyCanvasConfig(cmd *cobra.Command, mode *mondrian.Mode, width, height *int, seed *uint64) {
	g := c.Config.Generate
	changed := cmd.Flags().Changed

	if !changed("mode") && g.Mode != "" {
		// Validated when the config was loaded.
		*mode, _ = mondrian.ParseMode(g.Mode)
	}
	if !changed("width") && g.Width > 0 {
		*width = g.Width
	}
	if !changed("height") && g.Height > 0 {
		*height = g.Height
	}
	if !changed("seed") && g.Seed != 0 {
		*seed = g.Seed
	}
}

// runGenerate paints opts.count pictures and writes every requested format.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	if opts.count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "count must be at least 1, got %d", opts.count)
	}
	if opts.seed > math.MaxUint64-uint64(opts.count-1) {
		// Seeds seed..seed+count-1 must not wrap around to 0 (a random seed).
		return errors.New(errors.ErrCodeInvalidInput, "seed %d is too large for %d pictures", opts.seed, opts.count)
	}
	formats := parseFormats(opts.formats)
	if len(formats) == 0 && opts.output != "" {
		// "-o art.jpg" alone selects JPEG.
		if f, err := sink.FormatFromPath(opts.output); err == nil {
			formats = []string{f}
		}
	}

	base := pipeline.Options{
		Mode:        opts.mode,
		Width:       opts.width,
		Height:      opts.height,
		Formats:     formats,
		JPEGQuality: opts.jpegQuality,
	}
	if err := base.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if base.Width < errors.RecommendedMinSize || base.Height < errors.RecommendedMinSize {
		printWarning("Canvases under %dx%d px may come out as very few regions", errors.RecommendedMinSize, errors.RecommendedMinSize)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var (
		last     *pipeline.Result
		lastPath string
	)
	for i := range opts.count {
		run := base
		if opts.seed != 0 {
			run.Seed = opts.seed + uint64(i)
		}

		res, err := runner.Generate(ctx, run)
		if err != nil {
			return err
		}

		paths := outputPaths(opts.output, base.Mode, res.Formats, i, opts.count)
		for _, f := range res.Formats {
			if err := writeArtifact(paths[f], res.Artifacts[f]); err != nil {
				return err
			}
		}

		printSuccess("Generated %s picture %s", base.Mode, StyleDim.Render(fmt.Sprintf("(%dx%d)", base.Width, base.Height)))
		for _, f := range res.Formats {
			printFile(paths[f])
		}
		printStats(res.Stats.Leaves, res.Seed, res.CacheInfo.Hit)

		last, lastPath = res, paths[res.Formats[0]]
	}
	prog.done("generation complete", "pictures", opts.count, "mode", base.Mode)

	if opts.show {
		img, err := last.Decode()
		if err != nil {
			return err
		}
		if err := displayImage(ctx, img); err != nil {
			return err
		}
	} else {
		printNextStep("Preview", fmt.Sprintf("%s show %s", appName, lastPath))
	}
	printInfo("Enjoy your artwork!")
	return nil
}

// outputPaths returns the file path for every format of picture index out of count.
//
// Without a base the files are named after the mode (basic.png). A base whose
// extension names an image format has that extension replaced per format, so
// "-o art.png -f png,jpeg" writes art.png and art.jpg. With count > 1 the
// picture number is appended to the stem (basic-1.png, basic-2.png, ...).
func outputPaths(base string, mode mondrian.Mode, formats []string, index, count int) map[string]string {
	stem := base
	if stem == "" {
		stem = mode.String()
	} else if _, err := sink.FormatFromPath(stem); err == nil {
		stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	}
	if count > 1 {
		stem = fmt.Sprintf("%s-%d", stem, index+1)
	}

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		ext := sink.Ext(f)
		// Keep the user's spelling (.jpeg vs .jpg) when it names this format.
		if got, err := sink.FormatFromPath(base); err == nil && got == f {
			ext = strings.TrimPrefix(filepath.Ext(base), ".")
		}
		paths[f] = stem + "." + ext
	}
	return paths
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
