package cli

import (
	"context"
	"image"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// showCommand creates the show command for previewing an image in the terminal.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Preview an image in the terminal (any key exits)",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return append(sink.Formats(), "jpg", "tif"), cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("loaded image", "file", args[0], "bounds", img.Bounds())
			return displayImage(cmd.Context(), img)
		},
	}
}

// readImage decodes an image file, choosing the codec from its extension.
func readImage(path string) (image.Image, error) {
	format, err := sink.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "%s does not exist", path)
	}
	if err != nil {
		return nil, err
	}
	return sink.Decode(data, format)
}

// displayImage takes over the terminal until a key is pressed or ctx ends.
func displayImage(ctx context.Context, img image.Image) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "open terminal")
	}
	return sink.Display(ctx, screen, img)
}
