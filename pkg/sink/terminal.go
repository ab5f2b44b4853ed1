package sink

import (
	"context"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// halfBlock draws the top pixel as foreground and the bottom one as background.
const halfBlock = '▀'

// PreviewSize returns the pixel size img is scaled to so that it fits a
// cols×rows terminal with two pixels per cell, preserving aspect ratio.
func PreviewSize(img image.Rectangle, cols, rows int) image.Point {
	w, h := img.Dx(), img.Dy()
	if w == 0 || h == 0 || cols <= 0 || rows <= 0 {
		return image.Point{}
	}
	maxW, maxH := cols, rows*2
	tw, th := maxW, h*maxW/w
	if th > maxH {
		tw, th = w*maxH/h, maxH
	}
	return image.Pt(max(tw, 1), max(th, 1))
}

// Preview scales img to the screen and draws it with half-block cells.
func Preview(screen tcell.Screen, img image.Image) {
	screen.Clear()
	cols, rows := screen.Size()
	size := PreviewSize(img.Bounds(), cols, rows)
	if size == (image.Point{}) {
		screen.Show()
		return
	}

	scaled := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	for y := 0; y*2 < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			top := scaled.RGBAAt(x, y*2)
			bottom := top
			if y*2+1 < size.Y {
				bottom = scaled.RGBAAt(x, y*2+1)
			}
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	screen.Show()
}

func termColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Display initializes screen, previews img and blocks until a key is pressed
// or ctx is done. Resizes redraw the preview. The screen is finalized on return.
func Display(ctx context.Context, screen tcell.Screen, img image.Image) error {
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	Preview(screen, img)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				Preview(screen, img)
			case *tcell.EventKey:
				return nil
			}
		}
	}
}
