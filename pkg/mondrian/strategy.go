package mondrian

import (
	"image"
	"image/color"
)

// Strategy picks the fill color of a leaf region.
//
// origin is the leaf's top-left corner and canvas the bounds of the whole
// buffer being painted. Every call may draw from rng.
type Strategy func(origin image.Point, canvas image.Rectangle, rng Rand) color.RGBA

// Palette is the fixed set of colors used by [Uniform].
var Palette = [4]color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},     // red
	{R: 255, G: 255, B: 0, A: 255},   // yellow
	{R: 0, G: 255, B: 255, A: 255},   // cyan
	{R: 255, G: 255, B: 255, A: 255}, // white
}

// Uniform picks one of the [Palette] colors with equal probability.
// The region position is ignored; exactly one draw is made.
func Uniform(_ image.Point, _ image.Rectangle, rng Rand) color.RGBA {
	return Palette[rng.IntN(len(Palette))]
}

// Quadrant identifies one quarter of the canvas.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the quadrant name.
func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ChannelRange is an inclusive [Min, Max] interval of one color channel.
type ChannelRange struct {
	Min, Max uint8
}

// Contains reports whether v lies within the range.
func (r ChannelRange) Contains(v uint8) bool {
	return v >= r.Min && v <= r.Max
}

func (r ChannelRange) draw(rng Rand) uint8 {
	return r.Min + uint8(rng.IntN(int(r.Max-r.Min)+1))
}

// Bias describes the channel ranges used for one quadrant by [LocationBiased].
type Bias struct {
	Hue     string
	R, G, B ChannelRange
}

// Contains reports whether c was producible by this bias.
func (b Bias) Contains(c color.RGBA) bool {
	return b.R.Contains(c.R) && b.G.Contains(c.G) && b.B.Contains(c.B)
}

// Biases holds the channel ranges per quadrant.
var Biases = [4]Bias{
	TopLeft:     {Hue: "orange", R: ChannelRange{200, 254}, G: ChannelRange{155, 254}, B: ChannelRange{0, 99}},
	TopRight:    {Hue: "blue", R: ChannelRange{0, 114}, G: ChannelRange{0, 114}, B: ChannelRange{155, 254}},
	BottomLeft:  {Hue: "green", R: ChannelRange{0, 149}, G: ChannelRange{155, 254}, B: ChannelRange{0, 149}},
	BottomRight: {Hue: "red", R: ChannelRange{155, 254}, G: ChannelRange{0, 114}, B: ChannelRange{0, 114}},
}

// QuadrantOf classifies p relative to the center of canvas.
// Points exactly on a center line belong to the right or bottom side.
func QuadrantOf(p image.Point, canvas image.Rectangle) Quadrant {
	cx := canvas.Min.X + canvas.Dx()/2
	cy := canvas.Min.Y + canvas.Dy()/2
	switch {
	case p.X < cx && p.Y < cy:
		return TopLeft
	case p.Y < cy:
		return TopRight
	case p.X < cx:
		return BottomLeft
	default:
		return BottomRight
	}
}

// LocationBiased draws a color biased toward the hue of the quadrant holding
// origin. Three draws are made, in R, G, B order.
func LocationBiased(origin image.Point, canvas image.Rectangle, rng Rand) color.RGBA {
	b := Biases[QuadrantOf(origin, canvas)]
	r := b.R.draw(rng)
	g := b.G.draw(rng)
	return color.RGBA{R: r, G: g, B: b.B.draw(rng), A: 255}
}
