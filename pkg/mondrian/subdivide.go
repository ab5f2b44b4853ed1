package mondrian

import (
	"image"
	"image/color"
	"image/draw"
)

// minSplitSize is the smallest extent that can be cut into two non-empty parts.
const minSplitSize = 2

// Option configures a call to [Subdivide] or [Generate].
type Option func(*subdivider)

// WithLeafHook calls fn for every leaf region with the color chosen for it.
// Leaves too thin to have an interior are reported too; fn sees the full
// leaf rectangle, not the painted interior.
func WithLeafHook(fn func(leaf image.Rectangle, c color.RGBA)) Option {
	return func(s *subdivider) { s.onLeaf = fn }
}

// WithSplitHook calls fn for every split, before descending into parts.
// parts are listed in recursion order and must not be retained.
func WithSplitHook(fn func(parent image.Rectangle, parts []image.Rectangle)) Option {
	return func(s *subdivider) { s.onSplit = fn }
}

// WithStats accumulates counters for the run into st.
func WithStats(st *Stats) Option {
	return func(s *subdivider) { s.stats = st }
}

// Stats summarizes one subdivision run.
type Stats struct {
	Leaves   int // leaf regions, including those too thin to paint
	Painted  int // leaves with a non-empty interior
	Splits   int // recursive cases taken
	MaxDepth int // deepest recursion level, the initial region being 0
}

type subdivider struct {
	dst        draw.Image
	canvas     image.Rectangle
	minW, minH int
	pick       Strategy
	rng        Rand

	onLeaf  func(image.Rectangle, color.RGBA)
	onSplit func(image.Rectangle, []image.Rectangle)
	stats   *Stats
}

// Subdivide recursively partitions r and paints every leaf into dst.
//
// The split thresholds are a quarter of dst's width and height and stay fixed
// for the whole recursion:
//
//   - large in both axes: one split point per axis, four quadrants visited
//     top-left, top-right, bottom-left, bottom-right
//   - large in height only: split into top and bottom
//   - large in width only: split into left and right
//   - otherwise: leaf, filled with pick's color except for its outer ring
//
// Split points lie strictly inside the region, so every part is non-empty and
// smaller than its parent. The same rng is used for every draw, split points
// first (x before y) and then leaf colors in visiting order.
//
// r must lie within dst.Bounds().
func Subdivide(dst draw.Image, r image.Rectangle, pick Strategy, rng Rand, opts ...Option) {
	b := dst.Bounds()
	s := &subdivider{
		dst:    dst,
		canvas: b,
		minW:   b.Dx() / 4,
		minH:   b.Dy() / 4,
		pick:   pick,
		rng:    rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stats == nil {
		s.stats = &Stats{}
	}
	s.divide(r, 0)
}

func (s *subdivider) divide(r image.Rectangle, depth int) {
	s.stats.MaxDepth = max(s.stats.MaxDepth, depth)

	w, h := r.Dx(), r.Dy()
	wide := w >= s.minW && w >= minSplitSize
	tall := h >= s.minH && h >= minSplitSize

	switch {
	case wide && tall:
		x := s.splitPoint(r.Min.X, w)
		y := s.splitPoint(r.Min.Y, h)
		s.descend(r, depth,
			image.Rect(r.Min.X, r.Min.Y, x, y),
			image.Rect(x, r.Min.Y, r.Max.X, y),
			image.Rect(r.Min.X, y, x, r.Max.Y),
			image.Rect(x, y, r.Max.X, r.Max.Y),
		)
	case tall:
		y := s.splitPoint(r.Min.Y, h)
		s.descend(r, depth,
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, y),
			image.Rect(r.Min.X, y, r.Max.X, r.Max.Y),
		)
	case wide:
		x := s.splitPoint(r.Min.X, w)
		s.descend(r, depth,
			image.Rect(r.Min.X, r.Min.Y, x, r.Max.Y),
			image.Rect(x, r.Min.Y, r.Max.X, r.Max.Y),
		)
	default:
		s.paint(r)
	}
}

// splitPoint returns a coordinate in (start, start+size).
func (s *subdivider) splitPoint(start, size int) int {
	return start + 1 + s.rng.IntN(size-1)
}

func (s *subdivider) descend(parent image.Rectangle, depth int, parts ...image.Rectangle) {
	s.stats.Splits++
	if s.onSplit != nil {
		s.onSplit(parent, parts)
	}
	for _, p := range parts {
		s.divide(p, depth+1)
	}
}

func (s *subdivider) paint(r image.Rectangle) {
	c := s.pick(r.Min, s.canvas, s.rng)
	s.stats.Leaves++
	if s.onLeaf != nil {
		s.onLeaf(r, c)
	}

	interior := r.Inset(1)
	if interior.Empty() {
		return
	}
	s.stats.Painted++
	draw.Draw(s.dst, interior, image.NewUniform(c), image.Point{}, draw.Src)
}
