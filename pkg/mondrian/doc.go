// Package mondrian paints Mondrian-style abstract art into a raster buffer.
//
// # Overview
//
// A canvas is recursively subdivided into axis-aligned rectangles. Regions that
// are at least a quarter of the canvas in both dimensions are split into four,
// regions large in only one dimension are split in two, and everything else
// becomes a leaf that is filled with a single color. Each leaf keeps a one
// pixel unpainted border, which produces the characteristic black grid lines.
//
//	img := canvas.New(600, 600)
//	mondrian.GenerateBasic(img)
//
// # Strategies
//
// Leaf colors come from a [Strategy]:
//
//   - [Uniform]: one of the four [Palette] colors, chosen uniformly
//   - [LocationBiased]: a fresh random color whose channel ranges depend on the
//     canvas quadrant that contains the region's origin (orange, blue, green, red)
//
// [Mode] maps the two user-facing modes (basic, complex) to these strategies.
//
// # Reproducibility
//
// A single [Rand] is threaded through the whole recursion, so one generation is
// one unbroken sequence of draws. Passing a seeded source from [NewRand] makes
// [Generate] bit-for-bit reproducible:
//
//	rng := mondrian.NewRand(42)
//	stats := mondrian.Generate(img, mondrian.ModeComplex, rng)
//
// # Observing a Run
//
// [WithLeafHook] and [WithSplitHook] report every leaf and split as they happen
// without affecting the draw sequence. The split-tree exporter and the
// generation statistics are built on them.
package mondrian
