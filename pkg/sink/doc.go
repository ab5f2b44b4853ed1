// Package sink hands finished canvases to the outside world.
//
// # File Formats
//
// [Encode] turns an image into bytes for one of the [ValidFormats]:
//
//   - png: lossless, the default
//   - jpeg: lossy, quality set with [WithJPEGQuality]
//   - bmp, tiff: uncompressed, via golang.org/x/image
//
// Borders are exactly one pixel wide, so lossy JPEG output blurs the grid
// lines; prefer png when the picture will be inspected closely.
//
// # Terminal
//
// [Preview] draws an image onto a tcell screen with half-block cells (two
// vertical pixels per cell) and [Display] keeps it on screen until a key is
// pressed.
package sink
