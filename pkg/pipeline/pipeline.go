// Package pipeline provides the generate → encode → cache pipeline shared by
// the CLI and the HTTP server.
//
// By centralizing this logic, both entry points resolve seeds, apply defaults,
// key the cache and report statistics the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, cache.NewKeyer(""), logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Mode:    mondrian.ModeComplex,
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
//
// A zero Seed asks the runner for a fresh one; the seed actually used is
// returned in [Result.Seed] so the image can be reproduced.
package pipeline

import (
	"image"
	"time"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 600

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultMode is the default coloring mode.
	DefaultMode = mondrian.ModeBasic

	// DefaultFormat is the default output format.
	DefaultFormat = sink.FormatPNG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation.
// This struct supports JSON serialization for API requests.
type Options struct {
	Mode        mondrian.Mode `json:"mode,omitempty"`
	Width       int           `json:"width,omitempty"`
	Height      int           `json:"height,omitempty"`
	Seed        uint64        `json:"seed,omitempty"` // 0 picks a fresh seed
	Formats     []string      `json:"formats,omitempty"`
	JPEGQuality int           `json:"jpeg_quality,omitempty"`
	Refresh     bool          `json:"refresh,omitempty"` // skip cache reads

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Image is the painted canvas. It is nil when every artifact came from
	// the cache; use Decode to recover it.
	Image image.Image

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Formats lists the artifact formats in request order.
	Formats []string

	// Seed is the seed the image was generated with.
	Seed uint64

	// Stats contains subdivision counters and timing.
	Stats Stats

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	mondrian.Stats
	GenerateTime time.Duration `json:"-"`
	EncodeTime   time.Duration `json:"-"`
}

// CacheInfo tracks cache usage for a run.
type CacheInfo struct {
	Hit bool // Whether every artifact came from cache
}

// Decode returns the generated image, decoding it from the first artifact
// when the run was served from the cache. Lossy artifacts are only used when
// no lossless one is available.
func (r *Result) Decode() (image.Image, error) {
	if r.Image != nil {
		return r.Image, nil
	}
	format := ""
	for _, f := range r.Formats {
		if _, ok := r.Artifacts[f]; !ok {
			continue
		}
		if format == "" || (format == sink.FormatJPEG && f != sink.FormatJPEG) {
			format = f
		}
	}
	if format == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "result has no artifacts to decode")
	}
	img, err := sink.Decode(r.Artifacts[format], format)
	if err != nil {
		return nil, err
	}
	r.Image = img
	return img, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Formats are normalized ("jpg" becomes "jpeg") and de-duplicated.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// A zero Seed is kept; the runner resolves it per run.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == 0 {
		o.Mode = DefaultMode
	}
	if !o.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode %d (must be 1/basic or 2/complex)", int(o.Mode))
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateDimensions(o.Width, o.Height, 0, 0); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, 0, len(o.Formats))
	seen := make(map[string]bool, len(o.Formats))
	for _, f := range o.Formats {
		f = sink.NormalizeFormat(f)
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.JPEGQuality == 0 {
		o.JPEGQuality = sink.DefaultJPEGQuality
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "jpeg quality must be between 1 and 100, got %d", o.JPEGQuality)
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
// The seed must already be resolved.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Mode:   o.Mode.String(),
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
		Format: format,
	}
	if format == sink.FormatJPEG {
		opts.JPEGQuality = o.JPEGQuality
	}
	return opts
}
