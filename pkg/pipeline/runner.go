package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/canvas"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Generate paints one canvas and encodes it in every requested format.
//
// Only runs with a caller-supplied seed touch the cache; a zero Seed gets a
// fresh one and the result is never stored. Unless opts.Refresh is set,
// seeded artifacts are served from the cache when all formats are present;
// the image itself is then not regenerated.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seeded := opts.Seed != 0
	if !seeded {
		opts.Seed = mondrian.NewSeed()
	}

	if seeded && !opts.Refresh {
		if res, ok := r.fromCache(ctx, opts); ok {
			r.Logger.Debug("served from cache",
				"mode", opts.Mode,
				"width", opts.Width,
				"height", opts.Height,
				"seed", opts.Seed)
			return res, nil
		}
	}

	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, opts.Mode.String(), opts.Width, opts.Height)

	start := time.Now()
	img := canvas.New(opts.Width, opts.Height)
	st := mondrian.Generate(img, opts.Mode, mondrian.NewRand(opts.Seed))
	genTime := time.Since(start)

	result := &Result{
		Image:     img,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Formats:   opts.Formats,
		Seed:      opts.Seed,
		Stats:     Stats{Stats: st, GenerateTime: genTime},
	}

	r.Logger.Info("generated canvas",
		"mode", opts.Mode,
		"width", opts.Width,
		"height", opts.Height,
		"seed", opts.Seed,
		"leaves", st.Leaves,
		"duration", genTime)

	encStart := time.Now()
	for _, format := range opts.Formats {
		data, err := sink.Encode(img, format, sink.WithJPEGQuality(opts.JPEGQuality))
		if err != nil {
			hooks.OnGenerateComplete(ctx, opts.Mode.String(), st.Leaves, time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
		}
		result.Artifacts[format] = data
	}
	result.Stats.EncodeTime = time.Since(encStart)
	hooks.OnGenerateComplete(ctx, opts.Mode.String(), st.Leaves, time.Since(start), nil)

	r.Logger.Debug("encoded artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	if seeded {
		r.store(ctx, opts, result)
	}
	return result, nil
}

// fromCache returns a result when the stats and every artifact are cached.
func (r *Runner) fromCache(ctx context.Context, opts Options) (*Result, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, r.Keyer.StatsKey(opts.ArtifactKeyOpts("")))
	if err != nil || !hit {
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, "stats")
		return nil, false
	}
	var st mondrian.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		hooks.OnCacheMiss(ctx, "stats")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "stats")

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}

	return &Result{
		Artifacts: artifacts,
		Formats:   opts.Formats,
		Seed:      opts.Seed,
		Stats:     Stats{Stats: st},
		CacheInfo: CacheInfo{Hit: true},
	}, true
}

// store writes stats and artifacts. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, opts Options, res *Result) {
	hooks := observability.Cache()
	ttl := r.TTL

	for format, data := range res.Artifacts {
		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format)), data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			return
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	// Stats go last so a partial write never looks like a complete entry.
	data, _ := json.Marshal(res.Stats.Stats)
	if err := r.Cache.Set(ctx, r.Keyer.StatsKey(opts.ArtifactKeyOpts("")), data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	hooks.OnCacheSet(ctx, "stats", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
