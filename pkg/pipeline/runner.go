package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/layout/overlay"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Standing ids
// live in the per-run synthesizer and the optional session, so multiple
// goroutines can share one Runner as long as they do not share a session.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached geometry. Zero means cache.TTLLayout.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
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
	}
}

// build is the outcome of the geometry stage.
type build struct {
	layout    venue.Layout
	standing  *standing.Synthesizer
	venueHash string
	hit       bool
}

// Execute compiles v, merges overrides and reports override problems.
// When opts.Session is set, the ids issued during the run are recorded in it;
// persisting the session is up to the caller.
func (r *Runner) Execute(ctx context.Context, v venue.Venue, overrides venue.OverrideSet, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Compile()
	hooks.OnCompileStart(ctx, v.Name, len(v.Sections))
	start := time.Now()

	b, err := r.build(ctx, v, opts)
	if err != nil {
		hooks.OnCompileComplete(ctx, v.Name, 0, time.Since(start), err)
		return nil, err
	}

	l := b.layout
	l.Seats = overlay.Merge(l.Seats, overrides)

	result := &Result{
		Layout:     l,
		VenueHash:  b.venueHash,
		Conflicts:  overlay.Conflicts(overrides),
		Unmatched:  overlay.Unmatched(l.Seats, overrides),
		Duplicates: l.DuplicateIDs(),
		Stats: Stats{
			Sections:  len(v.Sections),
			Overrides: overrides.Len(),
			BuildTime: time.Since(start),
			Seats:     l.Stats(),
		},
		CacheInfo: CacheInfo{BuildHit: b.hit},
	}
	r.report(opts.Logger, result)
	hooks.OnOverlay(ctx, overrides.Len(), len(result.Conflicts))

	if opts.Session != nil {
		opts.Session.Record(b.standing.Issued(), opts.SessionTTL)
	}

	hooks.OnCompileComplete(ctx, v.Name, len(l.Seats), result.Stats.BuildTime, nil)
	opts.Logger.Info("compiled layout",
		"venue", v.Name,
		"seats", len(l.Seats),
		"labels", len(l.Labels),
		"cached", b.hit,
		"duration", result.Stats.BuildTime)

	return result, nil
}

// BuildWithCacheInfo compiles the geometry of v with every seat available
// and reports whether it came from the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, v venue.Venue, opts Options) (venue.Layout, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return venue.Layout{}, false, err
	}
	b, err := r.build(ctx, v, opts)
	if err != nil {
		return venue.Layout{}, false, err
	}
	if opts.Session != nil {
		opts.Session.Record(b.standing.Issued(), opts.SessionTTL)
	}
	return b.layout, b.hit, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, v venue.Venue, opts Options) (venue.Layout, error) {
	l, _, err := r.BuildWithCacheInfo(ctx, v, opts)
	return l, err
}

// AddStanding issues n additional standing tickets for the section whose key
// is sectionKey. The ids never collide with the venue's compiled standing
// seats or with ids recorded in opts.Session, which is updated in place.
func (r *Runner) AddStanding(ctx context.Context, v venue.Venue, sectionKey string, n int, opts Options) ([]venue.Seat, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	sec, ok := v.Section(sectionKey)
	if !ok {
		return nil, errors.New(errors.ErrCodeSectionNotFound, "section %q not found in venue", sectionKey)
	}
	if !sec.IsStanding() {
		return nil, errors.New(errors.ErrCodeInvalidSection, "section %q is not a standing section", sectionKey)
	}
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "ticket count must be positive, got %d", n)
	}

	b, err := r.build(ctx, v, opts)
	if err != nil {
		return nil, err
	}

	seats := make([]venue.Seat, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seats = append(seats, b.standing.AddAnother(sec))
	}
	if opts.Session != nil {
		opts.Session.Record(b.standing.Issued(), opts.SessionTTL)
	}

	opts.Logger.Info("issued standing tickets", "section", sectionKey, "count", n)
	return seats, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLLayout
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	return opts.Validate()
}

// build returns the venue geometry, from the cache when possible. The
// returned synthesizer knows every standing id in the geometry.
func (r *Runner) build(ctx context.Context, v venue.Venue, opts Options) (build, error) {
	hash, err := VenueHash(v)
	if err != nil {
		return build{}, err
	}

	compiler := r.compiler(ctx, opts)
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if err := ctx.Err(); err != nil {
			return build{}, err
		}
		if l, ok := r.cached(ctx, key, opts.Logger); ok {
			compiler.Standing.Restore(standingIssued(l))
			return build{layout: l, standing: compiler.Standing, venueHash: hash, hit: true}, nil
		}
	}

	l := compiler.Build(v.Sections)

	if err := ctx.Err(); err != nil {
		return build{}, err
	}
	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Debug("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}

	return build{layout: l, standing: compiler.Standing, venueHash: hash}, nil
}

// cached loads and decodes a cached layout. Undecodable entries are dropped.
func (r *Runner) cached(ctx context.Context, key string, logger *log.Logger) (venue.Layout, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, cache.KeyTypeLayout)
		return venue.Layout{}, false
	}

	var l venue.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		logger.Debug("dropping corrupt cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		hooks.OnCacheMiss(ctx, cache.KeyTypeLayout)
		return venue.Layout{}, false
	}
	hooks.OnCacheHit(ctx, cache.KeyTypeLayout)
	logger.Debug("layout cache hit", "key", key)
	return l, true
}

// compiler builds a layout compiler whose standing synthesizer is seeded
// from opts and resumes opts.Session.
func (r *Runner) compiler(ctx context.Context, opts Options) *layout.Compiler {
	c := &layout.Compiler{Logger: opts.Logger}
	c.OnExhausted = func(kind, section, label string) {
		observability.Compile().OnExhausted(ctx, kind, section, label)
	}
	c.Standing = standing.New(standing.Options{
		Seed:        opts.Seed,
		Strategy:    opts.Strategy,
		OnExhausted: c.StandingExhausted,
	})
	if opts.Session != nil {
		c.Standing.Restore(opts.Session.Standing)
	}
	return c
}

// report logs override problems found in result.
func (r *Runner) report(logger *log.Logger, result *Result) {
	for _, c := range result.Conflicts {
		logger.Warn("seat listed in several override lists",
			"seat", c.SeatID,
			"lists", c.Categories,
			"status", c.Resolved)
	}
	for _, id := range result.Unmatched {
		logger.Warn("override names unknown seat", "seat", id)
	}
	for _, id := range result.Duplicates {
		logger.Warn("duplicate seat id", "seat", id)
	}
}

// standingIssued groups the standing seat ids of l by section key.
func standingIssued(l venue.Layout) map[string][]string {
	out := make(map[string][]string)
	for _, s := range l.Seats {
		if s.Standing {
			out[s.SectionID] = append(out[s.SectionID], s.ID)
		}
	}
	return out
}
