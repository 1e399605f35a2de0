// Package pipeline runs the seatplan compile pipeline with caching.
//
// The CLI and any embedding host go through the same [Runner] so they share
// one caching and logging policy:
//
//  1. Build: compile the venue geometry (cached by venue content hash and
//     standing settings)
//  2. Overlay: merge the live override lists (never cached)
//  3. Report: collect override conflicts, unknown override ids and
//     duplicate seat ids as warnings
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, venue, overrides, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	io.WriteLayout(result.Layout, os.Stdout)
//
// Standing tickets added on demand go through [Runner.AddStanding], which
// restores and updates the editing session passed in Options.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout/overlay"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/session"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// CompilerVersion is part of every layout cache key. Bump it whenever the
// geometry produced for an unchanged venue changes.
const CompilerVersion = "1"

// Options configures a pipeline run.
type Options struct {
	// Seed and Strategy configure standing-id synthesis.
	Seed     uint64            `json:"seed,omitempty"`
	Strategy standing.Strategy `json:"strategy,omitempty"`

	// Refresh recomputes the geometry even when a cached copy exists.
	Refresh bool `json:"refresh,omitempty"`

	// Session, if set, supplies previously issued standing ids and receives
	// the ids issued during the run.
	Session    *session.Session `json:"-"`
	SessionTTL time.Duration    `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = standing.DefaultSeed
	}
	if o.Strategy == "" {
		o.Strategy = standing.StrategyRandom
	}
	if o.SessionTTL == 0 {
		o.SessionTTL = session.DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values.
func (o *Options) Validate() error {
	if _, err := standing.ParseStrategy(string(o.Strategy)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	if o.SessionTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session ttl cannot be negative")
	}
	return nil
}

// LayoutKeyOpts returns the cache key options for the geometry.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		Seed:     o.Seed,
		Strategy: string(o.Strategy),
		Version:  CompilerVersion,
	}
	if o.Session != nil {
		opts.Session = o.Session.ID
	}
	return opts
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the compiled layout with statuses merged.
	Layout venue.Layout

	// VenueHash is the content hash of the venue.
	VenueHash string

	// Conflicts lists seats named by more than one override category.
	Conflicts []overlay.Conflict

	// Unmatched lists override ids that name no seat.
	Unmatched []string

	// Duplicates lists seat ids produced more than once.
	Duplicates []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Sections  int
	Overrides int
	BuildTime time.Duration
	Seats     venue.Stats
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	BuildHit bool // Whether the geometry came from the cache
}

// VenueHash returns the content hash of v's canonical JSON encoding.
func VenueHash(v venue.Venue) (string, error) {
	h, err := cache.HashJSON(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash venue")
	}
	return h, nil
}
