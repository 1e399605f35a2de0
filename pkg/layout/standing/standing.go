// Package standing synthesizes seat records for standing capacity pools.
//
// A standing section has no seat grid. It is represented by one or more
// circular seat records centred on the section rectangle, each with an id of
// the form {prefix}-ST-NNN. The [Synthesizer] that hands out these ids is
// scoped to an editing session: it remembers every id it has issued so that
// standing tickets added on demand never collide with earlier ones.
package standing

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/matzehuels/seatplan/pkg/venue"
)

// Strategy selects how standing-id suffixes are chosen.
type Strategy string

const (
	// StrategyRandom rolls a random three-digit suffix and re-rolls on collision.
	StrategyRandom Strategy = "random"
	// StrategySequential numbers tickets 001, 002, ... per section.
	StrategySequential Strategy = "sequential"
)

const (
	// DefaultSeed seeds the random source when Options.Seed is zero.
	DefaultSeed = uint64(42)

	// MaxRolls bounds the random rolls per id before the synthesizer
	// switches to the section's sequential counter.
	MaxRolls = 1000

	suffixSpace = 1000
)

// Options configures a Synthesizer.
type Options struct {
	Seed     uint64
	Strategy Strategy

	// OnExhausted is called when random rolling gives up and an id is taken
	// from the sequential counter instead.
	OnExhausted func(section, id string, rolls int)
}

// Synthesizer issues standing seats with session-unique ids.
// It is safe for concurrent use.
type Synthesizer struct {
	mu          sync.Mutex
	rng         *rand.Rand
	strategy    Strategy
	onExhausted func(section, id string, rolls int)

	used    map[string]bool
	issued  map[string][]string   // section key -> ids in issue order
	latest  map[string]venue.Seat // section key -> most recent seat
	counter map[string]int
}

// New returns a Synthesizer with an empty used-id set.
func New(opts Options) *Synthesizer {
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyRandom
	}
	return &Synthesizer{
		rng:         rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		strategy:    strategy,
		onExhausted: opts.OnExhausted,
		used:        make(map[string]bool),
		issued:      make(map[string][]string),
		latest:      make(map[string]venue.Seat),
		counter:     make(map[string]int),
	}
}

// ParseStrategy converts a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyRandom:
		return StrategyRandom, nil
	case StrategySequential:
		return StrategySequential, nil
	default:
		return "", fmt.Errorf("unknown standing strategy %q", s)
	}
}

// Synthesize returns the primary standing seat of section. The first call
// for a section issues a fresh id; later calls in the same session return
// the same id so repeated compilations agree.
func (s *Synthesizer) Synthesize(section venue.Section) venue.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primary(section)
}

// AddAnother issues an additional standing seat for section, placed at the
// section's most recent standing seat with up to StandingJitter units of
// random displacement on each axis.
func (s *Synthesizer) AddAnother(section venue.Section) venue.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := section.Key()
	base, ok := s.latest[key]
	if !ok {
		base = s.primary(section)
	}

	seat := base
	seat.ID = s.nextID(section)
	seat.CX = base.CX + s.jitter()
	seat.CY = base.CY + s.jitter()
	s.record(key, seat)
	return seat
}

// Used returns every id issued in this session, sorted.
func (s *Synthesizer) Used() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.used))
	for id := range s.used {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Issued returns a copy of the ids issued per section key, in issue order.
// The first id of each section is its primary standing seat.
func (s *Synthesizer) Issued() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string, len(s.issued))
	for k, ids := range s.issued {
		out[k] = append([]string(nil), ids...)
	}
	return out
}

// Restore marks the given ids as issued, e.g. when resuming a saved session.
// Positions are not restored: additional seats for a restored section are
// jittered around the section centre.
func (s *Synthesizer) Restore(issued map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ids := range issued {
		for _, id := range ids {
			if s.used[id] {
				continue
			}
			s.used[id] = true
			s.issued[k] = append(s.issued[k], id)
		}
	}
}

// primary returns the first seat issued for section, issuing it if needed.
func (s *Synthesizer) primary(section venue.Section) venue.Seat {
	key := section.Key()
	seat := centre(section)
	if ids := s.issued[key]; len(ids) > 0 {
		seat.ID = ids[0]
		return seat
	}
	seat.ID = s.nextID(section)
	s.record(key, seat)
	return seat
}

func (s *Synthesizer) record(key string, seat venue.Seat) {
	s.used[seat.ID] = true
	s.issued[key] = append(s.issued[key], seat.ID)
	s.latest[key] = seat
}

// nextID picks an unused id for section according to the strategy.
func (s *Synthesizer) nextID(section venue.Section) string {
	prefix := section.Initial()
	if s.strategy == StrategyRandom {
		for i := 0; i < MaxRolls; i++ {
			id := format(prefix, s.rng.IntN(suffixSpace))
			if !s.used[id] {
				return id
			}
		}
		id := s.sequential(section.Key(), prefix)
		if s.onExhausted != nil {
			s.onExhausted(section.Key(), id, MaxRolls)
		}
		return id
	}
	return s.sequential(section.Key(), prefix)
}

// sequential advances the section counter to the next unused id.
// Ids past 999 widen to four or more digits.
func (s *Synthesizer) sequential(key, prefix string) string {
	for {
		s.counter[key]++
		if id := format(prefix, s.counter[key]); !s.used[id] {
			return id
		}
	}
}

func (s *Synthesizer) jitter() float64 {
	return (s.rng.Float64()*2 - 1) * venue.StandingJitter
}

func format(prefix string, n int) string {
	return fmt.Sprintf("%s-ST-%03d", prefix, n)
}

// centre builds the seat record shared by all standing tickets of section.
func centre(section venue.Section) venue.Seat {
	span := max(section.SeatsPerRow, section.Rows)
	return venue.Seat{
		SectionID: section.Key(),
		Tier:      section.Tier,
		Price:     section.Price,
		Color:     section.Color,
		CX:        section.X + section.Width()/2,
		CY:        section.Y + section.Height()/2,
		Standing:  true,
		Radius:    float64(span) * venue.GridStep / 4,
		Status:    venue.StatusAvailable,
	}
}
