package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/session"
	"github.com/matzehuels/seatplan/pkg/venue"
)

func hall() venue.Venue {
	return venue.Venue{
		Name: "Riverside Hall",
		Sections: []venue.Section{
			{
				ID: "stalls", Name: "Stalls", Rows: 2, SeatsPerRow: 4,
				Kind: venue.KindSeated, Numbering: venue.NumberingContinuous,
				RowConfigs: []venue.RowConfig{
					{FromRow: 1, ToRow: 2, FromColumn: 1, ToColumn: 4, Direction: venue.DirectionLeft},
				},
			},
			{
				ID: "floor", Name: "Floor", Y: 100, Rows: 4, SeatsPerRow: 8,
				Kind: venue.KindStanding, Numbering: venue.NumberingContinuous,
			},
		},
	}
}

func fileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func standingSeat(t *testing.T, l venue.Layout) venue.Seat {
	t.Helper()
	for _, s := range l.Seats {
		if s.Standing {
			return s
		}
	}
	t.Fatal("layout has no standing seat")
	return venue.Seat{}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Seed != standing.DefaultSeed {
		t.Errorf("Seed = %d, want %d", o.Seed, standing.DefaultSeed)
	}
	if o.Strategy != standing.StrategyRandom {
		t.Errorf("Strategy = %q, want random", o.Strategy)
	}
	if o.SessionTTL != session.DefaultTTL {
		t.Errorf("SessionTTL = %v", o.SessionTTL)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"sequential", Options{Strategy: standing.StrategySequential}, false},
		{"unknown strategy", Options{Strategy: "shuffle"}, true},
		{"negative ttl", Options{SessionTTL: -time.Hour}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestLayoutKeyOptsIncludesSession(t *testing.T) {
	o := Options{Seed: 7, Strategy: standing.StrategySequential}
	if got := o.LayoutKeyOpts(); got.Session != "" || got.Seed != 7 || got.Version != CompilerVersion {
		t.Errorf("LayoutKeyOpts() = %+v", got)
	}
	o.Session = &session.Session{ID: "abc"}
	if got := o.LayoutKeyOpts(); got.Session != "abc" {
		t.Errorf("Session = %q, want abc", got.Session)
	}
}

func TestExecuteMergesOverrides(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	overrides := venue.OverrideSet{
		Reserved: []venue.Override{{SeatID: "S-A1", Reason: "press"}},
		Sold:     []venue.Override{{SeatID: "S-A1"}, {SeatID: "S-B2"}},
		Blocked:  []venue.Override{{SeatID: "ZZ-9"}},
	}

	result, err := r.Execute(context.Background(), hall(), overrides, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if n := len(result.Layout.Seats); n != 9 {
		t.Fatalf("seats = %d, want 9", n)
	}
	if s, _ := result.Layout.Find("S-A1"); s.Status != venue.StatusSold {
		t.Errorf("S-A1 status = %q, want sold", s.Status)
	}
	if s, _ := result.Layout.Find("S-B2"); s.Status != venue.StatusSold {
		t.Errorf("S-B2 status = %q, want sold", s.Status)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Resolved != venue.StatusSold {
		t.Errorf("Conflicts = %+v", result.Conflicts)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != "ZZ-9" {
		t.Errorf("Unmatched = %v, want [ZZ-9]", result.Unmatched)
	}
	if len(result.Duplicates) != 0 {
		t.Errorf("Duplicates = %v", result.Duplicates)
	}
	if result.CacheInfo.BuildHit {
		t.Error("null cache should never hit")
	}
	if result.VenueHash == "" {
		t.Error("VenueHash is empty")
	}
	if result.Stats.Overrides != 4 || result.Stats.Sections != 2 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestExecuteCachesGeometry(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()

	first, err := r.Execute(ctx, hall(), venue.OverrideSet{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, hall(), venue.OverrideSet{Sold: []venue.Override{{SeatID: "S-A2"}}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.BuildHit || !second.CacheInfo.BuildHit {
		t.Fatalf("hits = %v, %v; want false, true", first.CacheInfo.BuildHit, second.CacheInfo.BuildHit)
	}
	if s, _ := second.Layout.Find("S-A2"); s.Status != venue.StatusSold {
		t.Errorf("overlay must be applied to cached geometry, S-A2 = %q", s.Status)
	}

	third, err := r.Execute(ctx, hall(), venue.OverrideSet{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(first.Layout)
	b, _ := json.Marshal(third.Layout)
	if string(a) != string(b) {
		t.Errorf("cached layout differs from fresh layout:\n%s\n%s", a, b)
	}
}

func TestExecuteCacheKeyOptions(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()
	if _, err := r.Execute(ctx, hall(), venue.OverrideSet{}, Options{}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"refresh", Options{Refresh: true}},
		{"other seed", Options{Seed: 7}},
		{"other strategy", Options{Strategy: standing.StrategySequential}},
		{"session", Options{Session: session.New("hall.toml", "h", time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Execute(ctx, hall(), venue.OverrideSet{}, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if result.CacheInfo.BuildHit {
				t.Error("expected a cache miss")
			}
		})
	}

	v := hall()
	v.Sections[0].SeatsPerRow = 5
	result, err := r.Execute(ctx, v, venue.OverrideSet{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.BuildHit {
		t.Error("changed venue should miss")
	}
}

func TestExecuteCorruptCacheEntry(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()

	opts := Options{}
	opts.SetDefaults()
	hash, err := VenueHash(hall())
	if err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())
	if err := r.Cache.Set(ctx, key, []byte("{not json"), time.Hour); err != nil {
		t.Fatal(err)
	}

	result, err := r.Execute(ctx, hall(), venue.OverrideSet{}, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.BuildHit || len(result.Layout.Seats) != 9 {
		t.Errorf("corrupt entry should be recomputed, hit=%v seats=%d", result.CacheInfo.BuildHit, len(result.Layout.Seats))
	}

	result, err = r.Execute(ctx, hall(), venue.OverrideSet{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !result.CacheInfo.BuildHit {
		t.Error("recomputed entry should be cached")
	}
}

func TestExecuteRecordsSession(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	sess := session.New("hall.toml", "h", time.Hour)

	result, err := r.Execute(context.Background(), hall(), venue.OverrideSet{}, Options{Session: sess})
	if err != nil {
		t.Fatal(err)
	}
	primary := standingSeat(t, result.Layout)
	ids := sess.Standing["floor"]
	if len(ids) != 1 || ids[0] != primary.ID {
		t.Errorf("session standing = %v, want [%s]", ids, primary.ID)
	}

	again, err := r.Execute(context.Background(), hall(), venue.OverrideSet{}, Options{Session: sess, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	if got := standingSeat(t, again.Layout).ID; got != primary.ID {
		t.Errorf("primary id changed within a session: %s -> %s", primary.ID, got)
	}
}

func TestAddStanding(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()
	sess := session.New("hall.toml", "h", time.Hour)
	opts := Options{Session: sess}

	first, err := r.AddStanding(ctx, hall(), "floor", 3, opts)
	if err != nil {
		t.Fatalf("AddStanding: %v", err)
	}
	second, err := r.AddStanding(ctx, hall(), "floor", 2, opts)
	if err != nil {
		t.Fatalf("AddStanding: %v", err)
	}

	ids := sess.Standing["floor"]
	if len(ids) != 6 {
		t.Fatalf("session holds %d ids, want 6: %v", len(ids), ids)
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate standing id %s", id)
		}
		seen[id] = true
	}
	for _, s := range append(first, second...) {
		if !s.Standing || s.SectionID != "floor" {
			t.Errorf("seat %+v is not a floor standing seat", s)
		}
		if s.ID == ids[0] {
			t.Errorf("added seat reused the primary id %s", s.ID)
		}
	}

	result, err := r.Execute(ctx, hall(), venue.OverrideSet{}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := standingSeat(t, result.Layout).ID; got != ids[0] {
		t.Errorf("primary = %s, want %s", got, ids[0])
	}
}

func TestAddStandingErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		section string
		n       int
		code    errors.Code
	}{
		{"unknown section", "balcony", 1, errors.ErrCodeSectionNotFound},
		{"seated section", "stalls", 1, errors.ErrCodeInvalidSection},
		{"zero count", "floor", 0, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.AddStanding(ctx, hall(), tt.section, tt.n, Options{})
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, hall(), venue.OverrideSet{}, Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type countingHooks struct {
	observability.NoopCompileHooks
	observability.NoopCacheHooks
	starts, completes, overlays int
	hits, misses, sets          int
}

func (h *countingHooks) OnCompileStart(context.Context, string, int) { h.starts++ }
func (h *countingHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
	h.completes++
}
func (h *countingHooks) OnOverlay(context.Context, int, int) { h.overlays++ }
func (h *countingHooks) OnCacheHit(context.Context, string) { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string) { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestExecuteEmitsHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetCompileHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := fileRunner(t)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), hall(), venue.OverrideSet{}, Options{}); err != nil {
			t.Fatal(err)
		}
	}

	if h.starts != 2 || h.completes != 2 || h.overlays != 2 {
		t.Errorf("compile hooks = %d/%d/%d, want 2/2/2", h.starts, h.completes, h.overlays)
	}
	if h.misses != 1 || h.sets != 1 || h.hits != 1 {
		t.Errorf("cache hooks miss/set/hit = %d/%d/%d, want 1/1/1", h.misses, h.sets, h.hits)
	}
}
