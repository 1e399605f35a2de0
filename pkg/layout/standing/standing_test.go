package standing

import (
	"math"
	"regexp"
	"testing"

	"github.com/matzehuels/seatplan/pkg/venue"
)

var floor = venue.Section{
	ID: "floor", Name: "Floor", X: 100, Y: 200,
	Rows: 4, SeatsPerRow: 10, Kind: venue.KindStanding,
	Tier: "GA", Price: 35,
}

var idPattern = regexp.MustCompile(`^F-ST-\d{3,}$`)

func TestSynthesize(t *testing.T) {
	s := New(Options{})
	seat := s.Synthesize(floor)

	if !idPattern.MatchString(seat.ID) {
		t.Errorf("ID = %q, want F-ST-NNN", seat.ID)
	}
	if !seat.Standing || seat.Status != venue.StatusAvailable {
		t.Errorf("seat = %+v, want standing and available", seat)
	}
	if seat.Row != "" || seat.Number != 0 {
		t.Errorf("standing seat has row %q number %d", seat.Row, seat.Number)
	}
	if want := 10 * venue.GridStep / 4; seat.Radius != want {
		t.Errorf("Radius = %v, want %v", seat.Radius, want)
	}
	if seat.CX != 100+110 || seat.CY != 200+44 {
		t.Errorf("centre = (%v, %v), want (210, 244)", seat.CX, seat.CY)
	}
	if seat.Tier != "GA" || seat.Price != 35 || seat.SectionID != "floor" {
		t.Errorf("section defaults not copied: %+v", seat)
	}
}

func TestSynthesizeIsStablePerSession(t *testing.T) {
	s := New(Options{})
	first := s.Synthesize(floor)
	s.AddAnother(floor)
	if again := s.Synthesize(floor); again != first {
		t.Errorf("second Synthesize = %+v, want %+v", again, first)
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := New(Options{Seed: 7})
	b := New(Options{Seed: 7})
	for i := 0; i < 10; i++ {
		sa, sb := a.AddAnother(floor), b.AddAnother(floor)
		if sa != sb {
			t.Fatalf("call %d: %+v != %+v", i, sa, sb)
		}
	}
}

func TestAddAnotherUnique(t *testing.T) {
	s := New(Options{})
	seen := map[string]bool{s.Synthesize(floor).ID: true}
	for i := 0; i < 50; i++ {
		seat := s.AddAnother(floor)
		if seen[seat.ID] {
			t.Fatalf("call %d: duplicate id %s", i, seat.ID)
		}
		seen[seat.ID] = true
	}
	if got := len(s.Used()); got != 51 {
		t.Errorf("Used() has %d ids, want 51", got)
	}
}

func TestAddAnotherJitter(t *testing.T) {
	s := New(Options{})
	prev := s.Synthesize(floor)
	for i := 0; i < 20; i++ {
		seat := s.AddAnother(floor)
		if dx := math.Abs(seat.CX - prev.CX); dx > venue.StandingJitter {
			t.Errorf("x jitter %v exceeds %v", dx, venue.StandingJitter)
		}
		if dy := math.Abs(seat.CY - prev.CY); dy > venue.StandingJitter {
			t.Errorf("y jitter %v exceeds %v", dy, venue.StandingJitter)
		}
		if seat.Radius != prev.Radius || !seat.Standing {
			t.Errorf("clone lost fields: %+v", seat)
		}
		prev = seat
	}
}

func TestAddAnotherWithoutPrimary(t *testing.T) {
	s := New(Options{})
	seat := s.AddAnother(floor)
	issued := s.Issued()["floor"]
	if len(issued) != 2 || issued[1] != seat.ID {
		t.Errorf("Issued() = %v, want primary then %s", issued, seat.ID)
	}
}

func TestSequentialStrategy(t *testing.T) {
	s := New(Options{Strategy: StrategySequential})
	want := []string{"F-ST-001", "F-ST-002", "F-ST-003"}
	got := []string{s.Synthesize(floor).ID, s.AddAnother(floor).ID, s.AddAnother(floor).ID}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExhaustionFallsBackToCounter(t *testing.T) {
	var reported []string
	s := New(Options{OnExhausted: func(section, id string, rolls int) {
		if section != "floor" || rolls != MaxRolls {
			t.Errorf("OnExhausted(%q, %q, %d)", section, id, rolls)
		}
		reported = append(reported, id)
	}})

	// Occupy the entire three-digit space so every roll collides.
	all := make([]string, 0, suffixSpace)
	for n := 0; n < suffixSpace; n++ {
		all = append(all, format("F", n))
	}
	s.Restore(map[string][]string{"other": all})

	seat := s.AddAnother(floor)
	if seat.ID != "F-ST-1001" {
		t.Errorf("ID = %s, want F-ST-1001", seat.ID)
	}
	if len(reported) != 2 {
		t.Errorf("OnExhausted called %d times, want 2 (primary and extra)", len(reported))
	}
}

func TestSharedPrefixDoesNotCollide(t *testing.T) {
	s := New(Options{Strategy: StrategySequential})
	fan := venue.Section{ID: "fanzone", Name: "Fan Zone", Kind: venue.KindStanding}
	a := s.Synthesize(floor)
	b := s.Synthesize(fan)
	if a.ID == b.ID {
		t.Errorf("sections sharing prefix F got the same id %s", a.ID)
	}
	if b.ID != "F-ST-002" {
		t.Errorf("fan zone id = %s, want F-ST-002", b.ID)
	}
}

func TestRestore(t *testing.T) {
	s := New(Options{Strategy: StrategySequential})
	s.Restore(map[string][]string{"floor": {"F-ST-001", "F-ST-002"}})

	if got := s.Synthesize(floor).ID; got != "F-ST-001" {
		t.Errorf("primary after restore = %s, want F-ST-001", got)
	}
	if got := s.AddAnother(floor).ID; got != "F-ST-003" {
		t.Errorf("next after restore = %s, want F-ST-003", got)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyRandom, false},
		{"random", StrategyRandom, false},
		{"sequential", StrategySequential, false},
		{"lottery", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) = %q, %v", tt.in, got, err)
		}
	}
}
