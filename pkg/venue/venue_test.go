package venue

import (
	"reflect"
	"testing"
)

func TestSectionInitial(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    string
	}{
		{"explicit prefix", Section{Name: "Orchestra", Prefix: "ORC"}, "ORC"},
		{"from name", Section{Name: "balcony"}, "B"},
		{"name with spaces", Section{Name: "  stalls"}, "S"},
		{"from id", Section{ID: "upper-ring"}, "U"},
		{"fallback", Section{}, "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.section.Initial(); got != tt.want {
				t.Errorf("Initial() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSectionKey(t *testing.T) {
	if got := (Section{ID: "s1", Name: "Stalls"}).Key(); got != "s1" {
		t.Errorf("Key() = %q, want s1", got)
	}
	if got := (Section{Name: "Stalls"}).Key(); got != "Stalls" {
		t.Errorf("Key() = %q, want Stalls", got)
	}
}

func TestSectionDimensions(t *testing.T) {
	s := Section{Rows: 10, SeatsPerRow: 20}
	if s.Width() != 440 {
		t.Errorf("Width() = %v, want 440", s.Width())
	}
	if s.Height() != 220 {
		t.Errorf("Height() = %v, want 220", s.Height())
	}
}

func TestRowConfigColumns(t *testing.T) {
	tests := []struct {
		rc   RowConfig
		want int
	}{
		{RowConfig{FromColumn: 1, ToColumn: 10}, 10},
		{RowConfig{FromColumn: 5, ToColumn: 5}, 1},
		{RowConfig{FromColumn: 6, ToColumn: 5}, 0},
	}
	for _, tt := range tests {
		if got := tt.rc.Columns(); got != tt.want {
			t.Errorf("Columns(%d..%d) = %d, want %d", tt.rc.FromColumn, tt.rc.ToColumn, got, tt.want)
		}
	}
}

func TestLayoutStats(t *testing.T) {
	l := Layout{Seats: []Seat{
		{ID: "a", SectionID: "s1", Status: StatusAvailable},
		{ID: "b", SectionID: "s1", Status: StatusSold},
		{ID: "c", SectionID: "s2", Status: StatusReserved},
		{ID: "d", SectionID: "s2", Status: StatusBlocked, Standing: true},
	}}

	got := l.Stats()
	want := Stats{Total: 4, Standing: 1, Available: 1, Reserved: 1, Blocked: 1, Sold: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	per := l.SectionStats()
	if per["s1"].Total != 2 || per["s1"].Sold != 1 {
		t.Errorf("SectionStats()[s1] = %+v", per["s1"])
	}
	if per["s2"].Standing != 1 || per["s2"].Reserved != 1 {
		t.Errorf("SectionStats()[s2] = %+v", per["s2"])
	}
}

func TestLayoutDuplicateIDs(t *testing.T) {
	l := Layout{Seats: []Seat{{ID: "x"}, {ID: "y"}, {ID: "x"}, {ID: "z"}, {ID: "y"}}}
	if got := l.DuplicateIDs(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("DuplicateIDs() = %v", got)
	}
	if got := (Layout{Seats: []Seat{{ID: "x"}}}).DuplicateIDs(); len(got) != 0 {
		t.Errorf("DuplicateIDs() = %v, want none", got)
	}
}

func TestSeatLabel(t *testing.T) {
	if got := (Seat{Row: "C", Number: 12}).Label(); got != "C12" {
		t.Errorf("Label() = %q, want C12", got)
	}
	if got := (Seat{ID: "P-ST-042", Standing: true}).Label(); got != "P-ST-042" {
		t.Errorf("Label() = %q, want P-ST-042", got)
	}
}
