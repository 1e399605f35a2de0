package rows

import (
	"reflect"
	"testing"
)

func TestGeneratorSequence(t *testing.T) {
	g := NewGenerator()
	var got []string
	for i := 0; i < 30; i++ {
		got = append(got, g.Next(nil))
	}

	if got[0] != "A" || got[25] != "Z" {
		t.Errorf("single letters: got %q..%q, want A..Z", got[0], got[25])
	}
	want := []string{"AA", "AB", "AC", "AD"}
	if !reflect.DeepEqual(got[26:30], want) {
		t.Errorf("double letters = %v, want %v", got[26:30], want)
	}
}

func TestGeneratorSkip(t *testing.T) {
	g := NewGenerator()
	skip := Skip([]string{"B"})

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, g.Next(skip))
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Next with skip B = %v, want %v", got, want)
	}
}

func TestSkipIsCaseInsensitive(t *testing.T) {
	skip := Skip([]string{"i", " o "}, nil, []string{""})
	if !skip["I"] || !skip["O"] {
		t.Errorf("Skip() = %v, want I and O", skip)
	}
	if len(skip) != 2 {
		t.Errorf("Skip() has %d entries, want 2", len(skip))
	}
}

func TestLetterAt(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := letterAt(tt.pos); got != tt.want {
			t.Errorf("letterAt(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestLetterForIndexMatchesGenerator(t *testing.T) {
	skip := Skip([]string{"I", "O", "AB"})
	g := NewGenerator()
	for i := 0; i < 60; i++ {
		want := g.Next(skip)
		if got := LetterForIndex(i, skip); got != want {
			t.Fatalf("LetterForIndex(%d) = %q, generator gave %q", i, got, want)
		}
	}
}

func TestLetterForIndexIsOrderIndependent(t *testing.T) {
	skip := Skip([]string{"C"})
	later := LetterForIndex(5, skip)
	first := LetterForIndex(0, skip)
	again := LetterForIndex(5, skip)

	if first != "A" {
		t.Errorf("LetterForIndex(0) = %q, want A", first)
	}
	if later != "G" || again != later {
		t.Errorf("LetterForIndex(5) = %q then %q, want G both times", later, again)
	}
}

func TestGeneratorSafetyValve(t *testing.T) {
	// Skip every single letter so the first call has to reject 26 candidates,
	// then every double letter so the stream runs dry.
	var all []string
	for i := 0; i < streamLen; i++ {
		all = append(all, letterAt(i))
	}
	skip := Skip(all)

	var exhausted []string
	g := NewGenerator()
	g.OnExhausted = func(label string, attempts int) {
		exhausted = append(exhausted, label)
	}

	if got := g.Next(skip); got != "Row1" {
		t.Errorf("Next() = %q, want Row1", got)
	}
	if got := g.Next(skip); got != "Row2" {
		t.Errorf("Next() = %q, want Row2", got)
	}
	if !reflect.DeepEqual(exhausted, []string{"Row1", "Row2"}) {
		t.Errorf("OnExhausted labels = %v", exhausted)
	}
}

func TestLetterForIndexExhaustion(t *testing.T) {
	var label string
	got := LetterForIndexFunc(streamLen, nil, func(l string, _ int) { label = l })
	if got != Fallback(streamLen+1) || label != got {
		t.Errorf("LetterForIndexFunc past ZZ = %q (callback %q), want %q", got, label, Fallback(streamLen+1))
	}
	if got := LetterForIndex(streamLen-1, nil); got != "ZZ" {
		t.Errorf("LetterForIndex(last) = %q, want ZZ", got)
	}
}
