// Package rows generates row letters for seat layouts.
//
// The letter stream runs A..Z followed by the two-letter counter AA, AB, ...,
// AZ, BA, ..., ZZ. Letters present in a skip set are passed over. Two ways of
// consuming the stream are provided:
//
//   - [Generator] is a stateful cursor shared across all blocks of a section
//     (continuous row numbering).
//   - [LetterForIndex] is a pure function addressing the stream by a local
//     index (per-block row numbering).
//
// Both agree: LetterForIndex(i, skip) equals the (i+1)-th call of
// Generator.Next on a fresh generator with the same skip set.
package rows

import (
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxAttempts bounds the candidates rejected within one call before the
// generator gives up and returns a synthetic label.
const MaxAttempts = 1000

// streamLen is the number of distinct letters in the stream (A..Z, AA..ZZ).
const streamLen = 26 + 26*26

// letterAt returns the stream letter at position i, or "" past ZZ.
func letterAt(i int) string {
	switch {
	case i < 0:
		return ""
	case i < 26:
		return alphabet[i : i+1]
	case i < streamLen:
		i -= 26
		return string([]byte{alphabet[i/26], alphabet[i%26]})
	default:
		return ""
	}
}

// Skip builds an upper-cased skip set from any number of letter lists.
func Skip(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, l := range list {
			if l = strings.ToUpper(strings.TrimSpace(l)); l != "" {
				set[l] = true
			}
		}
	}
	return set
}

// Fallback returns the synthetic label used when lettering is abandoned.
func Fallback(n int) string { return fmt.Sprintf("Row%d", n) }

// Generator hands out successive row letters.
// A Generator is not safe for concurrent use.
type Generator struct {
	pos   int
	calls int

	// OnExhausted, if set, is called whenever Next returns a fallback label.
	OnExhausted func(label string, attempts int)
}

// NewGenerator returns a generator positioned at A.
func NewGenerator() *Generator { return &Generator{} }

// Next returns the next letter whose upper-cased form is not in skip.
// If the stream runs out, or more than MaxAttempts candidates are rejected,
// it returns Fallback(n) where n is the 1-based number of this call.
func (g *Generator) Next(skip map[string]bool) string {
	g.calls++
	attempts := 0
	for {
		cand := letterAt(g.pos)
		if cand == "" {
			return g.exhausted(attempts)
		}
		g.pos++
		if !skip[strings.ToUpper(cand)] {
			return cand
		}
		attempts++
		if attempts > MaxAttempts {
			return g.exhausted(attempts)
		}
	}
}

// Calls returns the number of letters requested so far.
func (g *Generator) Calls() int { return g.calls }

func (g *Generator) exhausted(attempts int) string {
	label := Fallback(g.calls)
	if g.OnExhausted != nil {
		g.OnExhausted(label, attempts)
	}
	return label
}

// LetterForIndex returns the letter at local index (0-based) of the stream
// with skip applied. It retains no state between calls.
func LetterForIndex(index int, skip map[string]bool) string {
	return LetterForIndexFunc(index, skip, nil)
}

// LetterForIndexFunc is LetterForIndex with an exhaustion callback.
func LetterForIndexFunc(index int, skip map[string]bool, onExhausted func(label string, attempts int)) string {
	if index < 0 {
		index = 0
	}
	g := &Generator{}
	for i := 0; i < index; i++ {
		g.Next(skip)
	}
	g.OnExhausted = onExhausted
	return g.Next(skip)
}
