package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/seatplan/pkg/venue"
)

// WriteLayout encodes a layout as indented JSON and writes it to w.
// Nil seat or label slices are written as empty arrays.
func WriteLayout(l venue.Layout, w io.Writer) error {
	if l.Seats == nil {
		l.Seats = []venue.Seat{}
	}
	if l.Labels == nil {
		l.Labels = []venue.RowLabel{}
	}
	return WriteJSON(l, w)
}

// ExportLayout writes a layout to the file at path.
func ExportLayout(l venue.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON encodes any value as indented JSON.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes a layout previously written by WriteLayout.
func ReadLayout(r io.Reader) (venue.Layout, error) {
	var l venue.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return venue.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}
