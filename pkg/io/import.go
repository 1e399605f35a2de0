package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// Format is a venue file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported venue file %q (want .json or .toml)", filepath.Base(path))
	}
}

// ReadVenue decodes a venue in the given format from r, normalizes it and
// validates it. ReadVenue does not close r.
func ReadVenue(r io.Reader, format Format) (venue.Venue, error) {
	var v venue.Venue
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&v); err != nil {
			return venue.Venue{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode venue json")
		}
	case FormatTOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return venue.Venue{}, fmt.Errorf("read venue: %w", err)
		}
		md, err := toml.Decode(string(data), &v)
		if err != nil {
			return venue.Venue{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode venue toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return venue.Venue{}, errors.New(errors.ErrCodeInvalidFormat, "unknown venue keys: %v", undecoded)
		}
	default:
		return venue.Venue{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported venue format %q", format)
	}

	v = Normalize(v)
	if err := ValidateVenue(v); err != nil {
		return venue.Venue{}, err
	}
	return v, nil
}

// ImportVenue reads the venue file at path.
func ImportVenue(path string) (venue.Venue, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return venue.Venue{}, err
	}
	f, err := open(path)
	if err != nil {
		return venue.Venue{}, err
	}
	defer f.Close()

	v, err := ReadVenue(f, format)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ReadOverrides decodes and validates an override set from r.
func ReadOverrides(r io.Reader) (venue.OverrideSet, error) {
	var set venue.OverrideSet
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&set); err != nil {
		return venue.OverrideSet{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode overrides")
	}
	if err := ValidateOverrides(set); err != nil {
		return venue.OverrideSet{}, err
	}
	return set, nil
}

// ImportOverrides reads the override file at path.
func ImportOverrides(path string) (venue.OverrideSet, error) {
	f, err := open(path)
	if err != nil {
		return venue.OverrideSet{}, err
	}
	defer f.Close()

	set, err := ReadOverrides(f)
	if err != nil {
		return venue.OverrideSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	return f, nil
}

// Normalize returns a copy of v with enumerations trimmed and lower-cased
// and letters upper-cased. Empty enumerations keep their defaults.
func Normalize(v venue.Venue) venue.Venue {
	out := venue.Venue{Name: v.Name, Sections: make([]venue.Section, len(v.Sections))}
	for i, s := range v.Sections {
		s.Kind = venue.SectionKind(lower(string(s.Kind)))
		if s.Kind == "" {
			s.Kind = venue.KindSeated
		}
		s.Numbering = venue.RowNumbering(lower(string(s.Numbering)))
		if s.Numbering == "" {
			s.Numbering = venue.NumberingContinuous
		}
		s.SkipLetters = upperAll(s.SkipLetters)

		blocks := make([]venue.RowConfig, len(s.RowConfigs))
		for j, rc := range s.RowConfigs {
			rc.Direction = venue.Direction(lower(string(rc.Direction)))
			if rc.Direction == "" {
				rc.Direction = venue.DirectionLeft
			}
			rc.LabelSide = venue.Side(lower(string(rc.LabelSide)))
			rc.BlockLetter = strings.ToUpper(strings.TrimSpace(rc.BlockLetter))
			rc.SkipLetters = upperAll(rc.SkipLetters)
			blocks[j] = rc
		}
		if len(s.RowConfigs) == 0 {
			blocks = nil
		}
		s.RowConfigs = blocks
		out.Sections[i] = s
	}
	return out
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func upperAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, l := range in {
		out[i] = strings.ToUpper(strings.TrimSpace(l))
	}
	return out
}
