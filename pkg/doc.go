// Package pkg provides the core libraries for Seatplan venue layouts.
//
// # Overview
//
// Seatplan compiles declarative venue configurations into seat maps: a flat
// list of positioned, identified seats plus row labels, with live
// reserved/blocked/sold statuses merged in. The pkg directory is organized
// into four areas:
//
//  1. [venue] and [io] - Domain types and their TOML/JSON encodings
//  2. [layout] - Compilation (row letters, seat numbering, standing ids, overlay)
//  3. [pipeline] - Orchestration (hash → cache → compile → overlay)
//  4. [cache], [session], [config] - Infrastructure shared by CLI commands
//
// # Architecture
//
// The typical data flow:
//
//	venue.toml / venue.json
//	         ↓
//	    [io] package (decode, normalize, validate)
//	         ↓
//	    [layout] package (geometry + labels, statuses available)
//	         ↓
//	    [layout/overlay] package (reserved/blocked/sold)
//	         ↓
//	    layout.json
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/seatplan/pkg/io"
//	    "github.com/matzehuels/seatplan/pkg/layout"
//	    "github.com/matzehuels/seatplan/pkg/layout/standing"
//	)
//
//	v, _ := io.ImportVenue("venue.toml")
//	overrides, _ := io.ImportOverrides("overrides.json")
//
//	c := &layout.Compiler{Standing: standing.New(standing.Options{Seed: 7})}
//	l := c.Compile(v.Sections, overrides)
//	_ = io.ExportLayout(l, "venue.layout.json")
//
// # Main Packages
//
// [layout/rows] - Row-letter generation (A..Z, AA..ZZ) with skip letters and
// a bounded fallback to Row{n}.
//
// [layout/numbering] - Seat numbering per block: left, right and
// centre-outward.
//
// [layout/standing] - Session-unique ids for standing tickets, random or
// sequential.
//
// [pipeline] - Cached compilation used by every CLI command. Geometry is
// cached by venue hash; statuses are merged on every run.
//
// [observability] - Hooks for compile, cache and exhaustion events.
//
// [errors] - Coded errors and multi-error collection for validation.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example         # Examples only
//
// [venue]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/venue
// [io]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout
// [layout/rows]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout/rows
// [layout/numbering]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout/numbering
// [layout/standing]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout/standing
// [layout/overlay]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout/overlay
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/errors
package pkg
