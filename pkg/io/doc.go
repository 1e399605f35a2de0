// Package io reads venue and override files and writes compiled layouts.
//
// # Venue files
//
// Venues are JSON or TOML documents with a name and a list of sections. The
// format is chosen from the file extension (.json, .toml). In TOML:
//
//	name = "Riverside Hall"
//
//	[[sections]]
//	id = "stalls"
//	name = "Stalls"
//	x = 0
//	y = 120
//	rows = 12
//	seats_per_row = 24
//	numbering = "per-block"
//	skip_letters = ["I", "O"]
//
//	  [[sections.row_configs]]
//	  from_row = 1
//	  to_row = 12
//	  from_column = 1
//	  to_column = 12
//	  direction = "right"
//	  block_letter = "L"
//	  price = 45
//
// [ReadVenue] and [ImportVenue] normalize enumerations (kind, numbering,
// direction, label_side) to lower case and validate the result with
// [ValidateVenue]. The compiler itself assumes sane input, so every check
// that protects seat ids lives here.
//
// # Override files
//
// Overrides are JSON documents with three optional lists:
//
//	{
//	  "reserved": [{"seat_id": "S-L-A1", "reason": "press"}],
//	  "blocked":  [{"seat_id": "S-L-A2"}],
//	  "sold":     [{"seat_id": "S-R-C7"}]
//	}
//
// # Layout export
//
// [WriteLayout] and [ExportLayout] write a compiled layout as indented JSON
// with "seats" and "labels" arrays.
package io
