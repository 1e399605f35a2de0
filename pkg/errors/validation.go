package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxIdentifierLength = 128

// ValidateSectionID validates a section identifier.
//
// Section ids end up in seat records, cache keys and session files, so the
// rules are conservative:
//   - No empty ids
//   - No control characters or whitespace at either end
//   - No path separators
//   - Maximum length of 128 characters
func ValidateSectionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSection, "section id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidSection, "section id too long (max %d characters)", maxIdentifierLength)
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidSection, "section id %q has leading or trailing whitespace", id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSection, "section id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidSection, "section id %q cannot contain path separators", id)
	}
	return nil
}

// prefixRegex matches seat-id prefixes. The hyphen is reserved as the
// separator between prefix, block, and row.
var prefixRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidatePrefix validates an explicit seat-id prefix.
func ValidatePrefix(prefix string) error {
	if !prefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidSection, "prefix %q must be alphanumeric", prefix)
	}
	if len(prefix) > 8 {
		return New(ErrCodeInvalidSection, "prefix %q too long (max 8 characters)", prefix)
	}
	return nil
}

// blockLetterRegex matches block letters and skip letters.
var blockLetterRegex = regexp.MustCompile(`^[A-Za-z]{1,2}$`)

// ValidateLetter validates a block letter or a row letter to skip.
func ValidateLetter(letter string) error {
	if !blockLetterRegex.MatchString(letter) {
		return New(ErrCodeInvalidSection, "letter %q must be one or two ASCII letters", letter)
	}
	return nil
}

// ValidateSeatID validates a seat id referenced by an override.
func ValidateSeatID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidOverride, "seat id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidOverride, "seat id too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidOverride, "seat id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// colorRegex matches #rgb, #rrggbb and plain color names.
var colorRegex = regexp.MustCompile(`^(#[0-9A-Fa-f]{3}|#[0-9A-Fa-f]{6}|[a-z]+)$`)

// ValidateColor validates a display color. The empty string is allowed.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidSection, "invalid color %q (want #rgb, #rrggbb or a lowercase name)", color)
	}
	return nil
}
