package domain

import (
	"strings"
	"unicode"
)

// Blank is the canonical marker stored for an empty door.
const Blank = "—"

// Normalize canonicalizes a free-text location code: trimmed, upper-cased.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsBlank reports whether a location code represents an empty door: an empty
// string, or anything containing a non-alphanumeric character (dashes,
// punctuation, embedded spaces).
func IsBlank(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return true
	}
	for _, r := range code {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// CanonicalizeLocation prepares a raw form value for storage: the literal
// blank spellings collapse to the canonical marker, everything else is
// normalized.
func CanonicalizeLocation(raw string) string {
	switch strings.TrimSpace(raw) {
	case "", Blank, "---", "----":
		return Blank
	}
	return Normalize(raw)
}

// ResolveTruck computes the effective truck type for a door's location.
// Precedence: a blank door takes no truck at all, then the door's explicit
// override, then the location map, then the default. Pass override as the
// empty string when the door has none.
func ResolveTruck(location, override string) string {
	if IsBlank(location) {
		return ""
	}
	if override != "" {
		return override
	}
	if truck, ok := TruckByLocation[Normalize(location)]; ok {
		return truck
	}
	return DefaultTruck
}
