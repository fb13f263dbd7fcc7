// Package slug derives URL-safe identifiers from store names and article
// titles. Accented characters are transliterated to their ASCII base before
// the usual lowercase-and-hyphenate pass.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 96

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make converts an arbitrary title into a URL slug. Returns an empty string
// when no slug-safe characters remain.
func Make(title string) string {
	ascii, _, err := transform.String(stripAccents, title)
	if err != nil {
		ascii = title
	}

	var b strings.Builder
	b.Grow(len(ascii))

	lastHyphen := true
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	if len(s) > maxLength {
		s = strings.Trim(s[:maxLength], "-")
	}
	return s
}

// MakeUnique appends a short suffix to a base slug, used when the plain
// slug collides with an existing record.
func MakeUnique(title, suffix string) string {
	base := Make(title)
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
