// Package sanitize implements the reversible escaping used to embed
// arbitrary strings inside the item definition format. Characters outside
// the ASCII range (and the backslash) are recoded as U+XXXX tokens; the
// token shape is part of the on-disk file format and must not change.
package sanitize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholder is returned by Sanitize when the input is not valid text.
// Sanitize sits on serialization output paths and must never fail, so a
// readable marker beats an error here.
const Placeholder = "Error: Unable to create readable text from string"

var (
	escapeToken      = regexp.MustCompile(`U\+([0-9A-F]{4})`)
	strictVarChars   = regexp.MustCompile(`[^A-Za-z0-9_ \t\n\[\]]`)
	strictNoVarChars = regexp.MustCompile(`[^A-Za-z0-9_ \t\n]`)
)

// Sanitize produces a string that is safe to embed in definition text.
//
// In the default mode (strict=false) every rune above U+007F, and the
// backslash, is replaced by a U+XXXX escape token, and line terminators
// are normalized to a single newline. This mode is reversible via
// Unsanitize as long as the input contains no literal U+XXXX-shaped text.
//
// With strict=true offending characters are deleted instead of recoded,
// leaving only letters, digits, underscores and whitespace; allowVars
// additionally keeps the square brackets so variable references survive.
func Sanitize(s string, strict, allowVars bool) string {
	if !utf8.ValidString(s) {
		return Placeholder
	}
	s = normalizeNewlines(s)
	if strict {
		if allowVars {
			return strictVarChars.ReplaceAllString(s, "")
		}
		return strictNoVarChars.ReplaceAllString(s, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 127 || r == '\\' {
			fmt.Fprintf(&b, "U+%04X", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unsanitize converts U+XXXX escape tokens back to the runes they encode.
// It repeatedly replaces the leftmost token until none remain, and is a
// no-op on strings without tokens.
func Unsanitize(s string) string {
	for {
		m := escapeToken.FindStringSubmatchIndex(s)
		if m == nil {
			return s
		}
		code, err := strconv.ParseUint(s[m[2]:m[3]], 16, 32)
		if err != nil {
			// Cannot happen: the pattern only matches 4 hex digits.
			return s
		}
		s = s[:m[0]] + string(rune(code)) + s[m[1]:]
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
