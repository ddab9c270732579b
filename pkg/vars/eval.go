package vars

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// reference matches a single bracketed variable reference. The name is
// any non-empty run of non-bracket characters; the same grammar is used
// by substitution and by GetRefs.
var reference = regexp.MustCompile(`\[([^\[\]]+)\]`)

// EvalOptions control substitution in EvalText. The zero value gives the
// default behavior: misses fail, strings are substituted unquoted and
// floats at full precision.
type EvalOptions struct {
	// RoundFloat formats float values at the item's round_decimals
	// precision instead of full precision.
	RoundFloat bool
	// SoftIgnore leaves unresolvable references verbatim instead of
	// failing.
	SoftIgnore bool
	// QuoteStr wraps substituted string values in single quotes.
	QuoteStr bool
}

// EvalText substitutes bracketed references in text by the values they
// resolve to, then coerces the result. Substitution always replaces the
// leftmost reference and rescans from the start, so evaluating "[y]"
// where y resolves to "[x]" and x to 5 returns the integer 5. Non-string
// input is coerced and returned as is.
func (s *Store) EvalText(text any, opts *EvalOptions) (any, error) {
	if opts == nil {
		opts = &EvalOptions{}
	}
	str, ok := text.(string)
	if !ok {
		return AutoType(text), nil
	}
	pos := 0
	for {
		m := reference.FindStringSubmatchIndex(str[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		name := str[pos+m[2] : pos+m[3]]
		if opts.SoftIgnore && !s.Has(name) {
			// Leave the reference in place and continue past it.
			pos = end
			continue
		}
		val, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		str = str[:start] + s.substitution(val, opts) + str[end:]
		pos = 0
	}
	return AutoType(str), nil
}

// GetRefs scans text for bracketed references and returns the referenced
// names from left to right, without resolving them. An opening bracket
// without a matching closing bracket is an error.
func (s *Store) GetRefs(text string) ([]string, error) {
	var refs []string
	for i := 0; ; {
		open := strings.IndexByte(text[i:], '[')
		if open < 0 {
			return refs, nil
		}
		open += i
		end := strings.IndexByte(text[open+1:], ']')
		if end < 0 {
			return nil, fmt.Errorf("item %q: missing closing bracket ']' in %q: %w",
				s.item, text, ErrMalformedReference)
		}
		end += open + 1
		refs = append(refs, text[open+1:end])
		i = end + 1
	}
}

// substitution renders a resolved value as replacement text.
func (s *Store) substitution(val any, opts *EvalOptions) string {
	if sv, ok := val.(string); ok && opts.QuoteStr {
		return "'" + sv + "'"
	}
	if fv, ok := val.(float64); ok && opts.RoundFloat {
		return strconv.FormatFloat(fv, 'f', s.precision(), 64)
	}
	return ToString(val)
}
