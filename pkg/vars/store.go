// Package vars implements the per-item variable store: named coerced
// scalars with fallback lookup into a shared experiment-level store, and
// the bracketed-reference substitution engine used throughout the
// definition format.
package vars

import (
	"fmt"
	"regexp"
)

// DefaultRoundDecimals is the float precision used by substitution when
// rounding is requested and the item defines no round_decimals variable.
const DefaultRoundDecimals = 2

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store holds the variables of a single item. Lookups that miss the
// item-local map fall through to the parent (experiment-level) store,
// which the item references but does not own.
type Store struct {
	item   string
	parent *Store

	values map[string]any
	order  []string // insertion order, kept for stable serialization

	roundDecimals int
	inFlight      []string // names currently being substituted
}

// New creates an empty store for the named item. parent may be nil; for
// ordinary items it is the experiment-level store.
func New(itemName string, parent *Store) *Store {
	return &Store{
		item:          itemName,
		parent:        parent,
		values:        make(map[string]any),
		roundDecimals: DefaultRoundDecimals,
	}
}

// ItemName returns the name of the item owning this store, as used in
// error messages.
func (s *Store) ItemName() string { return s.item }

// SetItemName renames the owning item. The script parser calls this when
// it encounters a define header after the store was created.
func (s *Store) SetItemName(name string) { s.item = name }

// Parent returns the linked experiment-level store, or nil.
func (s *Store) Parent() *Store { return s.parent }

// SetRoundDecimals overrides the default float precision for RoundFloat
// substitution. A round_decimals variable still takes precedence.
func (s *Store) SetRoundDecimals(n int) { s.roundDecimals = n }

// Reset forgets all item-local variables.
func (s *Store) Reset() {
	s.values = make(map[string]any)
	s.order = nil
}

// Set validates the name, coerces the value with AutoType and stores it.
// Values set here are addressable by name through the same lookup path
// used by Get; there is no separate attribute storage.
func (s *Store) Set(name string, val any) error {
	if !validName.MatchString(name) {
		return fmt.Errorf(
			"item %q: %q is not a valid variable name; names must consist of letters, digits and underscores, and may not start with a digit: %w",
			s.item, name, ErrInvalidName)
	}
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = AutoType(val)
	return nil
}

// Unset forgets a variable. Unsetting an absent name is a no-op.
func (s *Store) Unset(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether the name resolves in the item or experiment scope.
func (s *Store) Has(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

// Get resolves a variable and, when its value is a string, evaluates any
// bracketed references it contains before returning it.
func (s *Store) Get(name string) (any, error) {
	for _, f := range s.inFlight {
		if f == name {
			return nil, fmt.Errorf(
				"item %q: recursion detected; is variable %q defined in terms of itself (e.g. 'var = [var]')?: %w",
				s.item, name, ErrRecursion)
		}
	}
	val, ok := s.lookup(name)
	if !ok {
		return nil, fmt.Errorf("item %q: variable %q is not set: %w", s.item, name, ErrUndefinedVariable)
	}
	str, isStr := val.(string)
	if !isStr {
		return val, nil
	}
	// Guard the name for the duration of this substitution pass. The
	// deferred pop runs on every exit path, so a failed pass cannot leave
	// a stale guard behind.
	s.inFlight = append(s.inFlight, name)
	defer func() { s.inFlight = s.inFlight[:len(s.inFlight)-1] }()
	return s.EvalText(str, nil)
}

// GetRaw resolves a variable without evaluating references in its value.
func (s *Store) GetRaw(name string) (any, error) {
	val, ok := s.lookup(name)
	if !ok {
		return nil, fmt.Errorf("item %q: variable %q is not set: %w", s.item, name, ErrUndefinedVariable)
	}
	return val, nil
}

// GetCheck behaves like Get but returns def instead of failing when the
// variable is absent (if def is non-nil), and rejects resolved values
// outside valid (if valid is non-nil).
func (s *Store) GetCheck(name string, def any, valid []any) (any, error) {
	var val any
	var err error
	switch {
	case def == nil:
		val, err = s.Get(name)
	case s.Has(name):
		val, err = s.Get(name)
	default:
		val = def
	}
	if err != nil {
		return nil, err
	}
	if valid != nil {
		found := false
		for _, v := range valid {
			if val == v {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("item %q: variable %q is %v, expected one of %v: %w",
				s.item, name, val, valid, ErrInvalidValue)
		}
	}
	return val, nil
}

// Names returns the item-local variable names in insertion order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Map returns a copy of the item-local variable map.
func (s *Store) Map() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Len returns the number of item-local variables.
func (s *Store) Len() int { return len(s.values) }

func (s *Store) lookup(name string) (any, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	if s.parent != nil {
		if v, ok := s.parent.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// precision returns the float precision for RoundFloat substitution: the
// round_decimals variable when set to an int, else the store default.
func (s *Store) precision() int {
	if v, ok := s.lookup("round_decimals"); ok {
		if n, ok := v.(int); ok && n >= 0 {
			return n
		}
	}
	return s.roundDecimals
}
