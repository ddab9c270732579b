// Package schema validates an item's coerced variable map against the
// types its item type expects. It exists for editor-facing tooling: the
// store itself accepts any scalar, but a validator (or a GUI) can report
// that a duration is not an int or that a yes/no flag holds garbage
// before the experiment ever runs.
package schema

import "fmt"

// Type defines the contract for variable validation. Values arrive
// already coerced by the store, so the concrete types are int, float64
// and string.
type Type interface {
	// Name returns the human-readable name of the type (e.g. "int").
	Name() string
	// Validate checks if a coerced value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type intType struct{}

func (intType) Name() string { return "int" }

func (intType) Validate(value any) error {
	if _, ok := value.(int); !ok {
		return fmt.Errorf("expected int, got %T", value)
	}
	return nil
}

type floatType struct{}

func (floatType) Name() string { return "float" }

func (floatType) Validate(value any) error {
	// Coercion narrows integer-valued floats to int, so both count.
	switch value.(type) {
	case int, float64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

type yesNoType struct{}

func (yesNoType) Name() string { return "yes/no" }

func (yesNoType) Validate(value any) error {
	if value == "yes" || value == "no" {
		return nil
	}
	return fmt.Errorf("expected yes or no, got %v", value)
}

type oneOfType struct{ allowed []any }

func (t oneOfType) Name() string { return "enum" }

func (t oneOfType) Validate(value any) error {
	for _, a := range t.allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("value %v not in %v", value, t.allowed)
}

type anyOfType struct{ types []Type }

func (t anyOfType) Name() string { return "union" }

func (t anyOfType) Validate(value any) error {
	for _, inner := range t.types {
		if inner.Validate(value) == nil {
			return nil
		}
	}
	names := make([]string, len(t.types))
	for i, inner := range t.types {
		names[i] = inner.Name()
	}
	return fmt.Errorf("value %v matches none of %v", value, names)
}

// String accepts any string value.
func String() Type { return stringType{} }

// Int accepts integer values.
func Int() Type { return intType{} }

// Float accepts any numeric value.
func Float() Type { return floatType{} }

// YesNo accepts the coerced boolean spellings "yes" and "no".
func YesNo() Type { return yesNoType{} }

// OneOf accepts any of the listed values.
func OneOf(allowed ...any) Type { return oneOfType{allowed: allowed} }

// AnyOf accepts values matching at least one of the listed types.
func AnyOf(types ...Type) Type { return anyOfType{types: types} }
