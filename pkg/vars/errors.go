package vars

import "errors"

var (
	// ErrInvalidName is returned when a variable name fails the identifier rule.
	ErrInvalidName = errors.New("invalid variable name")
	// ErrUndefinedVariable is returned when a name resolves in neither the
	// item scope nor the experiment scope.
	ErrUndefinedVariable = errors.New("variable is not set")
	// ErrRecursion is returned when a variable is defined in terms of itself,
	// directly or through a chain of references that loops back.
	ErrRecursion = errors.New("recursive variable definition")
	// ErrInvalidValue is returned by GetCheck when a value falls outside an
	// explicit set of allowed values.
	ErrInvalidValue = errors.New("invalid variable value")
	// ErrMalformedReference is returned when an opening bracket has no
	// matching closing bracket.
	ErrMalformedReference = errors.New("missing closing bracket")
)
