package schema

// Schema maps variable names to their expected types.
// Example: {"duration": AnyOf(Int(), String()), "flush_keyboard": YesNo()}
type Schema map[string]Type

// Validate checks data against the schema. Absent variables are skipped:
// item types supply defaults for unset options, so absence is never an
// error here. Returns an AggregateError listing every failure.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	var errs []error
	for name, typ := range schema {
		value, ok := data[name]
		if !ok {
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    name,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
