package vars

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode evaluates all item-local variables and decodes them into out,
// which should be a pointer to a struct with mapstructure tags. Decoding
// is weakly typed, so a duration stored as the string "200" still fills
// an int field. Experiment-level variables are not included.
func (s *Store) Decode(out any) error {
	resolved := make(map[string]any, len(s.order))
	for _, name := range s.order {
		val, err := s.Get(name)
		if err != nil {
			return err
		}
		resolved[name] = val
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("item %q: building decoder: %w", s.item, err)
	}
	if err := dec.Decode(resolved); err != nil {
		return fmt.Errorf("item %q: decoding variables: %w", s.item, err)
	}
	return nil
}
