// Package validator runs the static checks the CLI applies to experiment
// scripts before a host would ever execute them: parseability, reference
// well-formedness, duplicate item names and per-item-type option types.
package validator

import (
	"fmt"
	"strings"

	"github.com/brabagaza/OpenSesame/pkg/cond"
	"github.com/brabagaza/OpenSesame/pkg/schema"
	"github.com/brabagaza/OpenSesame/pkg/script"
)

// itemSchemas lists the option types checked for well-known item types.
// Unknown item types are accepted as is; the format is open.
var itemSchemas = map[string]schema.Schema{
	"loop": {
		"repeat": schema.Int(),
		"cycles": schema.Int(),
	},
	"sequence": {
		"flush_keyboard": schema.YesNo(),
	},
	"logger": {
		"auto_log": schema.YesNo(),
	},
	"sketchpad": {
		"duration": schema.AnyOf(schema.Int(), schema.String()),
	},
}

// conditionVars are variables that hold conditional expressions and must
// compile.
var conditionVars = map[string]bool{
	"break_if": true,
	"run_if":   true,
}

// ValidateScript parses an experiment script and reports every problem
// found. A nil return means the script passed all checks.
func ValidateScript(text string) error {
	f, err := script.ParseFile(text, nil)
	if err != nil {
		return err
	}

	var problems []string

	// Duplicate item names
	seen := make(map[string]bool)
	for _, d := range f.Items {
		if seen[d.Name] {
			problems = append(problems, fmt.Sprintf("item %q is defined more than once", d.Name))
		}
		seen[d.Name] = true
	}

	checkDef := func(d *script.Definition) {
		for _, name := range d.Vars.Names() {
			raw, err := d.Vars.GetRaw(name)
			if err != nil {
				continue
			}
			s, ok := raw.(string)
			if !ok {
				continue
			}
			if _, err := d.Vars.GetRefs(s); err != nil {
				problems = append(problems, err.Error())
			}
			if conditionVars[name] {
				if _, err := cond.Compile(s); err != nil {
					problems = append(problems, fmt.Sprintf("item %q: %v", d.Name, err))
				}
			}
		}
		if sch, ok := itemSchemas[d.ItemType]; ok {
			if err := schema.Validate(sch, d.Vars.Map()); err != nil {
				problems = append(problems, fmt.Sprintf("item %q: %v", d.Name, err))
			}
		}
	}

	checkDef(f.Experiment)
	for _, d := range f.Items {
		checkDef(d)
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
