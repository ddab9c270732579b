/*
Package opensesame is the scripting core behind OpenSesame experiments:
the textual item definition format, the per-item variable store with
reference substitution, and the conditional expression compiler used for
branching.

An experiment owns the shared variable store and the host collaborators
(time source, sleep primitive, log sink); items parse their definition
text into a local store that falls back to the experiment's.

# Usage

	exp := opensesame.New("experiment")

	it, err := exp.NewItem("greeter", "sketchpad", `
		set duration "keypress"
		set greeting "Hello [subject_name]"
	`)
	if err != nil {
		log.Fatal(err)
	}

	exp.Vars.Set("subject_name", "alice")
	val, err := it.Vars.EvalText("[greeting]", nil)
	// val == "Hello alice"

Branching conditions compile once and evaluate against live state:

	c, err := it.CompileCond("[correct] = 1 and [rt] < 500")
	ok, err := c.Eval(it.Vars)

The cmd/osc tool exposes the same machinery for validating, formatting
and inspecting script files.
*/
package opensesame
