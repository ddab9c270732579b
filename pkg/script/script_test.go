package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brabagaza/OpenSesame/pkg/script"
)

func TestParseHeaderAndVariables(t *testing.T) {
	d, err := script.Parse(strings.Join([]string{
		`define sketchpad welcome`,
		`	# Shown at the start of the session`,
		`	set duration "keypress"`,
		`	set foreground "white"`,
	}, "\n"))
	require.NoError(t, err)

	assert.Equal(t, "sketchpad", d.ItemType)
	assert.Equal(t, "welcome", d.Name)
	assert.Equal(t, []string{"Shown at the start of the session"}, d.Comments)

	v, err := d.Vars.Get("duration")
	require.NoError(t, err)
	assert.Equal(t, "keypress", v)
}

func TestParseCoercesValues(t *testing.T) {
	d, err := script.Parse("define loop block\n\tset repeat \"4\"\n\tset factor \"1.5\"\n")
	require.NoError(t, err)

	v, err := d.Vars.Get("repeat")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = d.Vars.Get("factor")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestParseCommentStyles(t *testing.T) {
	d, err := script.Parse("# hash style\n// slash style\ndefine item it\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"hash style", "slash style"}, d.Comments)
}

func TestParseTextblock(t *testing.T) {
	d, err := script.Parse(strings.Join([]string{
		"define inline_script it",
		"\t__source__",
		"\tfirst line",
		"\tsecond line",
		"\t__end__",
	}, "\n"))
	require.NoError(t, err)

	v, err := d.Vars.GetRaw("source")
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", v)
}

func TestParseTextblockWithoutIndent(t *testing.T) {
	// Indentation is decided from the opening line. An unindented block
	// keeps its body verbatim, tabs included.
	d, err := script.Parse(strings.Join([]string{
		"define inline_script it",
		"__source__",
		"\tindented body line",
		"plain body line",
		"__end__",
	}, "\n"))
	require.NoError(t, err)

	v, err := d.Vars.GetRaw("source")
	require.NoError(t, err)
	assert.Equal(t, "\tindented body line\nplain body line", v)
}

func TestParseTextblockReservedName(t *testing.T) {
	d, err := script.Parse("define it it\n\t__run__\n\tdo things\n\t__end__\n")
	require.NoError(t, err)

	assert.False(t, d.Vars.Has("run"))
	v, err := d.Vars.GetRaw("_run")
	require.NoError(t, err)
	assert.Equal(t, "do things", v)
}

func TestParseIgnoresUnknownLines(t *testing.T) {
	d, err := script.Parse("define sequence trial\n\trun fixation always\n\tset flush_keyboard \"yes\"\n")
	require.NoError(t, err)
	assert.True(t, d.Vars.Has("flush_keyboard"))
	assert.Equal(t, 1, d.Vars.Len())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"set without value", "define it it\n\tset x\n"},
		{"set with extra token", "define it it\n\tset x 1 2\n"},
		{"unbalanced quote", "define it it\n\tset x \"oops\n"},
		{"malformed define", "define it\n"},
		{"stray end", "define it it\n\t__end__\n"},
		{"unclosed block", "define it it\n\t__source__\n\tbody\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := script.Parse(tc.text)
			assert.ErrorIs(t, err, script.ErrScriptSyntax)
		})
	}
}

func TestSerialize(t *testing.T) {
	d := script.New("welcome", "sketchpad", nil)
	d.Comments = append(d.Comments, "Shown first")
	require.NoError(t, d.Vars.Set("duration", "keypress"))
	require.NoError(t, d.Vars.Set("repeat", 4))

	got := d.Serialize("")
	want := "define sketchpad welcome\n" +
		"\t# Shown first\n" +
		"\tset duration \"keypress\"\n" +
		"\tset repeat \"4\"\n"
	assert.Equal(t, want, got)
}

func TestSerializeTypeOverride(t *testing.T) {
	d := script.New("it", "sketchpad", nil)
	assert.True(t, strings.HasPrefix(d.Serialize("feedback"), "define feedback it\n"))
}

func TestRoundTrip(t *testing.T) {
	d := script.New("trial", "inline_script", nil)
	require.NoError(t, d.Vars.Set("description", "Runs the trial"))
	require.NoError(t, d.Vars.Set("source", "x = 1\ny = 2"))
	require.NoError(t, d.Vars.Set("quoted", `say "hi"`))
	require.NoError(t, d.Vars.Set("path", `c:\data\out`))
	require.NoError(t, d.Vars.Set("count", 10))

	parsed, err := script.Parse(d.Serialize(""))
	require.NoError(t, err)

	assert.Equal(t, d.Name, parsed.Name)
	assert.Equal(t, d.ItemType, parsed.ItemType)
	for _, name := range d.Vars.Names() {
		want, err := d.Vars.GetRaw(name)
		require.NoError(t, err)
		got, err := parsed.Vars.GetRaw(name)
		require.NoError(t, err, "variable %q", name)
		assert.Equal(t, want, got, "variable %q", name)
	}

	// A second pass reproduces the text exactly.
	assert.Equal(t, d.Serialize(""), parsed.Serialize(""))
}

func TestParseFile(t *testing.T) {
	text := strings.Join([]string{
		`set subject_nr "0"`,
		`set description "Demo experiment"`,
		``,
		`define sketchpad welcome`,
		`	set duration "keypress"`,
		``,
		`define sequence trial`,
		`	set flush_keyboard "yes"`,
		`	run welcome always`,
	}, "\n")

	f, err := script.ParseFile(text, nil)
	require.NoError(t, err)

	require.Len(t, f.Items, 2)
	assert.Equal(t, "welcome", f.Items[0].Name)
	assert.Equal(t, "trial", f.Items[1].Name)
	assert.Nil(t, f.Lookup("nope"))
	assert.Same(t, f.Items[1], f.Lookup("trial"))

	// Item stores fall back to the experiment scope.
	v, err := f.Items[0].Vars.Get("subject_nr")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestFileRoundTrip(t *testing.T) {
	text := "set subject_nr \"0\"\n" +
		"define sketchpad welcome\n" +
		"\tset duration \"keypress\"\n" +
		"\n" +
		"define sequence trial\n" +
		"\tset flush_keyboard \"yes\"\n"

	f, err := script.ParseFile(text, nil)
	require.NoError(t, err)

	again, err := script.ParseFile(f.Serialize(), nil)
	require.NoError(t, err)
	assert.Equal(t, f.Serialize(), again.Serialize())

	require.Len(t, again.Items, 2)
	v, err := again.Experiment.Vars.GetRaw("subject_nr")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
