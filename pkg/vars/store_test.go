package vars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brabagaza/OpenSesame/pkg/vars"
)

func newScoped(t *testing.T) (exp, item *vars.Store) {
	t.Helper()
	exp = vars.New("experiment", nil)
	item = vars.New("stimulus", exp)
	return exp, item
}

func TestSetValidatesNames(t *testing.T) {
	s := vars.New("it", nil)

	require.NoError(t, s.Set("valid_name2", 1))
	require.NoError(t, s.Set("_leading", 1))

	for _, name := range []string{"", "1abc", "foo-bar", "foo bar", "héllo"} {
		err := s.Set(name, 1)
		assert.ErrorIs(t, err, vars.ErrInvalidName, "name %q", name)
	}
}

func TestSetCoerces(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("x", "5"))
	v, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, s.Set("flag", true))
	v, err = s.Get("flag")
	require.NoError(t, err)
	assert.Equal(t, "yes", v)
}

func TestScopeChain(t *testing.T) {
	exp, item := newScoped(t)
	require.NoError(t, exp.Set("subject", "s01"))
	require.NoError(t, item.Set("duration", 200))

	// Item scope sees both, experiment scope only its own.
	assert.True(t, item.Has("subject"))
	assert.True(t, item.Has("duration"))
	assert.False(t, exp.Has("duration"))

	v, err := item.Get("subject")
	require.NoError(t, err)
	assert.Equal(t, "s01", v)

	// Local definitions shadow the experiment.
	require.NoError(t, item.Set("subject", "local"))
	v, err = item.Get("subject")
	require.NoError(t, err)
	assert.Equal(t, "local", v)
}

func TestGetUndefined(t *testing.T) {
	_, item := newScoped(t)
	_, err := item.Get("missing")
	assert.ErrorIs(t, err, vars.ErrUndefinedVariable)
	assert.Contains(t, err.Error(), "stimulus")
	assert.Contains(t, err.Error(), "missing")
}

func TestUnset(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("x", 1))
	s.Unset("x")
	assert.False(t, s.Has("x"))

	// Unsetting an absent name is a no-op, not an error.
	s.Unset("x")
	s.Unset("never_existed")
}

func TestGetCheck(t *testing.T) {
	s := vars.New("it", nil)

	v, err := s.GetCheck("absent", "fallback", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)

	_, err = s.GetCheck("absent", nil, nil)
	assert.ErrorIs(t, err, vars.ErrUndefinedVariable)

	require.NoError(t, s.Set("mode", "fast"))
	v, err = s.GetCheck("mode", nil, []any{"fast", "slow"})
	require.NoError(t, err)
	assert.Equal(t, "fast", v)

	_, err = s.GetCheck("mode", nil, []any{"up", "down"})
	assert.ErrorIs(t, err, vars.ErrInvalidValue)
}

func TestEvalTextSubstitution(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("x", 5))
	require.NoError(t, s.Set("y", "[x]"))

	// Transitive substitution plus final coercion: numeric, not "5".
	v, err := s.EvalText("[y]", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, s.Set("w", 320))
	require.NoError(t, s.Set("h", 200))
	v, err = s.EvalText("[w]x[h]", nil)
	require.NoError(t, err)
	assert.Equal(t, "320x200", v)

	// Non-string input skips scanning entirely.
	v, err = s.EvalText(3.0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestEvalTextSoftIgnore(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("known", "k"))

	_, err := s.EvalText("[missing]", nil)
	assert.ErrorIs(t, err, vars.ErrUndefinedVariable)

	v, err := s.EvalText("[missing] and [known]", &vars.EvalOptions{SoftIgnore: true})
	require.NoError(t, err)
	assert.Equal(t, "[missing] and k", v)
}

func TestEvalTextQuoteStr(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("word", "abc"))
	require.NoError(t, s.Set("num", 3))

	v, err := s.EvalText("[word] [num]", &vars.EvalOptions{QuoteStr: true})
	require.NoError(t, err)
	assert.Equal(t, "'abc' 3", v)
}

func TestEvalTextRoundFloat(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("pi", 3.14159))

	v, err := s.EvalText("pi=[pi]", &vars.EvalOptions{RoundFloat: true})
	require.NoError(t, err)
	assert.Equal(t, "pi=3.14", v)

	// A round_decimals variable overrides the default precision.
	require.NoError(t, s.Set("round_decimals", 3))
	v, err = s.EvalText("pi=[pi]", &vars.EvalOptions{RoundFloat: true})
	require.NoError(t, err)
	assert.Equal(t, "pi=3.142", v)

	// Without rounding the full value is substituted.
	v, err = s.EvalText("pi=[pi]", nil)
	require.NoError(t, err)
	assert.Equal(t, "pi=3.14159", v)
}

func TestRecursionDetection(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("x", "[x]"))

	_, err := s.Get("x")
	assert.ErrorIs(t, err, vars.ErrRecursion)

	// The guard is released on the error path: unrelated lookups work.
	require.NoError(t, s.Set("y", "fine"))
	v, err := s.Get("y")
	require.NoError(t, err)
	assert.Equal(t, "fine", v)
}

func TestIndirectRecursion(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("a", "[b]"))
	require.NoError(t, s.Set("b", "[a]"))

	_, err := s.Get("a")
	assert.ErrorIs(t, err, vars.ErrRecursion)

	_, err = s.EvalText("[a]", nil)
	assert.ErrorIs(t, err, vars.ErrRecursion)
}

func TestGetRefs(t *testing.T) {
	s := vars.New("it", nil)

	refs, err := s.GetRefs("score=[a], time=[b]")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, refs)

	refs, err = s.GetRefs("no references")
	require.NoError(t, err)
	assert.Empty(t, refs)

	_, err = s.GetRefs("[unterminated")
	assert.ErrorIs(t, err, vars.ErrMalformedReference)

	// References are found without resolving them.
	refs, err = s.GetRefs("[never_defined]")
	require.NoError(t, err)
	assert.Equal(t, []string{"never_defined"}, refs)
}

func TestNamesKeepInsertionOrder(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("b", 1))
	require.NoError(t, s.Set("a", 2))
	require.NoError(t, s.Set("c", 3))
	require.NoError(t, s.Set("a", 4)) // update keeps position

	assert.Equal(t, []string{"b", "a", "c"}, s.Names())
}

func TestDecode(t *testing.T) {
	s := vars.New("it", nil)
	require.NoError(t, s.Set("duration", "200"))
	require.NoError(t, s.Set("greeting", "hello"))
	require.NoError(t, s.Set("scale", "1.5"))

	var opts struct {
		Duration int     `mapstructure:"duration"`
		Greeting string  `mapstructure:"greeting"`
		Scale    float64 `mapstructure:"scale"`
	}
	require.NoError(t, s.Decode(&opts))
	assert.Equal(t, 200, opts.Duration)
	assert.Equal(t, "hello", opts.Greeting)
	assert.Equal(t, 1.5, opts.Scale)
}
