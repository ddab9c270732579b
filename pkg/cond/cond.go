// Package cond compiles the restricted conditional syntax used for
// branching (e.g. "[correct] = 1 and [rt] < 500") into an evaluable
// predicate. Compilation happens once; variable references are resolved
// against the variable store at evaluation time, so a compiled condition
// can be cached and evaluated against changing state.
//
// The historical implementation rewrote the condition into host-language
// source and byte-compiled it. Here the rewritten tokens are compiled
// into a sandboxed expr program over a closed operator set instead, which
// keeps the quirky token grammar byte-compatible without ever executing
// generated code.
package cond

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/google/shlex"

	"github.com/brabagaza/OpenSesame/pkg/vars"
)

// ErrConditionSyntax is returned when a condition cannot be compiled.
var ErrConditionSyntax = errors.New("invalid conditional statement")

// Condition is a compiled predicate. It is stateless after compilation
// and may be evaluated repeatedly against different store contents.
type Condition struct {
	src     string
	program *vm.Program
}

var operators = map[string]bool{
	"!=": true, "==": true, "=": true, "<": true, ">": true,
	">=": true, "<=": true, "+": true, "-": true, "(": true, ")": true,
	"/": true, "*": true, "%": true, "~": true, "**": true, "^": true,
}

var keywords = map[string]bool{
	"and": true, "or": true, "is": true, "not": true,
	"true": true, "false": true, "none": true,
}

// Compile turns a condition into an evaluable predicate. The source is
// first repaired for missing whitespace around operators, split into
// shell-style tokens and rewritten: bracketed references become store
// fetches, "=" becomes "==", always/never become booleans, and — for
// backward compatibility — an otherwise unrecognized first token is
// treated as an unbracketed variable reference.
func Compile(src string) (*Condition, error) {
	words, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid conditional statement: %w", src, ErrConditionSyntax)
	}
	code := rewrite(words)
	program, err := expr.Compile(code)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid conditional statement: %w", src, ErrConditionSyntax)
	}
	return &Condition{src: src, program: program}, nil
}

// Source returns the original condition text.
func (c *Condition) Source() string { return c.src }

// Eval runs the predicate against a variable store. References resolve
// through Store.Get, so substitution and the recursion guard apply. The
// result follows script truthiness: booleans as themselves, strings by
// non-emptiness, numbers by being non-zero.
func (c *Condition) Eval(s *vars.Store) (bool, error) {
	env := map[string]any{
		"getvar": func(name string) (string, error) {
			val, err := s.Get(name)
			if err != nil {
				return "", err
			}
			return vars.ToString(val), nil
		},
	}
	out, err := expr.Run(c.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating condition %q: %w", c.src, err)
	}
	return truthy(out), nil
}

// tokenize normalizes whitespace around operators and splits the
// condition into words.
func tokenize(cond string) ([]string, error) {
	raw, err := shlex.Split(normalize(cond))
	if err != nil {
		return nil, err
	}
	var words []string
	for _, w := range raw {
		words = append(words, splitGlued(w)...)
	}
	return words, nil
}

var opChars = [256]bool{}

func init() {
	for _, c := range []byte("!=<>+-()/*%~^") {
		opChars[c] = true
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' }

// normalize inserts a space before and after any operator character that
// lacks adjacent whitespace or another operator character, repeating
// until a full pass changes nothing. This repairs conditions typed
// without spacing, like "[correct]=1".
func normalize(cond string) string {
	redo := true
	for redo {
		redo = false
		for i := 0; i < len(cond); i++ {
			if !opChars[cond[i]] {
				continue
			}
			if i != 0 && !opChars[cond[i-1]] && !isSpace(cond[i-1]) {
				cond = cond[:i] + " " + cond[i:]
				redo = true
				break
			}
			if i < len(cond)-1 && !opChars[cond[i+1]] && !isSpace(cond[i+1]) {
				cond = cond[:i+1] + " " + cond[i+1:]
				redo = true
				break
			}
		}
	}
	return cond
}

var numKeyword = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(and|or|not)$`)

// splitGlued breaks apart tokens the whitespace repair cannot separate:
// bracketed references glued to surrounding text and boolean keywords
// glued to a number, so "[rt]>200and[rt]<500" tokenizes like its spaced
// form. Tokens containing whitespace were quoted and are kept intact.
func splitGlued(tok string) []string {
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return []string{tok}
	}
	var out []string
	for tok != "" {
		if tok[0] == '[' {
			if end := strings.IndexByte(tok, ']'); end > 0 {
				out = append(out, tok[:end+1])
				tok = tok[end+1:]
				continue
			}
			out = append(out, tok)
			break
		}
		run, rest := tok, ""
		if j := strings.IndexByte(tok, '['); j >= 0 {
			run, rest = tok[:j], tok[j:]
		}
		if m := numKeyword.FindStringSubmatch(run); m != nil {
			out = append(out, m[1], m[2])
		} else if run != "" {
			out = append(out, run)
		}
		tok = rest
	}
	return out
}

// rewrite maps the token stream onto the expr grammar.
func rewrite(words []string) string {
	out := make([]string, 0, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		switch {
		case len(w) > 2 && w[0] == '[' && w[len(w)-1] == ']':
			out = append(out, fmt.Sprintf("getvar(%s)", strconv.Quote(w[1:len(w)-1])))
		case w == "=":
			out = append(out, "==")
		case lw == "always":
			out = append(out, "true")
		case lw == "never":
			out = append(out, "false")
		case operators[lw] || keywords[lw]:
			switch lw {
			case "is":
				out = append(out, "==")
			case "none":
				out = append(out, "nil")
			default:
				out = append(out, lw)
			}
		case i == 0:
			// Backward compatibility: an unrecognized first token is an
			// implicit variable reference.
			out = append(out, fmt.Sprintf("getvar(%s)", strconv.Quote(w)))
		default:
			out = append(out, strconv.Quote(w))
		}
	}
	return strings.Join(out, " ")
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}
