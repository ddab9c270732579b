// Package script converts between the line-oriented item definition
// format and (name, type, comments, variables) tuples. The format is the
// on-disk interchange representation and must stay backward compatible:
// a define header, tab-indented set lines with shell-style quoting,
// comment lines and __name__/__end__ textblocks.
package script

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/brabagaza/OpenSesame/pkg/vars"
)

// DefaultItemType is used when a definition does not declare a type.
const DefaultItemType = "item"

// reservedWords are operation names used as method-like verbs on items.
// A textblock whose name collides with one is stored with a leading
// underscore so it cannot shadow the operation.
var reservedWords = map[string]bool{
	"run":     true,
	"prepare": true,
	"get":     true,
	"set":     true,
	"has":     true,
}

// Definition is the serializable unit behind every item: its name, type,
// comment lines and variable store.
type Definition struct {
	Name     string
	ItemType string
	Comments []string
	Vars     *vars.Store
}

// New creates an empty definition. parent is the experiment-level store
// the item's variables fall back to; it may be nil.
func New(name, itemType string, parent *vars.Store) *Definition {
	if itemType == "" {
		itemType = DefaultItemType
	}
	return &Definition{
		Name:     name,
		ItemType: itemType,
		Vars:     vars.New(name, parent),
	}
}

// Parse reads a single item definition, including its define header if
// present, and returns the populated definition.
func Parse(text string) (*Definition, error) {
	d := New("", "", nil)
	if err := d.ParseScript(text); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseScript reads definition text into d, resetting the variable map
// and comments first. Lines it does not recognize outside a textblock
// are ignored, matching the historical format.
func (d *Definition) ParseScript(text string) error {
	d.Vars.Reset()
	d.Comments = nil

	var (
		inBlock    bool
		blockName  string
		blockBody  []string
		stripTab   bool
		blockStart int
	)

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case line == "__end__":
			if !inBlock {
				return fmt.Errorf("item %q: line %d: __end__ without an open textblock: %w",
					d.Name, lineNo, ErrScriptSyntax)
			}
			if err := d.Vars.Set(blockName, strings.Join(blockBody, "\n")); err != nil {
				return err
			}
			inBlock = false

		case len(line) > 4 && strings.HasPrefix(line, "__") && strings.HasSuffix(line, "__"):
			name := line[2 : len(line)-2]
			if reservedWords[name] {
				name = "_" + name
			}
			blockName = name
			blockBody = nil
			blockStart = lineNo
			inBlock = true
			// Whether the body is indented is decided once, from the
			// opening line. Mixed indentation inside a block is not
			// corrected.
			stripTab = strings.HasPrefix(raw, "\t")

		case inBlock:
			l := raw
			if stripTab {
				l = strings.TrimPrefix(l, "\t")
			}
			blockBody = append(blockBody, l)

		default:
			if err := d.parseLine(raw, lineNo); err != nil {
				return err
			}
		}
	}
	if inBlock {
		return fmt.Errorf("item %q: textblock __%s__ opened on line %d is never closed: %w",
			d.Name, blockName, blockStart, ErrScriptSyntax)
	}
	return nil
}

// parseLine handles a single non-block line: comments, the define
// header and set statements.
func (d *Definition) parseLine(raw string, lineNo int) error {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "#") {
		d.Comments = append(d.Comments, strings.TrimSpace(line[1:]))
		return nil
	}
	if strings.HasPrefix(line, "//") {
		d.Comments = append(d.Comments, strings.TrimSpace(line[2:]))
		return nil
	}

	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("item %q: line %d: cannot parse %q: %v: %w",
			d.Name, lineNo, line, err, ErrScriptSyntax)
	}
	if len(tokens) == 0 {
		return nil
	}
	switch tokens[0] {
	case "define":
		if len(tokens) != 3 {
			return fmt.Errorf("item %q: line %d: malformed define header %q: %w",
				d.Name, lineNo, line, ErrScriptSyntax)
		}
		d.ItemType = tokens[1]
		d.Name = tokens[2]
		d.Vars.SetItemName(d.Name)
		return nil
	case "set":
		if len(tokens) != 3 {
			return fmt.Errorf("item %q: line %d: malformed variable definition %q; expected 'set <name> <value>': %w",
				d.Name, lineNo, line, ErrScriptSyntax)
		}
		return d.Vars.Set(tokens[1], tokens[2])
	}
	// Anything else belongs to behavior this core does not execute
	// (e.g. run lines of a sequence) and is passed over.
	return nil
}

// Serialize encodes the definition back to script text. itemType
// overrides the definition's own type when non-empty. Multi-line and
// quote-containing string values are written as textblocks; everything
// else becomes a quoted set line. Values with characters outside the
// textual grammar should be passed through the sanitize codec before
// being set.
func (d *Definition) Serialize(itemType string) string {
	if itemType == "" {
		itemType = d.ItemType
	}
	var b strings.Builder
	fmt.Fprintf(&b, "define %s %s\n", itemType, d.Name)
	for _, c := range d.Comments {
		fmt.Fprintf(&b, "\t# %s\n", strings.TrimSpace(c))
	}
	for _, name := range d.Vars.Names() {
		val, err := d.Vars.GetRaw(name)
		if err != nil {
			continue // unreachable: Names only lists stored variables
		}
		writeVariable(&b, name, val)
	}
	return b.String()
}

// String returns the serialized definition.
func (d *Definition) String() string { return d.Serialize("") }

func writeVariable(b *strings.Builder, name string, val any) {
	if s, ok := val.(string); ok && (strings.Contains(s, "\n") || strings.Contains(s, "\"")) {
		fmt.Fprintf(b, "\t__%s__\n", name)
		for _, line := range strings.Split(s, "\n") {
			b.WriteByte('\t')
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString("\t__end__\n")
		return
	}
	fmt.Fprintf(b, "\tset %s \"%s\"\n", name, escapeValue(vars.ToString(val)))
}

// escapeValue makes a value safe inside double quotes for shlex. Double
// quotes never reach here (they force the textblock form), so only the
// backslash needs doubling.
func escapeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
