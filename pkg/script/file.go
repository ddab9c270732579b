package script

import (
	"strings"
)

// File is a parsed experiment script: the experiment-level definition
// (built from the lines preceding the first define header) and the item
// definitions, in file order. Item variable stores fall back to the
// experiment store.
type File struct {
	Experiment *Definition
	Items      []*Definition
}

// ParseFile parses a whole experiment script. exp receives the global
// lines; when nil a fresh experiment definition is created. A new item
// section starts at every unindented define header; indented lines, the
// way Serialize writes them, always belong to the current section.
func ParseFile(text string, exp *Definition) (*File, error) {
	if exp == nil {
		exp = New("experiment", "experiment", nil)
	}
	f := &File{Experiment: exp}

	var global, section []string
	inItem := false

	flush := func() error {
		if !inItem {
			return nil
		}
		d := New("", "", exp.Vars)
		if err := d.ParseScript(strings.Join(section, "\n")); err != nil {
			return err
		}
		f.Items = append(f.Items, d)
		section = nil
		return nil
	}

	for _, raw := range strings.Split(text, "\n") {
		if strings.HasPrefix(raw, "define") {
			if err := flush(); err != nil {
				return nil, err
			}
			inItem = true
			section = append(section, raw)
			continue
		}
		if inItem {
			section = append(section, raw)
		} else {
			global = append(global, raw)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if err := exp.ParseScript(strings.Join(global, "\n")); err != nil {
		return nil, err
	}
	return f, nil
}

// Lookup returns the item definition with the given name, or nil.
func (f *File) Lookup(name string) *Definition {
	for _, d := range f.Items {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Serialize renders the whole file back to script text: global variables
// first, then each item definition separated by a blank line.
func (f *File) Serialize() string {
	var b strings.Builder
	for _, name := range f.Experiment.Vars.Names() {
		val, err := f.Experiment.Vars.GetRaw(name)
		if err != nil {
			continue
		}
		writeGlobal(&b, name, val)
	}
	for _, d := range f.Items {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Serialize(""))
	}
	return b.String()
}

// writeGlobal writes an experiment-level variable without the body
// indentation used inside item definitions.
func writeGlobal(b *strings.Builder, name string, val any) {
	var tmp strings.Builder
	writeVariable(&tmp, name, val)
	for _, line := range strings.Split(strings.TrimSuffix(tmp.String(), "\n"), "\n") {
		b.WriteString(strings.TrimPrefix(line, "\t"))
		b.WriteByte('\n')
	}
}
