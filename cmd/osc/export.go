package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brabagaza/OpenSesame/pkg/script"
)

// exportedItem is the YAML shape of one parsed definition.
type exportedItem struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Comments  []string       `yaml:"comments,omitempty"`
	Variables map[string]any `yaml:"variables"`
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Dump a parsed script as YAML",
	Long:  `Parses the script and prints the experiment globals and every item definition as YAML, with values in their coerced types. Useful for diffing and for tooling that does not speak the script format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(path string) error {
	text, err := readScript(path)
	if err != nil {
		return err
	}
	f, err := script.ParseFile(text, nil)
	if err != nil {
		return err
	}

	doc := struct {
		Experiment exportedItem   `yaml:"experiment"`
		Items      []exportedItem `yaml:"items"`
	}{
		Experiment: exportDef(f.Experiment),
	}
	for _, d := range f.Items {
		doc.Items = append(doc.Items, exportDef(d))
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal script: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func exportDef(d *script.Definition) exportedItem {
	return exportedItem{
		Name:      d.Name,
		Type:      d.ItemType,
		Comments:  d.Comments,
		Variables: d.Vars.Map(),
	}
}
