package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brabagaza/OpenSesame/pkg/script"
)

var refsCmd = &cobra.Command{
	Use:   "refs <file>",
	Short: "List bracketed variable references per item",
	Long:  `Scans every string variable for [name] references without resolving them, the way editor tooling decides which variables a definition depends on.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefs(args[0])
	},
}

func init() {
	rootCmd.AddCommand(refsCmd)
}

func runRefs(path string) error {
	text, err := readScript(path)
	if err != nil {
		return err
	}
	f, err := script.ParseFile(text, nil)
	if err != nil {
		return err
	}
	defs := append([]*script.Definition{f.Experiment}, f.Items...)
	for _, d := range defs {
		for _, name := range d.Vars.Names() {
			raw, err := d.Vars.GetRaw(name)
			if err != nil {
				continue
			}
			s, ok := raw.(string)
			if !ok {
				continue
			}
			refs, err := d.Vars.GetRefs(s)
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Printf("%s\t%s\t[%s]\n", d.Name, name, ref)
			}
		}
	}
	return nil
}
