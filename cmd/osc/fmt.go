package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brabagaza/OpenSesame/pkg/script"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a script in canonical form",
	Long:  `Parses the script and serializes it back: quoted set lines, tab indentation and textblocks for multi-line values. With -w the file is rewritten in place.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(args[0])
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite the file instead of printing")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(path string) error {
	text, err := readScript(path)
	if err != nil {
		return err
	}
	f, err := script.ParseFile(text, nil)
	if err != nil {
		return err
	}
	out := f.Serialize()
	if !fmtWrite || path == "-" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	logger.Info("script rewritten", "file", path)
	return nil
}
