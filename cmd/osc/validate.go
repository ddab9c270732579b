package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/brabagaza/OpenSesame/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check experiment scripts for problems",
	Long:  `Parses each script and reports syntax errors, invalid variable names, unbalanced references, duplicate items and badly typed options.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			if err := runValidate(path); err != nil {
				printStatus(path, err)
				failed = true
				continue
			}
			printStatus(path, nil)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	text, err := readScript(path)
	if err != nil {
		return err
	}
	logger.Debug("validating script", "file", path)
	return validator.ValidateScript(text)
}

func printStatus(path string, err error) {
	p := termenv.ColorProfile()
	if err == nil {
		ok := termenv.String("ok").Foreground(p.Color("#22c55e"))
		fmt.Printf("%s  %s\n", ok, path)
		return
	}
	fail := termenv.String("FAIL").Foreground(p.Color("#ef4444"))
	fmt.Printf("%s  %s\n      %v\n", fail, path, err)
}
