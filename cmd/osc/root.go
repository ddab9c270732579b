package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brabagaza/OpenSesame/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "osc",
	Short: "osc inspects and validates OpenSesame experiment scripts",
	Long:  `osc works on the line-oriented experiment script format: it validates definitions, rewrites them canonically, lists variable references and evaluates substitution text and conditions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		return nil
	},
}

// logger is shared by all subcommands; configured in PersistentPreRunE.
var logger *slog.Logger

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// readScript loads a script from the file argument, or stdin for "-".
func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
