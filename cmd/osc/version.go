package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	opensesame "github.com/brabagaza/OpenSesame"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of osc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("osc version %s\n", strings.TrimSpace(opensesame.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
