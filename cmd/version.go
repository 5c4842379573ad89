package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "estudos", version)
	},
}
