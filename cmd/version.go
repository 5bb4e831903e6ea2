package cmd

import (
	"fmt"

	"github.com/aeroforge/gobem/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobem",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobem v%s\n", version.Version)
		fmt.Println("Wind Turbine Blade Design Tool")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
