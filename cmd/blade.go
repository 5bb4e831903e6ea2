package cmd

import (
	"github.com/spf13/cobra"
)

var bladeCmd = &cobra.Command{
	Use:   "blade",
	Short: "Blade geometry optimization and force estimation",
	Long: `Optimize a blade design from a YAML configuration file, or estimate
the forces on an already-optimized blade under off-design conditions.

The configuration defines the wind environment, the power target, and the
airfoil sections along the blade. See config.yaml in the repository for a
documented example.

Subcommands:
  design  - Optimize the blade geometry and export the results
  forces  - Estimate blade forces under other wind conditions`,
}

func init() {
	rootCmd.AddCommand(bladeCmd)
}
