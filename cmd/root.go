package cmd

import (
	"fmt"
	"os"

	"github.com/aeroforge/gobem/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gobem",
	Short: "Wind Turbine Blade Design Tool",
	Long: `gobem - Go Blade Element Momentum Designer

A CLI tool that computes optimized wind-turbine blade geometry with the
blade-element-momentum (BEM) method.

Given the wind conditions, a power target and a set of airfoil sections,
this tool finds:
  - The rotor radius and speed that meet the power target
  - Per-slice chord length and twist angle along the blade
  - Induction factors and Reynolds numbers at every station
  - Thrust, torque and per-slice force distributions

Results are reported to the terminal and exported as CSV tables and
spanwise diagrams for downstream CAD and analysis tooling.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobem v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Blade Element Momentum Designer                      ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for optimizing wind-turbine blade geometry")
		fmt.Println("  using blade element momentum theory.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Rotor sizing against a target power and tip-speed ratio")
		fmt.Println("    • Per-slice chord and twist optimization")
		fmt.Println("    • Prandtl tip-loss and Glauert high-induction corrections")
		fmt.Println("    • Off-design force estimation")
		fmt.Println("    • CSV and diagram export")
		fmt.Println()
		fmt.Println("  Use 'gobem --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
