package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/aeroforge/gobem/internal/blade"
	"github.com/aeroforge/gobem/internal/config"
	"github.com/aeroforge/gobem/internal/export"
	"github.com/spf13/cobra"
)

var (
	forcesConfigFile string
	forcesOutputFile string
	forcesVelocity   float64
	forcesDensity    float64
	forcesViscosity  float64
)

var bladeForcesCmd = &cobra.Command{
	Use:   "forces",
	Short: "Estimate blade forces under other wind conditions",
	Long: `Re-evaluate the loading of the optimized blade under a different
environment. The blade geometry, induction factors and lift/drag
coefficients are frozen at their design values; only the dynamic
pressure changes. The rotor is assumed to track the design tip-speed
ratio, so the rotational velocity scales with the wind speed.

The design is first solved from the configuration file, then the
forces are evaluated at the overridden conditions.

Examples:
  # Loading of the configured design in a 15 m/s gust
  gobem blade forces --config config.yaml --velocity 15

  # Same design in cold dense air, written to CSV
  gobem blade forces -c config.yaml --velocity 12 --density 1.29 \
      --output forces_12ms.csv`,
	RunE: runBladeForces,
}

func init() {
	bladeCmd.AddCommand(bladeForcesCmd)

	bladeForcesCmd.Flags().StringVarP(&forcesConfigFile, "config", "c", "config.yaml", "Design configuration file")
	bladeForcesCmd.Flags().StringVarP(&forcesOutputFile, "output", "o", "", "Write the per-slice forces to a CSV file")
	bladeForcesCmd.Flags().Float64Var(&forcesVelocity, "velocity", 0, "Free-stream velocity override (m/s)")
	bladeForcesCmd.Flags().Float64Var(&forcesDensity, "density", 0, "Fluid density override (kg/m³)")
	bladeForcesCmd.Flags().Float64Var(&forcesViscosity, "viscosity", 0, "Dynamic viscosity override (Pa·s)")
}

func runBladeForces(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(forcesConfigFile)
	if err != nil {
		return err
	}

	model, err := buildModel(cfg)
	if err != nil {
		return err
	}

	optimizer := blade.NewOptimizer(model, cfg.BladeCount, cfg.SliceCount, cfg.Sections)
	b, err := optimizer.Optimize(cfg.Targets, cfg.Environment)
	if err != nil {
		return err
	}

	env := cfg.Environment
	if forcesVelocity > 0 {
		env.FreeStreamVelocity = forcesVelocity
	}
	if forcesDensity > 0 {
		env.FluidDensity = forcesDensity
	}
	if forcesViscosity > 0 {
		env.DynamicViscosity = forcesViscosity
	}

	est, err := b.EstimateForces(env)
	if err != nil {
		return err
	}

	printForcesReport(b, est)

	if forcesOutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(forcesOutputFile), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := export.WriteForcesCSV(est, forcesOutputFile); err != nil {
			return err
		}
		fmt.Printf("  Exported per-slice forces to %s\n\n", forcesOutputFile)
	}
	return nil
}

func printForcesReport(b *blade.Blade, est *blade.ForceEstimate) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BLADE FORCE ESTIMATE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("EVALUATED CONDITIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Free-stream velocity:\t%.2f m/s\n", est.Environment.FreeStreamVelocity)
	fmt.Fprintf(w, "  Fluid density:\t%.3f kg/m³\n", est.Environment.FluidDensity)
	fmt.Fprintf(w, "  Dynamic viscosity:\t%.3e Pa·s\n", est.Environment.DynamicViscosity)
	fmt.Fprintf(w, "  Blade radius:\t%.3f m\n", b.Radius)
	fmt.Fprintf(w, "  Rotational velocity:\t%.2f rad/s (%.0f RPM)\n",
		est.RotationalVelocity, 60*est.RotationalVelocity/(2*math.Pi))
	w.Flush()
	fmt.Println()

	fmt.Println("TOTAL LOADING:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Thrust:\t%.1f N\n", est.Thrust)
	fmt.Fprintf(w, "  Torque:\t%.2f N·m\n", est.Torque)
	fmt.Fprintf(w, "  Aerodynamic power:\t%.1f W\n", est.Power)
	fmt.Fprintf(w, "  Root bending moment:\t%.1f N·m\n", est.RootBendingMoment)
	w.Flush()
	fmt.Println()

	fmt.Println("PER-SLICE FORCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  r (m)\taxial (N)\ttangential (N)\tRe\n")
	fmt.Fprintf(w, "  ─────\t─────────\t──────────────\t──\n")
	for _, r := range est.Rows {
		fmt.Fprintf(w, "  %.3f\t%.2f\t%.2f\t%.2e\n",
			r.Radius, r.AxialForce, r.TangentialForce, r.ReynoldsNumber)
	}
	w.Flush()
	fmt.Println()
}
