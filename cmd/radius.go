package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/aeroforge/gobem/internal/bem"
	"github.com/spf13/cobra"
)

var (
	radiusPower      float64
	radiusEfficiency float64
	radiusVelocity   float64
	radiusDensity    float64
	radiusTSR        float64
)

var radiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "Actuator-disc estimate of rotor radius and speed",
	Long: `Quick hand calculation of the rotor size from actuator-disc theory,
without solving the blade element equations:

  R = √( 2·P / (η·ρ·π·V³) )

This is the radius a full optimization run starts its search from.
The rotor speed and torque follow from the tip-speed ratio.

Example:
  # 1 kW turbine at 22.5% efficiency in a 10 m/s wind
  gobem radius --power 1000 --efficiency 0.225 --velocity 10 --tsr 5`,
	RunE: runRadius,
}

func init() {
	rootCmd.AddCommand(radiusCmd)

	radiusCmd.Flags().Float64VarP(&radiusPower, "power", "p", 0, "Target electrical power in W (required)")
	radiusCmd.Flags().Float64VarP(&radiusEfficiency, "efficiency", "e", 0, "Expected overall efficiency (required)")
	radiusCmd.Flags().Float64VarP(&radiusVelocity, "velocity", "v", 0, "Free-stream velocity in m/s (required)")
	radiusCmd.Flags().Float64Var(&radiusDensity, "density", 1.225, "Fluid density in kg/m³")
	radiusCmd.Flags().Float64Var(&radiusTSR, "tsr", 7, "Tip-speed ratio")
	radiusCmd.MarkFlagRequired("power")
	radiusCmd.MarkFlagRequired("efficiency")
	radiusCmd.MarkFlagRequired("velocity")
}

func runRadius(cmd *cobra.Command, args []string) error {
	if radiusPower <= 0 {
		return fmt.Errorf("power must be positive, got %g", radiusPower)
	}
	if radiusEfficiency <= 0 || radiusEfficiency > 1 {
		return fmt.Errorf("efficiency must be in (0, 1], got %g", radiusEfficiency)
	}
	if radiusVelocity <= 0 {
		return fmt.Errorf("velocity must be positive, got %g", radiusVelocity)
	}
	if radiusDensity <= 0 {
		return fmt.Errorf("density must be positive, got %g", radiusDensity)
	}
	if radiusTSR <= 0 {
		return fmt.Errorf("tsr must be positive, got %g", radiusTSR)
	}

	r := bem.DiscRadius(radiusPower, radiusEfficiency, radiusDensity, radiusVelocity)
	omega := bem.AngularVelocity(radiusTSR, radiusVelocity, r)
	aeroPower := radiusPower / radiusEfficiency
	torque := aeroPower / omega

	fmt.Println()
	fmt.Println("  ACTUATOR-DISC ESTIMATE")
	fmt.Println("  ─────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rotor radius:\t%.3f m\n", r)
	fmt.Fprintf(w, "  Swept area:\t%.2f m²\n", math.Pi*r*r)
	fmt.Fprintf(w, "  Aerodynamic power:\t%.1f W\n", aeroPower)
	fmt.Fprintf(w, "  Rotational velocity:\t%.2f rad/s (%.0f RPM)\n", omega, 60*omega/(2*math.Pi))
	fmt.Fprintf(w, "  Rotor torque:\t%.2f N·m\n", torque)
	w.Flush()
	fmt.Println()
	return nil
}
