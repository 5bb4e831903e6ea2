package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/aeroforge/gobem/internal/airfoil"
	"github.com/aeroforge/gobem/internal/blade"
	"github.com/aeroforge/gobem/internal/config"
	"github.com/aeroforge/gobem/internal/diagram"
	"github.com/aeroforge/gobem/internal/export"
	"github.com/spf13/cobra"
)

var (
	designConfigFile  string
	designOutputDir   string
	designFoilDir     string
	designShowDiagram bool
	designPlots       bool
)

var bladeDesignCmd = &cobra.Command{
	Use:   "design",
	Short: "Optimize blade geometry from a configuration file",
	Long: `Find the blade radius and per-slice geometry that meet the configured
power target at the configured tip-speed ratio.

The optimizer sizes the rotor radius by bisection, solving the blade
element momentum equations for every slice at each candidate radius.
Results are written to the output directory:
  geometry.csv   - per-slice chord, twist, induction factors
  forces.csv     - per-slice thrust and torque forces
  *.png          - spanwise diagrams (with --plots)

Examples:
  # Optimize the design described in config.yaml
  gobem blade design --config config.yaml

  # Show an ASCII planform and write diagrams
  gobem blade design -c config.yaml --diagram --plots`,
	RunE: runBladeDesign,
}

func init() {
	bladeCmd.AddCommand(bladeDesignCmd)

	bladeDesignCmd.Flags().StringVarP(&designConfigFile, "config", "c", "config.yaml", "Design configuration file")
	bladeDesignCmd.Flags().StringVarP(&designOutputDir, "output-dir", "o", "output", "Directory for exported results")
	bladeDesignCmd.Flags().StringVar(&designFoilDir, "foils", "", "External foil database directory (overrides config)")
	bladeDesignCmd.Flags().BoolVar(&designShowDiagram, "diagram", false, "Show ASCII planform diagram")
	bladeDesignCmd.Flags().BoolVar(&designPlots, "plots", false, "Export spanwise diagrams as PNG")
}

func runBladeDesign(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(designConfigFile)
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

	forces, err := b.EstimateForces(cfg.Environment)
	if err != nil {
		return err
	}

	printDesignReport(cfg, b, forces)

	if designShowDiagram {
		fmt.Println(diagram.DrawASCIIPlanform(spanData(b)))
	}

	if err := os.MkdirAll(designOutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := export.WriteGeometryCSV(b, filepath.Join(designOutputDir, "geometry.csv")); err != nil {
		return err
	}
	if err := export.WriteForcesCSV(forces, filepath.Join(designOutputDir, "forces.csv")); err != nil {
		return err
	}
	fmt.Printf("  Exported geometry.csv and forces.csv to %s\n", designOutputDir)

	if designPlots {
		data := spanData(b)
		exports := []struct {
			name string
			fn   func(diagram.SpanData, string) error
		}{
			{"planform.png", diagram.ExportPlanformDiagram},
			{"twist.png", diagram.ExportTwistDiagram},
			{"induction.png", diagram.ExportInductionDiagram},
			{"forces.png", diagram.ExportForcesDiagram},
		}
		for _, e := range exports {
			if err := e.fn(data, filepath.Join(designOutputDir, e.name)); err != nil {
				return err
			}
		}
		fmt.Printf("  Exported spanwise diagrams to %s\n", designOutputDir)
	}
	fmt.Println()
	return nil
}

// buildModel creates the airfoil model, loading an external foil database
// when one is configured
func buildModel(cfg *config.Config) (*airfoil.Model, error) {
	model := airfoil.NewModel()
	dir := cfg.FoilPath
	if designFoilDir != "" {
		dir = designFoilDir
	}
	if dir != "" {
		if err := model.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func printDesignReport(cfg *config.Config, b *blade.Blade, forces *blade.ForceEstimate) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BLADE ELEMENT MOMENTUM DESIGN")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Free-stream velocity:\t%.2f m/s\n", cfg.Environment.FreeStreamVelocity)
	fmt.Fprintf(w, "  Fluid density:\t%.3f kg/m³\n", cfg.Environment.FluidDensity)
	fmt.Fprintf(w, "  Dynamic viscosity:\t%.3e Pa·s\n", cfg.Environment.DynamicViscosity)
	fmt.Fprintf(w, "  Target power:\t%.1f W\n", cfg.Targets.TargetPower)
	fmt.Fprintf(w, "  Expected efficiency:\t%.3f\n", cfg.Targets.ExpectedEfficiency)
	fmt.Fprintf(w, "  Tip-speed ratio:\t%.2f\n", cfg.Targets.TipSpeedRatio)
	fmt.Fprintf(w, "  Blade count:\t%d\n", cfg.BladeCount)
	fmt.Fprintf(w, "  Slices:\t%d\n", cfg.SliceCount)
	w.Flush()
	fmt.Println()

	fmt.Println("ROTOR SOLUTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Blade radius:\t%.3f m\n", b.Radius)
	fmt.Fprintf(w, "  Rotational velocity:\t%.2f rad/s (%.0f RPM)\n", b.RotationalVelocity, b.RPM())
	fmt.Fprintf(w, "  Aerodynamic power:\t%.1f W\n", b.Power())
	fmt.Fprintf(w, "  Delivered power:\t%.1f W\n", b.Power()*cfg.Targets.ExpectedEfficiency)
	fmt.Fprintf(w, "  Generator torque:\t%.2f N·m\n", b.Torque)
	fmt.Fprintf(w, "  Total thrust:\t%.1f N\n", forces.Thrust)
	fmt.Fprintf(w, "  Root bending moment:\t%.1f N·m\n", forces.RootBendingMoment)
	w.Flush()
	fmt.Println()

	fmt.Println("BLADE GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  r (m)\tairfoil\tchord (m)\ttwist (°)\ta\ta'\tRe\n")
	fmt.Fprintf(w, "  ─────\t───────\t─────────\t─────────\t─\t──\t──\n")
	for _, s := range b.Slices {
		fmt.Fprintf(w, "  %.3f\t%s\t%.4f\t%.2f\t%.3f\t%.3f\t%.2e\n",
			s.Radius, s.Airfoil, s.ChordLength, s.TwistAngleDeg,
			s.AxialInduction, s.TangentialInduction, s.ReynoldsNumber)
	}
	w.Flush()
	fmt.Println()
}

// spanData flattens the blade slices into plottable series
func spanData(b *blade.Blade) diagram.SpanData {
	data := diagram.SpanData{
		Radius:              make([]float64, len(b.Slices)),
		Chord:               make([]float64, len(b.Slices)),
		TwistDeg:            make([]float64, len(b.Slices)),
		AxialInduction:      make([]float64, len(b.Slices)),
		TangentialInduction: make([]float64, len(b.Slices)),
		AxialForce:          make([]float64, len(b.Slices)),
		TangentialForce:     make([]float64, len(b.Slices)),
	}
	for i, s := range b.Slices {
		data.Radius[i] = s.Radius
		data.Chord[i] = s.ChordLength
		data.TwistDeg[i] = s.TwistAngleDeg
		data.AxialInduction[i] = s.AxialInduction
		data.TangentialInduction[i] = s.TangentialInduction
		data.AxialForce[i] = s.AxialForce
		data.TangentialForce[i] = s.TangentialForce
	}
	return data
}
