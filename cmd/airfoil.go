package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aeroforge/gobem/internal/airfoil"
	"github.com/spf13/cobra"
)

var (
	airfoilName     string
	airfoilFoilDir  string
	airfoilAlpha    float64
	airfoilReynolds float64
	airfoilSweep    bool
)

var airfoilCmd = &cobra.Command{
	Use:   "airfoil",
	Short: "Look up lift and drag coefficients for an airfoil",
	Long: `Query the airfoil model for lift and drag coefficients at a given
angle of attack and Reynolds number.

Built-in profiles are available without any database: NACA 4-digit
sections (thin-airfoil synthesis, e.g. NACA4418) and "circle" for
cylindrical root sections. External XFOIL-style polar files can be
loaded with --foils.

Examples:
  # Cl and Cd of a NACA 4418 at 5° and Re = 300 000
  gobem airfoil --name NACA4418 --alpha 5 --re 3e5

  # Sweep the polar over the angle-of-attack range
  gobem airfoil --name NACA2412 --re 1e5 --sweep

  # Use measured polars from a foil database
  gobem airfoil --name S822 --foils ./foils --alpha 6 --re 2e5`,
	RunE: runAirfoil,
}

func init() {
	rootCmd.AddCommand(airfoilCmd)

	airfoilCmd.Flags().StringVarP(&airfoilName, "name", "n", "", "Airfoil name (required)")
	airfoilCmd.Flags().StringVar(&airfoilFoilDir, "foils", "", "External foil database directory")
	airfoilCmd.Flags().Float64VarP(&airfoilAlpha, "alpha", "a", 0, "Angle of attack in degrees")
	airfoilCmd.Flags().Float64Var(&airfoilReynolds, "re", 1e5, "Reynolds number")
	airfoilCmd.Flags().BoolVar(&airfoilSweep, "sweep", false, "Tabulate the polar over the angle-of-attack range")
	airfoilCmd.MarkFlagRequired("name")
}

func runAirfoil(cmd *cobra.Command, args []string) error {
	model := airfoil.NewModel()
	if airfoilFoilDir != "" {
		if err := model.LoadDir(airfoilFoilDir); err != nil {
			return err
		}
	}

	if !airfoilSweep {
		cl, cd, err := model.LiftDrag(airfoilName, airfoilAlpha, airfoilReynolds)
		if err != nil {
			return err
		}
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Airfoil:\t%s\n", airfoilName)
		fmt.Fprintf(w, "  Angle of attack:\t%.2f°\n", airfoilAlpha)
		fmt.Fprintf(w, "  Reynolds number:\t%.2e\n", airfoilReynolds)
		fmt.Fprintf(w, "  Lift coefficient:\t%.4f\n", cl)
		fmt.Fprintf(w, "  Drag coefficient:\t%.5f\n", cd)
		fmt.Fprintf(w, "  Glide ratio:\t%.1f\n", cl/cd)
		w.Flush()
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Printf("  Polar of %s at Re = %.2e\n", airfoilName, airfoilReynolds)
	fmt.Println("  ─────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  α (°)\tCl\tCd\tCl/Cd\n")
	for alpha := -10.0; alpha <= 20.0; alpha += 1.0 {
		cl, cd, err := model.LiftDrag(airfoilName, alpha, airfoilReynolds)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %.0f\t%.4f\t%.5f\t%.1f\n", alpha, cl, cd, cl/cd)
	}
	w.Flush()
	fmt.Println()
	return nil
}
