// Package export writes optimized blade data to CSV files for downstream
// tooling (spreadsheets, CAD exporters, plotting).
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/aeroforge/gobem/internal/blade"
)

// WriteGeometryCSV writes the per-slice geometry and design solution
func WriteGeometryCSV(b *blade.Blade, path string) error {
	rows := make([][]string, 0, len(b.Slices)+1)
	rows = append(rows, []string{
		"radius", "airfoil", "angle_of_attack_deg", "twist_deg", "chord",
		"thickness", "solidity", "lift_coefficient", "drag_coefficient",
		"axial_induction", "tangential_induction", "reynolds_number",
	})
	for _, s := range b.Slices {
		rows = append(rows, []string{
			f(s.Radius), s.Airfoil, f(s.AngleOfAttackDeg), f(s.TwistAngleDeg), f(s.ChordLength),
			f(s.Thickness), f(s.Solidity), f(s.LiftCoefficient), f(s.DragCoefficient),
			f(s.AxialInduction), f(s.TangentialInduction), f(s.ReynoldsNumber),
		})
	}
	return writeCSV(path, rows)
}

// WriteForcesCSV writes a per-slice force table
func WriteForcesCSV(est *blade.ForceEstimate, path string) error {
	rows := make([][]string, 0, len(est.Rows)+1)
	rows = append(rows, []string{"radius", "axial_force", "tangential_force", "reynolds_number"})
	for _, r := range est.Rows {
		rows = append(rows, []string{f(r.Radius), f(r.AxialForce), f(r.TangentialForce), f(r.ReynoldsNumber)})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
