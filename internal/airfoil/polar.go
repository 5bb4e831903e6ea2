package airfoil

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Foil database layout: <dir>/<airfoil name>/polar.csv, where polar.csv is
// an XFOIL-style file with 9 free-form header lines, a column header row,
// and then alpha,Cl,Cd records.

const polarHeaderLines = 9

// LoadDir registers every airfoil found under dir. Subdirectories without
// a polar.csv are skipped.
func (m *Model) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading foil database %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name(), "polar.csv")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		polar, err := LoadPolarFile(path)
		if err != nil {
			return err
		}
		if err := m.Register(entry.Name(), polar); err != nil {
			return err
		}
	}
	return nil
}

// LoadPolarFile parses a single polar.csv file
func LoadPolarFile(path string) (Polar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Polar{}, fmt.Errorf("reading polar %s: %w", path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) <= polarHeaderLines+1 {
		return Polar{}, fmt.Errorf("polar %s: too short, want %d header lines plus data", path, polarHeaderLines)
	}

	polar := Polar{Reynolds: headerReynolds(lines[:polarHeaderLines])}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[polarHeaderLines:], "\n")))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return Polar{}, fmt.Errorf("parsing polar %s: %w", path, err)
	}
	if len(records) < 3 {
		return Polar{}, fmt.Errorf("polar %s: no data rows", path)
	}

	// First record is the column header; alpha is the index column
	clCol, cdCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "cl":
			clCol = i
		case "cd":
			cdCol = i
		}
	}
	if clCol < 0 || cdCol < 0 {
		return Polar{}, fmt.Errorf("polar %s: missing Cl/Cd columns in header %v", path, records[0])
	}

	for _, rec := range records[1:] {
		if len(rec) <= clCol || len(rec) <= cdCol {
			return Polar{}, fmt.Errorf("polar %s: short record %v", path, rec)
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return Polar{}, fmt.Errorf("polar %s: bad alpha %q: %w", path, rec[0], err)
		}
		cl, err := strconv.ParseFloat(strings.TrimSpace(rec[clCol]), 64)
		if err != nil {
			return Polar{}, fmt.Errorf("polar %s: bad Cl %q: %w", path, rec[clCol], err)
		}
		cd, err := strconv.ParseFloat(strings.TrimSpace(rec[cdCol]), 64)
		if err != nil {
			return Polar{}, fmt.Errorf("polar %s: bad Cd %q: %w", path, rec[cdCol], err)
		}
		polar.Alpha = append(polar.Alpha, alpha)
		polar.Cl = append(polar.Cl, cl)
		polar.Cd = append(polar.Cd, cd)
	}
	return polar, nil
}

// headerReynolds scans the free-form header for a "Re = <number>" entry,
// tolerating XFOIL's split mantissa/exponent form ("Re = 0.500 e 6").
// Returns 0 when no Reynolds number is found.
func headerReynolds(header []string) float64 {
	for _, line := range header {
		fields := strings.Fields(strings.ReplaceAll(line, "=", " = "))
		for i, f := range fields {
			if f != "Re" || i+2 >= len(fields) || fields[i+1] != "=" {
				continue
			}
			mantissa, err := strconv.ParseFloat(fields[i+2], 64)
			if err != nil {
				continue
			}
			if i+4 < len(fields) && fields[i+3] == "e" {
				if exp, err := strconv.ParseFloat(fields[i+4], 64); err == nil {
					return mantissa * math.Pow(10, exp)
				}
			}
			return mantissa
		}
	}
	return 0
}
