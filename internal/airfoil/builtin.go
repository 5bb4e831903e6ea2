package airfoil

import (
	"strconv"
	"strings"
)

// Builtin profiles let a configuration run without an external foil
// database: "circle" (bluff circular sections for the blade root) and any
// NACA 4-digit foil, whose polar is synthesized from thin-airfoil theory
// with a simple stall roll-off.

const (
	// Lift slope of 2*pi per radian, expressed per degree
	liftSlopePerDeg = 0.10966

	// Drag coefficient of a circular section at subcritical Reynolds
	circleDrag = 1.1
)

// synthesize builds polar data for builtin profile names, or returns nil
// when the name is not a builtin
func synthesize(name string) []Polar {
	if strings.EqualFold(name, "circle") {
		return []Polar{{
			Alpha: []float64{-180, 180},
			Cl:    []float64{0, 0},
			Cd:    []float64{circleDrag, circleDrag},
		}}
	}
	camber, _, thickness, ok := ParseNACA(name)
	if !ok {
		return nil
	}
	return []Polar{nacaPolar(camber, thickness)}
}

// ParseNACA decodes a 4-digit NACA designation into maximum camber
// (fraction of chord), camber position (fraction of chord) and maximum
// thickness (fraction of chord)
func ParseNACA(name string) (camber, position, thickness float64, ok bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(upper, "NACA") {
		return 0, 0, 0, false
	}
	digits := strings.TrimSpace(strings.TrimPrefix(upper, "NACA"))
	if len(digits) != 4 {
		return 0, 0, 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, 0, 0, false
	}
	camber = float64(n/1000) / 100
	position = float64(n/100%10) / 10
	thickness = float64(n%100) / 100
	return camber, position, thickness, true
}

// Thickness returns the relative thickness implied by a profile name:
// the code digits for NACA foils, full thickness for circular sections.
// ok is false when the name implies nothing.
func Thickness(name string) (float64, bool) {
	if strings.EqualFold(name, "circle") {
		return 1.0, true
	}
	if _, _, t, ok := ParseNACA(name); ok {
		return t, true
	}
	return 0, false
}

// nacaPolar generates a tabulated polar from thin-airfoil theory.
// Zero-lift angle scales with camber, drag follows a parabolic polar, and
// lift rolls off linearly past stall.
func nacaPolar(camber, thickness float64) Polar {
	zeroLiftDeg := -100 * camber // about -1 degree per percent camber
	clMax := 1.3 + 2*camber
	cd0 := 0.006 + 0.01*thickness

	var p Polar
	for a := -20.0; a <= 25.0; a += 0.5 {
		cl := liftSlopePerDeg * (a - zeroLiftDeg)
		switch {
		case cl > clMax:
			cl = clMax - 0.01*(cl-clMax)/liftSlopePerDeg
		case cl < -clMax:
			cl = -clMax - 0.01*(cl+clMax)/liftSlopePerDeg
		}
		cd := cd0 + 0.01*cl*cl
		p.Alpha = append(p.Alpha, a)
		p.Cl = append(p.Cl, cl)
		p.Cd = append(p.Cd, cd)
	}
	return p
}
