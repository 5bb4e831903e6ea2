// Package airfoil provides lift and drag coefficient lookup for named
// airfoil profiles, by interpolation over tabulated polar data.
package airfoil

import (
	"fmt"
	"sort"
	"sync"
)

// Polar holds tabulated lift/drag coefficients for one airfoil at one
// Reynolds number. Alpha is in degrees, ascending.
type Polar struct {
	Reynolds float64
	Alpha    []float64
	Cl       []float64
	Cd       []float64
}

// UnknownAirfoilError is returned when an airfoil identifier has no
// registered or synthesizable polar data
type UnknownAirfoilError struct {
	Name string
}

func (e *UnknownAirfoilError) Error() string {
	return fmt.Sprintf("unknown airfoil %q", e.Name)
}

// Model owns the polar tables for all known airfoils. Tables are immutable
// once registered; lookups are safe for concurrent use.
type Model struct {
	mu    sync.RWMutex
	foils map[string][]Polar // sorted by Reynolds
}

// NewModel creates a model pre-loaded with the builtin profiles
// (circular sections and NACA 4-digit foils are synthesized on demand)
func NewModel() *Model {
	return &Model{foils: make(map[string][]Polar)}
}

// Register adds polar tables for a named airfoil, replacing any previous
// registration
func (m *Model) Register(name string, polars ...Polar) error {
	if len(polars) == 0 {
		return fmt.Errorf("airfoil %q: no polar data", name)
	}
	for _, p := range polars {
		if len(p.Alpha) < 2 {
			return fmt.Errorf("airfoil %q: polar needs at least 2 points, got %d", name, len(p.Alpha))
		}
		if len(p.Cl) != len(p.Alpha) || len(p.Cd) != len(p.Alpha) {
			return fmt.Errorf("airfoil %q: mismatched polar column lengths", name)
		}
		if !sort.Float64sAreSorted(p.Alpha) {
			return fmt.Errorf("airfoil %q: polar angles must be ascending", name)
		}
	}
	sorted := make([]Polar, len(polars))
	copy(sorted, polars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Reynolds < sorted[j].Reynolds })

	m.mu.Lock()
	m.foils[name] = sorted
	m.mu.Unlock()
	return nil
}

// Has reports whether the model can resolve the named airfoil
func (m *Model) Has(name string) bool {
	m.mu.RLock()
	_, ok := m.foils[name]
	m.mu.RUnlock()
	if ok {
		return true
	}
	return synthesize(name) != nil
}

// LiftDrag returns the lift and drag coefficients of the named airfoil at
// the given angle of attack (degrees) and Reynolds number. Angles outside
// the tabulated range clamp to the table ends; when polars exist at several
// Reynolds numbers the two bracketing tables are linearly interpolated.
func (m *Model) LiftDrag(name string, alphaDeg, reynolds float64) (cl, cd float64, err error) {
	polars, err := m.lookup(name)
	if err != nil {
		return 0, 0, err
	}

	if len(polars) == 1 || reynolds <= polars[0].Reynolds {
		cl, cd = polars[0].at(alphaDeg)
		return cl, cd, nil
	}
	last := polars[len(polars)-1]
	if reynolds >= last.Reynolds {
		cl, cd = last.at(alphaDeg)
		return cl, cd, nil
	}
	hi := sort.Search(len(polars), func(i int) bool { return polars[i].Reynolds >= reynolds })
	lo := hi - 1
	f := (reynolds - polars[lo].Reynolds) / (polars[hi].Reynolds - polars[lo].Reynolds)
	clLo, cdLo := polars[lo].at(alphaDeg)
	clHi, cdHi := polars[hi].at(alphaDeg)
	return lerp(clLo, clHi, f), lerp(cdLo, cdHi, f), nil
}

func (m *Model) lookup(name string) ([]Polar, error) {
	m.mu.RLock()
	polars, ok := m.foils[name]
	m.mu.RUnlock()
	if ok {
		return polars, nil
	}

	built := synthesize(name)
	if built == nil {
		return nil, &UnknownAirfoilError{Name: name}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.foils[name]; ok {
		return existing, nil
	}
	m.foils[name] = built
	return built, nil
}

// at interpolates one polar table at the given angle, clamping outside the
// tabulated range
func (p Polar) at(alphaDeg float64) (cl, cd float64) {
	n := len(p.Alpha)
	if alphaDeg <= p.Alpha[0] {
		return p.Cl[0], p.Cd[0]
	}
	if alphaDeg >= p.Alpha[n-1] {
		return p.Cl[n-1], p.Cd[n-1]
	}
	hi := sort.SearchFloat64s(p.Alpha, alphaDeg)
	if p.Alpha[hi] == alphaDeg {
		return p.Cl[hi], p.Cd[hi]
	}
	lo := hi - 1
	f := (alphaDeg - p.Alpha[lo]) / (p.Alpha[hi] - p.Alpha[lo])
	return lerp(p.Cl[lo], p.Cl[hi], f), lerp(p.Cd[lo], p.Cd[hi], f)
}

func lerp(a, b, f float64) float64 {
	return a*(1-f) + b*f
}
