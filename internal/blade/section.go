package blade

import (
	"fmt"
	"math"
)

// SectionSpec pins blade properties at (or over) a radial position.
// Sections with EndR set hold their properties constant over
// [StartR, EndR]; sections without EndR act as a knot at StartR. Between a
// section's effective end and the next section's start, angle of attack and
// thickness interpolate linearly. The final section extends to the blade
// tip.
type SectionSpec struct {
	StartR           float64 // m
	EndR             float64 // m; 0 means unset (knot section)
	Airfoil          string
	AngleOfAttackDeg float64
	Thickness        float64 // relative to chord
	ForcedChord      float64 // m; 0 means optimize; requires EndR
}

// fixed reports whether the section holds a constant range
func (s SectionSpec) fixed() bool { return s.EndR > 0 }

// end returns the radius where the section's constant range stops
func (s SectionSpec) end() float64 {
	if s.fixed() {
		return s.EndR
	}
	return s.StartR
}

// Station is the effective blade definition at one radius, produced by
// interpolating the section schedule
type Station struct {
	Airfoil          string
	AngleOfAttackDeg float64
	Thickness        float64
	ForcedChord      float64 // >0 inside a forced range and across its trailing gap
}

// Schedule is the ordered section sequence resolved against a concrete tip
// radius
type Schedule struct {
	sections []SectionSpec
	tip      float64
}

// NewSchedule validates the section sequence against the tip radius.
// The final section's range is extended to the tip.
func NewSchedule(sections []SectionSpec, tip float64) (*Schedule, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("section schedule: no sections defined")
	}
	if tip <= 0 {
		return nil, fmt.Errorf("section schedule: tip radius %.4f must be positive", tip)
	}
	for i, s := range sections {
		if s.StartR <= 0 {
			return nil, fmt.Errorf("section schedule: sections[%d].start_r %.4f must be positive", i, s.StartR)
		}
		if s.fixed() && s.EndR < s.StartR {
			return nil, fmt.Errorf("section schedule: sections[%d] end_r %.4f before start_r %.4f", i, s.EndR, s.StartR)
		}
		if s.ForcedChord > 0 && !s.fixed() {
			return nil, fmt.Errorf("section schedule: sections[%d] forced chord requires end_r", i)
		}
		if s.Airfoil == "" {
			return nil, fmt.Errorf("section schedule: sections[%d] missing airfoil", i)
		}
		if s.Thickness <= 0 {
			return nil, fmt.Errorf("section schedule: sections[%d] missing thickness", i)
		}
		if i > 0 && s.StartR < sections[i-1].end() {
			return nil, fmt.Errorf("section schedule: sections[%d].start_r %.4f overlaps previous section ending at %.4f",
				i, s.StartR, sections[i-1].end())
		}
	}
	last := sections[len(sections)-1]
	if last.end() > tip {
		return nil, fmt.Errorf("section schedule: final section ends at %.4f beyond tip %.4f", last.end(), tip)
	}

	resolved := make([]SectionSpec, len(sections))
	copy(resolved, sections)
	return &Schedule{sections: resolved, tip: tip}, nil
}

// Root returns the radius where the blade starts
func (sc *Schedule) Root() float64 { return sc.sections[0].StartR }

// Tip returns the blade tip radius
func (sc *Schedule) Tip() float64 { return sc.tip }

// At produces the effective blade definition at radius r. Interpolation is
// exact at every section boundary; a query exactly at the tip returns the
// final section. The airfoil between two sections is taken from the nearer
// one, from the lower-radius section at the exact midpoint.
func (sc *Schedule) At(r float64) (Station, error) {
	if r < sc.Root() || r > sc.tip {
		return Station{}, &OutOfRangeError{Radius: r, Min: sc.Root(), Max: sc.tip}
	}

	for i, s := range sc.sections {
		last := i == len(sc.sections)-1
		end := s.end()
		if last {
			end = sc.tip
		}
		if r >= s.StartR && r <= end {
			return Station{
				Airfoil:          s.Airfoil,
				AngleOfAttackDeg: s.AngleOfAttackDeg,
				Thickness:        s.Thickness,
				ForcedChord:      s.ForcedChord,
			}, nil
		}
		if last {
			break
		}
		next := sc.sections[i+1]
		if r > end && r < next.StartR {
			f := (r - end) / (next.StartR - end)
			foil := s.Airfoil
			if f > 0.5 {
				foil = next.Airfoil
			}
			return Station{
				Airfoil:          foil,
				AngleOfAttackDeg: lerp(s.AngleOfAttackDeg, next.AngleOfAttackDeg, f),
				Thickness:        lerp(s.Thickness, next.Thickness, f),
				// A forced chord carries across the gap; the optimizer
				// blends it into the optimized chord afterwards
				ForcedChord: s.ForcedChord,
			}, nil
		}
	}
	// not reached for a validated schedule
	return Station{}, &OutOfRangeError{Radius: r, Min: sc.Root(), Max: sc.tip}
}

func lerp(a, b, f float64) float64 {
	return a*(1-f) + b*f
}

// sinLerp eases between a and b with zero slope at both ends; used to
// blend a forced chord into the optimized chord distribution
func sinLerp(a, b, f float64) float64 {
	return a + (1-(math.Cos(f*math.Pi)+1)/2)*(b-a)
}
