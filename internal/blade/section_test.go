package blade

import (
	"errors"
	"math"
	"testing"
)

func testSections() []SectionSpec {
	return []SectionSpec{
		{StartR: 0.3, EndR: 0.5, Airfoil: "circle", AngleOfAttackDeg: 0, Thickness: 1.0, ForcedChord: 0.06},
		{StartR: 0.8, Airfoil: "NACA4418", AngleOfAttackDeg: 5, Thickness: 0.18},
	}
}

func TestNewScheduleValidation(t *testing.T) {
	tests := []struct {
		name     string
		sections []SectionSpec
		tip      float64
	}{
		{"no sections", nil, 2.0},
		{"non-positive tip", testSections(), 0},
		{"non-positive start", []SectionSpec{
			{StartR: 0, Airfoil: "circle", Thickness: 1},
		}, 2.0},
		{"end before start", []SectionSpec{
			{StartR: 0.5, EndR: 0.3, Airfoil: "circle", Thickness: 1},
		}, 2.0},
		{"forced chord without range", []SectionSpec{
			{StartR: 0.3, Airfoil: "circle", Thickness: 1, ForcedChord: 0.06},
		}, 2.0},
		{"missing airfoil", []SectionSpec{
			{StartR: 0.3, Thickness: 1},
		}, 2.0},
		{"missing thickness", []SectionSpec{
			{StartR: 0.3, Airfoil: "circle"},
		}, 2.0},
		{"overlap", []SectionSpec{
			{StartR: 0.3, EndR: 0.6, Airfoil: "circle", Thickness: 1},
			{StartR: 0.5, Airfoil: "NACA4418", Thickness: 0.18},
		}, 2.0},
		{"section beyond tip", testSections(), 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchedule(tt.sections, tt.tip); err == nil {
				t.Error("NewSchedule accepted an invalid schedule")
			}
		})
	}

	if _, err := NewSchedule(testSections(), 2.0); err != nil {
		t.Errorf("NewSchedule rejected a valid schedule: %v", err)
	}
}

func TestScheduleRootTip(t *testing.T) {
	sc, err := NewSchedule(testSections(), 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Root() != 0.3 {
		t.Errorf("Root = %v, want 0.3", sc.Root())
	}
	if sc.Tip() != 2.0 {
		t.Errorf("Tip = %v, want 2.0", sc.Tip())
	}
}

func TestScheduleAt(t *testing.T) {
	sc, err := NewSchedule(testSections(), 2.0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("inside fixed range", func(t *testing.T) {
		st, err := sc.At(0.4)
		if err != nil {
			t.Fatal(err)
		}
		if st.Airfoil != "circle" || st.ForcedChord != 0.06 || st.Thickness != 1.0 {
			t.Errorf("station = %+v, want circle with forced chord", st)
		}
	})

	t.Run("exact at section start", func(t *testing.T) {
		st, err := sc.At(0.8)
		if err != nil {
			t.Fatal(err)
		}
		if st.Airfoil != "NACA4418" || st.AngleOfAttackDeg != 5 || st.Thickness != 0.18 {
			t.Errorf("station = %+v, want the second section exactly", st)
		}
		if st.ForcedChord != 0 {
			t.Errorf("forced chord leaked outside its range: %v", st.ForcedChord)
		}
	})

	t.Run("gap interpolates", func(t *testing.T) {
		// Midpoint of [0.5, 0.8]: linear blend, lower section's airfoil
		st, err := sc.At(0.65)
		if err != nil {
			t.Fatal(err)
		}
		if st.Airfoil != "circle" {
			t.Errorf("midpoint airfoil = %q, want the lower section's", st.Airfoil)
		}
		if math.Abs(st.AngleOfAttackDeg-2.5) > 1e-12 {
			t.Errorf("midpoint angle = %v, want 2.5", st.AngleOfAttackDeg)
		}
		if math.Abs(st.Thickness-0.59) > 1e-12 {
			t.Errorf("midpoint thickness = %v, want 0.59", st.Thickness)
		}
		if st.ForcedChord != 0.06 {
			t.Errorf("forced chord not carried across the gap: %v", st.ForcedChord)
		}

		// Past the midpoint the next section's airfoil takes over
		st, err = sc.At(0.7)
		if err != nil {
			t.Fatal(err)
		}
		if st.Airfoil != "NACA4418" {
			t.Errorf("airfoil at 0.7 = %q, want NACA4418", st.Airfoil)
		}
	})

	t.Run("final section extends to tip", func(t *testing.T) {
		for _, r := range []float64{1.5, 2.0} {
			st, err := sc.At(r)
			if err != nil {
				t.Fatalf("At(%v): %v", r, err)
			}
			if st.Airfoil != "NACA4418" || st.AngleOfAttackDeg != 5 {
				t.Errorf("At(%v) = %+v, want final section", r, st)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, r := range []float64{0.1, 2.1} {
			_, err := sc.At(r)
			if err == nil {
				t.Fatalf("At(%v) accepted a radius outside the span", r)
			}
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("At(%v) error type = %T, want *OutOfRangeError", r, err)
			}
			if oor.Min != 0.3 || oor.Max != 2.0 {
				t.Errorf("error span = [%v, %v], want [0.3, 2.0]", oor.Min, oor.Max)
			}
		}
	})
}

func TestSinLerp(t *testing.T) {
	if got := sinLerp(2, 6, 0); math.Abs(got-2) > 1e-12 {
		t.Errorf("sinLerp at 0 = %v, want 2", got)
	}
	if got := sinLerp(2, 6, 1); math.Abs(got-6) > 1e-12 {
		t.Errorf("sinLerp at 1 = %v, want 6", got)
	}
	if got := sinLerp(2, 6, 0.5); math.Abs(got-4) > 1e-9 {
		t.Errorf("sinLerp at 0.5 = %v, want 4", got)
	}
	// Ease-in: slower than linear near the start
	if got := sinLerp(0, 1, 0.1); got >= 0.1 {
		t.Errorf("sinLerp at 0.1 = %v, want below linear 0.1", got)
	}
}
