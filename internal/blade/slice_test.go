package blade

import (
	"errors"
	"testing"

	"github.com/aeroforge/gobem/internal/airfoil"
)

func testEnvironment() Environment {
	return Environment{
		FreeStreamVelocity: 10.0,
		FluidDensity:       1.225,
		DynamicViscosity:   16.82e-6,
	}
}

func testSliceParams() SliceParams {
	return SliceParams{
		Radius:          1.0,
		Width:           0.05,
		TipRadius:       2.0,
		AngularVelocity: 25.0, // tip-speed ratio 5
		BladeCount:      3,
		Station: Station{
			Airfoil:          "NACA4418",
			AngleOfAttackDeg: 5,
			Thickness:        0.18,
		},
		Environment: testEnvironment(),
	}
}

func TestSliceSolverConverges(t *testing.T) {
	solver := NewSliceSolver(airfoil.NewModel())
	s, err := solver.Solve(testSliceParams())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if s.AxialInduction <= 0 || s.AxialInduction >= 0.5 {
		t.Errorf("axial induction = %v, want in (0, 0.5)", s.AxialInduction)
	}
	if s.TangentialInduction <= 0 || s.TangentialInduction >= 1 {
		t.Errorf("tangential induction = %v, want in (0, 1)", s.TangentialInduction)
	}
	if s.ChordLength <= 0 {
		t.Errorf("chord = %v, want positive", s.ChordLength)
	}
	if s.LiftCoefficient <= 0 {
		t.Errorf("lift coefficient = %v, want positive", s.LiftCoefficient)
	}
	if s.DragCoefficient <= 0 {
		t.Errorf("drag coefficient = %v, want positive", s.DragCoefficient)
	}
	if s.Solidity <= 0 || s.Solidity >= 1 {
		t.Errorf("solidity = %v, want in (0, 1)", s.Solidity)
	}
	if s.TwistAngleDeg <= -5 || s.TwistAngleDeg >= 90 {
		t.Errorf("twist = %v°, want in (-5, 90)", s.TwistAngleDeg)
	}
	if s.AxialForce <= 0 || s.TangentialForce <= 0 {
		t.Errorf("forces = (%v, %v), want positive", s.AxialForce, s.TangentialForce)
	}
	if s.ReynoldsNumber <= 0 {
		t.Errorf("Reynolds number = %v, want positive", s.ReynoldsNumber)
	}
}

func TestSliceSolverDeterministic(t *testing.T) {
	solver := NewSliceSolver(airfoil.NewModel())
	first, err := solver.Solve(testSliceParams())
	if err != nil {
		t.Fatal(err)
	}
	second, err := solver.Solve(testSliceParams())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestSliceSolverForcedChord(t *testing.T) {
	p := testSliceParams()
	p.Radius = 0.35
	p.Station = Station{
		Airfoil:          "circle",
		AngleOfAttackDeg: 0,
		Thickness:        1.0,
		ForcedChord:      0.06,
	}

	solver := NewSliceSolver(airfoil.NewModel())
	s, err := solver.Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if s.ChordLength != 0.06 {
		t.Errorf("chord = %v, want the forced 0.06", s.ChordLength)
	}
	if s.LiftCoefficient != 0 {
		t.Errorf("circle lift coefficient = %v, want 0", s.LiftCoefficient)
	}
	// Pure drag still produces thrust but consumes torque
	if s.AxialForce <= 0 {
		t.Errorf("axial force = %v, want positive", s.AxialForce)
	}
	if s.TangentialForce >= 0 {
		t.Errorf("tangential force = %v, want negative for a dragging cylinder", s.TangentialForce)
	}
}

func TestSliceSolverRejectsLiftlessChordSizing(t *testing.T) {
	p := testSliceParams()
	p.Station = Station{Airfoil: "circle", AngleOfAttackDeg: 0, Thickness: 1.0}

	solver := NewSliceSolver(airfoil.NewModel())
	if _, err := solver.Solve(p); err == nil {
		t.Fatal("Solve sized a chord from a liftless airfoil")
	}
}

func TestSliceSolverUnknownAirfoil(t *testing.T) {
	p := testSliceParams()
	p.Station.Airfoil = "S999"

	solver := NewSliceSolver(airfoil.NewModel())
	_, err := solver.Solve(p)
	if err == nil {
		t.Fatal("Solve accepted an unknown airfoil")
	}
	var unknown *airfoil.UnknownAirfoilError
	if !errors.As(err, &unknown) {
		t.Errorf("error type = %T, want wrapped *airfoil.UnknownAirfoilError", err)
	}
}

func TestSliceSolverIterationCap(t *testing.T) {
	solver := NewSliceSolver(airfoil.NewModel())
	solver.MaxIterations = 1

	_, err := solver.Solve(testSliceParams())
	if err == nil {
		t.Fatal("Solve converged in a single iteration")
	}
	var conv *ConvergenceError
	if !errors.As(err, &conv) {
		t.Fatalf("error type = %T, want *ConvergenceError", err)
	}
	if conv.Iterations != 1 {
		t.Errorf("reported iterations = %d, want 1", conv.Iterations)
	}
	if conv.Residual < conv.Tolerance {
		t.Errorf("reported residual %v below tolerance %v", conv.Residual, conv.Tolerance)
	}
}
