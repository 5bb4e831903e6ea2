package blade

import (
	"fmt"
	"math"

	"github.com/aeroforge/gobem/internal/airfoil"
	"github.com/aeroforge/gobem/internal/bem"
)

// SliceResult holds the solved geometry and loading of one annular blade
// slice. Angles are degrees at this boundary; immutable after creation.
type SliceResult struct {
	Radius           float64 // m
	Width            float64 // m
	Airfoil          string
	AngleOfAttackDeg float64
	Thickness        float64 // relative to chord

	ChordLength   float64 // m
	TwistAngleDeg float64

	AxialInduction      float64
	TangentialInduction float64
	LiftCoefficient     float64
	DragCoefficient     float64
	Solidity            float64

	AxialForce      float64 // N, summed over all blades
	TangentialForce float64 // N, summed over all blades
	ReynoldsNumber  float64

	// flow angle in radians, kept so force recomputation under a new
	// environment reproduces design forces without degree round-trips
	flowAngle float64
}

// SliceParams describes one annular station to solve
type SliceParams struct {
	Radius          float64
	Width           float64
	TipRadius       float64
	AngularVelocity float64
	BladeCount      int
	Station         Station
	Environment     Environment
}

// SliceSolver finds the chord, twist and induction factors that satisfy the
// blade element momentum balance at a single station, by bounded
// fixed-point iteration
type SliceSolver struct {
	Model *airfoil.Model

	// Convergence tolerance on the induction factor residuals
	Tolerance float64
	// Iteration cap; exceeding it yields a ConvergenceError
	MaxIterations int
	// Under-relaxation factor applied to the induction updates
	Relaxation float64
}

// Solver iteration defaults
const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1000
	DefaultRelaxation    = 0.5
)

// NewSliceSolver creates a solver with default iteration parameters
func NewSliceSolver(model *airfoil.Model) *SliceSolver {
	return &SliceSolver{
		Model:         model,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Relaxation:    DefaultRelaxation,
	}
}

// Solve runs the BEM fixed-point iteration for one slice. The solver is a
// pure function of its inputs: identical parameters always produce the
// identical result.
func (s *SliceSolver) Solve(p SliceParams) (SliceResult, error) {
	env := p.Environment
	v := env.FreeStreamVelocity
	alphaRad := p.Station.AngleOfAttackDeg * math.Pi / 180
	lambdaR := bem.LocalSpeedRatio(p.Radius, p.AngularVelocity, v)

	// Seed chord and Reynolds number from the ideal-rotor flow angle
	phi := bem.InitialFlowAngle(lambdaR)
	chord := p.Station.ForcedChord
	if chord <= 0 {
		chord = bem.OptimalChord(p.Radius, phi, lambdaR, 1, 1, p.BladeCount)
	}
	re := bem.ReynoldsNumber(env.FluidDensity, bem.RelativeVelocity(0, 0, v, p.AngularVelocity, p.Radius), chord, env.DynamicViscosity)

	var (
		a, at     float64
		cl, cd    float64
		cn, ct    float64
		solidity  float64
		tipLoss   float64
		residual  float64
		converged bool
	)

	for i := 0; i < s.MaxIterations; i++ {
		phi = bem.FlowAngle(a, at, v, p.AngularVelocity, p.Radius)

		var err error
		cl, cd, err = s.Model.LiftDrag(p.Station.Airfoil, p.Station.AngleOfAttackDeg, re)
		if err != nil {
			return SliceResult{}, fmt.Errorf("slice at r=%.4fm: %w", p.Radius, err)
		}

		cn, ct = bem.ForceCoefficients(cl, cd, phi)
		tipLoss = bem.TipLoss(p.Radius, p.TipRadius, phi, p.BladeCount)

		if p.Station.ForcedChord > 0 {
			chord = p.Station.ForcedChord
		} else {
			if cl <= 0 {
				return SliceResult{}, fmt.Errorf("slice at r=%.4fm: airfoil %s produces no lift at %.2f°; cannot size chord",
					p.Radius, p.Station.Airfoil, p.Station.AngleOfAttackDeg)
			}
			chord = bem.OptimalChord(p.Radius, phi, lambdaR, tipLoss, cl, p.BladeCount)
		}
		solidity = bem.LocalSolidity(chord, p.Radius, p.BladeCount)

		aNext := bem.AxialInduction(solidity, phi, tipLoss, cn, a)
		atNext := bem.TangentialInduction(solidity, phi, tipLoss, ct, aNext, lambdaR)

		residual = math.Max(math.Abs(aNext-a), math.Abs(atNext-at))
		a += s.Relaxation * (aNext - a)
		at += s.Relaxation * (atNext - at)

		re = bem.ReynoldsNumber(env.FluidDensity,
			bem.RelativeVelocity(a, at, v, p.AngularVelocity, p.Radius), chord, env.DynamicViscosity)

		if residual < s.Tolerance {
			converged = true
			break
		}
	}
	if !converged {
		return SliceResult{}, &ConvergenceError{
			Radius:     p.Radius,
			Iterations: s.MaxIterations,
			Residual:   residual,
			Tolerance:  s.Tolerance,
		}
	}

	axial, tangential := bem.SliceForces(solidity, env.FluidDensity, v, a, phi, cn, ct, p.Radius, p.Width)

	return SliceResult{
		Radius:              p.Radius,
		Width:               p.Width,
		Airfoil:             p.Station.Airfoil,
		AngleOfAttackDeg:    p.Station.AngleOfAttackDeg,
		Thickness:           p.Station.Thickness,
		ChordLength:         chord,
		TwistAngleDeg:       (phi - alphaRad) * 180 / math.Pi,
		AxialInduction:      a,
		TangentialInduction: at,
		LiftCoefficient:     cl,
		DragCoefficient:     cd,
		Solidity:            solidity,
		AxialForce:          axial,
		TangentialForce:     tangential,
		ReynoldsNumber:      re,
		flowAngle:           phi,
	}, nil
}
