// Package blade implements the blade element momentum core: section
// interpolation, per-slice solving and rotor sizing against a power target.
package blade

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aeroforge/gobem/internal/bem"
)

// Blade is the finished rotor design: the ordered slice results with their
// frozen geometry, plus the rotor summary values. Slices are ordered by
// increasing radius.
type Blade struct {
	Slices             []SliceResult
	BladeCount         int
	Radius             float64 // m
	RotationalVelocity float64 // rad/s
	Torque             float64 // N·m, at the design environment
	TipSpeedRatio      float64
	DesignEnvironment  Environment
}

// Power returns the aerodynamic power captured at the design point
func (b *Blade) Power() float64 {
	return b.Torque * b.RotationalVelocity
}

// RPM returns the design rotor speed in revolutions per minute
func (b *Blade) RPM() float64 {
	return 60 * b.RotationalVelocity / (2 * math.Pi)
}

// ForceRow is the loading of one slice under an evaluated environment
type ForceRow struct {
	Radius          float64 // m
	AxialForce      float64 // N
	TangentialForce float64 // N
	ReynoldsNumber  float64
}

// ForceEstimate is the blade loading evaluated under a (possibly
// off-design) environment
type ForceEstimate struct {
	Environment        Environment
	RotationalVelocity float64 // rad/s
	Rows               []ForceRow

	Thrust            float64 // N, total axial force
	Torque            float64 // N·m, total turning torque
	RootBendingMoment float64 // N·m, thrust-induced moment about the root
	Power             float64 // W
}

// EstimateForces recomputes the slice forces under the given environment at
// the blade's frozen geometry. The induction factors and lift/drag
// coefficients keep their design values; the rotational velocity is implied
// by the design tip-speed ratio, so dynamic pressure is the only thing that
// changes. Evaluating at the design environment reproduces the design
// forces exactly.
func (b *Blade) EstimateForces(env Environment) (*ForceEstimate, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	omega := bem.AngularVelocity(b.TipSpeedRatio, env.FreeStreamVelocity, b.Radius)

	est := &ForceEstimate{
		Environment:        env,
		RotationalVelocity: omega,
		Rows:               make([]ForceRow, len(b.Slices)),
	}
	thrusts := make([]float64, len(b.Slices))
	torques := make([]float64, len(b.Slices))
	bending := make([]float64, len(b.Slices))

	for i, s := range b.Slices {
		cn, ct := bem.ForceCoefficients(s.LiftCoefficient, s.DragCoefficient, s.flowAngle)
		axial, tangential := bem.SliceForces(s.Solidity, env.FluidDensity, env.FreeStreamVelocity,
			s.AxialInduction, s.flowAngle, cn, ct, s.Radius, s.Width)
		rel := bem.RelativeVelocity(s.AxialInduction, s.TangentialInduction,
			env.FreeStreamVelocity, omega, s.Radius)

		est.Rows[i] = ForceRow{
			Radius:          s.Radius,
			AxialForce:      axial,
			TangentialForce: tangential,
			ReynoldsNumber:  bem.ReynoldsNumber(env.FluidDensity, rel, s.ChordLength, env.DynamicViscosity),
		}
		thrusts[i] = axial
		torques[i] = tangential * s.Radius
		bending[i] = axial * s.Radius
	}

	est.Thrust = floats.Sum(thrusts)
	est.Torque = floats.Sum(torques)
	est.RootBendingMoment = floats.Sum(bending)
	est.Power = est.Torque * omega
	return est, nil
}
