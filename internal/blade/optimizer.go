package blade

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aeroforge/gobem/internal/airfoil"
	"github.com/aeroforge/gobem/internal/bem"
)

// Targets define what the optimized rotor must deliver
type Targets struct {
	TargetPower        float64 // W
	ExpectedEfficiency float64 // (0, 1]; blade + drivetrain losses
	TipSpeedRatio      float64
}

// Validate checks the targets are physically meaningful
func (t Targets) Validate() error {
	if t.TargetPower <= 0 {
		return fmt.Errorf("invalid targets: target power %.3f must be positive", t.TargetPower)
	}
	if t.ExpectedEfficiency <= 0 || t.ExpectedEfficiency > 1 {
		return fmt.Errorf("invalid targets: expected efficiency %.3f must be in (0, 1]", t.ExpectedEfficiency)
	}
	if t.TipSpeedRatio <= 0 {
		return fmt.Errorf("invalid targets: tip-speed ratio %.3f must be positive", t.TipSpeedRatio)
	}
	return nil
}

// Optimizer sizes the blade radius so the aerodynamic power at the design
// tip-speed ratio, scaled by the expected efficiency, meets the target
// power, and solves the geometry of every slice at that radius
type Optimizer struct {
	Model      *airfoil.Model
	BladeCount int
	SliceCount int
	Sections   []SectionSpec

	// Relative tolerance on the power balance
	PowerTolerance float64
	// Bisection iteration cap
	MaxBisections int
	// Bracket growth attempts before giving up
	MaxBracketGrowth int
}

// Optimizer search defaults
const (
	DefaultPowerTolerance   = 1e-6
	DefaultMaxBisections    = 200
	DefaultMaxBracketGrowth = 40

	// Tolerance used when a slice is retried after a ConvergenceError
	relaxedTolerance = 1e-6
)

// NewOptimizer creates an optimizer with default search parameters
func NewOptimizer(model *airfoil.Model, bladeCount, sliceCount int, sections []SectionSpec) *Optimizer {
	return &Optimizer{
		Model:            model,
		BladeCount:       bladeCount,
		SliceCount:       sliceCount,
		Sections:         sections,
		PowerTolerance:   DefaultPowerTolerance,
		MaxBisections:    DefaultMaxBisections,
		MaxBracketGrowth: DefaultMaxBracketGrowth,
	}
}

// Optimize finds the blade radius meeting the power target by bisection and
// returns the finished blade with frozen geometry. Pure: no I/O, no state
// kept on the optimizer.
func (o *Optimizer) Optimize(targets Targets, env Environment) (*Blade, error) {
	if err := targets.Validate(); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if o.BladeCount < 1 {
		return nil, fmt.Errorf("invalid optimizer: blade count %d must be at least 1", o.BladeCount)
	}
	if o.SliceCount < 2 {
		return nil, fmt.Errorf("invalid optimizer: slice count %d must be at least 2", o.SliceCount)
	}

	// Aerodynamic power must cover the losses behind the rotor
	required := targets.TargetPower / targets.ExpectedEfficiency

	// Actuator-disc estimate anchors the search bracket
	guess := bem.DiscRadius(targets.TargetPower, targets.ExpectedEfficiency, env.FluidDensity, env.FreeStreamVelocity)

	// The blade tip can never sit inside a defined section
	minTip := o.Sections[0].StartR
	for _, s := range o.Sections {
		minTip = math.Max(minTip, s.end())
	}
	minTip *= 1.001

	low := math.Max(guess/2, minTip)
	high := math.Max(guess*2, low*1.5)

	lowPower, _, err := o.evaluate(low, targets, env)
	if err != nil {
		return nil, err
	}
	grow := 0
	for ; lowPower > required && low > minTip*1.001; grow++ {
		if grow >= o.MaxBracketGrowth {
			return nil, &OptimizationError{Low: low, High: high,
				Reason: fmt.Sprintf("power %.1fW at smallest feasible radius exceeds required %.1fW", lowPower, required)}
		}
		low = math.Max(low/1.6, minTip)
		if lowPower, _, err = o.evaluate(low, targets, env); err != nil {
			return nil, err
		}
	}
	if lowPower > required {
		return nil, &OptimizationError{Low: low, High: high,
			Reason: fmt.Sprintf("sections force a blade already producing %.1fW, above required %.1fW", lowPower, required)}
	}

	highPower, _, err := o.evaluate(high, targets, env)
	if err != nil {
		return nil, err
	}
	for grow = 0; highPower < required; grow++ {
		if grow >= o.MaxBracketGrowth {
			return nil, &OptimizationError{Low: low, High: high,
				Reason: fmt.Sprintf("power %.1fW at radius %.2fm still below required %.1fW", highPower, high, required)}
		}
		low = high
		high *= 1.6
		if highPower, _, err = o.evaluate(high, targets, env); err != nil {
			return nil, err
		}
	}

	var (
		radius = (low + high) / 2
		slices []SliceResult
		power  float64
	)
	for i := 0; i < o.MaxBisections; i++ {
		radius = (low + high) / 2
		power, slices, err = o.evaluate(radius, targets, env)
		if err != nil {
			return nil, err
		}
		if math.Abs(power-required) <= o.PowerTolerance*required {
			break
		}
		if power < required {
			low = radius
		} else {
			high = radius
		}
		if high-low <= 1e-12*high {
			break
		}
	}
	if math.Abs(power-required) > math.Sqrt(o.PowerTolerance)*required {
		return nil, &OptimizationError{Low: low, High: high,
			Reason: fmt.Sprintf("bisection stalled at %.1fW against required %.1fW", power, required)}
	}

	omega := bem.AngularVelocity(targets.TipSpeedRatio, env.FreeStreamVelocity, radius)
	return &Blade{
		Slices:             slices,
		BladeCount:         o.BladeCount,
		Radius:             radius,
		RotationalVelocity: omega,
		Torque:             power / omega,
		TipSpeedRatio:      targets.TipSpeedRatio,
		DesignEnvironment:  env,
	}, nil
}

// evaluate solves the whole slice grid for one candidate tip radius and
// returns the aerodynamic power it captures
func (o *Optimizer) evaluate(radius float64, targets Targets, env Environment) (float64, []SliceResult, error) {
	schedule, err := NewSchedule(o.Sections, radius)
	if err != nil {
		return 0, nil, err
	}
	omega := bem.AngularVelocity(targets.TipSpeedRatio, env.FreeStreamVelocity, radius)

	rs := floats.Span(make([]float64, o.SliceCount), schedule.Root(), radius)
	solver := NewSliceSolver(o.Model)

	slices := make([]SliceResult, len(rs))
	for i, r := range rs {
		station, err := schedule.At(r)
		if err != nil {
			return 0, nil, err
		}
		params := SliceParams{
			Radius:          r,
			Width:           sliceWidth(rs, i),
			TipRadius:       radius,
			AngularVelocity: omega,
			BladeCount:      o.BladeCount,
			Station:         station,
			Environment:     env,
		}
		result, err := solver.Solve(params)
		if err != nil {
			var conv *ConvergenceError
			if !errors.As(err, &conv) {
				return 0, nil, err
			}
			// Recoverable: retry once with a relaxed tolerance
			relaxed := NewSliceSolver(o.Model)
			relaxed.Tolerance = relaxedTolerance
			if result, err = relaxed.Solve(params); err != nil {
				return 0, nil, err
			}
		}
		slices[i] = result
	}

	o.applyForcedChords(schedule, slices, env)

	torques := make([]float64, len(slices))
	for i, s := range slices {
		torques[i] = s.TangentialForce * s.Radius
	}
	return floats.Sum(torques) * omega, slices, nil
}

// applyForcedChords overrides the optimized chord inside forced sections
// and eases the chord sinusoidally across the gap to the following
// section, then rescales the affected slice forces to the new solidity
func (o *Optimizer) applyForcedChords(schedule *Schedule, slices []SliceResult, env Environment) {
	for si, sec := range schedule.sections {
		if sec.ForcedChord <= 0 {
			continue
		}

		for i := range slices {
			if slices[i].Radius >= sec.StartR && slices[i].Radius <= sec.EndR {
				o.overrideChord(&slices[i], sec.ForcedChord, env)
			}
		}

		if si == len(schedule.sections)-1 {
			continue
		}
		next := schedule.sections[si+1]
		// Optimized chord at the first slice past the gap anchors the blend
		endChord := sec.ForcedChord
		for _, s := range slices {
			if s.Radius >= next.StartR {
				endChord = s.ChordLength
				break
			}
		}
		for i := range slices {
			r := slices[i].Radius
			if r > sec.EndR && r < next.StartR {
				f := (r - sec.EndR) / (next.StartR - sec.EndR)
				o.overrideChord(&slices[i], sinLerp(sec.ForcedChord, endChord, f), env)
			}
		}
	}
}

// overrideChord replaces a slice's chord and recomputes the quantities that
// depend on it, keeping the converged induction factors
func (o *Optimizer) overrideChord(s *SliceResult, chord float64, env Environment) {
	s.ReynoldsNumber *= chord / s.ChordLength // Re scales linearly with chord
	s.ChordLength = chord
	s.Solidity = bem.LocalSolidity(chord, s.Radius, o.BladeCount)
	cn, ct := bem.ForceCoefficients(s.LiftCoefficient, s.DragCoefficient, s.flowAngle)
	s.AxialForce, s.TangentialForce = bem.SliceForces(s.Solidity, env.FluidDensity, env.FreeStreamVelocity,
		s.AxialInduction, s.flowAngle, cn, ct, s.Radius, s.Width)
}

// sliceWidth returns the annulus width attributed to station i: half the
// distance to each neighbor, half a step at the ends
func sliceWidth(rs []float64, i int) float64 {
	switch {
	case len(rs) < 2:
		return 0
	case i == 0:
		return (rs[1] - rs[0]) / 2
	case i == len(rs)-1:
		return (rs[i] - rs[i-1]) / 2
	default:
		return (rs[i+1] - rs[i-1]) / 2
	}
}
