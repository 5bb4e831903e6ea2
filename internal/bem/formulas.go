package bem

import "math"

// Blade Element Momentum relations for horizontal-axis wind turbine rotors.
//
// Conventions:
//   - phi is the local flow angle measured from the rotor plane (radians)
//   - a is the axial induction factor, at the tangential induction factor
//   - lambdaR is the local speed ratio omega*r/V
//   - solidity is the local blade solidity B*c/(2*pi*r)

const (
	// Axial induction beyond which plain momentum theory is invalid and
	// the Glauert/Buhl empirical relation takes over
	GlauertThreshold = 0.4

	// Thrust coefficient boundary of the Buhl correction, as a multiple
	// of the tip-loss factor
	BuhlThrustLimit = 0.96

	// Upper clamp on r/R inside the Prandtl factor; the factor is
	// singular at the exact tip
	TipRatioMax = 0.995
)

// LocalSpeedRatio calculates the ratio of local tangential speed to the
// free-stream velocity
func LocalSpeedRatio(r, omega, freeStream float64) float64 {
	return omega * r / freeStream
}

// FlowAngle calculates the angle between the local relative wind and the
// rotor plane, from the current induction factors
func FlowAngle(a, at, freeStream, omega, r float64) float64 {
	return math.Atan2((1-a)*freeStream, (1+at)*omega*r)
}

// InitialFlowAngle gives the starting flow angle for the fixed-point
// iteration, from the ideal-rotor relation phi = (2/3)*atan(1/lambdaR)
func InitialFlowAngle(lambdaR float64) float64 {
	return 2.0 / 3.0 * math.Atan(1/lambdaR)
}

// TipLoss calculates Prandtl's tip-loss factor for a finite blade count.
// The radius ratio is clamped below the exact tip where the factor
// collapses to zero.
func TipLoss(r, tipRadius, phi float64, bladeCount int) float64 {
	mu := math.Min(r/tipRadius, TipRatioMax)
	frac := -float64(bladeCount) / 2 * (1 - mu) / (mu * math.Sin(phi))
	return 2 / math.Pi * math.Acos(math.Exp(frac))
}

// ForceCoefficients resolves lift and drag into the rotor-normal (thrust)
// and rotor-tangential (torque) directions
func ForceCoefficients(cl, cd, phi float64) (cn, ct float64) {
	sin, cos := math.Sincos(phi)
	cn = cl*cos + cd*sin
	ct = cl*sin - cd*cos
	return cn, ct
}

// OptimalChord calculates the chord length that satisfies the optimal-rotor
// blade element relation at one station
func OptimalChord(r, phi, lambdaR, tipLoss, cl float64, bladeCount int) float64 {
	return (8 * math.Pi * r * tipLoss * math.Sin(phi)) /
		(3 * float64(bladeCount) * cl * lambdaR)
}

// LocalSolidity calculates the fraction of the annulus occupied by blades
func LocalSolidity(chord, r float64, bladeCount int) float64 {
	return float64(bladeCount) * chord / (2 * math.Pi * r)
}

// AxialInduction updates the axial induction factor from the momentum
// balance. Above GlauertThreshold the Buhl empirical relation replaces the
// momentum result.
func AxialInduction(solidity, phi, tipLoss, cn, prev float64) float64 {
	sin := math.Sin(phi)
	frac := solidity * cn / (4 * tipLoss * sin * sin)
	a := frac / (1 + frac)
	if a <= GlauertThreshold {
		return a
	}
	// High-induction regime: invert Buhl's thrust relation using the
	// blade-element thrust coefficient at the previous induction value
	ct := ThrustCoefficient(solidity, prev, cn, phi)
	if ct <= BuhlThrustLimit*tipLoss {
		return a
	}
	return BuhlInduction(ct, tipLoss)
}

// ThrustCoefficient calculates the local thrust coefficient from blade
// element theory
func ThrustCoefficient(solidity, a, cn, phi float64) float64 {
	sin := math.Sin(phi)
	return solidity * (1 - a) * (1 - a) * cn / (sin * sin)
}

// BuhlInduction inverts Buhl's empirical thrust relation, which stays
// finite where the momentum balance is singular at a -> 1
func BuhlInduction(thrustCoeff, tipLoss float64) float64 {
	f := tipLoss
	return (18*f - 20 - 3*math.Sqrt(thrustCoeff*(50-36*f)+12*f*(3*f-4))) /
		(36*f - 50)
}

// TangentialInduction updates the tangential induction factor from the
// angular momentum balance
func TangentialInduction(solidity, phi, tipLoss, ct, a, lambdaR float64) float64 {
	sin := math.Sin(phi)
	frac := solidity * ct / (4 * tipLoss * lambdaR * sin * sin)
	return frac * (1 - a)
}

// RelativeVelocity calculates the magnitude of the local relative wind
func RelativeVelocity(a, at, freeStream, omega, r float64) float64 {
	return math.Hypot((1-a)*freeStream, (1+at)*omega*r)
}

// ReynoldsNumber calculates the chord Reynolds number of a blade station
func ReynoldsNumber(density, relativeVelocity, chord, viscosity float64) float64 {
	return density * relativeVelocity * chord / viscosity
}

// SliceForces calculates the axial (thrust) and tangential (torque-producing)
// forces contributed by an annular slice of width dr, summed over all blades
func SliceForces(solidity, density, freeStream, a, phi, cn, ct, r, dr float64) (axial, tangential float64) {
	sin := math.Sin(phi)
	q := solidity * math.Pi * density *
		(freeStream * freeStream * (1 - a) * (1 - a)) / (sin * sin) *
		r * dr
	return q * cn, q * ct
}

// DiscRadius gives the actuator-disc estimate of the rotor radius needed to
// extract the given power at the given overall efficiency
func DiscRadius(power, efficiency, density, freeStream float64) float64 {
	return math.Sqrt(2 * power / (efficiency * density * math.Pi *
		freeStream * freeStream * freeStream))
}

// AngularVelocity derives the rotor speed from the design tip-speed ratio
func AngularVelocity(tipSpeedRatio, freeStream, tipRadius float64) float64 {
	return tipSpeedRatio * freeStream / tipRadius
}
