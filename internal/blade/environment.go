package blade

import "fmt"

// Environment holds the free-stream fluid conditions the rotor operates in.
// All values are SI base units. Immutable by convention: constructed once
// from configuration, or ad hoc for off-design force estimates.
type Environment struct {
	FreeStreamVelocity float64 // m/s
	FluidDensity       float64 // kg/m³
	DynamicViscosity   float64 // Pa·s
}

// Validate checks that all fluid properties are physically valid
func (e Environment) Validate() error {
	if e.FreeStreamVelocity <= 0 {
		return fmt.Errorf("invalid environment: free-stream velocity %.3f must be positive", e.FreeStreamVelocity)
	}
	if e.FluidDensity <= 0 {
		return fmt.Errorf("invalid environment: fluid density %.3f must be positive", e.FluidDensity)
	}
	if e.DynamicViscosity <= 0 {
		return fmt.Errorf("invalid environment: dynamic viscosity %.3e must be positive", e.DynamicViscosity)
	}
	return nil
}
