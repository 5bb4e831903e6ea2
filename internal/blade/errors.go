package blade

import "fmt"

// OutOfRangeError is returned when a radius query falls outside the span
// covered by the section schedule
type OutOfRangeError struct {
	Radius float64
	Min    float64
	Max    float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("radius %.4fm outside blade span [%.4f, %.4f]", e.Radius, e.Min, e.Max)
}

// ConvergenceError is returned when the slice fixed-point iteration fails
// to reach the requested tolerance within the iteration cap. Recoverable:
// the caller may retry with a relaxed tolerance.
type ConvergenceError struct {
	Radius     float64
	Iterations int
	Residual   float64
	Tolerance  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("slice at r=%.4fm did not converge after %d iterations (residual %.3e, tolerance %.3e)",
		e.Radius, e.Iterations, e.Residual, e.Tolerance)
}

// OptimizationError is returned when no blade radius within the searched
// bracket meets the power target
type OptimizationError struct {
	Low    float64
	High   float64
	Reason string
}

func (e *OptimizationError) Error() string {
	return fmt.Sprintf("no valid blade radius in [%.3f, %.3f]m: %s", e.Low, e.High, e.Reason)
}
