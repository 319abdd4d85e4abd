package kepler

import (
	"errors"
	"fmt"

	"github.com/litescript/orbiter/internal/orbit"
)

var (
	// ErrNoConvergence is returned when the Newton solve exhausts its
	// iteration cap. Match it with errors.Is; the concrete error is a
	// *ConvergenceError.
	ErrNoConvergence = errors.New("universal anomaly did not converge")

	// ErrUnreachable is returned when a target position cannot be reached
	// on the trajectory, such as a point beyond a hyperbola's asymptote.
	ErrUnreachable = fmt.Errorf("%w: target not reachable on this trajectory", orbit.ErrInvalidInput)
)

// ConvergenceError describes a failed Newton solve. No partial result
// accompanies it.
type ConvergenceError struct {
	Iterations int     // iterations performed
	Anomaly    float64 // last iterate of χ
	Step       float64 // last Newton step |F/F'|
	Tolerance  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (last step %.3g, tolerance %.3g)",
		ErrNoConvergence, e.Iterations, e.Step, e.Tolerance)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNoConvergence
}
