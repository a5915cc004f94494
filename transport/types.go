// Package transport defines options and sentinel errors for the
// transport subpackage of github.com/porenetics/porenet.
package transport

import (
	"errors"

	"github.com/porenetics/porenet/linsys"
	"github.com/porenetics/porenet/scheme"
)

// Sentinel errors for condition management and driver input validation.
var (
	// ErrNilNetwork indicates a nil *network.Network was passed to a driver.
	ErrNilNetwork = errors.New("transport: network is nil")
	// ErrShapeMismatch indicates a values slice not matching its pore
	// subset, a field not matching the pore count, or a conductance array
	// not matching the throat count.
	ErrShapeMismatch = errors.New("transport: array length mismatch")
	// ErrPoreIndex indicates a pore index outside [0, N) or duplicated
	// within a single call.
	ErrPoreIndex = errors.New("transport: bad pore index")
	// ErrConflictingBC indicates assigning a rate condition to a pore
	// already holding a value condition, or vice versa, without clearing
	// it first.
	ErrConflictingBC = errors.New("transport: pore already holds the other condition mode")
	// ErrNoBC indicates a steady solve attempted with no value condition
	// anywhere: the field would be determined only up to a constant.
	ErrNoBC = errors.New("transport: no value boundary condition set")
	// ErrNaNInf signals a NaN or ±Inf condition value or initial field entry.
	ErrNaNInf = errors.New("transport: NaN or Inf encountered")
)

// Options configures the steady drivers.
//
// Fields:
//   - Scheme — discretization scheme for AdvectionDiffusion; ignored by
//     pure Diffusion.
//   - Solver — method, tolerance and iteration budget passed to linsys.
type Options struct {
	Scheme scheme.Scheme
	Solver linsys.SolverOptions
}

// DefaultOptions returns an Options with default settings: PowerLaw
// scheme, Auto (direct LU) solver.
func DefaultOptions() Options {
	return Options{
		Scheme: scheme.PowerLaw,
		Solver: linsys.DefaultSolverOptions(),
	}
}
