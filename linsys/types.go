// Package linsys defines the system container, solver options, and
// sentinel errors for the linsys subpackage of github.com/porenetics/porenet.
package linsys

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for assembly and solving. Algorithms return these
// sentinels (wrapped with context); tests match via errors.Is.
var (
	// ErrBadShape is returned when a requested system size is < 1.
	ErrBadShape = errors.New("linsys: system size must be at least one")
	// ErrShapeMismatch indicates conductance arrays not matching the
	// throat list, or a vector not matching the system size.
	ErrShapeMismatch = errors.New("linsys: array length mismatch")
	// ErrOutOfRange indicates a pore index outside [0, N).
	ErrOutOfRange = errors.New("linsys: pore index out of range")
	// ErrNaNInf signals a NaN or ±Inf value where finite values are
	// required (conductances, rates, pinned values).
	ErrNaNInf = errors.New("linsys: NaN or Inf encountered")
	// ErrIllPosed indicates a structurally indeterminate system: a
	// connected component carries no value constraint, so its solution
	// is only defined up to an additive constant.
	ErrIllPosed = errors.New("linsys: system is ill-posed (component without value constraint)")
	// ErrSingular is returned when factorization meets a numerically
	// singular matrix. The run aborts with no partial result.
	ErrSingular = errors.New("linsys: singular matrix")
	// ErrConvergence is returned when an iterative solve exhausts its
	// iteration budget before reaching tolerance. The partial iterate is
	// discarded, never returned as if converged.
	ErrConvergence = errors.New("linsys: iterative solve did not converge")
	// ErrUnknownMethod indicates a Method value outside the enum.
	ErrUnknownMethod = errors.New("linsys: unknown solver method")
)

// Method selects the linear solver.
type Method int

const (
	// Auto lets Solve pick: currently the direct LU path.
	Auto Method = iota
	// Direct factorizes with LU and back-substitutes. O(N³), exact.
	Direct
	// CG runs conjugate gradients. Requires a symmetric system
	// (pure diffusion); cheapest per iteration.
	CG
	// BiCGStab runs stabilized bi-conjugate gradients; handles the
	// nonsymmetric matrices produced by advection–diffusion assembly.
	BiCGStab
)

// Solver defaults.
const (
	// DefaultTol is the relative residual tolerance for iterative methods.
	DefaultTol = 1e-8
	// DefaultMaxIter bounds iterative solver iterations.
	DefaultMaxIter = 5000
)

// SolverOptions configures Solve.
//
// Fields:
//   - Method  — Auto, Direct, CG or BiCGStab.
//   - Tol     — relative residual tolerance ‖b-Ax‖/‖b‖ for CG/BiCGStab.
//   - MaxIter — iteration budget for CG/BiCGStab; exceeding it returns
//     ErrConvergence.
type SolverOptions struct {
	Method  Method
	Tol     float64
	MaxIter int
}

// DefaultSolverOptions returns a SolverOptions with default settings:
// Method=Auto, Tol=1e-8, MaxIter=5000.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Method:  Auto,
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
	}
}

// System holds a dense N×N matrix A and right-hand side b for A·x = b.
// Rows of Dirichlet-pinned pores are identity rows; free rows hold the
// natural conductance balance.
type System struct {
	A *mat.Dense
	B *mat.VecDense
}

// NewSystem allocates a zeroed n×n system. Returns ErrBadShape for n < 1.
func NewSystem(n int) (*System, error) {
	if n < 1 {
		return nil, ErrBadShape
	}
	return &System{
		A: mat.NewDense(n, n, nil),
		B: mat.NewVecDense(n, nil),
	}, nil
}

// Size returns the system dimension N.
func (s *System) Size() int {
	r, _ := s.A.Dims()
	return r
}

// Clone returns a deep copy of the system, so boundary application can
// mutate a working copy while the assembled original is reused.
func (s *System) Clone() *System {
	n := s.Size()
	a := mat.NewDense(n, n, nil)
	a.Copy(s.A)
	b := mat.NewVecDense(n, nil)
	b.CopyVec(s.B)

	return &System{A: a, B: b}
}
