package linsys_test

import (
	"math"
	"testing"

	"github.com/porenetics/porenet/linsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barSystem assembles the canonical 3-pore bar with unit conductances.
func barSystem(t *testing.T) *linsys.System {
	t.Helper()
	sys, err := linsys.Assemble(3, [][2]int{{0, 1}, {1, 2}}, []float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	return sys
}

// TestAssemble_SymmetricLaplacian verifies that pure-diffusion assembly
// yields a symmetric matrix whose rows sum to zero before any boundary
// conditions are applied.
func TestAssemble_SymmetricLaplacian(t *testing.T) {
	conns := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}}
	g := []float64{1, 2, 3, 4, 5}
	sys, err := linsys.Assemble(4, conns, g, g)
	require.NoError(t, err)

	n := sys.Size()
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			rowSum += sys.A.At(i, j)
			assert.Equal(t, sys.A.At(i, j), sys.A.At(j, i), "A[%d,%d] symmetric", i, j)
		}
		assert.InDelta(t, 0, rowSum, 1e-14, "row %d must sum to zero", i)
		assert.GreaterOrEqual(t, sys.A.At(i, i), 0.0, "diagonal holds conductance sums")
		assert.Equal(t, 0.0, sys.B.AtVec(i), "b starts at zero")
	}
}

// TestAssemble_Directional verifies the nonsymmetric accumulation rule
// for a directional conductance pair.
func TestAssemble_Directional(t *testing.T) {
	sys, err := linsys.Assemble(2, [][2]int{{0, 1}}, []float64{1}, []float64{4})
	require.NoError(t, err)

	assert.Equal(t, 1.0, sys.A.At(0, 0))
	assert.Equal(t, -1.0, sys.A.At(0, 1))
	assert.Equal(t, 4.0, sys.A.At(1, 1))
	assert.Equal(t, -4.0, sys.A.At(1, 0))
}

// TestAssemble_Validation covers the assembly error sentinels.
func TestAssemble_Validation(t *testing.T) {
	_, err := linsys.Assemble(0, nil, nil, nil)
	assert.ErrorIs(t, err, linsys.ErrBadShape)

	_, err = linsys.Assemble(2, [][2]int{{0, 1}}, []float64{1}, []float64{})
	assert.ErrorIs(t, err, linsys.ErrShapeMismatch)

	_, err = linsys.Assemble(2, [][2]int{{0, 2}}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, linsys.ErrOutOfRange)

	_, err = linsys.Assemble(2, [][2]int{{0, 1}}, []float64{-1}, []float64{1})
	assert.ErrorIs(t, err, linsys.ErrNaNInf, "negative conductance is rejected")

	_, err = linsys.Assemble(2, [][2]int{{0, 1}}, []float64{math.NaN()}, []float64{1})
	assert.ErrorIs(t, err, linsys.ErrNaNInf)
}

// TestAddRate verifies the Neumann rule: b changes, A does not.
func TestAddRate(t *testing.T) {
	sys := barSystem(t)
	before := sys.Clone()

	require.NoError(t, sys.AddRate(1, 2.5))
	require.NoError(t, sys.AddRate(1, 0.5))
	assert.Equal(t, 3.0, sys.B.AtVec(1), "rates accumulate")
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, before.A.At(i, j), sys.A.At(i, j), "matrix untouched")
		}
	}

	assert.ErrorIs(t, sys.AddRate(3, 1), linsys.ErrOutOfRange)
	assert.ErrorIs(t, sys.AddRate(0, math.Inf(1)), linsys.ErrNaNInf)
}

// TestPinValue verifies Dirichlet elimination: identity row, eliminated
// column, known terms moved to b, and free-block symmetry preserved.
func TestPinValue(t *testing.T) {
	sys := barSystem(t)
	require.NoError(t, sys.PinValue(0, 10))

	// Row 0 is the identity row pinning x₀=10.
	assert.Equal(t, 1.0, sys.A.At(0, 0))
	assert.Equal(t, 0.0, sys.A.At(0, 1))
	assert.Equal(t, 10.0, sys.B.AtVec(0))

	// Column 0 is eliminated; the known term moved into b₁.
	assert.Equal(t, 0.0, sys.A.At(1, 0))
	assert.Equal(t, 10.0, sys.B.AtVec(1), "b[1] -= A[1,0]*v = -(-1)*10")

	// The free block stays symmetric.
	assert.Equal(t, sys.A.At(1, 2), sys.A.At(2, 1))

	assert.ErrorIs(t, sys.PinValue(5, 0), linsys.ErrOutOfRange)
	assert.ErrorIs(t, sys.PinValue(0, math.NaN()), linsys.ErrNaNInf)
}

// TestCheckPosed verifies structural well-posedness detection.
func TestCheckPosed(t *testing.T) {
	conns := [][2]int{{0, 1}, {1, 2}}
	assert.NoError(t, linsys.CheckPosed(3, conns, []int{0}), "one pin anchors a connected graph")

	// Two components: {0,1} pinned, {2,3} floating.
	split := [][2]int{{0, 1}, {2, 3}}
	err := linsys.CheckPosed(4, split, []int{0})
	assert.ErrorIs(t, err, linsys.ErrIllPosed)
	assert.NoError(t, linsys.CheckPosed(4, split, []int{0, 3}))

	// An isolated pore is its own floating component.
	err = linsys.CheckPosed(3, [][2]int{{0, 1}}, []int{0})
	assert.ErrorIs(t, err, linsys.ErrIllPosed)

	assert.ErrorIs(t, linsys.CheckPosed(3, conns, []int{7}), linsys.ErrOutOfRange)
}

// TestSolve_DirectBar solves the 3-pore bar with pinned ends 0 and 10:
// the middle pore must land at exactly 5.
func TestSolve_DirectBar(t *testing.T) {
	sys := barSystem(t)
	require.NoError(t, sys.PinValue(0, 0))
	require.NoError(t, sys.PinValue(2, 10))

	x, err := linsys.Solve(sys, linsys.DefaultSolverOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, x[0], 1e-12)
	assert.InDelta(t, 5.0, x[1], 1e-12)
	assert.InDelta(t, 10.0, x[2], 1e-12)
}

// TestSolve_Singular verifies that an unpinned Laplacian (singular by
// construction) aborts with ErrSingular and no partial result.
func TestSolve_Singular(t *testing.T) {
	sys := barSystem(t) // no pins: rank deficient
	x, err := linsys.Solve(sys, linsys.SolverOptions{Method: linsys.Direct})
	assert.ErrorIs(t, err, linsys.ErrSingular)
	assert.Nil(t, x, "no partial result on singular failure")
}

// TestSolve_CGMatchesDirect cross-checks the iterative symmetric path
// against the factorization on the same pinned system.
func TestSolve_CGMatchesDirect(t *testing.T) {
	build := func() *linsys.System {
		conns := [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 2}}
		g := []float64{1, 2, 0.5, 1.5}
		sys, err := linsys.Assemble(4, conns, g, g)
		require.NoError(t, err)
		require.NoError(t, sys.AddRate(1, 0.25))
		require.NoError(t, sys.PinValue(0, 1))
		require.NoError(t, sys.PinValue(3, -1))
		return sys
	}

	direct, err := linsys.Solve(build(), linsys.SolverOptions{Method: linsys.Direct})
	require.NoError(t, err)

	opts := linsys.DefaultSolverOptions()
	opts.Method = linsys.CG
	iter, err := linsys.Solve(build(), opts)
	require.NoError(t, err)
	for i := range direct {
		assert.InDelta(t, direct[i], iter[i], 1e-7, "pore %d", i)
	}
}

// TestSolve_CGBudget verifies that an exhausted iteration budget returns
// ErrConvergence with the partial iterate discarded.
func TestSolve_CGBudget(t *testing.T) {
	sys := barSystem(t)
	require.NoError(t, sys.PinValue(0, 0))
	require.NoError(t, sys.PinValue(2, 10))

	x, err := linsys.Solve(sys, linsys.SolverOptions{Method: linsys.CG, Tol: 1e-14, MaxIter: 1})
	assert.ErrorIs(t, err, linsys.ErrConvergence)
	assert.Nil(t, x)
}

// TestSolve_BiCGStabNonsymmetric cross-checks the nonsymmetric iterative
// path against the factorization on an advection-like system.
func TestSolve_BiCGStabNonsymmetric(t *testing.T) {
	build := func() *linsys.System {
		conns := [][2]int{{0, 1}, {1, 2}, {2, 3}}
		gIJ := []float64{1, 1, 1}
		gJI := []float64{3, 3, 3} // upwind-style asymmetry
		sys, err := linsys.Assemble(4, conns, gIJ, gJI)
		require.NoError(t, err)
		require.NoError(t, sys.PinValue(0, 2))
		require.NoError(t, sys.PinValue(3, 0))
		return sys
	}

	direct, err := linsys.Solve(build(), linsys.SolverOptions{Method: linsys.Direct})
	require.NoError(t, err)

	opts := linsys.DefaultSolverOptions()
	opts.Method = linsys.BiCGStab
	iter, err := linsys.Solve(build(), opts)
	require.NoError(t, err)
	for i := range direct {
		assert.InDelta(t, direct[i], iter[i], 1e-7, "pore %d", i)
	}
}

// TestSolve_OptionValidation covers method and option sentinels.
func TestSolve_OptionValidation(t *testing.T) {
	sys := barSystem(t)

	_, err := linsys.Solve(sys, linsys.SolverOptions{Method: linsys.Method(42)})
	assert.ErrorIs(t, err, linsys.ErrUnknownMethod)

	_, err = linsys.Solve(sys, linsys.SolverOptions{Method: linsys.CG, Tol: 0, MaxIter: 10})
	assert.ErrorIs(t, err, linsys.ErrNaNInf, "non-positive tolerance is rejected")

	_, err = linsys.Solve(sys, linsys.SolverOptions{Method: linsys.CG, Tol: 1e-8, MaxIter: 0})
	assert.ErrorIs(t, err, linsys.ErrBadShape, "empty budget is rejected")
}

// TestClone verifies deep copying of both matrix and rhs.
func TestClone(t *testing.T) {
	sys := barSystem(t)
	cp := sys.Clone()
	require.NoError(t, cp.PinValue(0, 3))

	assert.Equal(t, 1.0, sys.A.At(0, 0), "original diagonal untouched")
	assert.Equal(t, -1.0, sys.A.At(0, 1), "original off-diagonal untouched")
	assert.Equal(t, 0.0, sys.B.AtVec(0), "original rhs untouched")
}
