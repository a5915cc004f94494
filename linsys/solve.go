package linsys

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve computes x for A·x = b using the method selected in opts.
// Returns a freshly allocated solution slice of length N.
//
// Method contracts:
//   - Direct (and Auto): LU factorization; a numerically singular matrix
//     surfaces as ErrSingular, never as a garbage solution.
//   - CG: for symmetric systems (pure diffusion). Budget exhaustion is
//     ErrConvergence; the partial iterate is discarded.
//   - BiCGStab: for the nonsymmetric advective systems; same contract.
//
// The solver performs no retries and no method fallback; retrying with a
// different method is the caller's policy decision.
func Solve(s *System, opts SolverOptions) ([]float64, error) {
	switch opts.Method {
	case Auto, Direct:
		return solveDirect(s)
	case CG:
		if err := checkIterOpts(opts); err != nil {
			return nil, err
		}
		return solveCG(s, opts.Tol, opts.MaxIter)
	case BiCGStab:
		if err := checkIterOpts(opts); err != nil {
			return nil, err
		}
		return solveBiCGStab(s, opts.Tol, opts.MaxIter)
	default:
		return nil, fmt.Errorf("Solve: method %d: %w", opts.Method, ErrUnknownMethod)
	}
}

// checkIterOpts validates tolerance and budget for the iterative paths.
func checkIterOpts(opts SolverOptions) error {
	if math.IsNaN(opts.Tol) || opts.Tol <= 0 {
		return fmt.Errorf("Solve: tol %g: %w", opts.Tol, ErrNaNInf)
	}
	if opts.MaxIter < 1 {
		return fmt.Errorf("Solve: max iterations %d: %w", opts.MaxIter, ErrBadShape)
	}
	return nil
}

// solveDirect factorizes A with partial-pivoted LU and back-substitutes.
// gonum reports rank loss through a mat.Condition error once the
// condition estimate passes its tolerance (≈1e16); at that point the
// back-substituted values carry no significant digits, so the whole
// range maps to ErrSingular and no partial result escapes.
func solveDirect(s *System) ([]float64, error) {
	n := s.Size()
	var lu mat.LU
	lu.Factorize(s.A)

	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, s.B); err != nil {
		return nil, fmt.Errorf("Solve: direct: %w", ErrSingular)
	}
	out := make([]float64, n)
	copy(out, x.RawVector().Data)

	return out, nil
}

// solveCG runs conjugate gradients from a zero initial guess.
// Convergence criterion: ‖r‖₂ / ‖b‖₂ ≤ tol (‖b‖=0 returns the zero
// vector immediately). A non-positive p·Ap curvature means the matrix is
// not SPD on the current subspace and surfaces as ErrSingular.
// Complexity: O(N²) per iteration on the dense storage.
func solveCG(s *System, tol float64, maxIter int) ([]float64, error) {
	n := s.Size()
	bnorm := mat.Norm(s.B, 2)
	x := mat.NewVecDense(n, nil)
	if bnorm == 0 {
		return make([]float64, n), nil
	}

	r := mat.NewVecDense(n, nil)
	r.CopyVec(s.B) // x₀ = 0 ⇒ r₀ = b
	p := mat.NewVecDense(n, nil)
	p.CopyVec(r)
	ap := mat.NewVecDense(n, nil)
	rr := mat.Dot(r, r)

	for it := 0; it < maxIter; it++ {
		if math.Sqrt(rr)/bnorm <= tol {
			return vecData(x), nil
		}
		ap.MulVec(s.A, p)
		curv := mat.Dot(p, ap)
		if curv <= 0 {
			return nil, fmt.Errorf("Solve: cg breakdown at iteration %d: %w", it, ErrSingular)
		}
		alpha := rr / curv
		x.AddScaledVec(x, alpha, p)
		r.AddScaledVec(r, -alpha, ap)
		rrNext := mat.Dot(r, r)
		p.AddScaledVec(r, rrNext/rr, p)
		rr = rrNext
	}
	if math.Sqrt(rr)/bnorm <= tol {
		return vecData(x), nil
	}

	return nil, fmt.Errorf("Solve: cg exceeded %d iterations: %w", maxIter, ErrConvergence)
}

// solveBiCGStab runs stabilized bi-conjugate gradients from a zero
// initial guess, for the nonsymmetric matrices advective assembly
// produces. Same convergence criterion as CG; a Lanczos breakdown
// (vanishing rho or t·t) surfaces as ErrSingular.
func solveBiCGStab(s *System, tol float64, maxIter int) ([]float64, error) {
	n := s.Size()
	bnorm := mat.Norm(s.B, 2)
	x := mat.NewVecDense(n, nil)
	if bnorm == 0 {
		return make([]float64, n), nil
	}

	r := mat.NewVecDense(n, nil)
	r.CopyVec(s.B)
	rhat := mat.NewVecDense(n, nil)
	rhat.CopyVec(r)
	p := mat.NewVecDense(n, nil)
	v := mat.NewVecDense(n, nil)
	sv := mat.NewVecDense(n, nil)
	t := mat.NewVecDense(n, nil)
	tmp := mat.NewVecDense(n, nil)

	rho, alpha, omega := 1.0, 1.0, 1.0
	for it := 0; it < maxIter; it++ {
		rhoNext := mat.Dot(rhat, r)
		if rhoNext == 0 {
			return nil, fmt.Errorf("Solve: bicgstab breakdown at iteration %d: %w", it, ErrSingular)
		}
		beta := (rhoNext / rho) * (alpha / omega)
		// p = r + beta·(p − omega·v)
		tmp.AddScaledVec(p, -omega, v)
		p.AddScaledVec(r, beta, tmp)
		v.MulVec(s.A, p)
		alpha = rhoNext / mat.Dot(rhat, v)
		// s = r − alpha·v
		sv.AddScaledVec(r, -alpha, v)
		if mat.Norm(sv, 2)/bnorm <= tol {
			x.AddScaledVec(x, alpha, p)
			return vecData(x), nil
		}
		t.MulVec(s.A, sv)
		tt := mat.Dot(t, t)
		if tt == 0 {
			return nil, fmt.Errorf("Solve: bicgstab breakdown at iteration %d: %w", it, ErrSingular)
		}
		omega = mat.Dot(t, sv) / tt
		x.AddScaledVec(x, alpha, p)
		x.AddScaledVec(x, omega, sv)
		// r = s − omega·t
		r.AddScaledVec(sv, -omega, t)
		if mat.Norm(r, 2)/bnorm <= tol {
			return vecData(x), nil
		}
		rho = rhoNext
	}

	return nil, fmt.Errorf("Solve: bicgstab exceeded %d iterations: %w", maxIter, ErrConvergence)
}

// vecData copies a gonum vector into a plain slice.
func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	copy(out, v.RawVector().Data)
	return out
}
