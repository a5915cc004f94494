// Package linsys assembles and solves the linear systems behind porenet's
// transport drivers: conductance-weighted graph Laplacians with Dirichlet
// (fixed value) and Neumann (fixed rate) boundary conditions.
//
// 🚀 What does it do?
//
//	Given N pores, a throat list and per-throat directional conductances,
//	linsys builds A·x = b such that x is the steady transport field:
//	  • Assemble     — accumulate the (possibly nonsymmetric) Laplacian
//	  • AddRate      — Neumann: add a source/sink rate to b
//	  • PinValue     — Dirichlet: eliminate the known column, pin the row
//	  • CheckPosed   — reject systems with a floating component (no pin)
//	  • Solve        — direct LU, or CG / BiCGStab with tol & budget
//
// ✨ Contracts:
//   - Pure diffusion (gIJ == gJI) yields a symmetric matrix whose rows sum
//     to zero before boundary application.
//   - PinValue preserves symmetry of the remaining free block.
//   - Solvers never return a partial iterate: an exhausted budget is
//     ErrConvergence, a rank failure is ErrSingular, and x is nil.
//
// ⚙️ Usage:
//
//	sys, err := linsys.Assemble(n, conns, g, g) // symmetric: pass g twice
//	sys.AddRate(4, 1e-6)
//	sys.PinValue(0, 300.0)
//	x, err := linsys.Solve(sys, linsys.DefaultSolverOptions())
//
// Storage is a gonum dense matrix: assembly is O(N²+E) memory, the direct
// solve O(N³) time. Pore-network systems in the intended regime are small
// enough that dense factorization beats sparse bookkeeping.
package linsys
