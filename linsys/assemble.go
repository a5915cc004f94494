package linsys

import (
	"fmt"
	"math"
)

// Assemble — conductance Laplacian assembly
//
// Description:
//
//	Builds the N×N transport matrix from a throat list and per-throat
//	directional conductances. For throat t joining pores (i,j):
//
//	  A[i,i] += gIJ[t];  A[i,j] -= gIJ[t]
//	  A[j,j] += gJI[t];  A[j,i] -= gJI[t]
//
//	With gIJ == gJI this is the classic symmetric, positive-semidefinite
//	graph Laplacian; directional pairs from the scheme package make it
//	nonsymmetric while keeping row-wise flux balance.
//
// The right-hand side starts at zero; use AddRate and PinValue to apply
// boundary conditions afterwards.
//
// Errors:
//   - ErrBadShape      — n < 1.
//   - ErrShapeMismatch — len(gIJ) or len(gJI) != len(conns).
//   - ErrOutOfRange    — a throat endpoint outside [0, n).
//   - ErrNaNInf        — a non-finite or negative conductance.
//
// Complexity: O(N² + E) time (zeroed dense allocation), O(N²) memory.
func Assemble(n int, conns [][2]int, gIJ, gJI []float64) (*System, error) {
	if len(gIJ) != len(conns) || len(gJI) != len(conns) {
		return nil, fmt.Errorf("Assemble: %d throats, %d/%d conductances: %w",
			len(conns), len(gIJ), len(gJI), ErrShapeMismatch)
	}
	sys, err := NewSystem(n)
	if err != nil {
		return nil, fmt.Errorf("Assemble: n=%d: %w", n, err)
	}
	for t, c := range conns {
		i, j := c[0], c[1]
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("Assemble: throat %d = (%d,%d): %w", t, i, j, ErrOutOfRange)
		}
		if !finiteConductance(gIJ[t]) || !finiteConductance(gJI[t]) {
			return nil, fmt.Errorf("Assemble: throat %d conductances (%g,%g): %w",
				t, gIJ[t], gJI[t], ErrNaNInf)
		}
		sys.A.Set(i, i, sys.A.At(i, i)+gIJ[t])
		sys.A.Set(i, j, sys.A.At(i, j)-gIJ[t])
		sys.A.Set(j, j, sys.A.At(j, j)+gJI[t])
		sys.A.Set(j, i, sys.A.At(j, i)-gJI[t])
	}

	return sys, nil
}

// finiteConductance reports whether g is a usable conductance value:
// finite and non-negative (zero is legal: a blocked throat).
func finiteConductance(g float64) bool {
	return !math.IsNaN(g) && !math.IsInf(g, 0) && g >= 0
}

// AddRate applies a Neumann (fixed rate) condition at pore k: b[k] += r.
// The matrix structure is untouched beyond the normal conductance sums.
// Returns ErrOutOfRange for a bad index, ErrNaNInf for a non-finite rate.
func (s *System) AddRate(k int, r float64) error {
	n := s.Size()
	if k < 0 || k >= n {
		return fmt.Errorf("AddRate: pore %d: %w", k, ErrOutOfRange)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("AddRate: pore %d rate %g: %w", k, r, ErrNaNInf)
	}
	s.B.SetVec(k, s.B.AtVec(k)+r)

	return nil
}

// PinValue applies a Dirichlet (fixed value) condition at pore k:
//
//  1. For every other row m, move the known term A[m,k]·v into b[m]
//     (with sign) and zero A[m,k] — column elimination keeps the free
//     block symmetric when the input was symmetric.
//  2. Zero row k, set A[k,k] = 1, b[k] = v — the row now pins x[k] = v.
//
// Pinning the same pore twice is idempotent for the matrix and simply
// rewrites b[k]. Returns ErrOutOfRange for a bad index, ErrNaNInf for a
// non-finite value.
// Complexity: O(N) per pinned pore.
func (s *System) PinValue(k int, v float64) error {
	n := s.Size()
	if k < 0 || k >= n {
		return fmt.Errorf("PinValue: pore %d: %w", k, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("PinValue: pore %d value %g: %w", k, v, ErrNaNInf)
	}
	for m := 0; m < n; m++ {
		if m == k {
			continue
		}
		if akm := s.A.At(m, k); akm != 0 {
			s.B.SetVec(m, s.B.AtVec(m)-akm*v)
			s.A.Set(m, k, 0)
		}
		s.A.Set(k, m, 0)
	}
	s.A.Set(k, k, 1)
	s.B.SetVec(k, v)

	return nil
}

// CheckPosed verifies that every connected component of the network
// contains at least one pinned (value-constrained) pore. A component with
// none has a steady solution determined only up to an additive constant,
// so the solve is refused with ErrIllPosed before factorization.
// An isolated pore with no throats counts as its own component.
// Complexity: O(N + E).
func CheckPosed(n int, conns [][2]int, pinned []int) error {
	if n < 1 {
		return fmt.Errorf("CheckPosed: n=%d: %w", n, ErrBadShape)
	}
	// Adjacency as index lists into conns.
	adj := make([][]int, n)
	for _, c := range conns {
		if c[0] < 0 || c[0] >= n || c[1] < 0 || c[1] >= n {
			return fmt.Errorf("CheckPosed: throat (%d,%d): %w", c[0], c[1], ErrOutOfRange)
		}
		adj[c[0]] = append(adj[c[0]], c[1])
		adj[c[1]] = append(adj[c[1]], c[0])
	}
	isPinned := make([]bool, n)
	for _, p := range pinned {
		if p < 0 || p >= n {
			return fmt.Errorf("CheckPosed: pinned pore %d: %w", p, ErrOutOfRange)
		}
		isPinned[p] = true
	}

	// BFS per unvisited component; each must touch a pinned pore.
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		anchored := isPinned[start]
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, q := range adj[p] {
				if visited[q] {
					continue
				}
				visited[q] = true
				anchored = anchored || isPinned[q]
				queue = append(queue, q)
			}
		}
		if !anchored {
			return fmt.Errorf("CheckPosed: component containing pore %d: %w", start, ErrIllPosed)
		}
	}

	return nil
}
