package transport

import (
	"fmt"

	"github.com/porenetics/porenet/linsys"
	"github.com/porenetics/porenet/network"
	"github.com/porenetics/porenet/scheme"
)

// Diffusion solves steady diffusive transport: one symmetric conductance
// per throat, flux conservation at every free pore, fixed values/rates at
// constrained pores. Returns the per-pore field.
//
// Errors: ErrNilNetwork, ErrShapeMismatch (conductances vs throats),
// ErrNoBC (no value condition anywhere), linsys.ErrIllPosed (a component
// with no value condition), and the linsys solve errors.
func Diffusion(net *network.Network, gDiff []float64, bc *BCSet, opts Options) ([]float64, error) {
	sys, err := assemble(net, gDiff, gDiff, bc)
	if err != nil {
		return nil, fmt.Errorf("Diffusion: %w", err)
	}
	x, err := linsys.Solve(sys, opts.Solver)
	if err != nil {
		return nil, fmt.Errorf("Diffusion: %w", err)
	}

	return x, nil
}

// AdvectionDiffusion solves steady advective–diffusive transport. Each
// throat carries a diffusive conductance gDiff[t] and a signed volumetric
// flow rate q[t] (positive from Throat(t)'s first endpoint to its
// second, typically taken from a separately solved pressure field). The
// scheme in opts blends the two into directional conductances, producing
// a nonsymmetric system solved with the configured method (Auto = direct
// LU; BiCGStab is the natural iterative choice here).
func AdvectionDiffusion(net *network.Network, gDiff, q []float64, bc *BCSet, opts Options) ([]float64, error) {
	if net == nil {
		return nil, fmt.Errorf("AdvectionDiffusion: %w", ErrNilNetwork)
	}
	if len(q) != net.NumThroats() {
		return nil, fmt.Errorf("AdvectionDiffusion: %d flows for %d throats: %w",
			len(q), net.NumThroats(), ErrShapeMismatch)
	}
	gIJ, gJI, err := scheme.ConductancePairs(gDiff, q, opts.Scheme)
	if err != nil {
		return nil, fmt.Errorf("AdvectionDiffusion: %w", err)
	}
	sys, err := assemble(net, gIJ, gJI, bc)
	if err != nil {
		return nil, fmt.Errorf("AdvectionDiffusion: %w", err)
	}
	x, err := linsys.Solve(sys, opts.Solver)
	if err != nil {
		return nil, fmt.Errorf("AdvectionDiffusion: %w", err)
	}

	return x, nil
}

// assemble builds the boundary-applied system shared by the steady
// drivers and the transient integrator's steady path: Laplacian from the
// directional conductances, rates into b, posedness check, then value
// elimination.
func assemble(net *network.Network, gIJ, gJI []float64, bc *BCSet) (*linsys.System, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if len(gIJ) != net.NumThroats() || len(gJI) != net.NumThroats() {
		return nil, fmt.Errorf("%d/%d conductances for %d throats: %w",
			len(gIJ), len(gJI), net.NumThroats(), ErrShapeMismatch)
	}
	if bc == nil || bc.NumValues() == 0 {
		return nil, ErrNoBC
	}
	conns := net.Conns()
	sys, err := linsys.Assemble(net.NumPores(), conns, gIJ, gJI)
	if err != nil {
		return nil, err
	}
	if err = applyBC(sys, net.NumPores(), conns, bc); err != nil {
		return nil, err
	}

	return sys, nil
}

// applyBC applies the condition set to an assembled system: posedness
// check first (abort before touching the matrix), then rates, then value
// elimination.
func applyBC(sys *linsys.System, n int, conns [][2]int, bc *BCSet) error {
	valPores, values := bc.Values()
	if err := linsys.CheckPosed(n, conns, valPores); err != nil {
		return err
	}
	ratePores, rates := bc.Rates()
	for i, p := range ratePores {
		if err := sys.AddRate(p, rates[i]); err != nil {
			return err
		}
	}
	for i, p := range valPores {
		if err := sys.PinValue(p, values[i]); err != nil {
			return err
		}
	}

	return nil
}

// Steady is a reusable diffusive driver that caches the assembled
// Laplacian across runs. The matrix is rebuilt only when the conductance
// contents change; boundary conditions are re-applied to a fresh clone on
// every Run, so the cache is a performance optimization, never a
// correctness dependency. Running twice with unchanged inputs returns
// bit-identical fields.
type Steady struct {
	net   *network.Network
	bc    *BCSet
	opts  Options
	gDiff []float64

	cached  *linsys.System // boundary-free Laplacian
	cachedG []float64      // conductances the cache was built from
}

// NewSteady validates shapes once and returns a driver bound to net and
// bc. The conductance slice is copied; use SetConductances to change it
// between runs.
func NewSteady(net *network.Network, gDiff []float64, bc *BCSet, opts Options) (*Steady, error) {
	if net == nil {
		return nil, fmt.Errorf("NewSteady: %w", ErrNilNetwork)
	}
	if len(gDiff) != net.NumThroats() {
		return nil, fmt.Errorf("NewSteady: %d conductances for %d throats: %w",
			len(gDiff), net.NumThroats(), ErrShapeMismatch)
	}
	g := make([]float64, len(gDiff))
	copy(g, gDiff)

	return &Steady{net: net, bc: bc, opts: opts, gDiff: g}, nil
}

// SetConductances replaces the per-throat conductances for subsequent
// runs. Returns ErrShapeMismatch on a length change.
func (s *Steady) SetConductances(gDiff []float64) error {
	if len(gDiff) != s.net.NumThroats() {
		return fmt.Errorf("SetConductances: %d conductances for %d throats: %w",
			len(gDiff), s.net.NumThroats(), ErrShapeMismatch)
	}
	copy(s.gDiff, gDiff)

	return nil
}

// Run assembles (or reuses) the Laplacian, applies the current boundary
// conditions to a clone, and solves. The right-hand side is always
// rebuilt, so BC edits between runs take effect without invalidating the
// matrix cache.
func (s *Steady) Run() ([]float64, error) {
	if s.bc == nil || s.bc.NumValues() == 0 {
		return nil, fmt.Errorf("Run: %w", ErrNoBC)
	}
	if s.cached == nil || !equalContents(s.cachedG, s.gDiff) {
		sys, err := linsys.Assemble(s.net.NumPores(), s.net.Conns(), s.gDiff, s.gDiff)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		s.cached = sys
		s.cachedG = make([]float64, len(s.gDiff))
		copy(s.cachedG, s.gDiff)
	}
	work := s.cached.Clone()
	if err := applyBC(work, s.net.NumPores(), s.net.Conns(), s.bc); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	x, err := linsys.Solve(work, s.opts.Solver)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	return x, nil
}

// equalContents reports element-wise equality of two same-length slices.
func equalContents(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Rate returns the net diffusive flux entering the given pore set under a
// solved field: for every throat with exactly one endpoint inside the
// set, g·(x_outside − x_inside) is accumulated. Throats internal to the
// set cancel and are skipped. With two value-constrained boundary groups
// the rates at the two groups balance to zero within solver tolerance.
//
// Errors: ErrNilNetwork, ErrShapeMismatch, ErrPoreIndex.
func Rate(net *network.Network, gDiff, field []float64, pores []int) (float64, error) {
	if net == nil {
		return 0, fmt.Errorf("Rate: %w", ErrNilNetwork)
	}
	if len(gDiff) != net.NumThroats() {
		return 0, fmt.Errorf("Rate: %d conductances for %d throats: %w",
			len(gDiff), net.NumThroats(), ErrShapeMismatch)
	}
	if len(field) != net.NumPores() {
		return 0, fmt.Errorf("Rate: field length %d for %d pores: %w",
			len(field), net.NumPores(), ErrShapeMismatch)
	}
	inSet := make(map[int]struct{}, len(pores))
	for _, p := range pores {
		if p < 0 || p >= net.NumPores() {
			return 0, fmt.Errorf("Rate: pore %d: %w", p, ErrPoreIndex)
		}
		inSet[p] = struct{}{}
	}

	var total float64
	for t := 0; t < net.NumThroats(); t++ {
		i, j := net.Throat(t)
		_, iIn := inSet[i]
		_, jIn := inSet[j]
		switch {
		case iIn && !jIn:
			total += gDiff[t] * (field[j] - field[i])
		case jIn && !iIn:
			total += gDiff[t] * (field[i] - field[j])
		}
	}

	return total, nil
}
