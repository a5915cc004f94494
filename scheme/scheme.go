package scheme

import (
	"fmt"
	"math"
)

// peExactEps bounds the Peclet magnitude below which the Exponential
// closed form is numerically 0/0 and the series limit g_diff is returned.
const peExactEps = 1e-10

// Peclet returns the signed throat Peclet number q/gDiff: the ratio of
// advective to diffusive transport strength. The sign follows q.
func Peclet(q, gDiff float64) float64 {
	return q / gDiff
}

// Conductances — directional advection–diffusion conductances
//
// Description:
//
//	For a throat (i,j) with diffusive conductance gDiff and signed flow
//	rate q (positive i→j), compute the pair (gIJ, gJI) used by the
//	assembler in place of a single symmetric conductance. gIJ weights the
//	coupling seen by pore i's balance equation, gJI the one seen by j's.
//
// Formulas (Pe = q/gDiff):
//
//	Upwind:       gIJ = gDiff + max(-q, 0)
//	              gJI = gDiff + max(+q, 0)
//	Hybrid:       gIJ = max(0, max(-q, gDiff - q/2))
//	              gJI = max(0, max(+q, gDiff + q/2))
//	PowerLaw:     d   = gDiff·max(0, (1-0.1|Pe|))⁵
//	              gIJ = d + max(-q, 0);  gJI = d + max(+q, 0)
//	Exponential:  gIJ = -q / (1 - exp(+Pe))
//	              gJI = +q / (1 - exp(-Pe))
//
// Edge case: q == 0 returns exactly (gDiff, gDiff) for every scheme; the
// Exponential form additionally falls back to that limit for |Pe| below
// peExactEps to avoid 0/0.
//
// Errors:
//   - ErrBadConductance — gDiff ≤ 0, NaN or ±Inf.
//   - ErrBadFlow        — q is NaN or ±Inf.
//   - ErrUnknownScheme  — s outside the enum.
//
// Complexity: O(1); Exponential costs one or two math.Exp calls.
func Conductances(gDiff, q float64, s Scheme) (gIJ, gJI float64, err error) {
	if math.IsNaN(gDiff) || math.IsInf(gDiff, 0) || gDiff <= 0 {
		return 0, 0, fmt.Errorf("Conductances: gDiff=%g: %w", gDiff, ErrBadConductance)
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, 0, fmt.Errorf("Conductances: q=%g: %w", q, ErrBadFlow)
	}
	if !s.Valid() {
		return 0, 0, fmt.Errorf("Conductances: %s: %w", s, ErrUnknownScheme)
	}
	// Diffusion-only limit, exact under every scheme.
	if q == 0 {
		return gDiff, gDiff, nil
	}

	switch s {
	case Upwind:
		return gDiff + math.Max(-q, 0), gDiff + math.Max(q, 0), nil

	case Hybrid:
		gIJ = math.Max(0, math.Max(-q, gDiff-q/2))
		gJI = math.Max(0, math.Max(q, gDiff+q/2))
		return gIJ, gJI, nil

	case PowerLaw:
		pe := Peclet(q, gDiff)
		damp := math.Max(0, 1-0.1*math.Abs(pe))
		d := gDiff * damp * damp * damp * damp * damp
		return d + math.Max(-q, 0), d + math.Max(q, 0), nil

	case Exponential:
		pe := Peclet(q, gDiff)
		if math.Abs(pe) < peExactEps {
			return gDiff, gDiff, nil
		}
		gIJ = -q / (1 - math.Exp(pe))
		gJI = q / (1 - math.Exp(-pe))
		return gIJ, gJI, nil
	}
	// Unreachable: Valid() covers the enum.
	return 0, 0, fmt.Errorf("Conductances: %s: %w", s, ErrUnknownScheme)
}

// ConductancePairs applies Conductances across parallel per-throat arrays
// gDiff and q, returning newly allocated gIJ and gJI arrays of the same
// length. Returns ErrShapeMismatch if len(gDiff) != len(q); element-level
// validation errors carry the throat index.
// Complexity: O(E).
func ConductancePairs(gDiff, q []float64, s Scheme) (gIJ, gJI []float64, err error) {
	if len(gDiff) != len(q) {
		return nil, nil, fmt.Errorf("ConductancePairs: %d conductances vs %d flows: %w",
			len(gDiff), len(q), ErrShapeMismatch)
	}
	gIJ = make([]float64, len(gDiff))
	gJI = make([]float64, len(gDiff))
	for t := range gDiff {
		gIJ[t], gJI[t], err = Conductances(gDiff[t], q[t], s)
		if err != nil {
			return nil, nil, fmt.Errorf("ConductancePairs: throat %d: %w", t, err)
		}
	}

	return gIJ, gJI, nil
}
