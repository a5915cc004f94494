// Package scheme defines the scheme enum and sentinel errors for the
// scheme subpackage of github.com/porenetics/porenet.
package scheme

import (
	"errors"
	"fmt"
)

// Sentinel errors for scheme evaluation.
var (
	// ErrUnknownScheme indicates a Scheme value (or name) outside the
	// supported set.
	ErrUnknownScheme = errors.New("scheme: unknown discretization scheme")
	// ErrBadConductance indicates a diffusive conductance that is
	// non-finite, zero, or negative.
	ErrBadConductance = errors.New("scheme: diffusive conductance must be finite and positive")
	// ErrBadFlow indicates a non-finite flow rate.
	ErrBadFlow = errors.New("scheme: flow rate must be finite")
	// ErrShapeMismatch indicates batch inputs of differing lengths.
	ErrShapeMismatch = errors.New("scheme: conductance and flow arrays must have equal length")
)

// Scheme selects how advection and diffusion blend into directional
// throat conductances.
type Scheme int

const (
	// Upwind takes the full diffusive conductance plus the upstream
	// advective contribution. First-order accurate, unconditionally
	// stable and non-negative.
	Upwind Scheme = iota

	// Hybrid behaves like central differencing for |Pe| < 2 and clamps
	// the diffusive part to zero beyond, reducing to pure upwind in the
	// advection-dominated regime.
	Hybrid

	// PowerLaw damps the diffusive part by max(0, (1-0.1|Pe|))⁵, matching
	// the exact exponential profile to within a few percent.
	PowerLaw

	// Exponential evaluates the exact 1-D advection–diffusion solution
	// q/(exp(Pe)-1); most accurate, costliest, with a series fallback
	// to the diffusive limit as Pe→0.
	Exponential
)

// schemeNames maps Scheme values to their canonical config-surface names.
var schemeNames = [...]string{
	Upwind:      "upwind",
	Hybrid:      "hybrid",
	PowerLaw:    "powerlaw",
	Exponential: "exponential",
}

// String returns the canonical lowercase name of s, or "unknown(n)" for
// values outside the enum.
func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("unknown(%d)", int(s))
	}
	return schemeNames[s]
}

// Valid reports whether s is one of the four supported schemes.
func (s Scheme) Valid() bool {
	return s >= Upwind && s <= Exponential
}

// Parse maps a canonical scheme name ("upwind", "hybrid", "powerlaw",
// "exponential") to its Scheme value. Returns ErrUnknownScheme for
// anything else.
func Parse(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return Scheme(s), nil
		}
	}
	return 0, fmt.Errorf("Parse %q: %w", name, ErrUnknownScheme)
}
