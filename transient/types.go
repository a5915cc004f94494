// Package transient defines options, the result container, and sentinel
// errors for the transient subpackage of github.com/porenetics/porenet.
package transient

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/porenetics/porenet/linsys"
	"github.com/porenetics/porenet/scheme"
)

// Sentinel errors for option validation.
var (
	// ErrBadTime indicates an unusable time grid: TStep ≤ 0,
	// TFinal ≤ TInitial, or a non-finite time parameter.
	ErrBadTime = errors.New("transient: invalid time grid")
	// ErrBadTolerance indicates a negative or non-finite TTolerance.
	ErrBadTolerance = errors.New("transient: tolerance must be finite and non-negative")
	// ErrBadPrecision indicates a TPrecision outside [0, 15].
	ErrBadPrecision = errors.New("transient: precision must be between 0 and 15 decimals")
	// ErrUnknownTimeScheme indicates a TimeScheme outside the enum.
	ErrUnknownTimeScheme = errors.New("transient: unknown time scheme")
)

// StepError reports a linear solve failing at one time step. Snapshots
// stored before the failing step remain valid and are returned alongside.
type StepError struct {
	Step int     // 1-based index of the failing step
	Time float64 // target time of the failing step
	Err  error   // underlying linsys error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("transient: step %d (t=%g) failed: %v", e.Step, e.Time, e.Err)
}

// Unwrap exposes the underlying solve error to errors.Is / errors.As.
func (e *StepError) Unwrap() error { return e.Err }

// TimeScheme selects the time discretization.
type TimeScheme int

const (
	// Implicit is the fully implicit (backward Euler) scheme, θ=1.
	// First-order accurate, unconditionally stable.
	Implicit TimeScheme = iota
	// CrankNicolson averages old and new operators, θ=½. Second-order
	// accurate; can oscillate for large Δt.
	CrankNicolson
	// SchemeSteady performs a single steady solve; the time grid and
	// capacitance are ignored.
	SchemeSteady
)

// timeSchemeNames maps TimeScheme values to config-surface names.
var timeSchemeNames = [...]string{
	Implicit:      "implicit",
	CrankNicolson: "cranknicolson",
	SchemeSteady:  "steady",
}

// String returns the canonical lowercase name of ts.
func (ts TimeScheme) String() string {
	if ts < 0 || int(ts) >= len(timeSchemeNames) {
		return fmt.Sprintf("unknown(%d)", int(ts))
	}
	return timeSchemeNames[ts]
}

// theta returns the operator weight of the scheme.
func (ts TimeScheme) theta() float64 {
	if ts == CrankNicolson {
		return 0.5
	}
	return 1.0
}

// ParseTimeScheme maps "implicit", "cranknicolson" or "steady" to a
// TimeScheme. Returns ErrUnknownTimeScheme for anything else.
func ParseTimeScheme(name string) (TimeScheme, error) {
	for ts, n := range timeSchemeNames {
		if n == name {
			return TimeScheme(ts), nil
		}
	}
	return 0, fmt.Errorf("ParseTimeScheme %q: %w", name, ErrUnknownTimeScheme)
}

// Default option values.
const (
	// DefaultTPrecision is the decimal rounding applied to snapshot keys.
	DefaultTPrecision = 12
)

// Options configures a transient run.
//
// Fields:
//   - TimeScheme  — Implicit (default), CrankNicolson, or SchemeSteady.
//   - TInitial    — start time (default 0).
//   - TFinal      — end time; must exceed TInitial. The span is snapped
//     to a whole number of steps.
//   - TStep       — step size Δt; must be positive.
//   - OutputEvery — store a snapshot at this even interval (0 = off).
//   - OutputAt    — explicit output times, each snapped to the nearest
//     multiple of TStep.
//   - TTolerance  — early-convergence threshold on the max-norm change
//     between consecutive steps; 0 disables early stopping.
//   - TPrecision  — decimals for rounding stored snapshot time keys.
//   - Scheme      — discretization scheme for the advective form.
//   - Solver      — linsys method, tolerance and budget per step.
type Options struct {
	TimeScheme  TimeScheme
	TInitial    float64
	TFinal      float64
	TStep       float64
	OutputEvery float64
	OutputAt    []float64
	TTolerance  float64
	TPrecision  int
	Scheme      scheme.Scheme
	Solver      linsys.SolverOptions
}

// DefaultOptions returns an Options with default settings: Implicit
// scheme from t=0, no extra outputs, no early-convergence tolerance,
// 12-decimal snapshot keys, PowerLaw advection blending, direct solver.
// TFinal and TStep have no usable defaults and must be set.
func DefaultOptions() Options {
	return Options{
		TimeScheme: Implicit,
		TPrecision: DefaultTPrecision,
		Scheme:     scheme.PowerLaw,
		Solver:     linsys.DefaultSolverOptions(),
	}
}

// validate rejects malformed options before any work is done.
func (o Options) validate() error {
	if o.TimeScheme < Implicit || o.TimeScheme > SchemeSteady {
		return fmt.Errorf("%s: %w", o.TimeScheme, ErrUnknownTimeScheme)
	}
	if !o.Scheme.Valid() {
		return fmt.Errorf("%s: %w", o.Scheme, scheme.ErrUnknownScheme)
	}
	if o.TPrecision < 0 || o.TPrecision > 15 {
		return fmt.Errorf("precision %d: %w", o.TPrecision, ErrBadPrecision)
	}
	if math.IsNaN(o.TTolerance) || math.IsInf(o.TTolerance, 0) || o.TTolerance < 0 {
		return fmt.Errorf("tolerance %g: %w", o.TTolerance, ErrBadTolerance)
	}
	if o.TimeScheme == SchemeSteady {
		return nil // the grid is unused
	}
	for _, v := range []float64{o.TInitial, o.TFinal, o.TStep, o.OutputEvery} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite time parameter: %w", ErrBadTime)
		}
	}
	if o.TStep <= 0 || o.TFinal <= o.TInitial || o.OutputEvery < 0 {
		return fmt.Errorf("t=[%g,%g] step %g: %w", o.TInitial, o.TFinal, o.TStep, ErrBadTime)
	}

	return nil
}

// Result holds the outcome of a transient run: the final (or converged)
// field, plus per-pore snapshots keyed by rounded time.
type Result struct {
	// Field is the terminal per-pore field: at the final time, or at the
	// early-convergence step, whichever ended the run.
	Field []float64
	// Times lists the stored snapshot times in ascending order, without
	// duplicates.
	Times []float64
	// Snapshots maps each rounded time key to its per-pore field.
	Snapshots map[float64][]float64
	// Converged reports whether the run stopped early because the step
	// change fell below TTolerance.
	Converged bool

	precision int
}

// At returns the snapshot stored for time t (rounded with the run's key
// precision) and whether one exists.
func (r *Result) At(t float64) ([]float64, bool) {
	snap, ok := r.Snapshots[roundTime(t, r.precision)]
	return snap, ok
}

// store records a copy of x under the rounded time key, extending Times
// on first sight of the key.
func (r *Result) store(t float64, x []float64) {
	key := roundTime(t, r.precision)
	if _, seen := r.Snapshots[key]; !seen {
		r.Times = append(r.Times, key)
		sort.Float64s(r.Times)
	}
	snap := make([]float64, len(x))
	copy(snap, x)
	r.Snapshots[key] = snap
}

// roundTime rounds t to the given number of decimal places.
func roundTime(t float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(t*scale) / scale
}
