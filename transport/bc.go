package transport

import (
	"fmt"
	"math"
	"sort"
)

// BCSet stores the boundary conditions for one solve: a fixed value
// (Dirichlet) or a fixed rate (Neumann) per pore. The two pore sets are
// kept disjoint by construction. A BCSet is created before a run and may
// be cleared and refilled between runs; it is not safe for concurrent
// mutation.
type BCSet struct {
	n      int
	values map[int]float64
	rates  map[int]float64
}

// NewBCSet returns an empty condition set for a network of n pores.
// Indices passed to later calls are validated against n.
func NewBCSet(n int) *BCSet {
	return &BCSet{
		n:      n,
		values: map[int]float64{},
		rates:  map[int]float64{},
	}
}

// SetValue assigns a Dirichlet (fixed value) condition to each pore in
// pores. values is either a single scalar broadcast to the whole subset
// or one value per pore in order.
//
// All input is validated before any assignment: on error the set is
// unchanged. Re-assigning a value condition overwrites the old value;
// assigning to a pore holding a rate condition fails with
// ErrConflictingBC until that pore is cleared.
//
// Errors: ErrShapeMismatch, ErrPoreIndex, ErrConflictingBC, ErrNaNInf.
func (bc *BCSet) SetValue(pores []int, values ...float64) error {
	vals, err := bc.validate(pores, values, bc.rates)
	if err != nil {
		return fmt.Errorf("SetValue: %w", err)
	}
	for i, p := range pores {
		bc.values[p] = vals[i]
	}

	return nil
}

// SetRate assigns a Neumann (fixed rate) condition to each pore in pores,
// with the same broadcast, validation and no-partial-mutation semantics
// as SetValue. Assigning to a pore holding a value condition fails with
// ErrConflictingBC.
func (bc *BCSet) SetRate(pores []int, values ...float64) error {
	vals, err := bc.validate(pores, values, bc.values)
	if err != nil {
		return fmt.Errorf("SetRate: %w", err)
	}
	for i, p := range pores {
		bc.rates[p] = vals[i]
	}

	return nil
}

// validate checks subset shape, index bounds, duplicates, finiteness and
// disjointness against the opposite mode, returning the broadcast-expanded
// value slice. It mutates nothing.
func (bc *BCSet) validate(pores []int, values []float64, other map[int]float64) ([]float64, error) {
	if len(pores) == 0 {
		return nil, fmt.Errorf("empty pore subset: %w", ErrShapeMismatch)
	}
	var vals []float64
	switch len(values) {
	case 1:
		vals = make([]float64, len(pores))
		for i := range vals {
			vals[i] = values[0]
		}
	case len(pores):
		vals = values
	default:
		return nil, fmt.Errorf("%d values for %d pores: %w", len(values), len(pores), ErrShapeMismatch)
	}

	seen := make(map[int]struct{}, len(pores))
	for i, p := range pores {
		if p < 0 || p >= bc.n {
			return nil, fmt.Errorf("pore %d of %d: %w", p, bc.n, ErrPoreIndex)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("pore %d repeated: %w", p, ErrPoreIndex)
		}
		seen[p] = struct{}{}
		if _, held := other[p]; held {
			return nil, fmt.Errorf("pore %d: %w", p, ErrConflictingBC)
		}
		if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
			return nil, fmt.Errorf("pore %d value %g: %w", p, vals[i], ErrNaNInf)
		}
	}

	return vals, nil
}

// Clear removes conditions. With no arguments it empties the whole set;
// with pore indices it removes whichever mode each listed pore holds
// (pores holding no condition are ignored). Out-of-range indices fail
// with ErrPoreIndex before any removal.
func (bc *BCSet) Clear(pores ...int) error {
	if len(pores) == 0 {
		bc.values = map[int]float64{}
		bc.rates = map[int]float64{}
		return nil
	}
	for _, p := range pores {
		if p < 0 || p >= bc.n {
			return fmt.Errorf("Clear: pore %d: %w", p, ErrPoreIndex)
		}
	}
	for _, p := range pores {
		delete(bc.values, p)
		delete(bc.rates, p)
	}

	return nil
}

// Values returns the value-constrained pores (ascending) and their values.
func (bc *BCSet) Values() (pores []int, values []float64) {
	return sortedEntries(bc.values)
}

// Rates returns the rate-constrained pores (ascending) and their rates.
func (bc *BCSet) Rates() (pores []int, rates []float64) {
	return sortedEntries(bc.rates)
}

// IsValue reports whether pore p holds a value condition.
func (bc *BCSet) IsValue(p int) bool {
	_, ok := bc.values[p]
	return ok
}

// IsRate reports whether pore p holds a rate condition.
func (bc *BCSet) IsRate(p int) bool {
	_, ok := bc.rates[p]
	return ok
}

// NumValues returns the count of value-constrained pores.
func (bc *BCSet) NumValues() int { return len(bc.values) }

// NumRates returns the count of rate-constrained pores.
func (bc *BCSet) NumRates() int { return len(bc.rates) }

// sortedEntries flattens a pore→value map into parallel sorted slices.
func sortedEntries(m map[int]float64) ([]int, []float64) {
	pores := make([]int, 0, len(m))
	for p := range m {
		pores = append(pores, p)
	}
	sort.Ints(pores)
	vals := make([]float64, len(pores))
	for i, p := range pores {
		vals[i] = m[p]
	}

	return pores, vals
}

// Initial holds the starting field for a transient run: zero by default,
// a broadcast scalar, or a full per-pore array. Consumed once at
// integration start; value-constrained pores are overridden by their
// pinned values regardless of the initial field.
type Initial struct {
	n     int
	field []float64
}

// NewInitial returns a zero initial field for a network of n pores.
func NewInitial(n int) *Initial {
	return &Initial{n: n, field: make([]float64, n)}
}

// SetScalar broadcasts v to every pore.
// Returns ErrNaNInf for a non-finite v.
func (ic *Initial) SetScalar(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("SetScalar: %g: %w", v, ErrNaNInf)
	}
	for p := range ic.field {
		ic.field[p] = v
	}

	return nil
}

// SetField copies a full per-pore array. Returns ErrShapeMismatch if
// len(vals) differs from the pore count, ErrNaNInf for non-finite
// entries; the stored field is unchanged on error.
func (ic *Initial) SetField(vals []float64) error {
	if len(vals) != ic.n {
		return fmt.Errorf("SetField: %d values for %d pores: %w", len(vals), ic.n, ErrShapeMismatch)
	}
	for p, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("SetField: pore %d value %g: %w", p, v, ErrNaNInf)
		}
	}
	copy(ic.field, vals)

	return nil
}

// Field returns a copy of the initial field.
func (ic *Initial) Field() []float64 {
	out := make([]float64, len(ic.field))
	copy(out, ic.field)
	return out
}
