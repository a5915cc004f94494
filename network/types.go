// Package network defines the core types, options, and sentinel errors
// for the network subpackage of github.com/porenetics/porenet.
package network

import "errors"

// Sentinel errors for network construction and lookup.
var (
	// ErrNoPores indicates a requested pore count below one.
	ErrNoPores = errors.New("network: pore count must be at least one")
	// ErrThroatRange indicates a throat endpoint outside [0, NumPores).
	ErrThroatRange = errors.New("network: throat endpoint out of range")
	// ErrSelfLoop indicates a throat joining a pore to itself.
	ErrSelfLoop = errors.New("network: throat endpoints must differ")
	// ErrBadVolume indicates a non-finite or non-positive pore volume.
	ErrBadVolume = errors.New("network: pore volumes must be finite and positive")
	// ErrVolumeLength indicates a volume array not matching the pore count.
	ErrVolumeLength = errors.New("network: volume array length must equal pore count")
	// ErrUnknownLabel indicates a label with no assigned pore set.
	ErrUnknownLabel = errors.New("network: unknown label")
	// ErrBadShape indicates a lattice dimension below one.
	ErrBadShape = errors.New("network: lattice dimensions must be at least one")
)

// Conventional face labels assigned by the lattice constructors.
const (
	// LabelLeft marks the x=0 face of a lattice (or pore 0 of a Line).
	LabelLeft = "left"
	// LabelRight marks the x=nx-1 face (or the last pore of a Line).
	LabelRight = "right"
	// LabelFront marks the y=0 face of a Cubic lattice.
	LabelFront = "front"
	// LabelBack marks the y=ny-1 face of a Cubic lattice.
	LabelBack = "back"
)

// Options configures Network construction.
//
// Fields:
//   - Volumes — per-pore storage coefficient (capacitance) used by the
//     transient integrator. nil means every pore gets DefaultVolume.
type Options struct {
	Volumes []float64
}

// DefaultVolume is the storage coefficient assigned to every pore when
// Options.Volumes is nil.
const DefaultVolume = 1.0

// DefaultOptions returns an Options with default settings: uniform unit
// volumes.
func DefaultOptions() Options {
	return Options{}
}

// CubicOptions configures the Cubic lattice constructor.
//
// Fields:
//   - Spacing — center-to-center pore distance; recorded on the Network
//     for callers that derive conductances from geometry. Must be > 0.
//   - Volumes — as in Options; nil means uniform DefaultVolume.
type CubicOptions struct {
	Spacing float64
	Volumes []float64
}

// DefaultCubicOptions returns a CubicOptions with default settings:
// Spacing=1, uniform unit volumes.
func DefaultCubicOptions() CubicOptions {
	return CubicOptions{Spacing: 1.0}
}

// Network is an immutable pore/throat graph. Pores carry dense integer
// ids 0..NumPores()-1; throats are undirected pairs of pore ids indexed
// 0..NumThroats()-1. Volumes and labels are fixed at construction, except
// that additional labels may be attached via SetLabel.
type Network struct {
	nPores  int
	conns   [][2]int
	volumes []float64
	labels  map[string][]int
	spacing float64
}
