package network

import (
	"fmt"
	"math"
	"sort"
)

// New constructs a Network from an explicit pore count and throat list.
// It deep-copies connectivity and volumes to ensure immutability.
// Returns ErrNoPores for nPores < 1, ErrThroatRange for an endpoint
// outside [0, nPores), ErrSelfLoop for a throat joining a pore to itself,
// ErrVolumeLength / ErrBadVolume for a malformed Options.Volumes.
// Complexity: O(N+E) time and memory.
func New(nPores int, conns [][2]int, opts Options) (*Network, error) {
	if nPores < 1 {
		return nil, fmt.Errorf("New: nPores=%d: %w", nPores, ErrNoPores)
	}
	cp := make([][2]int, len(conns))
	for t, c := range conns {
		if c[0] < 0 || c[0] >= nPores || c[1] < 0 || c[1] >= nPores {
			return nil, fmt.Errorf("New: throat %d = (%d,%d): %w", t, c[0], c[1], ErrThroatRange)
		}
		if c[0] == c[1] {
			return nil, fmt.Errorf("New: throat %d: %w", t, ErrSelfLoop)
		}
		cp[t] = c
	}
	vols, err := buildVolumes(nPores, opts.Volumes)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	return &Network{
		nPores:  nPores,
		conns:   cp,
		volumes: vols,
		labels:  map[string][]int{},
		spacing: 1.0,
	}, nil
}

// buildVolumes validates and copies a volume array, or fills uniform
// DefaultVolume when vols is nil.
func buildVolumes(nPores int, vols []float64) ([]float64, error) {
	out := make([]float64, nPores)
	if vols == nil {
		for p := range out {
			out[p] = DefaultVolume
		}
		return out, nil
	}
	if len(vols) != nPores {
		return nil, fmt.Errorf("got %d volumes for %d pores: %w", len(vols), nPores, ErrVolumeLength)
	}
	for p, v := range vols {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, fmt.Errorf("pore %d volume %g: %w", p, v, ErrBadVolume)
		}
		out[p] = v
	}

	return out, nil
}

// NumPores returns the number of pores. Complexity: O(1).
func (n *Network) NumPores() int { return n.nPores }

// NumThroats returns the number of throats. Complexity: O(1).
func (n *Network) NumThroats() int { return len(n.conns) }

// Throat returns the endpoint pore ids of throat t.
// Panics if t is out of range (programmer error, same as slice indexing).
func (n *Network) Throat(t int) (i, j int) {
	c := n.conns[t]
	return c[0], c[1]
}

// Conns returns a defensive copy of the throat connectivity list.
// Complexity: O(E).
func (n *Network) Conns() [][2]int {
	out := make([][2]int, len(n.conns))
	copy(out, n.conns)
	return out
}

// PoreVolumes returns a defensive copy of the per-pore volume array.
// Complexity: O(N).
func (n *Network) PoreVolumes() []float64 {
	out := make([]float64, len(n.volumes))
	copy(out, n.volumes)
	return out
}

// Spacing returns the lattice spacing recorded at construction
// (1.0 for networks built via New).
func (n *Network) Spacing() float64 { return n.spacing }

// Neighbors returns the pores adjacent to pore p, in ascending order.
// Complexity: O(E) per call; intended for inspection, not hot loops.
func (n *Network) Neighbors(p int) []int {
	var out []int
	for _, c := range n.conns {
		switch p {
		case c[0]:
			out = append(out, c[1])
		case c[1]:
			out = append(out, c[0])
		}
	}
	sort.Ints(out)

	return out
}

// SetLabel attaches (or replaces) a named pore set. Indices are copied,
// deduplicated and sorted. Returns ErrThroatRange-style validation via
// ErrNoPores semantics: an index outside [0, NumPores) is rejected.
func (n *Network) SetLabel(label string, pores []int) error {
	seen := make(map[int]struct{}, len(pores))
	out := make([]int, 0, len(pores))
	for _, p := range pores {
		if p < 0 || p >= n.nPores {
			return fmt.Errorf("SetLabel %q: pore %d: %w", label, p, ErrThroatRange)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	n.labels[label] = out

	return nil
}

// Pores returns a copy of the pore set attached to label.
// Returns ErrUnknownLabel if the label was never assigned.
func (n *Network) Pores(label string) ([]int, error) {
	set, ok := n.labels[label]
	if !ok {
		return nil, fmt.Errorf("Pores %q: %w", label, ErrUnknownLabel)
	}
	out := make([]int, len(set))
	copy(out, set)

	return out, nil
}

// Labels returns the sorted list of label names present on the network.
func (n *Network) Labels() []string {
	out := make([]string, 0, len(n.labels))
	for name := range n.labels {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
