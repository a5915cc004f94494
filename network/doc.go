// Package network provides the pore/throat store consumed by the porenet
// solvers. A Network is a graph of pores (nodes, dense integer ids 0..N-1)
// joined by throats (undirected edges), plus per-pore volumes and labeled
// pore sets for boundary selection.
//
// ✨ Key properties:
//   - Immutable connectivity — the constructor deep-copies its inputs;
//     solvers treat the store as a read-only snapshot.
//   - Typed, fixed layout — plain slices indexed by pore/throat id;
//     no string-keyed property bags.
//   - Labels — named pore subsets ("left", "inlet", ...) so boundary
//     conditions can be addressed by face rather than by raw index.
//
// ⚙️ Usage:
//
//	import "github.com/porenetics/porenet/network"
//
//	// 4×3 lattice with faces pre-labeled left/right/front/back
//	net, err := network.Cubic(4, 3, network.DefaultCubicOptions())
//
//	// or explicit connectivity
//	net, err := network.New(3, [][2]int{{0, 1}, {1, 2}}, network.DefaultOptions())
//
// Construction is O(N+E) time and memory; all accessors are O(1) or return
// defensive copies in O(k).
package network
