// Package transport provides boundary/initial condition management and
// the steady-state transport drivers of porenet.
//
// 🚀 What does it do?
//
//	Holds the constraint state surrounding a solve and drives the linsys
//	layer end-to-end:
//	  • BCSet      — Dirichlet (fixed value) and Neumann (fixed rate)
//	    constraints per pore, with disjointness enforced at assignment
//	  • Initial    — the transient starting field (scalar or per-pore)
//	  • Diffusion  — steady diffusive transport over per-throat conductances
//	  • AdvectionDiffusion — steady advective–diffusive transport using a
//	    discretization scheme from the scheme package
//	  • Steady     — reusable driver that caches the assembled matrix
//	    across runs while the conductances are unchanged
//	  • Rate       — net boundary flux of a solved field (conservation checks)
//
// ✨ Contracts:
//   - A pore carries at most one BC mode; crossing assignments fail with
//     ErrConflictingBC before any state changes.
//   - Malformed inputs (length mismatch, bad index, non-finite value) are
//     rejected with no partial mutation.
//   - Drivers are pure functions of (network, conductances, BCs, options):
//     same inputs, same bits out.
//
// ⚙️ Usage:
//
//	bc := transport.NewBCSet(net.NumPores())
//	_ = bc.SetValue(left, 0)
//	_ = bc.SetValue(right, 10)
//	x, err := transport.Diffusion(net, gDiff, bc, transport.DefaultOptions())
//
// See examples/ for full scenarios.
package transport
