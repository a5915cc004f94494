// Package scheme computes directional advection–diffusion conductances
// for a single throat from its diffusive conductance and signed flow rate.
//
// 🚀 What is a discretization scheme?
//
//	When a throat carries both diffusion (conductance g) and advection
//	(flow rate q), the effective one-sided conductances seen by the two
//	endpoint pores differ. The blend is controlled by the throat Peclet
//	number Pe = q/g and by the chosen scheme:
//	  • Upwind      — first order, always stable, most diffusive
//	  • Hybrid      — central-difference behavior near Pe≈0, upwind beyond |Pe|≥2
//	  • PowerLaw    — (1-0.1|Pe|)⁵ damping; near-exact at a fraction of the cost
//	  • Exponential — exact 1-D solution; costs an exp() per throat
//
// ✨ Guarantees:
//   - q == 0 returns exactly (g, g) under every scheme — the diffusion-only
//     limit is special-cased, never left to floating-point cancellation.
//   - All returned conductances are non-negative for finite inputs with g > 0.
//   - Pure functions: no state, no allocation in the scalar form.
//
// ⚙️ Usage:
//
//	import "github.com/porenetics/porenet/scheme"
//
//	gIJ, gJI, err := scheme.Conductances(gDiff, q, scheme.PowerLaw)
//
//	// batch form over all throats
//	gIJ, gJI, err := scheme.ConductancePairs(gd, flow, scheme.Exponential)
//
// Performance: O(1) per throat (O(E) batch); Exponential adds one exp call.
package scheme
