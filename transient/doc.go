// Package transient advances a pore-network transport field through time
// using an implicit or Crank–Nicolson discretization, iterating the
// steady solve at every step.
//
// 🚀 How it works:
//
//	Each step solves the θ-weighted system
//
//	  (C/Δt + θ·A)·x₁ = (C/Δt − (1−θ)·A)·x₀ + b
//
//	where A is the conductance Laplacian, C the diagonal per-pore volume
//	(storage) matrix, and θ selects the scheme:
//	  • Implicit       — θ=1:  first-order accurate, unconditionally stable
//	  • CrankNicolson  — θ=½:  second-order accurate; may oscillate when
//	    Δt is large relative to the diffusion time scale
//	  • SchemeSteady   — single steady solve, C ignored
//
// ✨ Snapshot policy:
//   - the field at TInitial and at the final time is always stored
//   - each requested output time (explicit list via OutputAt, or an even
//     interval via OutputEvery) is snapped to the step grid and stored
//   - if the max-norm change between consecutive steps falls below
//     TTolerance (> 0), the run stores that terminal state and stops
//     early — the remaining scheduled steps are skipped
//
// ⚙️ Usage:
//
//	opts := transient.DefaultOptions()
//	opts.TFinal, opts.TStep = 100, 1
//	opts.OutputAt = []float64{0, 50, 100}
//	res, err := transient.Run(net, gDiff, bc, ic, opts)
//	field50, _ := res.At(50)
//
// Failure model: a failing step solve returns a *StepError carrying the
// step index together with the partial Result — every snapshot stored
// before the failure remains valid. No adaptive stepping, no retries.
package transient
