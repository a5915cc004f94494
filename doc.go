// Package porenet is an in-memory toolkit for simulating transport in
// pore networks — graphs of pores joined by throats, each throat carrying
// a precomputed transport conductance.
//
// 🚀 What is porenet?
//
//	A small, deterministic solver library that brings together:
//		• Network store: dense-index pores & throats, labeled boundary sets
//		• Discretization schemes: upwind, hybrid, power-law, exponential
//		• Linear systems: Laplacian assembly, Dirichlet/Neumann conditions
//		• Steady-state transport: diffusion and advection–diffusion
//		• Transient transport: implicit and Crank–Nicolson time stepping
//
// ✨ Why choose porenet?
//
//   - Pure functions of their inputs – no global state, no hidden config
//   - Explicit errors – every failure mode is a sentinel you can errors.Is
//   - Typed storage – plain slices indexed by dense pore/throat ids
//   - Small surface – each concern is one subpackage with its own options
//
// Everything is organized under five subpackages:
//
//	network/   — pore/throat connectivity, volumes, labels, lattice builders
//	scheme/    — Peclet-based advection–diffusion conductance blending
//	linsys/    — system assembly, boundary application, direct & iterative solves
//	transport/ — boundary/initial conditions and steady-state drivers
//	transient/ — time integration, snapshot schedule, early convergence
//
// Quick ASCII example:
//
//	    0───1───2        a three-pore bar with unit conductances;
//	   T=0       T=10    fixing the ends yields T=5 in the middle.
//
// Dive into examples/ for runnable scenarios: a heated bar, a scheme
// comparison sweep, and a transient cooling run.
//
//	go get github.com/porenetics/porenet
package porenet
