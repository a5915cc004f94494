package transient_test

import (
	"errors"
	"testing"

	"github.com/porenetics/porenet/linsys"
	"github.com/porenetics/porenet/network"
	"github.com/porenetics/porenet/transient"
	"github.com/porenetics/porenet/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barFixture builds a 3-pore bar with unit conductances, ends pinned at
// 0 and 10, and a zero initial field.
func barFixture(t *testing.T) (*network.Network, []float64, *transport.BCSet, *transport.Initial) {
	t.Helper()
	net, err := network.Line(3, network.DefaultOptions())
	require.NoError(t, err)
	bc := transport.NewBCSet(3)
	require.NoError(t, bc.SetValue([]int{0}, 0))
	require.NoError(t, bc.SetValue([]int{2}, 10))
	return net, []float64{1, 1}, bc, transport.NewInitial(3)
}

// TestRun_SnapshotSchedule verifies the snapshot contract: requesting
// t_output = [0, 50, 100] with t_final = 100 yields exactly three stored
// snapshots at keys 0, 50 and 100 — no duplicate for 100 being both an
// output time and the final time.
func TestRun_SnapshotSchedule(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	opts := transient.DefaultOptions()
	opts.TFinal = 100
	opts.TStep = 1
	opts.OutputAt = []float64{0, 50, 100}

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 50, 100}, res.Times)
	assert.Len(t, res.Snapshots, 3)
	for _, tm := range res.Times {
		snap, ok := res.At(tm)
		assert.True(t, ok, "snapshot at t=%g", tm)
		assert.Len(t, snap, 3)
	}
	_, ok := res.At(25)
	assert.False(t, ok, "unrequested times are not stored")
}

// TestRun_ImplicitReachesSteady verifies the transient limit: with the
// implicit scheme, a small step and a long horizon, the field converges
// to the steady solution for the same boundary conditions.
func TestRun_ImplicitReachesSteady(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	steady, err := transport.Diffusion(net, g, bc, transport.DefaultOptions())
	require.NoError(t, err)

	opts := transient.DefaultOptions()
	opts.TFinal = 200
	opts.TStep = 0.1
	opts.TTolerance = 1e-10

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged, "a long horizon with a tight tolerance must converge early")
	for p := range steady {
		assert.InDelta(t, steady[p], res.Field[p], 1e-6, "pore %d", p)
	}
}

// TestRun_CrankNicolsonReachesSteady repeats the steady-limit check for
// the second-order scheme.
func TestRun_CrankNicolsonReachesSteady(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	steady, err := transport.Diffusion(net, g, bc, transport.DefaultOptions())
	require.NoError(t, err)

	opts := transient.DefaultOptions()
	opts.TimeScheme = transient.CrankNicolson
	opts.TFinal = 200
	opts.TStep = 0.1
	opts.TTolerance = 1e-10

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	for p := range steady {
		assert.InDelta(t, steady[p], res.Field[p], 1e-6, "pore %d", p)
	}
}

// TestRun_MassConservation verifies that with no boundary conditions at
// all, the volume-weighted total of the field is conserved step to step
// (the Laplacian's column sums are zero).
func TestRun_MassConservation(t *testing.T) {
	net, err := network.Cubic(4, 4, network.DefaultCubicOptions())
	require.NoError(t, err)
	g := make([]float64, net.NumThroats())
	for i := range g {
		g[i] = 1 + 0.05*float64(i%5)
	}
	ic := transport.NewInitial(net.NumPores())
	init := make([]float64, net.NumPores())
	for p := range init {
		init[p] = float64(p % 4)
	}
	require.NoError(t, ic.SetField(init))

	opts := transient.DefaultOptions()
	opts.TFinal = 5
	opts.TStep = 0.25

	res, err := transient.Run(net, g, nil, ic, opts)
	require.NoError(t, err)

	mass := func(x []float64) float64 {
		var m float64
		for _, v := range x {
			m += v // unit volumes
		}
		return m
	}
	assert.InDelta(t, mass(init), mass(res.Field), 1e-9, "total mass is conserved without BCs")
}

// TestRun_EarlyConvergence verifies the CONVERGED path: a loose tolerance
// stops the run before TFinal, stores the terminal state, and skips the
// remaining scheduled outputs.
func TestRun_EarlyConvergence(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	opts := transient.DefaultOptions()
	opts.TFinal = 1000
	opts.TStep = 1
	opts.TTolerance = 1e-3
	opts.OutputAt = []float64{900}

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)

	last := res.Times[len(res.Times)-1]
	assert.Less(t, last, 900.0, "the run stops well before the late output time")
	term, ok := res.At(last)
	require.True(t, ok, "terminal state is stored")
	assert.Equal(t, res.Field, term)
	_, ok = res.At(900)
	assert.False(t, ok, "skipped outputs are not stored")
}

// TestRun_OutputEvery verifies interval-based snapshots snapped to the
// step grid.
func TestRun_OutputEvery(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	opts := transient.DefaultOptions()
	opts.TFinal = 10
	opts.TStep = 0.5
	opts.OutputEvery = 2.5

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, res.Times)
}

// TestRun_StepError verifies the failure contract: an unconvergeable
// per-step solve surfaces as a *StepError carrying the step index, and
// the partial result retains the snapshots stored before the failure.
func TestRun_StepError(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	opts := transient.DefaultOptions()
	opts.TFinal = 10
	opts.TStep = 1
	opts.Solver = linsys.SolverOptions{Method: linsys.CG, Tol: 1e-16, MaxIter: 1}

	res, err := transient.Run(net, g, bc, ic, opts)
	require.Error(t, err)

	var stepErr *transient.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Step)
	assert.InDelta(t, 1.0, stepErr.Time, 1e-12)
	assert.ErrorIs(t, err, linsys.ErrConvergence, "the underlying solve error stays reachable")

	require.NotNil(t, res, "partial result is returned alongside the step error")
	snap, ok := res.At(0)
	assert.True(t, ok, "the initial snapshot survives the failure")
	assert.Len(t, snap, 3)
}

// TestRun_SteadyScheme verifies the single-solve path: the capacitance
// and time grid are ignored and the steady field is returned.
func TestRun_SteadyScheme(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	opts := transient.DefaultOptions()
	opts.TimeScheme = transient.SchemeSteady

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Field[1], 1e-12)

	// A steady run still needs a value condition somewhere.
	opts2 := transient.DefaultOptions()
	opts2.TimeScheme = transient.SchemeSteady
	_, err = transient.Run(net, g, transport.NewBCSet(3), ic, opts2)
	assert.ErrorIs(t, err, transport.ErrNoBC)
}

// TestRun_InitialPinned verifies that value-constrained pores hold their
// pinned value from the very first snapshot, regardless of the initial
// field.
func TestRun_InitialPinned(t *testing.T) {
	net, g, bc, ic := barFixture(t)
	require.NoError(t, ic.SetScalar(99))

	opts := transient.DefaultOptions()
	opts.TFinal = 1
	opts.TStep = 1

	res, err := transient.Run(net, g, bc, ic, opts)
	require.NoError(t, err)
	first, ok := res.At(0)
	require.True(t, ok)
	assert.Equal(t, 0.0, first[0], "pinned pore overrides the initial field")
	assert.Equal(t, 10.0, first[2])
	assert.Equal(t, 99.0, first[1], "free pores keep the initial value")
}

// TestRun_Validation covers option and shape sentinels.
func TestRun_Validation(t *testing.T) {
	net, g, bc, ic := barFixture(t)

	_, err := transient.Run(nil, g, bc, ic, transient.DefaultOptions())
	assert.ErrorIs(t, err, transport.ErrNilNetwork)

	_, err = transient.Run(net, []float64{1}, bc, ic, transient.DefaultOptions())
	assert.ErrorIs(t, err, transport.ErrShapeMismatch)

	opts := transient.DefaultOptions() // TFinal and TStep left unset
	_, err = transient.Run(net, g, bc, ic, opts)
	assert.ErrorIs(t, err, transient.ErrBadTime)

	opts = transient.DefaultOptions()
	opts.TFinal, opts.TStep = 10, 1
	opts.TTolerance = -1
	_, err = transient.Run(net, g, bc, ic, opts)
	assert.ErrorIs(t, err, transient.ErrBadTolerance)

	opts = transient.DefaultOptions()
	opts.TFinal, opts.TStep = 10, 1
	opts.TPrecision = 30
	_, err = transient.Run(net, g, bc, ic, opts)
	assert.ErrorIs(t, err, transient.ErrBadPrecision)

	opts = transient.DefaultOptions()
	opts.TFinal, opts.TStep = 10, 1
	opts.TimeScheme = transient.TimeScheme(7)
	_, err = transient.Run(net, g, bc, ic, opts)
	assert.ErrorIs(t, err, transient.ErrUnknownTimeScheme)
}

// TestRunAdvective verifies the advective integrator: zero flow matches
// the diffusive integrator, and nonzero flow approaches the matching
// steady advective field.
func TestRunAdvective(t *testing.T) {
	net, g, bc, ic := barFixture(t)
	q := []float64{0.5, 0.5}

	opts := transient.DefaultOptions()
	opts.TFinal = 300
	opts.TStep = 0.1
	opts.TTolerance = 1e-11

	res, err := transient.RunAdvective(net, g, q, bc, ic, opts)
	require.NoError(t, err)

	topts := transport.DefaultOptions()
	steady, err := transport.AdvectionDiffusion(net, g, q, bc, topts)
	require.NoError(t, err)
	for p := range steady {
		assert.InDelta(t, steady[p], res.Field[p], 1e-6, "pore %d", p)
	}

	_, err = transient.RunAdvective(net, g, []float64{0}, bc, ic, opts)
	assert.ErrorIs(t, err, transport.ErrShapeMismatch)
}

// TestParseTimeScheme verifies the config-surface name round-trip.
func TestParseTimeScheme(t *testing.T) {
	for _, ts := range []transient.TimeScheme{transient.Implicit, transient.CrankNicolson, transient.SchemeSteady} {
		got, err := transient.ParseTimeScheme(ts.String())
		require.NoError(t, err, ts)
		assert.Equal(t, ts, got)
	}
	_, err := transient.ParseTimeScheme("leapfrog")
	assert.ErrorIs(t, err, transient.ErrUnknownTimeScheme)
	assert.False(t, errors.Is(err, transient.ErrBadTime))
}
