package transient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/porenetics/porenet/linsys"
	"github.com/porenetics/porenet/network"
	"github.com/porenetics/porenet/scheme"
	"github.com/porenetics/porenet/transport"
)

// Run advances diffusive transport through time: one symmetric
// conductance per throat, pore volumes from the network as the storage
// (capacitance) matrix C, boundary conditions re-applied identically at
// every step. ic may be nil for a zero initial field.
//
// On a failing step the returned error is a *StepError and the returned
// Result is non-nil, holding every snapshot stored before the failure.
//
// Complexity: O(N²) per step on the dense storage (matrix clone + solve).
func Run(net *network.Network, gDiff []float64, bc *transport.BCSet, ic *transport.Initial, opts Options) (*Result, error) {
	if net == nil {
		return nil, fmt.Errorf("Run: %w", transport.ErrNilNetwork)
	}
	if len(gDiff) != net.NumThroats() {
		return nil, fmt.Errorf("Run: %d conductances for %d throats: %w",
			len(gDiff), net.NumThroats(), transport.ErrShapeMismatch)
	}
	res, err := run(net, gDiff, gDiff, bc, ic, opts)
	if err != nil {
		return res, fmt.Errorf("Run: %w", err)
	}

	return res, nil
}

// RunAdvective advances advective–diffusive transport through time. Each
// throat carries a diffusive conductance and a signed flow rate; the
// scheme in opts blends them into directional conductances once, before
// stepping (the flow field is constant over the run).
func RunAdvective(net *network.Network, gDiff, q []float64, bc *transport.BCSet, ic *transport.Initial, opts Options) (*Result, error) {
	if net == nil {
		return nil, fmt.Errorf("RunAdvective: %w", transport.ErrNilNetwork)
	}
	if len(gDiff) != net.NumThroats() || len(q) != net.NumThroats() {
		return nil, fmt.Errorf("RunAdvective: %d conductances / %d flows for %d throats: %w",
			len(gDiff), len(q), net.NumThroats(), transport.ErrShapeMismatch)
	}
	gIJ, gJI, err := scheme.ConductancePairs(gDiff, q, opts.Scheme)
	if err != nil {
		return nil, fmt.Errorf("RunAdvective: %w", err)
	}
	res, err := run(net, gIJ, gJI, bc, ic, opts)
	if err != nil {
		return res, fmt.Errorf("RunAdvective: %w", err)
	}

	return res, nil
}

// run is the shared integrator core over directional conductances.
func run(net *network.Network, gIJ, gJI []float64, bc *transport.BCSet, ic *transport.Initial, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	n := net.NumPores()
	conns := net.Conns()

	// Raw Laplacian; its b accumulates the Neumann rates, which are
	// constant over the run.
	raw, err := linsys.Assemble(n, conns, gIJ, gJI)
	if err != nil {
		return nil, err
	}
	var valPores []int
	var values []float64
	if bc != nil {
		valPores, values = bc.Values()
		ratePores, rates := bc.Rates()
		for i, p := range ratePores {
			if err = raw.AddRate(p, rates[i]); err != nil {
				return nil, err
			}
		}
	}

	// Initial field, with value-constrained pores pinned from t0 on.
	x := make([]float64, n)
	if ic != nil {
		f := ic.Field()
		if len(f) != n {
			return nil, fmt.Errorf("initial field length %d for %d pores: %w",
				len(f), n, transport.ErrShapeMismatch)
		}
		copy(x, f)
	}
	for i, p := range valPores {
		x[p] = values[i]
	}

	res := &Result{
		Snapshots: map[float64][]float64{},
		precision: opts.TPrecision,
	}

	if opts.TimeScheme == SchemeSteady {
		return runSteady(res, raw, conns, valPores, values, x, opts)
	}

	// Snap the span to a whole number of steps, mirroring the snapping
	// applied to requested output times.
	steps := int(math.Round((opts.TFinal - opts.TInitial) / opts.TStep))
	if steps < 1 {
		steps = 1
	}
	tEnd := opts.TInitial + float64(steps)*opts.TStep
	schedule := outputSchedule(opts, tEnd)

	res.store(opts.TInitial, x)

	theta := opts.TimeScheme.theta()
	vols := net.PoreVolumes()
	stepA := composeStepMatrix(raw.A, vols, theta, opts.TStep)

	ax := mat.NewVecDense(n, nil)
	xVec := mat.NewVecDense(n, nil)
	work := mat.NewDense(n, n, nil)
	for k := 1; k <= steps; k++ {
		t := opts.TInitial + float64(k)*opts.TStep

		// b = (C/Δt)·x − (1−θ)·A·x + rates
		copy(xVec.RawVector().Data, x)
		b := mat.NewVecDense(n, nil)
		if theta != 1 {
			ax.MulVec(raw.A, xVec)
		}
		for i := 0; i < n; i++ {
			bi := vols[i]/opts.TStep*x[i] + raw.B.AtVec(i)
			if theta != 1 {
				bi -= (1 - theta) * ax.AtVec(i)
			}
			b.SetVec(i, bi)
		}

		work.Copy(stepA)
		sys := &linsys.System{A: work, B: b}
		for i, p := range valPores {
			if err = sys.PinValue(p, values[i]); err != nil {
				return res, err
			}
		}
		xNext, solveErr := linsys.Solve(sys, opts.Solver)
		if solveErr != nil {
			return res, &StepError{Step: k, Time: t, Err: solveErr}
		}

		delta := maxAbsDiff(xNext, x)
		x = xNext

		if _, want := schedule[roundTime(t, opts.TPrecision)]; want || k == steps {
			res.store(t, x)
		}
		if opts.TTolerance > 0 && delta <= opts.TTolerance {
			res.Converged = true
			res.store(t, x)
			break
		}
	}
	res.Field = make([]float64, n)
	copy(res.Field, x)

	return res, nil
}

// runSteady performs the single-solve path of TimeScheme=SchemeSteady:
// the capacitance and the time grid are ignored.
func runSteady(res *Result, raw *linsys.System, conns [][2]int, valPores []int, values []float64, x0 []float64, opts Options) (*Result, error) {
	if len(valPores) == 0 {
		return nil, transport.ErrNoBC
	}
	n := len(x0)
	if err := linsys.CheckPosed(n, conns, valPores); err != nil {
		return nil, err
	}
	res.store(opts.TInitial, x0)

	sys := raw.Clone()
	for i, p := range valPores {
		if err := sys.PinValue(p, values[i]); err != nil {
			return nil, err
		}
	}
	x, err := linsys.Solve(sys, opts.Solver)
	if err != nil {
		return res, &StepError{Step: 1, Time: opts.TFinal, Err: err}
	}
	res.Field = x
	res.store(opts.TFinal, x)

	return res, nil
}

// composeStepMatrix builds θ·A + C/Δt once; it is constant across steps
// because conductances, volumes and Δt do not vary within a run.
func composeStepMatrix(a *mat.Dense, vols []float64, theta, dt float64) *mat.Dense {
	n := len(vols)
	m := mat.NewDense(n, n, nil)
	m.Scale(theta, a)
	for i := 0; i < n; i++ {
		m.Set(i, i, m.At(i, i)+vols[i]/dt)
	}

	return m
}

// outputSchedule collects the requested snapshot times, each snapped to
// the nearest multiple of TStep within [TInitial, tEnd], keyed by rounded
// time. TInitial and tEnd are stored unconditionally by the caller and
// need no entry here.
func outputSchedule(opts Options, tEnd float64) map[float64]struct{} {
	schedule := map[float64]struct{}{}
	add := func(t float64) {
		k := math.Round((t - opts.TInitial) / opts.TStep)
		snapped := opts.TInitial + k*opts.TStep
		if snapped < opts.TInitial || snapped > tEnd {
			return
		}
		schedule[roundTime(snapped, opts.TPrecision)] = struct{}{}
	}
	for _, t := range opts.OutputAt {
		add(t)
	}
	if opts.OutputEvery > 0 {
		for m := 1; ; m++ {
			t := opts.TInitial + float64(m)*opts.OutputEvery
			if t > tEnd {
				break
			}
			add(t)
		}
	}

	return schedule
}

// maxAbsDiff returns ‖a−b‖∞ for equal-length slices.
func maxAbsDiff(a, b []float64) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}
