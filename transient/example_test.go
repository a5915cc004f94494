package transient_test

import (
	"fmt"

	"github.com/porenetics/porenet/network"
	"github.com/porenetics/porenet/transient"
	"github.com/porenetics/porenet/transport"
)

// ExampleRun demonstrates a transient run on the 1-D bar with an explicit
// output schedule: snapshots land exactly at the requested keys, with the
// final time stored once even though it is also an output time.
func ExampleRun() {
	net, _ := network.Line(3, network.DefaultOptions())

	bc := transport.NewBCSet(net.NumPores())
	_ = bc.SetValue([]int{0}, 0)
	_ = bc.SetValue([]int{2}, 10)

	opts := transient.DefaultOptions()
	opts.TFinal = 100
	opts.TStep = 1
	opts.OutputAt = []float64{0, 50, 100}

	res, _ := transient.Run(net, []float64{1, 1}, bc, nil, opts)
	fmt.Println("snapshots:", res.Times)

	final, _ := res.At(100)
	fmt.Printf("middle pore at t=100: %.1f\n", final[1])

	// Output:
	// snapshots: [0 50 100]
	// middle pore at t=100: 5.0
}
