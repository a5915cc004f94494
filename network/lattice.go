package network

import "fmt"

// Line constructs a 1-D chain of n pores with n-1 throats, labeling
// pore 0 as "left" and pore n-1 as "right". Returns ErrBadShape for n < 2.
// Complexity: O(n).
func Line(n int, opts Options) (*Network, error) {
	if n < 2 {
		return nil, fmt.Errorf("Line: n=%d: %w", n, ErrBadShape)
	}
	conns := make([][2]int, n-1)
	for t := 0; t < n-1; t++ {
		conns[t] = [2]int{t, t + 1}
	}
	net, err := New(n, conns, opts)
	if err != nil {
		return nil, fmt.Errorf("Line: %w", err)
	}
	_ = net.SetLabel(LabelLeft, []int{0})
	_ = net.SetLabel(LabelRight, []int{n - 1})

	return net, nil
}

// Cubic constructs an nx×ny rectangular lattice with 4-connectivity.
// Pore (x,y) has id y*nx + x; throats run east then north per pore in a
// stable order. Faces are labeled: x=0 "left", x=nx-1 "right",
// y=0 "front", y=ny-1 "back". Returns ErrBadShape if nx or ny < 1, or if
// the lattice degenerates to a single pore; ErrBadVolume for a
// non-positive Spacing.
// Complexity: O(nx·ny).
func Cubic(nx, ny int, opts CubicOptions) (*Network, error) {
	if nx < 1 || ny < 1 || nx*ny < 2 {
		return nil, fmt.Errorf("Cubic: %dx%d: %w", nx, ny, ErrBadShape)
	}
	if opts.Spacing <= 0 {
		return nil, fmt.Errorf("Cubic: spacing %g: %w", opts.Spacing, ErrBadVolume)
	}
	id := func(x, y int) int { return y*nx + x }

	conns := make([][2]int, 0, 2*nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			if x+1 < nx {
				conns = append(conns, [2]int{id(x, y), id(x + 1, y)})
			}
			if y+1 < ny {
				conns = append(conns, [2]int{id(x, y), id(x, y + 1)})
			}
		}
	}
	net, err := New(nx*ny, conns, Options{Volumes: opts.Volumes})
	if err != nil {
		return nil, fmt.Errorf("Cubic: %w", err)
	}
	net.spacing = opts.Spacing

	left := make([]int, 0, ny)
	right := make([]int, 0, ny)
	for y := 0; y < ny; y++ {
		left = append(left, id(0, y))
		right = append(right, id(nx-1, y))
	}
	front := make([]int, 0, nx)
	back := make([]int, 0, nx)
	for x := 0; x < nx; x++ {
		front = append(front, id(x, 0))
		back = append(back, id(x, ny-1))
	}
	_ = net.SetLabel(LabelLeft, left)
	_ = net.SetLabel(LabelRight, right)
	_ = net.SetLabel(LabelFront, front)
	_ = net.SetLabel(LabelBack, back)

	return net, nil
}
