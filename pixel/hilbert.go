package pixel

// hilbertRotate flips and/or transposes a quadrant so the curve inside it
// joins up with its neighbours.
func hilbertRotate(n, x, y, rx, ry int) (int, int) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}
	return x, y
}

// hilbertPoint converts distance d along the Hilbert curve filling an n×n
// grid to a coordinate. n must be a power of two. It runs in O(log n).
func hilbertPoint(n, d int) (x, y int) {
	t := d
	for s := 1; s < n; s <<= 1 {
		rx := 1 & (t >> 1)
		ry := 1 & (t ^ rx)
		x, y = hilbertRotate(s, x, y, rx, ry)
		x += s * rx
		y += s * ry
		t >>= 2
	}
	return x, y
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// The curve is walked on the enclosing power-of-two grid and points that
// fall outside the canvas are skipped, keeping the rest in curve order.
func hilbertOrder(side int) []int32 {
	n := nextPowerOfTwo(side)
	order := make([]int32, 0, side*side)
	for d := 0; d < n*n && len(order) < side*side; d++ {
		x, y := hilbertPoint(n, d)
		if x < side && y < side {
			order = append(order, cell(side, x, y))
		}
	}
	return order
}
