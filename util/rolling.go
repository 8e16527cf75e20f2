package util

// Rolling keeps the last N values and their running mean
type Rolling struct {
	window int
	values []float64
	next   int
	full   bool
}

func NewRolling(window int) *Rolling {
	if window <= 0 {
		window = 1
	}
	return &Rolling{
		window: window,
		values: make([]float64, window),
	}
}

func (r *Rolling) Add(v float64) {
	r.values[r.next] = v
	r.next = (r.next + 1) % r.window
	if r.next == 0 {
		r.full = true
	}
}

func (r *Rolling) Len() int {
	if r.full {
		return r.window
	}
	return r.next
}

func (r *Rolling) Mean() float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += r.values[i]
	}
	return sum / float64(n)
}
