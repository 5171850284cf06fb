package sat

// VMap is a mapping from Var to T, realized as a dense array indexed by
// variable index and grown on demand.
type VMap[T any] struct {
	data []T
}

// Get returns the value stored for v, or the zero value of T if v has never
// been written.
func (m *VMap[T]) Get(v Var) T {
	if int(v) >= len(m.data) {
		var zero T
		return zero
	}
	return m.data[v]
}

// Set stores value for v, growing the backing array if necessary.
func (m *VMap[T]) Set(v Var, value T) {
	m.growTo(int(v) + 1)
	m.data[v] = value
}

// Push appends a new slot initialized to value; it is used when a fresh
// variable is allocated so indices stay dense.
func (m *VMap[T]) Push(value T) {
	m.data = append(m.data, value)
}

// Len returns the number of variables the map currently has slots for.
func (m *VMap[T]) Len() int {
	return len(m.data)
}

func (m *VMap[T]) growTo(n int) {
	for len(m.data) < n {
		var zero T
		m.data = append(m.data, zero)
	}
}
