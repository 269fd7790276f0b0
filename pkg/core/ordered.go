package core

// ordered is a map that remembers first-insertion order. Setting an
// existing key replaces its value in place.
type ordered[K comparable, V any] struct {
	index  map[K]int
	values []V
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{index: make(map[K]int)}
}

func (m *ordered[K, V]) set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.values[i] = v
		return
	}
	m.index[k] = len(m.values)
	m.values = append(m.values, v)
}

func (m *ordered[K, V]) get(k K) (V, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

func (m *ordered[K, V]) len() int { return len(m.values) }

// snapshot returns a copy of the values in order.
func (m *ordered[K, V]) snapshot() []V {
	out := make([]V, len(m.values))
	copy(out, m.values)
	return out
}
