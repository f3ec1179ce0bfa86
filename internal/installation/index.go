package installation

// IndexMap groups values into sets keyed by an integer. Adding a value that is
// already present under the same key leaves the set unchanged.
//
// IndexMap is not safe for concurrent use.
type IndexMap[V comparable] struct {
	sets map[int]map[V]struct{}
}

// NewIndexMap returns an empty IndexMap.
func NewIndexMap[V comparable]() *IndexMap[V] {
	return &IndexMap[V]{sets: make(map[int]map[V]struct{})}
}

// Add inserts v into the set stored under key.
func (m *IndexMap[V]) Add(key int, v V) {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[V]struct{}, 1)
		m.sets[key] = set
	}
	set[v] = struct{}{}
}

// Groups returns a snapshot of every set in the index. Neither the groups nor
// their members come in any particular order.
func (m *IndexMap[V]) Groups() [][]V {
	groups := make([][]V, 0, len(m.sets))
	for _, set := range m.sets {
		group := make([]V, 0, len(set))
		for v := range set {
			group = append(group, v)
		}
		groups = append(groups, group)
	}
	return groups
}

// Len returns the number of distinct keys.
func (m *IndexMap[V]) Len() int {
	return len(m.sets)
}
