package swiper

// Arena stores host nodes under stable integer ids. The engine only ever
// holds ids; looking up a removed id fails, which callers treat as "already
// destroyed".
type Arena[T any] struct {
	nodes map[NodeID]T
	last  NodeID
}

// NewArena returns an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{nodes: make(map[NodeID]T)}
}

// Insert stores v and returns its id. Ids are never reused.
func (a *Arena[T]) Insert(v T) NodeID {
	a.last++
	a.nodes[a.last] = v
	return a.last
}

// Get returns the node stored under id.
func (a *Arena[T]) Get(id NodeID) (T, bool) {
	v, ok := a.nodes[id]
	return v, ok
}

// Remove deletes the node stored under id and returns it.
func (a *Arena[T]) Remove(id NodeID) (T, bool) {
	v, ok := a.nodes[id]
	if ok {
		delete(a.nodes, id)
	}
	return v, ok
}

// Len returns the number of live nodes.
func (a *Arena[T]) Len() int {
	return len(a.nodes)
}

// Each calls fn for every live node in unspecified order.
func (a *Arena[T]) Each(fn func(id NodeID, v T)) {
	for id, v := range a.nodes {
		fn(id, v)
	}
}
