package swiper

import (
	"iter"
	"slices"
)

// NodeID addresses a realized child in the host's node arena. The zero value
// never refers to a node.
type NodeID uint64

// ItemPosition is the extent of one realized child along the main axis, in
// content space.
type ItemPosition struct {
	Index    int
	StartPos float64
	EndPos   float64
	Node     NodeID
}

// Size returns the main-axis length of the item.
func (p ItemPosition) Size() float64 {
	return p.EndPos - p.StartPos
}

func (p ItemPosition) shifted(d float64) ItemPosition {
	p.StartPos += d
	p.EndPos += d
	return p
}

// Positions is the position model: realized items keyed by logical index,
// iterated in ascending index order.
type Positions struct {
	items map[int]ItemPosition
	keys  []int
}

// NewPositions returns an empty position model.
func NewPositions() *Positions {
	return &Positions{items: make(map[int]ItemPosition)}
}

// Len returns the number of realized items.
func (p *Positions) Len() int {
	return len(p.keys)
}

// Get returns the position of the item with the given logical index.
func (p *Positions) Get(index int) (ItemPosition, bool) {
	pos, ok := p.items[index]
	return pos, ok
}

// Has reports whether the item is realized.
func (p *Positions) Has(index int) bool {
	_, ok := p.items[index]
	return ok
}

// Set inserts or replaces the position stored under pos.Index.
func (p *Positions) Set(pos ItemPosition) {
	if _, ok := p.items[pos.Index]; !ok {
		at, _ := slices.BinarySearch(p.keys, pos.Index)
		p.keys = slices.Insert(p.keys, at, pos.Index)
	}
	p.items[pos.Index] = pos
}

// Delete removes the item with the given index.
func (p *Positions) Delete(index int) {
	if _, ok := p.items[index]; !ok {
		return
	}
	delete(p.items, index)
	if at, found := slices.BinarySearch(p.keys, index); found {
		p.keys = slices.Delete(p.keys, at, at+1)
	}
}

// Clear removes all items.
func (p *Positions) Clear() {
	clear(p.items)
	p.keys = p.keys[:0]
}

// Keys returns the realized indices in ascending order.
func (p *Positions) Keys() []int {
	return slices.Clone(p.keys)
}

// First returns the item with the lowest index.
func (p *Positions) First() (ItemPosition, bool) {
	if len(p.keys) == 0 {
		return ItemPosition{}, false
	}
	return p.items[p.keys[0]], true
}

// Last returns the item with the highest index.
func (p *Positions) Last() (ItemPosition, bool) {
	if len(p.keys) == 0 {
		return ItemPosition{}, false
	}
	return p.items[p.keys[len(p.keys)-1]], true
}

// All iterates over the realized items in ascending index order.
func (p *Positions) All() iter.Seq[ItemPosition] {
	return func(yield func(ItemPosition) bool) {
		for _, key := range p.keys {
			if !yield(p.items[key]) {
				return
			}
		}
	}
}

// next returns the lowest realized index above index.
func (p *Positions) next(index int) (int, bool) {
	at, found := slices.BinarySearch(p.keys, index)
	if found {
		at++
	}
	if at >= len(p.keys) {
		return 0, false
	}
	return p.keys[at], true
}

// prev returns the highest realized index below index.
func (p *Positions) prev(index int) (int, bool) {
	at, _ := slices.BinarySearch(p.keys, index)
	if at == 0 {
		return 0, false
	}
	return p.keys[at-1], true
}

// usesNode reports whether any item other than except references node.
func (p *Positions) usesNode(node NodeID, except int) bool {
	for _, key := range p.keys {
		if key != except && p.items[key].Node == node {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (p *Positions) Clone() *Positions {
	c := &Positions{
		items: make(map[int]ItemPosition, len(p.items)),
		keys:  slices.Clone(p.keys),
	}
	for k, v := range p.items {
		c.items[k] = v
	}
	return c
}

// Equal reports whether both models hold the same items.
func (p *Positions) Equal(o *Positions) bool {
	if !slices.Equal(p.keys, o.keys) {
		return false
	}
	for _, key := range p.keys {
		if p.items[key] != o.items[key] {
			return false
		}
	}
	return true
}
