package swiper

import (
	"math"
	"slices"
)

// Children supplies and measures the swiper's children. Indices passed to it
// are always bounded to [0, Count()).
type Children interface {
	Count() int
	// Realize mounts the child at index and returns its node. Realizing an
	// index that is already mounted returns the existing node.
	Realize(index int) NodeID
	// Release unmounts a node that is no longer referenced by the layout.
	Release(id NodeID)
	// Measure returns the natural size of a mounted node. ok is false while
	// the child's content is not ready; such a child measures as zero.
	Measure(id NodeID, c Constraints) (size Size, ok bool)
}

// Constraints bound a measurement along both axes. An unbounded axis is
// math.Inf(1).
type Constraints struct {
	Main  float64
	Cross float64
}

// Size is an extent along the main and cross axes.
type Size struct {
	Main  float64
	Cross float64
}

// Snapshot is the scroll and index state a layout pass operates on.
type Snapshot struct {
	// Offset is the committed viewport start in content space.
	Offset float64
	// Delta is the pending scroll accumulated since the last pass.
	Delta float64
	// Current is the committed logical index. It anchors the pass when
	// nothing is realized yet.
	Current     int
	JumpIndex   *int
	TargetIndex *int
	// Pinned indices are never evicted by this pass.
	Pinned []int
	// Translate is the render translation of an in-flight property
	// animation; the visible window covers both ends of it.
	Translate       float64
	AllowOverscroll bool
}

// Metrics are the values derived from the properties and constraints during
// Measure.
type Metrics struct {
	Total        int
	DisplayCount int
	Loop         bool
	ViewportMain float64
	ContentMain  float64
	// ItemMain is the fixed item size, zero when children size themselves.
	ItemMain float64
}

// Pitch returns the distance between the starts of consecutive items of
// fixed size.
func (m Metrics) Pitch(space float64) float64 {
	return m.ItemMain + space
}

// MaxIndex returns the highest index a non-looping swiper can settle on.
func (m Metrics) MaxIndex() int {
	if m.Loop {
		return math.MaxInt
	}
	return max(m.Total-m.DisplayCount, 0)
}

// Result describes a completed layout pass.
type Result struct {
	Offset float64
	// StartIndex and EndIndex bound the visible window. EndIndex is below
	// StartIndex when nothing is visible.
	StartIndex      int
	EndIndex        int
	ContentMainSize float64
	CrossSize       float64
	// StretchCross is set when the cross axis was unbounded and the frame
	// must stretch to the largest realized child.
	StretchCross bool
}

// Algorithm places children along the main axis for one synchronous pass.
// It borrows the position model and must not be kept after Layout returns.
type Algorithm struct {
	props     Props
	children  Children
	positions *Positions
	snap      Snapshot

	metrics Metrics
	cross   float64

	maxCross float64
	touched  map[int]bool
	bounded  map[int]bool
	cached   map[int]bool
	dropped  []NodeID
}

// NewAlgorithm prepares a pass over positions.
func NewAlgorithm(props Props, children Children, positions *Positions, snap Snapshot) *Algorithm {
	return &Algorithm{
		props:     props.normalized(),
		children:  children,
		positions: positions,
		snap:      snap,
	}
}

// Metrics returns the values computed by Measure.
func (a *Algorithm) Metrics() Metrics {
	return a.metrics
}

// Measure derives item sizes and the effective display count from c and
// returns the frame size.
func (a *Algorithm) Measure(c Constraints) Size {
	props := a.props
	total := 0
	if a.children != nil {
		total = a.children.Count()
	}
	viewport := max(c.Main, 0)
	content := max(viewport-props.PrevMargin-props.NextMargin, 0)

	count := props.DisplayCount
	if props.MinSize > 0 {
		count = max(1, int(math.Floor((content+props.ItemSpace)/(props.MinSize+props.ItemSpace))))
	}

	var item float64
	switch {
	case props.ItemSize > 0:
		item = props.ItemSize
	case props.DisplayMode == DisplayStretch:
		item = max((content-props.ItemSpace*float64(count-1))/float64(count), 0)
	}

	a.metrics = Metrics{
		Total:        total,
		DisplayCount: count,
		Loop:         EffectiveLoop(props.Loop, count, total),
		ViewportMain: viewport,
		ContentMain:  content,
		ItemMain:     item,
	}
	a.cross = c.Cross
	if math.IsNaN(a.cross) || a.cross < 0 {
		a.cross = 0
	}

	cross := a.cross
	if math.IsInf(cross, 1) && a.children != nil {
		cross = 0
		for pos := range a.positions.All() {
			if size, ok := a.children.Measure(pos.Node, a.childConstraints()); ok {
				cross = max(cross, size.Cross)
			}
		}
	}
	return Size{Main: viewport, Cross: cross}
}

// Layout places children for the snapshot and evicts what left the window.
func (a *Algorithm) Layout() Result {
	m := a.metrics
	offset := a.snap.Offset + a.snap.Delta
	if m.Total <= 0 || m.ViewportMain <= 0 || a.children == nil {
		a.releaseAll()
		return Result{Offset: offset, EndIndex: -1, ContentMainSize: m.ContentMain}
	}

	a.touched = make(map[int]bool)
	a.bounded = make(map[int]bool)
	a.cached = make(map[int]bool)

	offset = a.clampShortContent(offset)
	ws, we := a.window(offset)
	switch {
	case a.snap.JumpIndex != nil:
		a.dropAll()
		a.fill(a.clampIndex(*a.snap.JumpIndex), offset, ws, we, false)
	case a.positions.Len() == 0:
		a.fill(a.clampIndex(a.snap.Current), offset, ws, we, false)
	case a.snap.TargetIndex != nil:
		if !a.positions.Has(*a.snap.TargetIndex) {
			a.placeTarget(a.clampIndex(*a.snap.TargetIndex), offset)
		}
		a.fill(a.anchor(offset), a.anchorStart(offset), ws, we, true)
	default:
		a.fill(a.anchor(offset), a.anchorStart(offset), ws, we, false)
	}
	a.separate()

	offset = a.clampShortContent(offset)
	ws, we = a.window(offset)
	a.evict(ws, we)
	a.releaseDropped()
	return a.result(offset, ws, we)
}

func (a *Algorithm) window(offset float64) (float64, float64) {
	from, to := offset, offset+a.snap.Translate
	if to < from {
		from, to = to, from
	}
	return from - a.props.PrevMargin, to + a.metrics.ContentMain + a.props.NextMargin
}

func (a *Algorithm) clampIndex(i int) int {
	if a.metrics.Loop {
		return i
	}
	return min(max(i, 0), a.metrics.Total-1)
}

func (a *Algorithm) childConstraints() Constraints {
	main := math.Inf(1)
	if a.metrics.ItemMain > 0 {
		main = a.metrics.ItemMain
	}
	return Constraints{Main: main, Cross: a.cross}
}

// anchor returns the index of the last realized item starting at or before
// the viewport start, or the first realized item.
func (a *Algorithm) anchor(offset float64) int {
	first, _ := a.positions.First()
	anchor := first.Index
	for pos := range a.positions.All() {
		if pos.StartPos > offset {
			break
		}
		anchor = pos.Index
	}
	return anchor
}

func (a *Algorithm) anchorStart(offset float64) float64 {
	pos, ok := a.positions.Get(a.anchor(offset))
	if !ok {
		return offset
	}
	return pos.StartPos
}

func (a *Algorithm) canPlace(i int) bool {
	m := a.metrics
	if !m.Loop && (i < 0 || i >= m.Total) {
		return false
	}
	return !a.touched[i] && !a.bounded[LoopIndex(i, m.Total)]
}

func (a *Algorithm) successor(i int, follow bool) int {
	if follow {
		if next, ok := a.positions.next(i); ok {
			return next
		}
	}
	return i + 1
}

func (a *Algorithm) predecessor(i int, follow bool) int {
	if follow {
		if prev, ok := a.positions.prev(i); ok {
			return prev
		}
	}
	return i - 1
}

// measure realizes i and returns its node and main-axis size.
func (a *Algorithm) measure(i int) (NodeID, float64) {
	node := a.children.Realize(LoopIndex(i, a.metrics.Total))
	size, ok := a.children.Measure(node, a.childConstraints())
	if !ok {
		size = Size{}
	}
	a.maxCross = max(a.maxCross, size.Cross)
	if a.metrics.ItemMain > 0 {
		return node, a.metrics.ItemMain
	}
	return node, max(size.Main, 0)
}

// placeForward places i starting at start and returns its end.
func (a *Algorithm) placeForward(i int, start float64) float64 {
	node, size := a.measure(i)
	a.positions.Set(ItemPosition{Index: i, StartPos: start, EndPos: start + size, Node: node})
	a.touched[i] = true
	a.bounded[LoopIndex(i, a.metrics.Total)] = true
	return start + size
}

// placeBackward places i ending at end and returns its start.
func (a *Algorithm) placeBackward(i int, end float64) float64 {
	node, size := a.measure(i)
	a.positions.Set(ItemPosition{Index: i, StartPos: end - size, EndPos: end, Node: node})
	a.touched[i] = true
	a.bounded[LoopIndex(i, a.metrics.Total)] = true
	return end - size
}

// fill places anchor at start, then walks forward to the window end and
// backward to the window start, realizing the cache on both sides of the
// visible items.
func (a *Algorithm) fill(anchor int, start, ws, we float64, follow bool) {
	space := a.props.ItemSpace

	first, last, pos := anchor, anchor, start
	visible := false
	for i := anchor; a.canPlace(i); i = a.successor(i, follow) {
		end := a.placeForward(i, pos)
		last = i
		if !visible && end > ws {
			first, visible = i, true
		}
		if end >= we {
			break
		}
		pos = end + space
	}
	if !visible {
		first = last
	}

	end := start - space
	for i := a.predecessor(anchor, follow); end > ws && a.canPlace(i); i = a.predecessor(i, follow) {
		end = a.placeBackward(i, end) - space
		first = i
	}

	i := last
	for n := 0; n < a.props.CachedCount; n++ {
		i = a.successor(i, follow)
		if a.touched[i] {
			a.cached[i] = true
			continue
		}
		prev, ok := a.positions.Get(a.predecessor(i, follow))
		if !ok || !a.canPlace(i) {
			break
		}
		a.placeForward(i, prev.EndPos+space)
		a.cached[i] = true
	}
	i = first
	for n := 0; n < a.props.CachedCount; n++ {
		i = a.predecessor(i, follow)
		if a.touched[i] {
			a.cached[i] = true
			continue
		}
		next, ok := a.positions.Get(a.successor(i, follow))
		if !ok || !a.canPlace(i) {
			break
		}
		a.placeBackward(i, next.StartPos-space)
		a.cached[i] = true
	}
}

// placeTarget realizes a target that is not in the model next to the
// nearer realized edge, leaving an index gap to the rest of the model. A
// target that falls inside a gap goes on the side of the gap away from the
// viewport; separate then moves the items across the gap out of its way.
func (a *Algorithm) placeTarget(target int, offset float64) {
	space := a.props.ItemSpace
	first, _ := a.positions.First()
	last, _ := a.positions.Last()
	node, size := a.measure(target)
	var start float64
	switch {
	case target > last.Index:
		start = last.EndPos + space
	case target < first.Index:
		start = first.StartPos - space - size
	case a.anchor(offset) > target:
		nextIndex, _ := a.positions.next(target)
		next, _ := a.positions.Get(nextIndex)
		start = next.StartPos - space - size
	default:
		prevIndex, _ := a.positions.prev(target)
		prev, _ := a.positions.Get(prevIndex)
		start = prev.EndPos + space
	}
	a.positions.Set(ItemPosition{Index: target, StartPos: start, EndPos: start + size, Node: node})
}

// separate moves the items this pass did not place so that none of them
// intersects its neighbor. The placed items form one run in key order; items
// after it are pushed toward the end and items before it toward the start.
func (a *Algorithm) separate() {
	keys := a.positions.Keys()
	lo, hi := -1, -1
	for n, k := range keys {
		if a.touched[k] {
			if lo < 0 {
				lo = n
			}
			hi = n
		}
	}
	if lo < 0 {
		return
	}
	space := a.props.ItemSpace
	for n := hi + 1; n < len(keys); n++ {
		prev, _ := a.positions.Get(keys[n-1])
		pos, _ := a.positions.Get(keys[n])
		if d := prev.EndPos + space - pos.StartPos; d > 0 {
			a.positions.Set(pos.shifted(d))
		}
	}
	for n := lo - 1; n >= 0; n-- {
		next, _ := a.positions.Get(keys[n+1])
		pos, _ := a.positions.Get(keys[n])
		if d := next.StartPos - space - pos.EndPos; d < 0 {
			a.positions.Set(pos.shifted(d))
		}
	}
}

// clampShortContent aligns content that fits entirely in the viewport to its
// first item.
func (a *Algorithm) clampShortContent(offset float64) float64 {
	m := a.metrics
	if m.Loop || a.snap.AllowOverscroll {
		return offset
	}
	first, ok := a.positions.Get(0)
	if !ok {
		return offset
	}
	last, ok := a.positions.Get(m.Total - 1)
	if !ok || last.EndPos-first.StartPos > m.ContentMain {
		return offset
	}
	return first.StartPos
}

func (a *Algorithm) evict(ws, we float64) {
	space := a.props.ItemSpace
	lo, hi := ws-space, we+space
	for _, key := range a.positions.Keys() {
		if slices.Contains(a.snap.Pinned, key) || a.cached[key] {
			continue
		}
		pos, _ := a.positions.Get(key)
		if a.touched[key] && pos.EndPos > lo && pos.StartPos < hi {
			continue
		}
		a.positions.Delete(key)
		a.dropped = append(a.dropped, pos.Node)
	}
}

// dropAll clears the model ahead of a jump. Nodes are released only if the
// new placement does not reuse them.
func (a *Algorithm) dropAll() {
	for pos := range a.positions.All() {
		if slices.Contains(a.snap.Pinned, pos.Index) {
			continue
		}
		a.dropped = append(a.dropped, pos.Node)
	}
	for _, key := range a.positions.Keys() {
		if !slices.Contains(a.snap.Pinned, key) {
			a.positions.Delete(key)
		}
	}
}

func (a *Algorithm) releaseDropped() {
	seen := make(map[NodeID]bool, len(a.dropped))
	for _, node := range a.dropped {
		if node == 0 || seen[node] {
			continue
		}
		seen[node] = true
		if !a.positions.usesNode(node, math.MinInt) {
			a.children.Release(node)
		}
	}
	a.dropped = a.dropped[:0]
}

func (a *Algorithm) releaseAll() {
	for pos := range a.positions.All() {
		a.dropped = append(a.dropped, pos.Node)
	}
	a.positions.Clear()
	if a.children != nil {
		a.releaseDropped()
	}
	a.dropped = nil
}

func (a *Algorithm) result(offset, ws, we float64) Result {
	res := Result{
		Offset:          offset,
		StartIndex:      0,
		EndIndex:        -1,
		ContentMainSize: a.metrics.ContentMain,
		CrossSize:       a.cross,
	}
	if math.IsInf(a.cross, 1) {
		res.CrossSize = a.maxCross
		res.StretchCross = true
	}
	found := false
	for pos := range a.positions.All() {
		if pos.EndPos <= ws || pos.StartPos >= we {
			continue
		}
		if !found {
			res.StartIndex = pos.Index
			found = true
		}
		res.EndIndex = pos.Index
	}
	return res
}
