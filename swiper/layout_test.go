package swiper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func runPass(props Props, ch Children, positions *Positions, snap Snapshot, c Constraints) (Result, Metrics) {
	a := NewAlgorithm(props, ch, positions, snap)
	a.Measure(c)
	res := a.Layout()
	return res, a.Metrics()
}

func linear(count int, size float64) (Props, *fakeChildren) {
	props := nonLoop()
	props.DisplayMode = DisplayAutoLinear
	ch := newFakeChildren(count)
	ch.size = size
	return props, ch
}

func starts(p *Positions) map[int]float64 {
	out := make(map[int]float64)
	for pos := range p.All() {
		out[pos.Index] = pos.StartPos
	}
	return out
}

func TestMeasureStretchWithMargins(t *testing.T) {
	props := nonLoop()
	props.DisplayCount = 2
	props.ItemSpace = 10
	props.PrevMargin = 5
	props.NextMargin = 15
	positions := NewPositions()

	res, m := runPass(props, newFakeChildren(5), positions, Snapshot{}, Constraints{Main: 200, Cross: 20})

	assert.Equal(t, 180.0, m.ContentMain)
	assert.Equal(t, 85.0, m.ItemMain)
	assert.Equal(t, map[int]float64{0: 0, 1: 95, 2: 190}, starts(positions))
	assert.Equal(t, 0, res.StartIndex)
	assert.Equal(t, 2, res.EndIndex)
	assert.Equal(t, 180.0, res.ContentMainSize)
}

func TestMeasureMinSizeDerivesDisplayCount(t *testing.T) {
	props := nonLoop()
	props.MinSize = 30
	props.ItemSpace = 5

	_, m := runPass(props, newFakeChildren(5), NewPositions(), Snapshot{}, viewport)

	assert.Equal(t, 3, m.DisplayCount)
	assert.InDelta(t, 30, m.ItemMain, epsilon)
	assert.Equal(t, 2, m.MaxIndex())
}

func TestMeasureMinSizeCollapsesLoop(t *testing.T) {
	props := DefaultProps()
	props.MinSize = 10

	_, m := runPass(props, newFakeChildren(4), NewPositions(), Snapshot{}, viewport)

	assert.Equal(t, 10, m.DisplayCount)
	assert.False(t, m.Loop)
}

func TestMeasureItemSizeOverridesChildren(t *testing.T) {
	props, ch := linear(5, 10)
	props.ItemSize = 40
	positions := NewPositions()

	_, m := runPass(props, ch, positions, Snapshot{}, viewport)

	assert.Equal(t, 40.0, m.ItemMain)
	assert.Equal(t, map[int]float64{0: 0, 1: 40, 2: 80}, starts(positions))
}

func TestLayoutCachesBeyondWindow(t *testing.T) {
	props := nonLoop()
	props.CachedCount = 2
	ch := newFakeChildren(10)
	positions := NewPositions()

	res, _ := runPass(props, ch, positions, Snapshot{Offset: 500, Current: 5}, viewport)

	assert.Equal(t, []int{3, 4, 5, 6, 7}, positions.Keys())
	assert.Equal(t, []int{3, 4, 5, 6, 7}, ch.realized())
	assert.Equal(t, 5, res.StartIndex)
	assert.Equal(t, 5, res.EndIndex)
}

func TestLayoutCacheStopsAtEdges(t *testing.T) {
	props := nonLoop()
	props.CachedCount = 3
	positions := NewPositions()

	runPass(props, newFakeChildren(3), positions, Snapshot{}, viewport)

	assert.Equal(t, []int{0, 1, 2}, positions.Keys())
}

func TestLayoutLoopRealizesEachChildOnce(t *testing.T) {
	props, ch := linear(3, 20)
	props.Loop = true
	props.CachedCount = 2
	positions := NewPositions()

	_, m := runPass(props, ch, positions, Snapshot{}, viewport)

	require.True(t, m.Loop)
	assert.Equal(t, []int{0, 1, 2}, positions.Keys())
	assert.Equal(t, []int{0, 1, 2}, ch.realized())
}

func TestLayoutLoopWrapsBackward(t *testing.T) {
	props := DefaultProps()
	ch := newFakeChildren(5)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	runPass(props, ch, positions, Snapshot{Delta: -30}, viewport)

	assert.Equal(t, map[int]float64{-1: -100, 0: 0}, starts(positions))
	assert.Equal(t, []int{0, 4}, ch.realized())
}

func TestLayoutEvictsAndReleases(t *testing.T) {
	props := nonLoop()
	ch := newFakeChildren(10)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	res, _ := runPass(props, ch, positions, Snapshot{Delta: 250}, viewport)

	assert.Equal(t, 250.0, res.Offset)
	assert.Equal(t, []int{2, 3}, positions.Keys())
	assert.Equal(t, []int{2, 3}, ch.realized())
	assert.Equal(t, []int{0, 1}, ch.released)
}

func TestLayoutPinnedSurvivesEviction(t *testing.T) {
	props := nonLoop()
	ch := newFakeChildren(10)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	runPass(props, ch, positions, Snapshot{Delta: 250, Pinned: []int{0}}, viewport)

	assert.Equal(t, []int{0, 2, 3}, positions.Keys())
	assert.Equal(t, []int{1}, ch.released)
}

func TestLayoutNotReadyChildMeasuresZero(t *testing.T) {
	props, ch := linear(10, 30)
	ch.notReady[1] = true
	positions := NewPositions()

	runPass(props, ch, positions, Snapshot{}, viewport)

	one, ok := positions.Get(1)
	require.True(t, ok)
	assert.Zero(t, one.Size())
	assert.Equal(t, map[int]float64{0: 0, 1: 30, 2: 30, 3: 60, 4: 90}, starts(positions))
}

func TestLayoutClampsShortContent(t *testing.T) {
	props, ch := linear(3, 20)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	res, _ := runPass(props, ch, positions, Snapshot{Delta: -30}, viewport)
	assert.Equal(t, 0.0, res.Offset)

	res, _ = runPass(props, ch, positions, Snapshot{Delta: -30, AllowOverscroll: true}, viewport)
	assert.Equal(t, -30.0, res.Offset)
}

func TestLayoutTargetLeavesGap(t *testing.T) {
	props := nonLoop()
	ch := newFakeChildren(10)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	target := 6
	res, _ := runPass(props, ch, positions, Snapshot{
		TargetIndex: &target,
		Pinned:      []int{0, 6},
		Translate:   100,
	}, viewport)

	assert.Equal(t, map[int]float64{0: 0, 6: 100}, starts(positions))
	assert.Equal(t, []int{0, 6}, ch.realized())
	assert.Equal(t, 0, res.StartIndex)
	assert.Equal(t, 6, res.EndIndex)
}

// gapModel returns positions holding 0 and 6 side by side.
func gapModel(t *testing.T, ch *fakeChildren) *Positions {
	t.Helper()
	positions := NewPositions()
	runPass(nonLoop(), ch, positions, Snapshot{}, viewport)
	target := 6
	runPass(nonLoop(), ch, positions, Snapshot{TargetIndex: &target, Pinned: []int{0, 6}, Translate: 100}, viewport)
	require.Equal(t, map[int]float64{0: 0, 6: 100}, starts(positions))
	return positions
}

func TestLayoutTargetInsideGapPushesFarItems(t *testing.T) {
	ch := newFakeChildren(10)
	positions := gapModel(t, ch)

	target := 3
	runPass(nonLoop(), ch, positions, Snapshot{Offset: 30, TargetIndex: &target, Pinned: []int{0, 6, 3}}, viewport)

	assert.Equal(t, map[int]float64{0: 0, 3: 100, 6: 200}, starts(positions))
}

func TestLayoutTargetInsideGapBehindViewport(t *testing.T) {
	ch := newFakeChildren(10)
	positions := gapModel(t, ch)

	target := 3
	runPass(nonLoop(), ch, positions, Snapshot{Offset: 150, TargetIndex: &target, Pinned: []int{0, 6, 3}}, viewport)

	assert.Equal(t, map[int]float64{0: -100, 3: 0, 6: 100, 7: 200}, starts(positions))
}

func TestLayoutTargetBeforeFirst(t *testing.T) {
	props := nonLoop()
	props.Index = 5
	ch := newFakeChildren(10)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{Current: 5}, viewport)

	target := 1
	runPass(props, ch, positions, Snapshot{TargetIndex: &target, Pinned: []int{5, 1}}, viewport)

	assert.Equal(t, map[int]float64{1: -100, 5: 0}, starts(positions))
}

func TestLayoutJumpReleasesOldNodes(t *testing.T) {
	props := nonLoop()
	ch := newFakeChildren(10)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)

	jump := 4
	runPass(props, ch, positions, Snapshot{JumpIndex: &jump, Current: 4}, viewport)

	assert.Equal(t, map[int]float64{4: 0}, starts(positions))
	assert.Equal(t, []int{0}, ch.released)
}

func TestLayoutJumpReusesNodeOfSameChild(t *testing.T) {
	props := DefaultProps()
	ch := newFakeChildren(5)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)
	before, _ := positions.Get(0)

	jump := 5
	runPass(props, ch, positions, Snapshot{JumpIndex: &jump, Current: 5}, viewport)

	after, ok := positions.Get(5)
	require.True(t, ok)
	assert.Equal(t, before.Node, after.Node)
	assert.Empty(t, ch.released)
	assert.Equal(t, []int{0}, ch.realized())
}

func TestLayoutJumpClampsWithoutLoop(t *testing.T) {
	props := nonLoop()
	positions := NewPositions()

	jump := 12
	runPass(props, newFakeChildren(5), positions, Snapshot{JumpIndex: &jump}, viewport)

	assert.Equal(t, []int{4}, positions.Keys())
}

func TestLayoutUnboundedCrossStretches(t *testing.T) {
	props := nonLoop()
	ch := newFakeChildren(5)
	ch.cross = 7

	res, _ := runPass(props, ch, NewPositions(), Snapshot{}, Constraints{Main: 100, Cross: math.Inf(1)})

	assert.True(t, res.StretchCross)
	assert.Equal(t, 7.0, res.CrossSize)
}

func TestLayoutInvalidCrossIsZero(t *testing.T) {
	res, _ := runPass(nonLoop(), newFakeChildren(5), NewPositions(), Snapshot{}, Constraints{Main: 100, Cross: math.NaN()})

	assert.False(t, res.StretchCross)
	assert.Zero(t, res.CrossSize)
}

func TestLayoutWithoutChildrenReleasesEverything(t *testing.T) {
	props := nonLoop()
	props.CachedCount = 1
	ch := newFakeChildren(5)
	positions := NewPositions()
	runPass(props, ch, positions, Snapshot{}, viewport)
	require.Equal(t, 2, positions.Len())

	ch.count = 0
	res, _ := runPass(props, ch, positions, Snapshot{}, viewport)

	assert.Zero(t, positions.Len())
	assert.Empty(t, ch.realized())
	assert.Less(t, res.EndIndex, res.StartIndex)
}

func TestLayoutZeroViewport(t *testing.T) {
	positions := NewPositions()

	res, _ := runPass(nonLoop(), newFakeChildren(5), positions, Snapshot{}, Constraints{})

	assert.Zero(t, positions.Len())
	assert.Equal(t, -1, res.EndIndex)
}

func TestLayoutIsContiguousAndStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sizes := rapid.SliceOfN(rapid.IntRange(1, 60), 1, 20).Draw(t, "sizes")
		props, ch := linear(len(sizes), 0)
		props.CachedCount = rapid.IntRange(0, 2).Draw(t, "cached")
		prefix := make([]float64, len(sizes)+1)
		for i, s := range sizes {
			ch.sizes[i] = float64(s)
			prefix[i+1] = prefix[i] + float64(s)
		}
		total := prefix[len(sizes)]
		limit := max(int(total)-int(viewport.Main), 0)
		offsets := rapid.SliceOfN(rapid.IntRange(0, limit), 1, 8).Draw(t, "offsets")

		positions := NewPositions()
		runPass(props, ch, positions, Snapshot{}, viewport)
		for _, o := range offsets {
			res, _ := runPass(props, ch, positions, Snapshot{Offset: float64(o)}, viewport)

			keys := positions.Keys()
			for n, k := range keys {
				if k < 0 || k >= len(sizes) {
					t.Fatalf("index %d out of range", k)
				}
				if n > 0 && keys[n-1] != k-1 {
					t.Fatalf("keys %v are not contiguous", keys)
				}
				pos, _ := positions.Get(k)
				if pos.StartPos != prefix[k] || pos.EndPos != prefix[k+1] {
					t.Fatalf("item %d at [%v, %v], want [%v, %v]", k, pos.StartPos, pos.EndPos, prefix[k], prefix[k+1])
				}
			}
			first, _ := positions.First()
			last, _ := positions.Last()
			if first.Index != 0 && first.StartPos > res.Offset {
				t.Fatalf("window start %v is not covered by %+v", res.Offset, first)
			}
			if last.Index != len(sizes)-1 && last.EndPos < res.Offset+viewport.Main {
				t.Fatalf("window end %v is not covered by %+v", res.Offset+viewport.Main, last)
			}

			before := positions.Clone()
			again, _ := runPass(props, ch, positions, Snapshot{Offset: res.Offset}, viewport)
			if !positions.Equal(before) || again.Offset != res.Offset {
				t.Fatalf("relayout at %v changed the model: %v -> %v", res.Offset, before.Keys(), positions.Keys())
			}
		}
	})
}
