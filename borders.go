package swipeview

// Borders is a set of box edges.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether any of the edges in flag are set.
func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}

// BorderSet holds the glyphs of a box border.
type BorderSet struct {
	Top, Bottom, Left, Right string

	TopLeft, TopRight, BottomLeft, BottomRight string
}

func newBorderSet(horizontal, vertical, topLeft, topRight, bottomLeft, bottomRight string) BorderSet {
	return BorderSet{
		Top: horizontal, Bottom: horizontal,
		Left: vertical, Right: vertical,
		TopLeft: topLeft, TopRight: topRight,
		BottomLeft: bottomLeft, BottomRight: bottomRight,
	}
}

func BorderSetPlain() BorderSet {
	return newBorderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
		BoxDrawingsLightDownAndRight, BoxDrawingsLightDownAndLeft,
		BoxDrawingsLightUpAndRight, BoxDrawingsLightUpAndLeft)
}

var borderSets = map[string]func() BorderSet{
	"":      BorderSetPlain,
	"plain": BorderSetPlain,
	"hidden": func() BorderSet {
		return newBorderSet(" ", " ", " ", " ", " ", " ")
	},
	"round": func() BorderSet {
		return newBorderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
			BoxDrawingsLightArcDownAndRight, BoxDrawingsLightArcDownAndLeft,
			BoxDrawingsLightArcUpAndRight, BoxDrawingsLightArcUpAndLeft)
	},
	"thick": func() BorderSet {
		return newBorderSet(BoxDrawingsHeavyHorizontal, BoxDrawingsHeavyVertical,
			BoxDrawingsHeavyDownAndRight, BoxDrawingsHeavyDownAndLeft,
			BoxDrawingsHeavyUpAndRight, BoxDrawingsHeavyUpAndLeft)
	},
	"double": func() BorderSet {
		return newBorderSet(BoxDrawingsDoubleHorizontal, BoxDrawingsDoubleVertical,
			BoxDrawingsDoubleDownAndRight, BoxDrawingsDoubleDownAndLeft,
			BoxDrawingsDoubleUpAndRight, BoxDrawingsDoubleUpAndLeft)
	},
}

// BorderSetByName returns the border set called "hidden", "plain", "round",
// "thick" or "double". An empty name is "plain".
func BorderSetByName(name string) (BorderSet, bool) {
	set, ok := borderSets[name]
	if !ok {
		return BorderSet{}, false
	}
	return set(), true
}
