package swipeview

// Glyphs used by the primitives.
const (
	// General Punctuation U+2000-U+206F
	SemigraphicsHorizontalEllipsis = "\u2026" // …

	// Box Drawing U+2500-U+257F
	BoxDrawingsLightHorizontal        = "\u2500" // ─
	BoxDrawingsHeavyHorizontal        = "\u2501" // ━
	BoxDrawingsLightVertical          = "\u2502" // │
	BoxDrawingsHeavyVertical          = "\u2503" // ┃
	BoxDrawingsLightDownAndRight      = "\u250C" // ┌
	BoxDrawingsHeavyDownAndRight      = "\u250F" // ┏
	BoxDrawingsLightDownAndLeft       = "\u2510" // ┐
	BoxDrawingsHeavyDownAndLeft       = "\u2513" // ┓
	BoxDrawingsLightUpAndRight        = "\u2514" // └
	BoxDrawingsHeavyUpAndRight        = "\u2517" // ┗
	BoxDrawingsLightUpAndLeft         = "\u2518" // ┘
	BoxDrawingsHeavyUpAndLeft         = "\u251B" // ┛

	BoxDrawingsDoubleHorizontal        = "\u2550" // ═
	BoxDrawingsDoubleVertical          = "\u2551" // ║
	BoxDrawingsDoubleDownAndRight      = "\u2554" // ╔
	BoxDrawingsDoubleDownAndLeft       = "\u2557" // ╗
	BoxDrawingsDoubleUpAndRight        = "\u255A" // ╚
	BoxDrawingsDoubleUpAndLeft         = "\u255D" // ╝
	BoxDrawingsLightArcDownAndRight    = "\u256D" // ╭
	BoxDrawingsLightArcDownAndLeft     = "\u256E" // ╮
	BoxDrawingsLightArcUpAndLeft       = "\u256F" // ╯
	BoxDrawingsLightArcUpAndRight      = "\u2570" // ╰

	// Geometric Shapes U+25A0-U+25FF
	GeometricBlackUpPointingTriangle    = "\u25B2" // ▲
	GeometricBlackRightPointingTriangle = "\u25B6" // ▶
	GeometricBlackDownPointingTriangle  = "\u25BC" // ▼
	GeometricBlackLeftPointingTriangle  = "\u25C0" // ◀
	GeometricWhiteCircle                = "\u25CB" // ○
	GeometricBlackCircle                = "\u25CF" // ●
)
