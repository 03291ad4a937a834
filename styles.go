package swipeview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme holds the colors new primitives start with.
type Theme struct {
	Background tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	Text       tcell.Color
	Heading    tcell.Color

	// Buttons, including the arrows of a swiper.
	Control         tcell.Color
	ControlText     tcell.Color
	ControlDisabled tcell.Color
}

// Styles is the theme used by the constructors. Change it before creating
// primitives.
var Styles = Theme{
	Background:      color.Black,
	Border:          color.White,
	Title:           color.White,
	Text:            color.White,
	Heading:         color.Yellow,
	Control:         color.Blue,
	ControlText:     color.White,
	ControlDisabled: color.Navy,
}
