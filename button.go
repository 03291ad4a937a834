package swipeview

import (
	"github.com/gdamore/tcell/v3"
)

// Button is a one-line label that calls a function when clicked or when
// enter is pressed on it. A swiper uses a pair of buttons as its arrows.
type Button struct {
	*Box

	label     string
	disabled  bool
	focusable bool

	style         tcell.Style
	focusedStyle  tcell.Style
	disabledStyle tcell.Style

	selected func()
}

// NewButton returns a button sized to its label.
func NewButton(label string) *Button {
	b := &Button{
		Box:           NewBox(),
		label:         label,
		focusable:     true,
		style:         tcell.StyleDefault.Background(Styles.Control).Foreground(Styles.ControlText),
		focusedStyle:  tcell.StyleDefault.Background(Styles.ControlText).Foreground(Styles.Control),
		disabledStyle: tcell.StyleDefault.Background(Styles.Control).Foreground(Styles.ControlDisabled),
	}
	b.SetRect(0, 0, StringWidth(label)+4, 1)
	return b
}

func (b *Button) GetLabel() string {
	return b.label
}

func (b *Button) SetLabel(label string) *Button {
	if b.label != label {
		b.label = label
		b.MarkDirty()
	}
	return b
}

// SetStyles sets the normal, the focused and the disabled style.
func (b *Button) SetStyles(normal, focused, disabled tcell.Style) *Button {
	b.style, b.focusedStyle, b.disabledStyle = normal, focused, disabled
	b.MarkDirty()
	return b
}

// SetDisabled sets whether the button ignores clicks and keys.
func (b *Button) SetDisabled(disabled bool) *Button {
	if b.disabled != disabled {
		b.disabled = disabled
		b.MarkDirty()
	}
	return b
}

func (b *Button) GetDisabled() bool {
	return b.disabled
}

// SetFocusable sets whether a click focuses the button. The arrows of a
// swiper are not focusable, so keys keep going to the swiper.
func (b *Button) SetFocusable(focusable bool) *Button {
	b.focusable = focusable
	return b
}

func (b *Button) SetSelectedFunc(handler func()) *Button {
	b.selected = handler
	return b
}

func (b *Button) currentStyle() tcell.Style {
	switch {
	case b.disabled:
		return b.disabledStyle
	case b.HasFocus():
		return b.focusedStyle
	}
	return b.style
}

func (b *Button) Draw(screen tcell.Screen) {
	style := b.currentStyle()
	b.SetBackgroundColor(style.GetBackground())
	b.DrawForSubclass(screen, b)

	x, y, width, height := b.GetInnerRect()
	if width > 0 && height > 0 {
		printWithStyle(screen, b.label, x, y+height/2, width, AlignmentCenter, style, true)
	}
}

func (b *Button) activate() Command {
	if b.selected != nil {
		b.selected()
	}
	return RedrawCommand{}
}

// InputHandler selects the button on enter.
func (b *Button) InputHandler(event *tcell.EventKey) Command {
	if b.disabled || event.Key() != tcell.KeyEnter {
		return nil
	}
	return b.activate()
}

// MouseHandler selects the button on a left click. The press before it is
// consumed so that the swiper below does not start a drag.
func (b *Button) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if b.disabled || !b.InRect(event.Position()) {
		return nil, nil
	}
	switch action {
	case MouseLeftDown:
		if b.focusable {
			return nil, SetFocusCommand{Target: b}
		}
		return nil, ConsumeEventCommand{}
	case MouseLeftClick:
		return nil, b.activate()
	}
	return nil, nil
}
