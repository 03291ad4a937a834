// Package layers stacks primitives on top of each other. Layers can be docked
// to an edge of the container, fill the remaining area, or keep their own
// rectangle. An overlay layer shades everything behind it and blocks their
// mouse input.
package layers

import (
	"slices"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/swipeview"
)

// Edge is a side of the container a layer can be docked to.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

type layer struct {
	name string
	item swipeview.Primitive

	visible bool
	// Disabled layers are drawn but get neither focus nor input.
	enabled bool
	overlay bool
	// resize makes the layer fill the area left by the docked layers.
	resize bool

	dock Edge
	// size is the height of a top or bottom dock and the width of a left or
	// right one.
	size int
}

// Layers draws its layers from back to front. Docked layers are carved out of
// the inner rectangle in the order they were added.
type Layers struct {
	*swipeview.Box

	// Back to front.
	layers []*layer

	// shade is applied to the layers behind the front overlay.
	shade tcell.Style

	setFocus func(p swipeview.Primitive)
	changed  func()
}

// visibilityTracker is implemented by items that react to being shown or
// hidden, such as a swiper pausing its autoplay.
type visibilityTracker interface {
	SetVisible(visible bool)
}

// notifyVisible tells the item of ly whether it is shown.
func (ly *layer) notifyVisible(visible bool) {
	if t, ok := ly.item.(visibilityTracker); ok {
		t.SetVisible(visible)
	}
}

// Option configures a layer in AddLayer.
type Option func(*layer)

// WithName names the layer. Adding a layer removes any other one of the same
// name.
func WithName(name string) Option {
	return func(l *layer) { l.name = name }
}

// WithResize makes the layer fill the area the docked layers leave.
func WithResize(resize bool) Option {
	return func(l *layer) { l.resize = resize }
}

// WithDock docks the layer to edge with the given height or width.
func WithDock(edge Edge, size int) Option {
	return func(l *layer) {
		l.dock = edge
		l.size = max(size, 0)
	}
}

// WithVisible sets whether the layer starts visible.
func WithVisible(visible bool) Option {
	return func(l *layer) { l.visible = visible }
}

// WithEnabled sets whether the layer gets focus and input.
func WithEnabled(enabled bool) Option {
	return func(l *layer) { l.enabled = enabled }
}

// WithOverlay makes the layer an overlay.
func WithOverlay() Option {
	return func(l *layer) { l.overlay = true }
}

// New returns an empty Layers.
func New() *Layers {
	return &Layers{Box: swipeview.NewBox()}
}

// SetChangedFunc sets a function called whenever the visible stack changes.
func (l *Layers) SetChangedFunc(handler func()) *Layers {
	l.changed = handler
	return l
}

// SetBackgroundLayerStyle sets the shade applied behind the front overlay.
// Colors are only applied when set, attributes are added.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.shade != style {
		l.shade = style
		l.update(true)
	}
	return l
}

func (l *Layers) find(name string) (int, *layer) {
	for i, ly := range l.layers {
		if ly.name == name {
			return i, ly
		}
	}
	return -1, nil
}

// update is called after every change of the stack. It redraws, notifies and
// moves the focus to the new front layer if the stack had it.
func (l *Layers) update(notify bool) {
	l.MarkDirty()
	if notify && l.changed != nil {
		l.changed()
	}
	if l.HasFocus() {
		l.Focus(l.setFocus)
	}
}

// AddLayer puts item in front of all other layers.
func (l *Layers) AddLayer(item swipeview.Primitive, opts ...Option) *Layers {
	added := &layer{item: item, visible: true, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(added)
		}
	}
	hadFocus := l.HasFocus()
	if added.name != "" {
		if i, old := l.find(added.name); i >= 0 {
			l.layers = slices.Delete(l.layers, i, i+1)
			if old.item != added.item {
				old.notifyVisible(false)
			}
		}
	}
	l.layers = append(l.layers, added)
	added.notifyVisible(added.visible)
	l.MarkDirty()
	if l.changed != nil {
		l.changed()
	}
	if hadFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// RemoveLayer removes the named layer.
func (l *Layers) RemoveLayer(name string) *Layers {
	i, ly := l.find(name)
	if ly == nil {
		return l
	}
	hadFocus := l.HasFocus()
	l.layers = slices.Delete(l.layers, i, i+1)
	ly.notifyVisible(false)
	l.MarkDirty()
	if ly.visible && l.changed != nil {
		l.changed()
	}
	if hadFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// HasLayer reports whether a layer is named name.
func (l *Layers) HasLayer(name string) bool {
	_, ly := l.find(name)
	return ly != nil
}

// GetLayer returns the primitive of the named layer, or nil.
func (l *Layers) GetLayer(name string) swipeview.Primitive {
	if _, ly := l.find(name); ly != nil {
		return ly.item
	}
	return nil
}

// GetLayerCount returns the number of layers.
func (l *Layers) GetLayerCount() int {
	return len(l.layers)
}

// GetLayerNames returns the layer names from front to back.
func (l *Layers) GetLayerNames(visibleOnly bool) []string {
	var names []string
	for _, ly := range slices.Backward(l.layers) {
		if ly.visible || !visibleOnly {
			names = append(names, ly.name)
		}
	}
	return names
}

// GetFrontLayer returns the front-most visible layer, or ("", nil).
func (l *Layers) GetFrontLayer() (string, swipeview.Primitive) {
	if ly := l.front(func(ly *layer) bool { return ly.visible }); ly != nil {
		return ly.name, ly.item
	}
	return "", nil
}

// ShowLayer makes the named layer visible.
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer hides the named layer.
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

// GetVisible reports whether the named layer is visible.
func (l *Layers) GetVisible(name string) bool {
	_, ly := l.find(name)
	return ly != nil && ly.visible
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	if _, ly := l.find(name); ly != nil && ly.visible != visible {
		ly.visible = visible
		ly.notifyVisible(visible)
		l.update(true)
	}
	return l
}

// SendToFront moves the named layer in front of all others.
func (l *Layers) SendToFront(name string) *Layers {
	i, ly := l.find(name)
	if ly == nil {
		return l
	}
	l.layers = append(slices.Delete(l.layers, i, i+1), ly)
	l.update(ly.visible)
	return l
}

// SendToBack moves the named layer behind all others.
func (l *Layers) SendToBack(name string) *Layers {
	i, ly := l.find(name)
	if ly == nil {
		return l
	}
	l.layers = slices.Insert(slices.Delete(l.layers, i, i+1), 0, ly)
	l.update(ly.visible)
	return l
}

// SetLayerEnabled enables or disables the named layer. A disabled layer loses
// the focus.
func (l *Layers) SetLayerEnabled(name string, enabled bool) *Layers {
	_, ly := l.find(name)
	if ly == nil || ly.enabled == enabled {
		return l
	}
	hadFocus := l.HasFocus()
	if !enabled && ly.item.HasFocus() {
		ly.item.Blur()
	}
	ly.enabled = enabled
	l.MarkDirty()
	if ly.visible && l.changed != nil {
		l.changed()
	}
	if hadFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// GetLayerEnabled reports whether the named layer is enabled.
func (l *Layers) GetLayerEnabled(name string) bool {
	_, ly := l.find(name)
	return ly != nil && ly.enabled
}

// SetDockSize changes the size of a docked layer.
func (l *Layers) SetDockSize(name string, size int) *Layers {
	size = max(size, 0)
	if _, ly := l.find(name); ly != nil && ly.dock != EdgeNone && ly.size != size {
		ly.size = size
		l.MarkDirty()
	}
	return l
}

// front returns the front-most layer matching keep.
func (l *Layers) front(keep func(*layer) bool) *layer {
	for _, ly := range slices.Backward(l.layers) {
		if keep(ly) {
			return ly
		}
	}
	return nil
}

func (ly *layer) active() bool {
	return ly.visible && ly.enabled
}

// overlayIndex returns the index of the front active overlay, or -1.
func (l *Layers) overlayIndex() int {
	for i, ly := range slices.Backward(l.layers) {
		if ly.active() && ly.overlay {
			return i
		}
	}
	return -1
}

// HasFocus reports whether an enabled layer or the container has the focus.
func (l *Layers) HasFocus() bool {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus hands the focus to the front active layer.
func (l *Layers) Focus(delegate func(p swipeview.Primitive)) {
	if delegate == nil {
		return
	}
	l.setFocus = delegate
	if ly := l.front((*layer).active); ly != nil {
		delegate(ly.item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw arranges and draws the visible layers.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	l.arrange()

	overlay := l.overlayIndex()
	shaded := &shadeScreen{Screen: screen, shade: l.shade}
	for i, ly := range l.layers {
		if !ly.visible {
			continue
		}
		if i < overlay {
			ly.item.Draw(shaded)
		} else {
			ly.item.Draw(screen)
		}
	}
}

// arrange sets the rectangles of docked and resized layers.
func (l *Layers) arrange() {
	x, y, width, height := l.GetInnerRect()
	for _, ly := range l.layers {
		if !ly.visible {
			continue
		}
		switch ly.dock {
		case EdgeTop:
			size := min(ly.size, height)
			ly.item.SetRect(x, y, width, size)
			y += size
			height -= size
		case EdgeBottom:
			size := min(ly.size, height)
			height -= size
			ly.item.SetRect(x, y+height, width, size)
		case EdgeLeft:
			size := min(ly.size, width)
			ly.item.SetRect(x, y, size, height)
			x += size
			width -= size
		case EdgeRight:
			size := min(ly.size, width)
			width -= size
			ly.item.SetRect(x+width, y, size, height)
		}
	}
	for _, ly := range l.layers {
		if ly.visible && ly.dock == EdgeNone && ly.resize {
			ly.item.SetRect(x, y, width, height)
		}
	}
}

// MouseHandler offers the event to the active layers from front to back. The
// layers behind an overlay never see it.
func (l *Layers) MouseHandler(action swipeview.MouseAction, event *tcell.EventMouse) (swipeview.Primitive, swipeview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	overlay := l.overlayIndex()
	for i := len(l.layers) - 1; i >= max(overlay, 0); i-- {
		ly := l.layers[i]
		if !ly.active() {
			continue
		}
		if capture, cmd := ly.item.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	if overlay >= 0 {
		return nil, swipeview.ConsumeEventCommand{}
	}
	return nil, nil
}

func (l *Layers) focused() *layer {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return ly
		}
	}
	return nil
}

// InputHandler passes key events to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) swipeview.Command {
	if ly := l.focused(); ly != nil {
		return ly.item.InputHandler(event)
	}
	return nil
}

// PasteHandler passes pasted text to the focused layer.
func (l *Layers) PasteHandler(text string) swipeview.Command {
	if ly := l.focused(); ly != nil {
		return ly.item.PasteHandler(text)
	}
	return nil
}

// shadeScreen applies a shade to everything drawn through it.
type shadeScreen struct {
	tcell.Screen
	shade tcell.Style
}

func (s *shadeScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, shadeStyle(style, s.shade))
}

func (s *shadeScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, shadeStyle(style, s.shade))
}

func (s *shadeScreen) PutStr(x, y int, str string) {
	s.Screen.PutStrStyled(x, y, str, shadeStyle(tcell.StyleDefault, s.shade))
}

func (s *shadeScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, shadeStyle(style, s.shade))
}

var shadeAttributes = []struct {
	has func(tcell.Style) bool
	set func(tcell.Style, bool) tcell.Style
}{
	{tcell.Style.HasBold, tcell.Style.Bold},
	{tcell.Style.HasBlink, tcell.Style.Blink},
	{tcell.Style.HasDim, tcell.Style.Dim},
	{tcell.Style.HasItalic, tcell.Style.Italic},
	{tcell.Style.HasReverse, tcell.Style.Reverse},
	{tcell.Style.HasStrikeThrough, tcell.Style.StrikeThrough},
}

func shadeStyle(base, shade tcell.Style) tcell.Style {
	if fg := shade.GetForeground(); fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg := shade.GetBackground(); bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	for _, attr := range shadeAttributes {
		if attr.has(shade) {
			base = attr.set(base, true)
		}
	}
	if shade.HasUnderline() {
		base = base.Underline(true)
	}
	return base
}
