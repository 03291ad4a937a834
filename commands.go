package swipeview

// Command is a side effect requested by a primitive's event handler. The
// application executes it once the handler returned.
type Command any

// BatchCommand groups multiple commands into a single command.
type BatchCommand []Command

// AppendCommand merges next into current. Nested batches are flattened and
// nil commands are dropped.
func AppendCommand(current Command, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	var batch BatchCommand
	for _, c := range []Command{current, next} {
		if b, ok := c.(BatchCommand); ok {
			batch = append(batch, b...)
		} else {
			batch = append(batch, c)
		}
	}
	return batch
}

// SetFocusCommand moves the keyboard focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand requests a redraw at the end of the current event.
type RedrawCommand struct{}

// QuitCommand requests stopping the application event loop.
type QuitCommand struct{}

// ConsumeEventCommand stops further propagation of the current input event.
type ConsumeEventCommand struct{}
