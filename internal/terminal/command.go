package terminal

// Command is a mutating request sent into the engine loop.
type Command interface{ isCommand() }

// WriteCommand carries bytes destined for the PTY master.
type WriteCommand struct {
	Data []byte
}

// ResizeCommand changes the session geometry.
type ResizeCommand struct {
	Size Size
}

// CloseCommand ends the session.
type CloseCommand struct{}

func (WriteCommand) isCommand()  {}
func (ResizeCommand) isCommand() {}
func (CloseCommand) isCommand()  {}

// Event is a notification broadcast to subscribers.
type Event interface{ isEvent() }

// OutputEvent carries the raw pre-decode bytes of a processed batch.
// By the time a subscriber sees it, the batch has already been applied
// to terminal state.
type OutputEvent struct {
	Data []byte
}

// StateEvent signals that terminal state changed; consumers re-read
// the current snapshot.
type StateEvent struct{}

// ResizeEvent reports the geometry after a resize took effect.
type ResizeEvent struct {
	Size Size
}

// ClosedEvent is published exactly once when the session ends.
type ClosedEvent struct {
	Reason string
}

func (OutputEvent) isEvent() {}
func (StateEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (ClosedEvent) isEvent() {}
