package widget

import "time"

// MessageKind identifies a toolkit message.
type MessageKind uint8

// Message kinds.
const (
	// MsgClick is posted when a button is clicked.
	MsgClick MessageKind = iota + 1

	// MsgChanged is posted when a text field's contents change.
	MsgChanged

	// MsgSubmit is posted when Enter is pressed in a text field.
	MsgSubmit

	// MsgWheel is posted to the widget under the pointer on wheel input.
	MsgWheel

	// MsgAnimationDone is posted when an animation finishes.
	MsgAnimationDone
)

var messageKindNames = [...]string{
	MsgClick:         "click",
	MsgChanged:       "changed",
	MsgSubmit:        "submit",
	MsgWheel:         "wheel",
	MsgAnimationDone: "animation-done",
}

func (k MessageKind) String() string {
	if int(k) < len(messageKindNames) && messageKindNames[k] != "" {
		return messageKindNames[k]
	}
	return "unknown"
}

// Message is a deferred notification about a widget.
type Message struct {
	Kind   MessageKind
	Target uint64 // widget id
	Text   string
	DX, DY int
}

// Handler receives dispatched messages.
type Handler func(Message)

type messages struct {
	queue    []Message
	handlers map[MessageKind][]Handler
}

// Post queues msg for the next ProcessMessages.
func (t *Toolkit) Post(msg Message) {
	t.queue = append(t.queue, msg)
}

// Handle registers h for messages of kind. Handlers run in registration
// order.
func (t *Toolkit) Handle(kind MessageKind, h Handler) {
	if t.handlers == nil {
		t.handlers = make(map[MessageKind][]Handler)
	}
	t.handlers[kind] = append(t.handlers[kind], h)
}

// Pending returns the number of queued messages.
func (t *Toolkit) Pending() int { return len(t.queue) }

// ProcessMessages implements uibatch.MessagePump. It dispatches the
// messages queued so far; messages posted by handlers wait for the next
// call. dt is banked for the next AdvanceAnimations.
func (t *Toolkit) ProcessMessages(dt time.Duration) {
	t.dt += dt
	batch := t.queue
	t.queue = nil
	for _, msg := range batch {
		t.dispatch(msg)
	}
}

func (t *Toolkit) dispatch(msg Message) {
	target := t.nodes[msg.Target]
	if msg.Kind == MsgClick {
		if b, ok := target.(*Button); ok && b.OnClick != nil {
			b.OnClick()
		}
	}
	for _, h := range t.handlers[msg.Kind] {
		h(msg)
	}
	t.log.Debug("widget: message", "kind", msg.Kind.String(), "target", msg.Target)
}
