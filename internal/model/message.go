package model

import "github.com/atikulmunna/prettylog/internal/signals"

// Message is what the reader and the signal listener hand to the renderer.
// Exactly one of Line or Signal is meaningful, selected by IsSignal.
type Message struct {
	Line     string
	Signal   signals.ID
	IsSignal bool
}

// LineMessage wraps one raw input line.
func LineMessage(text string) Message {
	return Message{Line: text}
}

// SignalMessage wraps a real or synthetic signal.
func SignalMessage(id signals.ID) Message {
	return Message{Signal: id, IsSignal: true}
}
