package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// bufferChangedMsg tells the model to rebuild the table from the buffer.
// Events are coalesced: many appends may collapse into one message.
type bufferChangedMsg struct{}

// clearStatusMsg expires a transient status message.
type clearStatusMsg struct {
	msg string
}

// notifier adapts logring.Observer callbacks, which arrive on the producer
// goroutine, into Bubble Tea messages. A one-slot channel coalesces bursts
// so a fast producer cannot flood the program queue.
type notifier struct {
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{}, 1)}
}

func (n *notifier) RecordAppended(int) { n.poke() }
func (n *notifier) RangeChanged()      { n.poke() }
func (n *notifier) BufferReset()       { n.poke() }

func (n *notifier) poke() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// forward relays coalesced change signals into the program until ctx ends.
func (n *notifier) forward(ctx context.Context, p *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.ch:
			p.Send(bufferChangedMsg{})
		}
	}
}
