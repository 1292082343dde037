package pipeline

import (
	"errors"
	"sync"

	"github.com/atikulmunna/prettylog/internal/model"
)

// ErrClosed is returned by Send once the consumer has gone away.
var ErrClosed = errors.New("mailbox closed")

// Mailbox is an unbounded FIFO shared by the producers and the renderer.
// Send never blocks, so a slow renderer never stalls signal delivery.
type Mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []model.Message
	closed bool
}

// NewMailbox returns an empty, open mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Send appends msg.
func (m *Mailbox) Send(msg model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.queue = append(m.queue, msg)
	m.cond.Signal()
	return nil
}

// Receive blocks until a message is available. It returns false once the
// mailbox is closed and drained.
func (m *Mailbox) Receive() (model.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.queue) == 0 && !m.closed {
		m.cond.Wait()
	}
	if len(m.queue) == 0 {
		return model.Message{}, false
	}

	msg := m.queue[0]
	m.queue[0] = model.Message{}
	m.queue = m.queue[1:]
	return msg, true
}

// Close rejects further sends and wakes a blocked Receive.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.cond.Broadcast()
}

// queued returns the number of queued messages.
func (m *Mailbox) queued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
