// Package signalstest provides an in-process signals.Notifier for tests.
package signalstest

import (
	"os"
	"sync"
)

// Notifier delivers signals raised with Send to every channel registered
// for them, in registration order, the way os/signal does.
type Notifier struct {
	mu   sync.Mutex
	subs []subscription
}

type subscription struct {
	ch   chan<- os.Signal
	sigs map[os.Signal]bool
}

func (n *Notifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	n.mu.Lock()
	defer n.mu.Unlock()

	set := make(map[os.Signal]bool, len(sig))
	for _, s := range sig {
		set[s] = true
	}
	n.subs = append(n.subs, subscription{ch: c, sigs: set})
}

func (n *Notifier) Stop(c chan<- os.Signal) {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.subs[:0]
	for _, s := range n.subs {
		if s.ch != c {
			kept = append(kept, s)
		}
	}
	n.subs = kept
}

// Send raises sig. Like os/signal it never blocks: a full channel misses it.
func (n *Notifier) Send(sig os.Signal) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, s := range n.subs {
		if !s.sigs[sig] {
			continue
		}
		select {
		case s.ch <- sig:
		default:
		}
	}
}

// Registered returns how many channels are currently registered.
func (n *Notifier) Registered() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
