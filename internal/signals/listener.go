package signals

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Listener waits for the first termination signal and forwards it.
// It is single-shot: later signals are the Guard's business.
type Listener struct {
	notifier Notifier
	logger   *log.Logger
	ch       chan os.Signal
	done     chan struct{}
	once     sync.Once
}

// NewListener registers for the termination set plus InfoSignal.
// Registration happens here, not in Run, so no signal sent after
// NewListener returns can be missed.
func NewListener(n Notifier, logger *log.Logger) *Listener {
	l := &Listener{
		notifier: n,
		logger:   logger,
		ch:       make(chan os.Signal, len(TermSignals)+1),
		done:     make(chan struct{}),
	}
	n.Notify(l.ch, append(append([]os.Signal{}, TermSignals...), InfoSignal)...)
	return l
}

// Run blocks until a termination signal arrives (which is passed to
// forward), InfoSignal arrives, or Close is called.
func (l *Listener) Run(forward func(ID) error) error {
	defer l.notifier.Stop(l.ch)
	defer l.logger.Debug("signal listener stopped")

	for {
		select {
		case <-l.done:
			return nil
		case sig := <-l.ch:
			id := FromOS(sig)
			l.logger.Debug("received a signal", "signal", id)
			switch {
			case id == Info:
				return nil
			case id.IsTermination():
				return forward(id)
			}
		}
	}
}

// Close releases the listener. Safe to call more than once.
func (l *Listener) Close() {
	l.once.Do(func() { close(l.done) })
}

// Guard is the conditional shutdown flag. The first termination signal
// arms it; any termination signal that arrives while armed calls exit(1).
type Guard struct {
	notifier Notifier
	exit     func(int)
	armed    atomic.Bool
	ch       chan os.Signal
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once

	installed atomic.Bool
}

// NewGuard returns an uninstalled guard. exit is normally os.Exit.
func NewGuard(n Notifier, exit func(int)) *Guard {
	return &Guard{
		notifier: n,
		exit:     exit,
		ch:       make(chan os.Signal, len(TermSignals)),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Install registers the guard. It must run before the Listener is
// created so the first signal is seen by both.
func (g *Guard) Install() {
	if !g.installed.CompareAndSwap(false, true) {
		return
	}
	g.notifier.Notify(g.ch, TermSignals...)
	go g.loop()
}

func (g *Guard) loop() {
	defer close(g.stopped)
	for {
		select {
		case <-g.done:
			return
		case <-g.ch:
			if g.armed.CompareAndSwap(false, true) {
				continue
			}
			g.exit(1)
			return
		}
	}
}

// Stop unregisters the guard and waits for its goroutine.
func (g *Guard) Stop() {
	if !g.installed.Load() {
		return
	}
	g.once.Do(func() {
		g.notifier.Stop(g.ch)
		close(g.done)
	})
	<-g.stopped
}
