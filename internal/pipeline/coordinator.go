// Package pipeline runs the three tasks of a prettylog session: the signal
// listener, the input reader and the renderer. Both producers feed one
// Mailbox; the renderer drains it in order and is the only task that
// decides when to stop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/atikulmunna/prettylog/internal/model"
	"github.com/atikulmunna/prettylog/internal/output"
	"github.com/atikulmunna/prettylog/internal/signals"
	"github.com/atikulmunna/prettylog/internal/tailer"
)

// Config wires a Coordinator. Notifier and Exit default to the OS.
type Config struct {
	Source   tailer.Source
	Renderer output.Renderer
	Notifier signals.Notifier
	Logger   *log.Logger
	Exit     func(int)
}

// Coordinator owns one run of the pipeline.
type Coordinator struct {
	source   tailer.Source
	renderer output.Renderer
	notifier signals.Notifier
	logger   *log.Logger
	exit     func(int)
}

// New returns a Coordinator for cfg.
func New(cfg Config) *Coordinator {
	c := &Coordinator{
		source:   cfg.Source,
		renderer: cfg.Renderer,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		exit:     cfg.Exit,
	}
	if c.notifier == nil {
		c.notifier = signals.OS()
	}
	if c.exit == nil {
		c.exit = os.Exit
	}
	return c
}

// Run processes input until end of input or the first termination signal,
// rendering everything queued before that point. It returns the signal
// that stopped the renderer.
func (c *Coordinator) Run(ctx context.Context) (signals.ID, error) {
	// The guard goes first so the first signal arms it without exiting.
	guard := signals.NewGuard(c.notifier, c.exit)
	guard.Install()
	defer guard.Stop()

	listener := signals.NewListener(c.notifier, c.logger)
	mb := NewMailbox()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := listener.Run(func(id signals.ID) error {
			return mb.Send(model.SignalMessage(id))
		})
		c.checkSend(err)
	}()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		c.read(ctx, mb)
	}()

	var (
		stop      signals.ID
		renderErr error
	)
	go func() {
		defer wg.Done()
		defer listener.Close()
		stop, renderErr = c.render(mb)
	}()

	wg.Wait()
	cancel()
	mb.Close()

	// A stream reader stuck in a blocking read cannot be woken up; it is
	// only joined when it has already finished or honors cancellation.
	if stop == signals.EndOfInput || c.source.Interruptible() {
		<-readerDone
	}
	c.logger.Debug("pipeline stopped", "signal", stop)

	return stop, renderErr
}

func (c *Coordinator) read(ctx context.Context, mb *Mailbox) {
	err := c.source.Lines(ctx, func(line string) error {
		return mb.Send(model.LineMessage(line))
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Error("read error", "err", err)
	}
	if ctx.Err() != nil {
		return
	}
	c.checkSend(mb.Send(model.SignalMessage(signals.EndOfInput)))
	c.logger.Debug("reader stopped")
}

// render is the single consumer. Any signal message ends it.
func (c *Coordinator) render(mb *Mailbox) (signals.ID, error) {
	for {
		msg, ok := mb.Receive()
		if !ok {
			return signals.Unknown, nil
		}
		if msg.IsSignal {
			c.logger.Info("received signal", "signal", msg.Signal)
			return msg.Signal, nil
		}
		if err := c.renderer.Render(msg.Line); err != nil {
			return signals.Unknown, fmt.Errorf("write output: %w", err)
		}
	}
}

// checkSend tolerates ErrClosed: it only happens after the renderer has
// stopped, which is the normal end of a run.
func (c *Coordinator) checkSend(err error) {
	if err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Error("send failed", "err", err)
	}
}
