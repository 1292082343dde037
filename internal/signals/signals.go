// Package signals turns OS signal delivery into a small set of identifiers
// and implements the two-stage termination policy: the first termination
// signal asks the pipeline to drain, the second one exits immediately.
package signals

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ID is an abstract signal identifier carried through the pipeline.
type ID int

const (
	Unknown ID = iota
	Hangup
	Interrupt
	Terminate
	Quit
	// Info makes the listener exit without forwarding anything.
	Info
	// EndOfInput is synthesized by the reader once input is exhausted.
	EndOfInput
)

func (id ID) String() string {
	switch id {
	case Hangup:
		return "SIGHUP"
	case Interrupt:
		return "SIGINT"
	case Terminate:
		return "SIGTERM"
	case Quit:
		return "SIGQUIT"
	case Info:
		return "SIGUSR1"
	case EndOfInput:
		return "end-of-input"
	default:
		return fmt.Sprintf("signal(%d)", int(id))
	}
}

// IsTermination reports whether id belongs to the protected termination set.
func (id ID) IsTermination() bool {
	switch id {
	case Hangup, Interrupt, Terminate, Quit:
		return true
	}
	return false
}

// TermSignals is the set of OS signals that request shutdown.
var TermSignals = []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// InfoSignal only stops the listener. It is never forwarded.
var InfoSignal os.Signal = syscall.SIGUSR1

// FromOS maps an OS signal to its identifier.
func FromOS(sig os.Signal) ID {
	switch sig {
	case syscall.SIGHUP:
		return Hangup
	case syscall.SIGINT:
		return Interrupt
	case syscall.SIGTERM:
		return Terminate
	case syscall.SIGQUIT:
		return Quit
	case syscall.SIGUSR1:
		return Info
	}
	return Unknown
}

// Notifier registers channels for signal delivery. OS delivers real
// signals; tests substitute a fake.
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type osNotifier struct{}

func (osNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (osNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// OS returns the Notifier backed by os/signal.
func OS() Notifier { return osNotifier{} }
