// Package reminder runs the periodic nudge that lists habits still short of
// their weekly target. Ticks only read tracker state; all mutation stays on
// the prompt loop.
package reminder

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultInterval matches the original one-minute reminder cadence.
const DefaultInterval = time.Minute

// Reminder owns a single background goroutine. Ticks are evaluated serially
// inside that goroutine, so at most one evaluation is ever in flight.
type Reminder struct {
	interval time.Duration
	pending  func() []string
	out      io.Writer

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New builds a stopped reminder. pending supplies the habit names to nag
// about; an empty result suppresses the notice for that tick.
func New(interval time.Duration, pending func() []string, out io.Writer) *Reminder {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reminder{
		interval: interval,
		pending:  pending,
		out:      out,
	}
}

// Start launches the ticker goroutine. Starting a running reminder is a
// no-op.
func (r *Reminder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(r.stop, r.done)
}

// Stop cancels the ticker and waits for the goroutine to exit, guaranteeing
// no tick fires after it returns. Safe to call repeatedly and on a reminder
// that never started. Callers stop the reminder before switching profiles so
// a stale user is never nagged.
func (r *Reminder) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the ticker goroutine is live.
func (r *Reminder) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Reminder) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reminder) tick() {
	names := r.pending()
	if len(names) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "REMINDER: don't forget today!")
	for _, name := range names {
		fmt.Fprintf(r.out, "  - %s\n", name)
	}
	fmt.Fprintln(r.out)
}
