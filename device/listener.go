// Package device connects live MIDI sources to the event decoder: raw
// device files, system MIDI ports, and the hot-plug manager around them.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go-smf/debug"
	"go-smf/midi"
)

// Poller is a byte source that can be checked without blocking forever.
// ok is false when nothing arrived within timeout.
type Poller interface {
	PollByte(timeout time.Duration) (b byte, ok bool, err error)
}

const (
	DefaultSettle      = 100 * time.Millisecond
	DefaultReadTimeout = 250 * time.Millisecond
)

// Listener drains a Poller on a background goroutine and decodes what it
// reads. Events completed during the settle window after Listen starts are
// dropped, since devices often replay buffered bytes on open.
type Listener struct {
	src         Poller
	queue       *Queue
	settle      time.Duration
	readTimeout time.Duration

	started   atomic.Bool
	killed    atomic.Bool
	listening atomic.Bool
	mu        sync.Mutex
	cause     error
	running   byte
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithSettle sets the settle window. Zero disables it.
func WithSettle(d time.Duration) ListenerOption {
	return func(l *Listener) { l.settle = d }
}

// WithReadTimeout bounds a single poll of the source, and with it how long
// Kill takes to be noticed.
func WithReadTimeout(d time.Duration) ListenerOption {
	return func(l *Listener) {
		if d > 0 {
			l.readTimeout = d
		}
	}
}

func NewListener(src Poller, opts ...ListenerOption) *Listener {
	l := &Listener{
		src:         src,
		queue:       NewQueue(),
		settle:      DefaultSettle,
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Listening reports whether the producer is still running.
func (l *Listener) Listening() bool {
	return l.listening.Load()
}

// Running returns the running status the decoder held when Listen returned.
func (l *Listener) Running() byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Kill stops the producer. Listen returns midi.ErrKilled once the bytes
// already read have been decoded. A Kill before Listen makes Listen return
// straight away.
func (l *Listener) Kill() {
	l.killed.Store(true)
	l.listening.Store(false)
}

// Listen decodes events and calls fn for each one until Kill, ctx
// cancellation, or a source failure. It returns midi.ErrKilled for the
// first two and an error wrapping midi.ErrPipeBroken for the last.
// A Listener can be used for one Listen call.
func (l *Listener) Listen(ctx context.Context, fn func(midi.Event)) error {
	if !l.started.CompareAndSwap(false, true) {
		return fmt.Errorf("device: listener already used")
	}
	l.listening.Store(true)
	if l.killed.Load() {
		l.listening.Store(false)
	}
	debug.Log("live", "listen start settle=%v timeout=%v", l.settle, l.readTimeout)

	produced := make(chan struct{})
	go l.produce(produced)

	stop := context.AfterFunc(ctx, l.Kill)
	defer stop()

	settled := time.Now().Add(l.settle)
	var dec midi.LiveDecoder
	defer func() {
		l.mu.Lock()
		l.running = dec.Running()
		l.mu.Unlock()
	}()

	for {
		ev, err := dec.Next(l.queue)
		switch {
		case errors.Is(err, midi.ErrKilled):
			<-produced
			if cause := l.err(); cause != nil {
				debug.Log("live", "listen end: %v", cause)
				return cause
			}
			debug.Log("live", "listen end: killed")
			return midi.ErrKilled
		case err != nil:
			debug.Log("live", "skip: %v", err)
			continue
		case ev == nil:
			continue
		}

		if time.Now().Before(settled) {
			debug.Log("live", "settle discard %v", ev.Kind())
			continue
		}
		fn(ev)
	}
}

func (l *Listener) produce(done chan<- struct{}) {
	defer close(done)
	defer l.queue.Close()
	if c, ok := l.src.(io.Closer); ok {
		defer c.Close()
	}

	for l.listening.Load() {
		b, ok, err := l.src.PollByte(l.readTimeout)
		if err != nil {
			if !errors.Is(err, midi.ErrPipeBroken) {
				err = fmt.Errorf("%w: %w", midi.ErrPipeBroken, err)
			}
			l.setErr(err)
			l.listening.Store(false)
			return
		}
		if ok {
			l.queue.Push(b)
		}
	}
}

func (l *Listener) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cause = err
}

func (l *Listener) err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cause
}
