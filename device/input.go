package device

import (
	"context"
	"sync"

	"go-smf/debug"
	"go-smf/midi"
)

// Input is a live source of decoded events.
type Input interface {
	ID() string
	Events() <-chan midi.Event
	// Done is closed once the input has stopped, whether by Close or
	// because its source failed.
	Done() <-chan struct{}
	Close() error
}

// Stream runs a Listener in the background and delivers its events on a
// channel. Events are dropped when the channel is full.
type Stream struct {
	id     string
	l      *Listener
	events chan midi.Event
	done   chan struct{}

	once sync.Once
	err  error
}

func NewStream(id string, src Poller, opts ...ListenerOption) *Stream {
	s := &Stream{
		id:     id,
		l:      NewListener(src, opts...),
		events: make(chan midi.Event, 256),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	defer close(s.done)
	defer close(s.events)
	s.err = s.l.Listen(context.Background(), func(ev midi.Event) {
		select {
		case s.events <- ev:
		default:
			debug.LogEvery(100, "live", "%s: dropping events", s.id)
		}
	})
	debug.Log("live", "%s stopped: %v", s.id, s.err)
}

func (s *Stream) ID() string { return s.id }

// Events is closed when the stream stops.
func (s *Stream) Events() <-chan midi.Event { return s.events }

// Done is closed when the stream stops.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Err returns why the stream stopped, or nil while it is running.
func (s *Stream) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Close stops the listener and waits for it to finish.
func (s *Stream) Close() error {
	s.once.Do(s.l.Kill)
	<-s.done
	return nil
}
