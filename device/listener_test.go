package device

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go-smf/midi"
)

func collect(t *testing.T, l *Listener, ctx context.Context) ([]midi.Event, error) {
	t.Helper()
	var got []midi.Event
	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx, func(ev midi.Event) { got = append(got, ev) })
	}()
	select {
	case err := <-done:
		return got, err
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return")
		return nil, nil
	}
}

func TestListenerDecodesUntilPipeBreaks(t *testing.T) {
	src := NewQueue()
	src.Push(
		0x90, 60, 100,
		60, 0, // running status
		0xF8, // clock does not disturb running status
		64, 90,
		0xFF, // reset in a live stream
	)
	src.Close()

	l := NewListener(src, WithSettle(0), WithReadTimeout(5*time.Millisecond))
	got, err := collect(t, l, context.Background())
	if !errors.Is(err, midi.ErrPipeBroken) {
		t.Fatalf("err = %v, want ErrPipeBroken", err)
	}
	want := []midi.Event{
		midi.NoteOn{Channel: 0, Note: 60, Velocity: 100},
		midi.NoteOff{Channel: 0, Note: 60},
		midi.MIDIClock{},
		midi.NoteOn{Channel: 0, Note: 64, Velocity: 90},
		midi.Reset{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %#v\nwant %#v", got, want)
	}
	if l.Running() != 0x90 {
		t.Errorf("running = %#x", l.Running())
	}
	if l.Listening() {
		t.Error("still listening")
	}
}

func TestListenerSettleDiscards(t *testing.T) {
	src := NewQueue()
	src.Push(0xC0, 5, 0xB0, 7, 100)
	src.Close()

	l := NewListener(src, WithSettle(time.Hour), WithReadTimeout(5*time.Millisecond))
	got, err := collect(t, l, context.Background())
	if !errors.Is(err, midi.ErrPipeBroken) {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("settle window let through %v", got)
	}
}

func TestListenerKill(t *testing.T) {
	src := NewQueue()
	l := NewListener(src, WithSettle(0), WithReadTimeout(5*time.Millisecond))

	done := make(chan error, 1)
	got := make(chan midi.Event, 1)
	go func() {
		done <- l.Listen(context.Background(), func(ev midi.Event) { got <- ev })
	}()

	src.Push(0xE0, 0x00, 0x40)
	select {
	case ev := <-got:
		if ev != (midi.PitchWheelChange{Channel: 0, Value: 0}) {
			t.Errorf("event = %#v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}

	l.Kill()
	select {
	case err := <-done:
		if !errors.Is(err, midi.ErrKilled) {
			t.Errorf("err = %v, want ErrKilled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Kill not observed")
	}
}

type closingQueue struct {
	*Queue
	closed chan struct{}
}

func (q closingQueue) Close() error {
	close(q.closed)
	q.Queue.Close()
	return nil
}

func TestListenerKillBeforeListen(t *testing.T) {
	src := closingQueue{Queue: NewQueue(), closed: make(chan struct{})}
	src.Push(0x90, 60, 100)
	l := NewListener(src, WithSettle(0), WithReadTimeout(5*time.Millisecond))
	l.Kill()

	got, err := collect(t, l, context.Background())
	if !errors.Is(err, midi.ErrKilled) || len(got) != 0 {
		t.Errorf("got %v, %v, want ErrKilled", got, err)
	}
	if l.Listening() {
		t.Error("still listening after Kill")
	}
	select {
	case <-src.closed:
	default:
		t.Error("source not closed")
	}

	if err := l.Listen(context.Background(), func(midi.Event) {}); err == nil || errors.Is(err, midi.ErrKilled) {
		t.Errorf("second Listen err = %v", err)
	}
}

func TestStreamCloseRightAway(t *testing.T) {
	s := NewStream("keys", NewQueue(), WithReadTimeout(5*time.Millisecond))
	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
	if !errors.Is(s.Err(), midi.ErrKilled) {
		t.Errorf("Err = %v, want ErrKilled", s.Err())
	}
}

func TestListenerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewListener(NewQueue(), WithReadTimeout(5*time.Millisecond))
	_, err := collect(t, l, ctx)
	if !errors.Is(err, midi.ErrKilled) {
		t.Errorf("err = %v, want ErrKilled", err)
	}
}

type failingPoller struct{}

func (failingPoller) PollByte(time.Duration) (byte, bool, error) {
	return 0, false, errors.New("device unplugged")
}

func TestListenerWrapsSourceErrors(t *testing.T) {
	l := NewListener(failingPoller{})
	_, err := collect(t, l, context.Background())
	if !errors.Is(err, midi.ErrPipeBroken) {
		t.Errorf("err = %v, want ErrPipeBroken", err)
	}
}

func TestStream(t *testing.T) {
	src := NewQueue()
	src.Push(0x91, 48, 1, 0xFA)
	src.Close()

	s := NewStream("keys", src, WithSettle(0), WithReadTimeout(5*time.Millisecond))
	var got []midi.Event
	for ev := range s.Events() {
		got = append(got, ev)
	}
	want := []midi.Event{midi.NoteOn{Channel: 1, Note: 48, Velocity: 1}, midi.MIDIStart{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %#v", got)
	}
	<-s.Done()
	if !errors.Is(s.Err(), midi.ErrPipeBroken) {
		t.Errorf("err = %v", s.Err())
	}
	if s.ID() != "keys" {
		t.Errorf("id = %q", s.ID())
	}
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}
