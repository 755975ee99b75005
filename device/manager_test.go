package device

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"go-smf/midi"
)

type fakeInput struct {
	id     string
	events chan midi.Event
	done   chan struct{}
	once   sync.Once
	closed bool
}

func newFakeInput(id string) *fakeInput {
	return &fakeInput{id: id, events: make(chan midi.Event, 8), done: make(chan struct{})}
}

func (f *fakeInput) ID() string                { return f.id }
func (f *fakeInput) Events() <-chan midi.Event { return f.events }
func (f *fakeInput) Done() <-chan struct{}     { return f.done }
func (f *fakeInput) Close() error {
	f.closed = true
	f.stop()
	return nil
}

// stop ends the input the way a failed source does.
func (f *fakeInput) stop() {
	f.once.Do(func() {
		close(f.events)
		close(f.done)
	})
}

type fakePorts struct {
	mu     sync.Mutex
	names  []string
	opened map[string]*fakeInput
}

func (p *fakePorts) set(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names = names
}

func (p *fakePorts) list() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.names...)
}

func (p *fakePorts) open(name string) (Input, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name == "broken" {
		return nil, errors.New("busy")
	}
	in := newFakeInput(name)
	p.opened[name] = in
	return in, nil
}

func newTestManager(opts ...ManagerOption) (*Manager, *fakePorts) {
	ports := &fakePorts{opened: make(map[string]*fakeInput)}
	m := NewManager(opts...)
	m.list = ports.list
	m.open = ports.open
	return m, ports
}

func TestManagerScan(t *testing.T) {
	m, ports := newTestManager(WithPorts("launchpad", "keys", "broken"))
	ports.set("Launchpad X MIDI", "Keys", "Through Port-0", "broken")

	m.scan()
	if got := m.Inputs(); !reflect.DeepEqual(got, []string{"Keys", "Launchpad X MIDI"}) {
		t.Fatalf("inputs = %v", got)
	}
	for i := 0; i < 2; i++ {
		ev := <-m.Events()
		if ev.Type != DeviceConnected || ev.Input == nil {
			t.Errorf("event %d = %+v", i, ev)
		}
	}

	// a second scan with the same ports changes nothing
	m.scan()
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected %+v", ev)
	default:
	}

	ports.set("Keys")
	m.scan()
	ev := <-m.Events()
	if ev.Type != DeviceDisconnected || ev.ID != "Launchpad X MIDI" {
		t.Errorf("event = %+v", ev)
	}
	if !ports.opened["Launchpad X MIDI"].closed {
		t.Error("disconnected input not closed")
	}
	if got := m.Inputs(); !reflect.DeepEqual(got, []string{"Keys"}) {
		t.Errorf("inputs = %v", got)
	}
}

func TestManagerReopensStoppedInput(t *testing.T) {
	m, ports := newTestManager()
	ports.set("Keys")
	m.scan()
	if ev := <-m.Events(); ev.Type != DeviceConnected {
		t.Fatalf("event = %+v", ev)
	}
	first := ports.opened["Keys"]
	first.stop()

	m.scan()
	if ev := <-m.Events(); ev.Type != DeviceDisconnected || ev.ID != "Keys" {
		t.Errorf("event = %+v, want Keys disconnected", ev)
	}
	if ev := <-m.Events(); ev.Type != DeviceConnected || ev.ID != "Keys" {
		t.Errorf("event = %+v, want Keys connected", ev)
	}
	if ports.opened["Keys"] == first {
		t.Error("stopped input was not reopened")
	}
	if !first.closed {
		t.Error("stopped input not closed")
	}
	if got := m.Inputs(); !reflect.DeepEqual(got, []string{"Keys"}) {
		t.Errorf("inputs = %v", got)
	}
}

func TestManagerRunForwardsMessages(t *testing.T) {
	m, ports := newTestManager(WithPollRate(time.Hour))
	ports.set("Keys")

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(stopped)
	}()

	ev := <-m.Events()
	if ev.ID != "Keys" {
		t.Fatalf("event = %+v", ev)
	}
	ports.opened["Keys"].events <- midi.NoteOn{Note: 60, Velocity: 1}

	select {
	case msg := <-m.Messages():
		if msg.Port != "Keys" || msg.Event != (midi.NoteOn{Note: 60, Velocity: 1}) {
			t.Errorf("message = %+v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if _, ok := <-m.Messages(); ok {
		t.Error("messages not closed")
	}
	if !ports.opened["Keys"].closed {
		t.Error("input not closed on shutdown")
	}
}

func TestDeviceEventTypeString(t *testing.T) {
	if DeviceConnected.String() != "connected" || DeviceDisconnected.String() != "disconnected" {
		t.Error(DeviceConnected, DeviceDisconnected)
	}
}
