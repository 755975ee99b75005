package smf

import (
	"errors"
	"testing"

	"go-smf/midi"
)

func TestInsertEvent(t *testing.T) {
	d := New()
	id1, err := d.InsertEvent(0, 0, midi.NoteOn{Note: 64, Velocity: 100})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := d.InsertEvent(0, 119, midi.NoteOff{Note: 64})
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", id1, id2)
	}
	if got := d.TrackLength(0); got != 120 {
		t.Errorf("TrackLength = %d, want 120", got)
	}
	if d.CountTracks() != 1 || d.CountEvents() != 2 {
		t.Errorf("tracks = %d, events = %d", d.CountTracks(), d.CountEvents())
	}
}

func TestPushEvent(t *testing.T) {
	d := New()
	id1, _ := d.PushEvent(0, 0, midi.NoteOn{Note: 64, Velocity: 100})
	id2, _ := d.PushEvent(0, 119, midi.NoteOff{Note: 64})
	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", id1, id2)
	}
	if got := d.TrackLength(0); got != 120 {
		t.Errorf("TrackLength = %d, want 120", got)
	}
	pos, _ := d.EventPosition(id2)
	if pos != (Position{Track: 0, Tick: 119}) {
		t.Errorf("position = %+v", pos)
	}

	// pushing onto an empty track starts at tick 0
	id3, _ := d.PushEvent(3, 5, midi.ProgramChange{Program: 1})
	if pos, _ := d.EventPosition(id3); pos.Tick != 5 {
		t.Errorf("empty track push tick = %d, want 5", pos.Tick)
	}
}

func TestDefaults(t *testing.T) {
	d := New()
	if d.PPQN() != 120 || d.Format() != 1 {
		t.Errorf("ppqn = %d, format = %d", d.PPQN(), d.Format())
	}
	if d.CountTracks() != 0 || d.TrackLength(0) != 0 {
		t.Error("new document is not empty")
	}
	if _, ok := d.Event(0); ok {
		t.Error("id 0 must never resolve")
	}
	d.SetPPQN(480)
	d.SetFormat(0)
	if d.PPQN() != 480 || d.Format() != 0 {
		t.Errorf("ppqn = %d, format = %d", d.PPQN(), d.Format())
	}
}

func TestMoveEvent(t *testing.T) {
	d := New()
	ev := midi.NoteOn{Channel: 1, Note: 60, Velocity: 90}
	id, _ := d.InsertEvent(0, 10, ev)
	if err := d.MoveEvent(id, 2, 40); err != nil {
		t.Fatal(err)
	}
	if pos, _ := d.EventPosition(id); pos != (Position{Track: 2, Tick: 40}) {
		t.Errorf("position = %+v", pos)
	}
	if got, _ := d.Event(id); got != ev {
		t.Errorf("move changed content: %#v", got)
	}
	if err := d.MoveEvent(id, 2, 40); err != nil {
		t.Errorf("repeat move: %v", err)
	}
	if err := d.MoveEvent(99, 0, 0); !errors.Is(err, midi.ErrEventNotFound) {
		t.Errorf("unknown id err = %v", err)
	}
	if err := d.MoveEvent(id, 16, 0); !errors.Is(err, midi.ErrTrackOutOfBounds) {
		t.Errorf("out of bounds err = %v", err)
	}
}

func TestReplaceEvent(t *testing.T) {
	d := New()
	id, _ := d.InsertEvent(1, 30, midi.Text("old"))
	if err := d.ReplaceEvent(id, midi.Marker("new")); err != nil {
		t.Fatal(err)
	}
	if got, _ := d.Event(id); got != midi.Marker("new") {
		t.Errorf("content = %#v", got)
	}
	if pos, _ := d.EventPosition(id); pos != (Position{Track: 1, Tick: 30}) {
		t.Errorf("replace moved the event: %+v", pos)
	}

	err := d.ReplaceEvent(42, midi.Text("x"))
	if !errors.Is(err, midi.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
	if d.CountEvents() != 1 {
		t.Errorf("failed replace changed state: %d events", d.CountEvents())
	}
}

func TestRemoveEvent(t *testing.T) {
	d := New()
	id, _ := d.InsertEvent(0, 0, midi.MIDIStart{})
	if err := d.RemoveEvent(id); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.EventPosition(id); ok {
		t.Error("removed event still placed")
	}
	if err := d.RemoveEvent(id); !errors.Is(err, midi.ErrEventNotFound) {
		t.Errorf("err = %v", err)
	}
	next, _ := d.InsertEvent(0, 0, midi.MIDIStop{})
	if next == id {
		t.Error("id reused after remove")
	}
}

func TestTrackBounds(t *testing.T) {
	d := New()
	if _, err := d.InsertEvent(15, 0, midi.MIDIClock{}); err != nil {
		t.Errorf("track 15: %v", err)
	}
	for _, track := range []int{16, -1} {
		if _, err := d.InsertEvent(track, 0, midi.MIDIClock{}); !errors.Is(err, midi.ErrTrackOutOfBounds) {
			t.Errorf("track %d err = %v", track, err)
		}
	}

	unbounded := New(WithMaxTracks(0))
	if _, err := unbounded.InsertEvent(100, 0, midi.MIDIClock{}); err != nil {
		t.Errorf("unbounded: %v", err)
	}
	if unbounded.CountTracks() != 101 {
		t.Errorf("CountTracks = %d, want 101", unbounded.CountTracks())
	}
}

func TestNilEvent(t *testing.T) {
	d := New()
	if _, err := d.InsertEvent(0, 0, nil); err == nil {
		t.Error("nil event inserted")
	}
}

func TestEventReturnsCopy(t *testing.T) {
	d := New()
	id, _ := d.InsertEvent(0, 0, midi.SystemExclusive{0x7E, 0x7F})
	ev, _ := d.Event(id)
	ev.(midi.SystemExclusive)[0] = 0
	again, _ := d.Event(id)
	if again.(midi.SystemExclusive)[0] != 0x7E {
		t.Error("Event aliases stored content")
	}
}

func TestTickQueries(t *testing.T) {
	d := New()
	a, _ := d.InsertEvent(0, 10, midi.NoteOn{Note: 60, Velocity: 1})
	b, _ := d.InsertEvent(0, 10, midi.NoteOn{Note: 64, Velocity: 1})
	c, _ := d.InsertEvent(0, 0, midi.ProgramChange{Program: 3})
	d.InsertEvent(1, 5, midi.MIDIClock{})

	if n := d.ActiveTickCount(0); n != 2 {
		t.Errorf("ActiveTickCount = %d, want 2", n)
	}
	if tick, ok := d.NthActiveTick(0, 1); !ok || tick != 10 {
		t.Errorf("NthActiveTick(1) = %d, %v", tick, ok)
	}
	if _, ok := d.NthActiveTick(0, 2); ok {
		t.Error("NthActiveTick past end")
	}
	if n := d.TickLength(0, 10); n != 2 {
		t.Errorf("TickLength = %d, want 2", n)
	}
	if id, _ := d.NthEventInTick(0, 10, 1); id != b {
		t.Errorf("NthEventInTick(1) = %d, want %d", id, b)
	}
	got := d.TrackEvents(0)
	want := []EventID{c, a, b}
	if len(got) != len(want) {
		t.Fatalf("TrackEvents = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TrackEvents = %v, want %v", got, want)
		}
	}
}

func TestDivision(t *testing.T) {
	div := SMPTEDivision(25, 40)
	if !div.IsSMPTE() || div.PPQN() != 0 {
		t.Errorf("SMPTE division reported as metric: %s", div)
	}
	fps, tpf := div.SMPTE()
	if fps != 25 || tpf != 40 {
		t.Errorf("SMPTE() = %d, %d", fps, tpf)
	}
	if uint16(div) != 0xE728 {
		t.Errorf("division word = %04X, want E728", uint16(div))
	}
	if m := MetricDivision(480); m.IsSMPTE() || m.PPQN() != 480 {
		t.Errorf("metric = %s", m)
	}
}
