// Package smf holds a Standard MIDI File as a mutable set of events placed
// at absolute (track, tick) positions, and converts it to and from bytes.
package smf

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/encoding"

	"go-smf/midi"
)

// EventID identifies an event within a Document. Zero is never issued.
type EventID uint64

// Position is where an event sits: a track index and an absolute tick.
type Position struct {
	Track int
	Tick  uint64
}

// DefaultMaxTracks is the track limit of a new Document.
const DefaultMaxTracks = 16

var errNilEvent = errors.New("nil event")

// Document is an in-memory MIDI file. Events and their positions are kept
// in separate maps so content and placement change independently. It is not
// safe for concurrent use.
type Document struct {
	division Division
	format   uint16

	events    map[EventID]midi.Event
	positions map[EventID]Position
	ends      map[int]uint64 // End of Track tick of each decoded track
	nextID    EventID

	maxTracks int
	text      encoding.Encoding
}

// Option configures a Document.
type Option func(*Document)

// WithMaxTracks limits track indices to [0, n). Zero removes the limit.
func WithMaxTracks(n int) Option {
	return func(d *Document) {
		d.maxTracks = n
	}
}

// WithTextEncoding sets the charset of text meta payloads in the file.
// Events always hold UTF-8.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(d *Document) {
		d.text = enc
	}
}

// New returns an empty format 1 document at DefaultPPQN.
func New(opts ...Option) *Document {
	d := &Document{
		division:  MetricDivision(DefaultPPQN),
		format:    1,
		events:    make(map[EventID]midi.Event),
		positions: make(map[EventID]Position),
		ends:      make(map[int]uint64),
		nextID:    1,
		maxTracks: DefaultMaxTracks,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PPQN returns ticks per quarter note, or 0 if the division is frame based.
func (d *Document) PPQN() uint16 { return d.division.PPQN() }

// SetPPQN sets a metric division.
func (d *Document) SetPPQN(ppqn uint16) { d.division = MetricDivision(ppqn) }

func (d *Document) Division() Division       { return d.division }
func (d *Document) SetDivision(div Division) { d.division = div }
func (d *Document) Format() uint16           { return d.format }
func (d *Document) SetFormat(format uint16)  { d.format = format }

func (d *Document) checkTrack(track int) error {
	if track < 0 || (d.maxTracks > 0 && track >= d.maxTracks) {
		return fmt.Errorf("track %d: %w", track, midi.ErrTrackOutOfBounds)
	}
	return nil
}

// InsertEvent stores ev at (track, tick) under a new id.
func (d *Document) InsertEvent(track int, tick uint64, ev midi.Event) (EventID, error) {
	if ev == nil {
		return 0, errNilEvent
	}
	if err := d.checkTrack(track); err != nil {
		return 0, err
	}
	id := d.nextID
	d.nextID++
	d.events[id] = ev
	d.positions[id] = Position{Track: track, Tick: tick}
	return id, nil
}

// PushEvent inserts ev wait ticks after the last tick of track. An empty
// track counts as ending at tick 0.
func (d *Document) PushEvent(track int, wait uint64, ev midi.Event) (EventID, error) {
	last := d.TrackLength(track)
	if last > 0 {
		last--
	}
	return d.InsertEvent(track, last+wait, ev)
}

// MoveEvent places an existing event at (track, tick). Its content is not touched.
func (d *Document) MoveEvent(id EventID, track int, tick uint64) error {
	if _, ok := d.events[id]; !ok {
		return fmt.Errorf("move %d: %w", id, midi.ErrEventNotFound)
	}
	if err := d.checkTrack(track); err != nil {
		return err
	}
	d.positions[id] = Position{Track: track, Tick: tick}
	return nil
}

// ReplaceEvent swaps the content of an existing event. Its position is not touched.
func (d *Document) ReplaceEvent(id EventID, ev midi.Event) error {
	if ev == nil {
		return errNilEvent
	}
	if _, ok := d.events[id]; !ok {
		return fmt.Errorf("replace %d: %w", id, midi.ErrEventNotFound)
	}
	d.events[id] = ev
	return nil
}

// RemoveEvent deletes an event. Its id is not reused.
func (d *Document) RemoveEvent(id EventID) error {
	if _, ok := d.events[id]; !ok {
		return fmt.Errorf("remove %d: %w", id, midi.ErrEventNotFound)
	}
	delete(d.events, id)
	delete(d.positions, id)
	return nil
}

// Event returns a copy of the event stored under id.
func (d *Document) Event(id EventID) (midi.Event, bool) {
	ev, ok := d.events[id]
	if !ok {
		return nil, false
	}
	return midi.Clone(ev), true
}

// EventPosition returns where id is placed.
func (d *Document) EventPosition(id EventID) (Position, bool) {
	pos, ok := d.positions[id]
	return pos, ok
}

// CountEvents returns the number of stored events.
func (d *Document) CountEvents() int {
	return len(d.events)
}

// CountTracks returns one more than the highest track index in use.
func (d *Document) CountTracks() int {
	n := 0
	for _, pos := range d.positions {
		n = max(n, pos.Track+1)
	}
	for track := range d.ends {
		n = max(n, track+1)
	}
	return n
}

// TrackLength returns one more than the last tick used on track, or 0 for
// an empty track.
func (d *Document) TrackLength(track int) uint64 {
	var n uint64
	for _, pos := range d.positions {
		if pos.Track == track {
			n = max(n, pos.Tick+1)
		}
	}
	if end, ok := d.ends[track]; ok {
		n = max(n, end+1)
	}
	return n
}

type placed struct {
	id   EventID
	tick uint64
}

// track returns the events on track ordered by tick, then id.
func (d *Document) track(track int) []placed {
	var out []placed
	for id, pos := range d.positions {
		if pos.Track == track {
			out = append(out, placed{id: id, tick: pos.Tick})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].tick != out[j].tick {
			return out[i].tick < out[j].tick
		}
		return out[i].id < out[j].id
	})
	return out
}

// TrackEvents returns the ids on track in write order.
func (d *Document) TrackEvents(track int) []EventID {
	evs := d.track(track)
	ids := make([]EventID, len(evs))
	for i, p := range evs {
		ids[i] = p.id
	}
	return ids
}

func (d *Document) ticks(track int) []uint64 {
	var ticks []uint64
	for _, p := range d.track(track) {
		if len(ticks) == 0 || ticks[len(ticks)-1] != p.tick {
			ticks = append(ticks, p.tick)
		}
	}
	return ticks
}

// ActiveTickCount returns how many distinct ticks on track hold events.
func (d *Document) ActiveTickCount(track int) int {
	return len(d.ticks(track))
}

// NthActiveTick returns the n-th distinct tick on track holding events.
func (d *Document) NthActiveTick(track, n int) (uint64, bool) {
	ticks := d.ticks(track)
	if n < 0 || n >= len(ticks) {
		return 0, false
	}
	return ticks[n], true
}

func (d *Document) atTick(track int, tick uint64) []EventID {
	var ids []EventID
	for _, p := range d.track(track) {
		if p.tick == tick {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// TickLength returns how many events sit at (track, tick).
func (d *Document) TickLength(track int, tick uint64) int {
	return len(d.atTick(track, tick))
}

// NthEventInTick returns the n-th event at (track, tick) in write order.
func (d *Document) NthEventInTick(track int, tick uint64, n int) (EventID, bool) {
	ids := d.atTick(track, tick)
	if n < 0 || n >= len(ids) {
		return 0, false
	}
	return ids[n], true
}
