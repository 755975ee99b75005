// Package midi is the event model for Standard MIDI Files and live MIDI
// streams: one value type per message, its wire encoding, and decoders for
// the file and performance contexts.
package midi

import (
	"go-smf/vlq"
)

// Event is a single MIDI message. The set of implementations is closed;
// switch on the concrete type or on Kind.
type Event interface {
	Kind() Kind
	// Bytes returns the wire encoding, always with a full status byte.
	Bytes() []byte
	event()
}

func meta(typ byte, payload []byte) []byte {
	out := make([]byte, 0, 3+len(payload))
	out = append(out, 0xFF, typ)
	out = vlq.AppendEncoded(out, uint64(len(payload)))
	return append(out, payload...)
}

// Meta text events. Payloads are UTF-8 in memory.
type (
	Text            string
	CopyrightNotice string
	TrackName       string
	InstrumentName  string
	Lyric           string
	Marker          string
	CuePoint        string
)

func (Text) Kind() Kind            { return KindText }
func (CopyrightNotice) Kind() Kind { return KindCopyrightNotice }
func (TrackName) Kind() Kind       { return KindTrackName }
func (InstrumentName) Kind() Kind  { return KindInstrumentName }
func (Lyric) Kind() Kind           { return KindLyric }
func (Marker) Kind() Kind          { return KindMarker }
func (CuePoint) Kind() Kind        { return KindCuePoint }

func (e Text) Bytes() []byte            { return meta(0x01, []byte(e)) }
func (e CopyrightNotice) Bytes() []byte { return meta(0x02, []byte(e)) }
func (e TrackName) Bytes() []byte       { return meta(0x03, []byte(e)) }
func (e InstrumentName) Bytes() []byte  { return meta(0x04, []byte(e)) }
func (e Lyric) Bytes() []byte           { return meta(0x05, []byte(e)) }
func (e Marker) Bytes() []byte          { return meta(0x06, []byte(e)) }
func (e CuePoint) Bytes() []byte        { return meta(0x07, []byte(e)) }

// SequenceNumber is meta 0x00.
type SequenceNumber uint16

func (SequenceNumber) Kind() Kind { return KindSequenceNumber }
func (e SequenceNumber) Bytes() []byte {
	return meta(0x00, []byte{byte(e >> 8), byte(e)})
}

// ChannelPrefix is meta 0x20.
type ChannelPrefix uint8

func (ChannelPrefix) Kind() Kind      { return KindChannelPrefix }
func (e ChannelPrefix) Bytes() []byte { return meta(0x20, []byte{byte(e) & 0x0F}) }

// EndOfTrack is meta 0x2F. Track writers append it themselves.
type EndOfTrack struct{}

func (EndOfTrack) Kind() Kind    { return KindEndOfTrack }
func (EndOfTrack) Bytes() []byte { return []byte{0xFF, 0x2F, 0x00} }

// SMPTEOffset is meta 0x54.
type SMPTEOffset struct {
	Hour, Minute, Second, Frame, Subframe uint8
}

func (SMPTEOffset) Kind() Kind { return KindSMPTEOffset }
func (e SMPTEOffset) Bytes() []byte {
	return meta(0x54, []byte{e.Hour, e.Minute, e.Second, e.Frame, e.Subframe})
}

// TimeSignature is meta 0x58. Denominator is the power of two (2 = quarter).
type TimeSignature struct {
	Numerator               uint8
	Denominator             uint8
	ClocksPerClick          uint8
	ThirtySecondsPerQuarter uint8
}

func (TimeSignature) Kind() Kind { return KindTimeSignature }
func (e TimeSignature) Bytes() []byte {
	return meta(0x58, []byte{e.Numerator, e.Denominator, e.ClocksPerClick, e.ThirtySecondsPerQuarter})
}

// SequencerSpecific is meta 0x7F.
type SequencerSpecific []byte

func (SequencerSpecific) Kind() Kind      { return KindSequencerSpecific }
func (e SequencerSpecific) Bytes() []byte { return meta(0x7F, e) }

// NoteOn is 0x9n. A zero velocity is read back as NoteOff.
type NoteOn struct {
	Channel, Note, Velocity uint8
}

func (NoteOn) Kind() Kind { return KindNoteOn }
func (e NoteOn) Bytes() []byte {
	return []byte{0x90 | e.Channel&0x0F, e.Note & 0x7F, e.Velocity & 0x7F}
}

// NoteOff is 0x8n.
type NoteOff struct {
	Channel, Note, Velocity uint8
}

func (NoteOff) Kind() Kind { return KindNoteOff }
func (e NoteOff) Bytes() []byte {
	return []byte{0x80 | e.Channel&0x0F, e.Note & 0x7F, e.Velocity & 0x7F}
}

// AfterTouch is polyphonic key pressure, 0xAn.
type AfterTouch struct {
	Channel, Note, Pressure uint8
}

func (AfterTouch) Kind() Kind { return KindAfterTouch }
func (e AfterTouch) Bytes() []byte {
	return []byte{0xA0 | e.Channel&0x0F, e.Note & 0x7F, e.Pressure & 0x7F}
}

// ControlChange is a 0xBn message whose controller number has no named kind.
type ControlChange struct {
	Channel, Controller, Value uint8
}

func (ControlChange) Kind() Kind { return KindControlChange }
func (e ControlChange) Bytes() []byte {
	return []byte{0xB0 | e.Channel&0x0F, e.Controller & 0x7F, e.Value & 0x7F}
}

// Controller is a 0xBn message for a named controller. Type selects the
// controller number.
type Controller struct {
	Type    Kind
	Channel uint8
	Value   uint8
}

func (e Controller) Kind() Kind { return e.Type }
func (e Controller) Bytes() []byte {
	v := e.Value & 0x7F
	if invariable[e.Type] {
		v = 0
	}
	return []byte{0xB0 | e.Channel&0x0F, controllerNumbers[e.Type], v}
}

// ProgramChange is 0xCn.
type ProgramChange struct {
	Channel, Program uint8
}

func (ProgramChange) Kind() Kind { return KindProgramChange }
func (e ProgramChange) Bytes() []byte {
	return []byte{0xC0 | e.Channel&0x0F, e.Program & 0x7F}
}

// ChannelPressure is 0xDn.
type ChannelPressure struct {
	Channel, Pressure uint8
}

func (ChannelPressure) Kind() Kind { return KindChannelPressure }
func (e ChannelPressure) Bytes() []byte {
	return []byte{0xD0 | e.Channel&0x0F, e.Pressure & 0x7F}
}

// PitchWheelChange is 0xEn. Value is normalised to [-1, 1].
type PitchWheelChange struct {
	Channel uint8
	Value   float64
}

func (PitchWheelChange) Kind() Kind { return KindPitchWheelChange }
func (e PitchWheelChange) Bytes() []byte {
	w := PitchWheelToWire(e.Value)
	return []byte{0xE0 | e.Channel&0x0F, byte(w & 0x7F), byte(w >> 7 & 0x7F)}
}

// SystemExclusive holds the bytes between 0xF0 and 0xF7.
type SystemExclusive []byte

func (SystemExclusive) Kind() Kind { return KindSystemExclusive }
func (e SystemExclusive) Bytes() []byte {
	out := make([]byte, 0, len(e)+2)
	out = append(out, 0xF0)
	out = append(out, e...)
	return append(out, 0xF7)
}

// MTCQuarterFrame is 0xF1. MessageType is 0-7, Value 0-15.
type MTCQuarterFrame struct {
	MessageType, Value uint8
}

func (MTCQuarterFrame) Kind() Kind { return KindMTCQuarterFrame }
func (e MTCQuarterFrame) Bytes() []byte {
	return []byte{0xF1, (e.MessageType&0x07)<<4 | e.Value&0x0F}
}

// SongPositionPointer is 0xF2, a 14-bit count of MIDI beats.
type SongPositionPointer uint16

func (SongPositionPointer) Kind() Kind { return KindSongPositionPointer }
func (e SongPositionPointer) Bytes() []byte {
	return []byte{0xF2, byte(e & 0x7F), byte(e >> 7 & 0x7F)}
}

// SongSelect is 0xF3.
type SongSelect uint8

func (SongSelect) Kind() Kind      { return KindSongSelect }
func (e SongSelect) Bytes() []byte { return []byte{0xF3, byte(e) & 0x7F} }

// Single-byte system messages.
type (
	TuneRequest  struct{}
	MIDIClock    struct{}
	MIDIStart    struct{}
	MIDIContinue struct{}
	MIDIStop     struct{}
	ActiveSense  struct{}
)

// Reset is 0xFF on a live stream. In a file the same byte starts a meta event.
type Reset struct{}

func (TuneRequest) Kind() Kind  { return KindTuneRequest }
func (MIDIClock) Kind() Kind    { return KindMIDIClock }
func (MIDIStart) Kind() Kind    { return KindMIDIStart }
func (MIDIContinue) Kind() Kind { return KindMIDIContinue }
func (MIDIStop) Kind() Kind     { return KindMIDIStop }
func (ActiveSense) Kind() Kind  { return KindActiveSense }
func (Reset) Kind() Kind        { return KindReset }

func (TuneRequest) Bytes() []byte  { return []byte{0xF6} }
func (MIDIClock) Bytes() []byte    { return []byte{0xF8} }
func (MIDIStart) Bytes() []byte    { return []byte{0xFA} }
func (MIDIContinue) Bytes() []byte { return []byte{0xFB} }
func (MIDIStop) Bytes() []byte     { return []byte{0xFC} }
func (ActiveSense) Bytes() []byte  { return []byte{0xFE} }
func (Reset) Bytes() []byte        { return []byte{0xFF} }

// FrameRate is the SMPTE rate carried in a full-frame time code.
type FrameRate uint8

const (
	FPS24 FrameRate = iota
	FPS25
	FPS2997
	FPS30
)

func (r FrameRate) String() string {
	switch r {
	case FPS24:
		return "24"
	case FPS25:
		return "25"
	case FPS2997:
		return "29.97"
	case FPS30:
		return "30"
	}
	return "?"
}

// TimeCode is a full-frame MTC message, sent as the universal real-time
// SysEx F0 7F 7F 01 01 hr mn sc fr F7.
type TimeCode struct {
	Rate                        FrameRate
	Hour, Minute, Second, Frame uint8
}

var timeCodeHeader = []byte{0x7F, 0x7F, 0x01, 0x01}

func (TimeCode) Kind() Kind { return KindTimeCode }
func (e TimeCode) Bytes() []byte {
	return []byte{
		0xF0, 0x7F, 0x7F, 0x01, 0x01,
		byte(e.Rate&0x03)<<5 | e.Hour&0x1F,
		e.Minute & 0x3F,
		e.Second & 0x3F,
		e.Frame & 0x1F,
		0xF7,
	}
}

func (Text) event()                {}
func (CopyrightNotice) event()     {}
func (TrackName) event()           {}
func (InstrumentName) event()      {}
func (Lyric) event()               {}
func (Marker) event()              {}
func (CuePoint) event()            {}
func (SequenceNumber) event()      {}
func (ChannelPrefix) event()       {}
func (EndOfTrack) event()          {}
func (SetTempo) event()            {}
func (SMPTEOffset) event()         {}
func (TimeSignature) event()       {}
func (KeySignature) event()        {}
func (SequencerSpecific) event()   {}
func (NoteOn) event()              {}
func (NoteOff) event()             {}
func (AfterTouch) event()          {}
func (ControlChange) event()       {}
func (Controller) event()          {}
func (ProgramChange) event()       {}
func (ChannelPressure) event()     {}
func (PitchWheelChange) event()    {}
func (SystemExclusive) event()     {}
func (MTCQuarterFrame) event()     {}
func (SongPositionPointer) event() {}
func (SongSelect) event()          {}
func (TuneRequest) event()         {}
func (MIDIClock) event()           {}
func (MIDIStart) event()           {}
func (MIDIContinue) event()        {}
func (MIDIStop) event()            {}
func (ActiveSense) event()         {}
func (Reset) event()               {}
func (TimeCode) event()            {}

// IsMeta reports whether ev is written as an 0xFF meta event in a file.
func IsMeta(ev Event) bool {
	return ev != nil && ev.Kind().Category() == CategoryMeta
}

// Status returns the lead byte of ev's wire form.
func Status(ev Event) byte {
	return ev.Bytes()[0]
}

// Channel returns the channel of a channel voice or mode event.
func Channel(ev Event) (uint8, bool) {
	switch e := ev.(type) {
	case NoteOn:
		return e.Channel & 0x0F, true
	case NoteOff:
		return e.Channel & 0x0F, true
	case AfterTouch:
		return e.Channel & 0x0F, true
	case ControlChange:
		return e.Channel & 0x0F, true
	case Controller:
		return e.Channel & 0x0F, true
	case ProgramChange:
		return e.Channel & 0x0F, true
	case ChannelPressure:
		return e.Channel & 0x0F, true
	case PitchWheelChange:
		return e.Channel & 0x0F, true
	}
	return 0, false
}

// Clone returns a copy of ev that shares no memory with it.
func Clone(ev Event) Event {
	switch e := ev.(type) {
	case SequencerSpecific:
		if e == nil {
			return e
		}
		out := make(SequencerSpecific, len(e))
		copy(out, e)
		return out
	case SystemExclusive:
		if e == nil {
			return e
		}
		out := make(SystemExclusive, len(e))
		copy(out, e)
		return out
	}
	return ev
}
