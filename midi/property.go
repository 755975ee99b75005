package midi

import "fmt"

// PropertyCount returns how many numbered properties ev exposes.
func PropertyCount(ev Event) int {
	switch e := ev.(type) {
	case Text, CopyrightNotice, TrackName, InstrumentName, Lyric, Marker, CuePoint,
		SequenceNumber, ChannelPrefix, SetTempo, SequencerSpecific, SystemExclusive,
		SongPositionPointer, SongSelect:
		return 1
	case SMPTEOffset, TimeCode:
		return 5
	case TimeSignature:
		return 4
	case KeySignature, ProgramChange, ChannelPressure, PitchWheelChange, MTCQuarterFrame:
		return 2
	case NoteOn, NoteOff, AfterTouch, ControlChange:
		return 3
	case Controller:
		if invariable[e.Type] {
			return 1
		}
		return 2
	}
	return 0
}

// Property returns property i of ev as bytes. Channel messages put the
// channel at index 0. Multi-byte numbers are big-endian: the 14-bit pitch
// wheel value, SequenceNumber and SongPositionPointer as two bytes, SetTempo
// as three. KeySignature is (mode, sharps/flats); TimeCode starts with its
// rate code. It returns nil when i is out of range.
func Property(ev Event, i int) []byte {
	if i < 0 || i >= PropertyCount(ev) {
		return nil
	}
	switch e := ev.(type) {
	case Text, CopyrightNotice, TrackName, InstrumentName, Lyric, Marker, CuePoint:
		_, s, _ := TextOf(e)
		return []byte(s)
	case SequenceNumber:
		return []byte{byte(e >> 8), byte(e)}
	case ChannelPrefix:
		return []byte{byte(e)}
	case SetTempo:
		us := clampTempo(e.USPQN)
		return []byte{byte(us >> 16), byte(us >> 8), byte(us)}
	case SMPTEOffset:
		return []byte{[]byte{e.Hour, e.Minute, e.Second, e.Frame, e.Subframe}[i]}
	case TimeSignature:
		return []byte{[]byte{e.Numerator, e.Denominator, e.ClocksPerClick, e.ThirtySecondsPerQuarter}[i]}
	case KeySignature:
		mi, sf := e.MiSf()
		return []byte{[]byte{mi, byte(sf)}[i]}
	case SequencerSpecific:
		return append([]byte(nil), e...)
	case SystemExclusive:
		return append([]byte(nil), e...)
	case NoteOn:
		return []byte{[]byte{e.Channel, e.Note, e.Velocity}[i]}
	case NoteOff:
		return []byte{[]byte{e.Channel, e.Note, e.Velocity}[i]}
	case AfterTouch:
		return []byte{[]byte{e.Channel, e.Note, e.Pressure}[i]}
	case ControlChange:
		return []byte{[]byte{e.Channel, e.Controller, e.Value}[i]}
	case Controller:
		return []byte{[]byte{e.Channel, e.Value}[i]}
	case ProgramChange:
		return []byte{[]byte{e.Channel, e.Program}[i]}
	case ChannelPressure:
		return []byte{[]byte{e.Channel, e.Pressure}[i]}
	case PitchWheelChange:
		if i == 0 {
			return []byte{e.Channel}
		}
		w := PitchWheelToWire(e.Value)
		return []byte{byte(w >> 8), byte(w)}
	case MTCQuarterFrame:
		return []byte{[]byte{e.MessageType, e.Value}[i]}
	case SongPositionPointer:
		return []byte{byte(e >> 8), byte(e)}
	case SongSelect:
		return []byte{byte(e)}
	case TimeCode:
		return []byte{[]byte{byte(e.Rate), e.Hour, e.Minute, e.Second, e.Frame}[i]}
	}
	return nil
}

// SetProperty returns a copy of ev with property i replaced by b, using the
// layout described on Property.
func SetProperty(ev Event, i int, b []byte) (Event, error) {
	if i < 0 || i >= PropertyCount(ev) {
		return nil, fmt.Errorf("%s property %d: %w", kindOf(ev), i, ErrNoSuchProperty)
	}
	at := func(j int) byte {
		if j < len(b) {
			return b[j]
		}
		return 0
	}
	be := func() uint32 {
		var v uint32
		for _, x := range b {
			v = v<<8 | uint32(x)
		}
		return v
	}
	v := at(0)

	switch e := ev.(type) {
	case Text, CopyrightNotice, TrackName, InstrumentName, Lyric, Marker, CuePoint:
		typ, _, _ := TextOf(e)
		return newText(typ, string(b)), nil
	case SequenceNumber:
		return SequenceNumber(be()), nil
	case ChannelPrefix:
		return ChannelPrefix(v & 0x0F), nil
	case SetTempo:
		return NewSetTempo(be()), nil
	case SMPTEOffset:
		f := []*uint8{&e.Hour, &e.Minute, &e.Second, &e.Frame, &e.Subframe}
		*f[i] = v
		return e, nil
	case TimeSignature:
		f := []*uint8{&e.Numerator, &e.Denominator, &e.ClocksPerClick, &e.ThirtySecondsPerQuarter}
		*f[i] = v
		return e, nil
	case KeySignature:
		mi, sf := e.MiSf()
		if i == 0 {
			mi = v
		} else {
			sf = int8(v)
		}
		return NewKeySignature(mi, sf), nil
	case SequencerSpecific:
		return SequencerSpecific(append([]byte(nil), b...)), nil
	case SystemExclusive:
		return SystemExclusive(append([]byte(nil), b...)), nil
	case NoteOn:
		f := []*uint8{&e.Channel, &e.Note, &e.Velocity}
		*f[i] = v
		return e, nil
	case NoteOff:
		f := []*uint8{&e.Channel, &e.Note, &e.Velocity}
		*f[i] = v
		return e, nil
	case AfterTouch:
		f := []*uint8{&e.Channel, &e.Note, &e.Pressure}
		*f[i] = v
		return e, nil
	case ControlChange:
		f := []*uint8{&e.Channel, &e.Controller, &e.Value}
		*f[i] = v
		return e, nil
	case Controller:
		if i == 0 {
			return NewController(e.Type, v, e.Value), nil
		}
		return NewController(e.Type, e.Channel, v), nil
	case ProgramChange:
		f := []*uint8{&e.Channel, &e.Program}
		*f[i] = v
		return e, nil
	case ChannelPressure:
		f := []*uint8{&e.Channel, &e.Pressure}
		*f[i] = v
		return e, nil
	case PitchWheelChange:
		if i == 0 {
			e.Channel = v
		} else {
			e.Value = PitchWheelFromWire(uint16(be()))
		}
		return e, nil
	case MTCQuarterFrame:
		f := []*uint8{&e.MessageType, &e.Value}
		*f[i] = v
		return e, nil
	case SongPositionPointer:
		return SongPositionPointer(be() & 0x3FFF), nil
	case SongSelect:
		return SongSelect(v & 0x7F), nil
	case TimeCode:
		if i == 0 {
			e.Rate = FrameRate(v & 0x03)
			return e, nil
		}
		f := []*uint8{&e.Hour, &e.Minute, &e.Second, &e.Frame}
		*f[i-1] = v
		return e, nil
	}
	return nil, fmt.Errorf("%s property %d: %w", kindOf(ev), i, ErrNoSuchProperty)
}

func kindOf(ev Event) Kind {
	if ev == nil {
		return KindNone
	}
	return ev.Kind()
}
