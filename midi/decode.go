package midi

import (
	"errors"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"go-smf/vlq"
)

// Decoder reads events in file context, where 0xFF starts a meta event.
type Decoder struct {
	// Text decodes text meta payloads. Nil means strict UTF-8.
	Text encoding.Encoding
}

// Decode reads one file-context event from r with UTF-8 text payloads.
// See Decoder.Decode.
func Decode(r io.ByteScanner, running byte) (Event, byte, error) {
	return Decoder{}.Decode(r, running)
}

// Decode reads one event from r. running is the status in effect for a
// message that starts with a data byte; the returned byte is the status in
// effect afterwards. Only channel messages change it.
//
// Errors for which IsRecoverable is true leave r positioned after the
// offending event.
func (d Decoder) Decode(r io.ByteScanner, running byte) (Event, byte, error) {
	lead, err := r.ReadByte()
	if err != nil {
		return nil, running, starved(err)
	}

	if lead < 0x80 {
		if running < 0x80 || running >= 0xF0 {
			return nil, running, bytesError(ErrInvalidBytes, lead)
		}
		if err := r.UnreadByte(); err != nil {
			return nil, running, err
		}
		lead = running
	}

	switch {
	case lead < 0xF0:
		ev, err := readChannel(r, lead)
		return ev, lead, err
	case lead == 0xFF:
		ev, err := d.readMeta(r)
		return ev, running, err
	case lead == 0xF7:
		n, err := vlq.Decode(r)
		if err != nil {
			return nil, running, err
		}
		data, err := vlq.ReadBytes(r, n)
		if err != nil {
			return nil, running, err
		}
		return SystemExclusive(data), running, nil
	case lead == 0xF1:
		b, err := r.ReadByte()
		if err != nil {
			return nil, running, starved(err)
		}
		return nil, running, bytesError(ErrIgnored, lead, b)
	}

	ev, err := readSystem(r, lead)
	return ev, running, err
}

func (d Decoder) readMeta(r io.ByteReader) (Event, error) {
	typ, err := r.ReadByte()
	if err != nil {
		return nil, starved(err)
	}
	n, err := vlq.Decode(r)
	if err != nil {
		return nil, err
	}
	p, err := vlq.ReadBytes(r, n)
	if err != nil {
		return nil, err
	}
	field := func(i int) byte {
		if i < len(p) {
			return p[i]
		}
		return 0
	}

	switch typ {
	case 0x00:
		return SequenceNumber(uint16(field(0))<<8 | uint16(field(1))), nil
	case 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07:
		s, ok := d.text(p)
		if !ok {
			return nil, bytesError(ErrIllegibleString, meta(typ, p)...)
		}
		return newText(typ, s), nil
	case 0x20:
		return ChannelPrefix(field(0) & 0x0F), nil
	case 0x2F:
		return EndOfTrack{}, nil
	case 0x51:
		return NewSetTempo(uint32(field(0))<<16 | uint32(field(1))<<8 | uint32(field(2))), nil
	case 0x54:
		return SMPTEOffset{field(0), field(1), field(2), field(3), field(4)}, nil
	case 0x58:
		return TimeSignature{field(0), field(1), field(2), field(3)}, nil
	case 0x59:
		return NewKeySignature(field(1), int8(field(0))), nil
	case 0x7F:
		return SequencerSpecific(p), nil
	}
	return nil, bytesError(ErrUnknownMetaEvent, meta(typ, p)...)
}

func (d Decoder) text(p []byte) (string, bool) {
	if d.Text == nil {
		return string(p), utf8.Valid(p)
	}
	out, err := d.Text.NewDecoder().Bytes(p)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// readChannel reads the data bytes of a channel message whose status has
// already been consumed.
func readChannel(r io.ByteReader, status byte) (Event, error) {
	ch := status & 0x0F
	d1, err := readData(r, status)
	if err != nil {
		return nil, err
	}
	switch status & 0xF0 {
	case 0xC0:
		return ProgramChange{Channel: ch, Program: d1}, nil
	case 0xD0:
		return ChannelPressure{Channel: ch, Pressure: d1}, nil
	}

	d2, err := readData(r, status, d1)
	if err != nil {
		return nil, err
	}
	switch status & 0xF0 {
	case 0x80:
		return NoteOff{Channel: ch, Note: d1, Velocity: d2}, nil
	case 0x90:
		if d2 == 0 {
			return NoteOff{Channel: ch, Note: d1}, nil
		}
		return NoteOn{Channel: ch, Note: d1, Velocity: d2}, nil
	case 0xA0:
		return AfterTouch{Channel: ch, Note: d1, Pressure: d2}, nil
	case 0xB0:
		if k, ok := controllerKinds[d1]; ok {
			return NewController(k, ch, d2), nil
		}
		return ControlChange{Channel: ch, Controller: d1, Value: d2}, nil
	}
	return PitchWheelChange{Channel: ch, Value: PitchWheelFromWire(uint16(d2)<<7 | uint16(d1))}, nil
}

func readData(r io.ByteReader, context ...byte) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, starved(err)
	}
	if b&0x80 != 0 {
		return 0, bytesError(ErrInvalidBytes, append(context, b)...)
	}
	return b, nil
}

// readSystem handles the system bytes whose meaning does not depend on
// context.
func readSystem(r io.ByteReader, lead byte) (Event, error) {
	switch lead {
	case 0xF0:
		var data []byte
		for {
			b, err := r.ReadByte()
			if err != nil {
				return nil, starved(err)
			}
			if b == 0xF7 {
				break
			}
			data = append(data, b)
		}
		if tc, ok := timeCode(data); ok {
			return tc, nil
		}
		if data == nil {
			data = []byte{}
		}
		return SystemExclusive(data), nil
	case 0xF2:
		lsb, err := readData(r, lead)
		if err != nil {
			return nil, err
		}
		msb, err := readData(r, lead, lsb)
		if err != nil {
			return nil, err
		}
		return SongPositionPointer(uint16(msb)<<7 | uint16(lsb)), nil
	case 0xF3:
		b, err := r.ReadByte()
		if err != nil {
			return nil, starved(err)
		}
		return SongSelect(b & 0x7F), nil
	case 0xF6:
		return TuneRequest{}, nil
	}
	if lead != 0xFF {
		if ev, ok := realtime(lead); ok {
			return ev, nil
		}
	}
	return nil, bytesError(ErrInvalidBytes, lead)
}

// realtime maps a single-byte realtime status to its event. 0xFF is a
// Reset only on a live stream.
func realtime(b byte) (Event, bool) {
	switch b {
	case 0xF8:
		return MIDIClock{}, true
	case 0xFA:
		return MIDIStart{}, true
	case 0xFB:
		return MIDIContinue{}, true
	case 0xFC:
		return MIDIStop{}, true
	case 0xFE:
		return ActiveSense{}, true
	case 0xFF:
		return Reset{}, true
	}
	return nil, false
}

func timeCode(data []byte) (TimeCode, bool) {
	if len(data) != 8 {
		return TimeCode{}, false
	}
	for i, b := range timeCodeHeader {
		if data[i] != b {
			return TimeCode{}, false
		}
	}
	hr := data[4]
	return TimeCode{
		Rate:   FrameRate(hr >> 5 & 0x03),
		Hour:   hr & 0x1F,
		Minute: data[5],
		Second: data[6],
		Frame:  data[7],
	}, true
}

func starved(err error) error {
	if errors.Is(err, io.EOF) {
		return vlq.ErrStarved
	}
	return err
}
