package midi

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
)

func newText(typ byte, s string) Event {
	switch typ {
	case 0x01:
		return Text(s)
	case 0x02:
		return CopyrightNotice(s)
	case 0x03:
		return TrackName(s)
	case 0x04:
		return InstrumentName(s)
	case 0x05:
		return Lyric(s)
	case 0x06:
		return Marker(s)
	}
	return CuePoint(s)
}

// TextOf returns the meta type and payload of a text meta event.
func TextOf(ev Event) (typ byte, s string, ok bool) {
	switch e := ev.(type) {
	case Text:
		return 0x01, string(e), true
	case CopyrightNotice:
		return 0x02, string(e), true
	case TrackName:
		return 0x03, string(e), true
	case InstrumentName:
		return 0x04, string(e), true
	case Lyric:
		return 0x05, string(e), true
	case Marker:
		return 0x06, string(e), true
	case CuePoint:
		return 0x07, string(e), true
	}
	return 0, "", false
}

// Encode returns the wire bytes of ev with any text payload converted to
// enc. A nil enc writes UTF-8, the same as ev.Bytes(). Events whose bytes
// would not read back as the same event fail with ErrInvalidBytes.
func Encode(ev Event, enc encoding.Encoding) ([]byte, error) {
	if err := validate(ev); err != nil {
		return nil, err
	}
	typ, s, ok := TextOf(ev)
	if !ok || enc == nil {
		return ev.Bytes(), nil
	}
	p, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Kind(), err)
	}
	return meta(typ, []byte(p)), nil
}

func validate(ev Event) error {
	switch e := ev.(type) {
	case SystemExclusive:
		// F7 inside the payload would end the message early.
		if i := bytes.IndexByte(e, 0xF7); i >= 0 {
			return bytesError(ErrInvalidBytes, e.Bytes()[:i+2]...)
		}
	case Controller:
		if !e.Type.IsController() {
			return fmt.Errorf("controller of kind %s: %w", e.Type, ErrInvalidBytes)
		}
	}
	return nil
}
