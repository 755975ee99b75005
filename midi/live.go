package midi

import "io"

// LiveDecoder decodes a performance byte stream one message at a time.
// Unlike Decoder, 0xFF is a Reset and 0xF1 is an MTC quarter frame.
// Realtime bytes (0xF8-0xFF) may arrive between the bytes of any other
// message; they are held back and returned by the following calls to Next,
// after the message they interrupted. The zero value is ready to use.
type LiveDecoder struct {
	running byte
	pending []Event
}

// Running returns the status byte currently in effect.
func (d *LiveDecoder) Running() byte {
	return d.running
}

// Next reads the next message from r. It returns a nil Event and nil error
// for bytes that do not form a message on their own, such as a data byte
// with no status in effect or a stray 0xF7. Errors from r are returned
// unchanged.
func (d *LiveDecoder) Next(r io.ByteReader) (Event, error) {
	if len(d.pending) > 0 {
		ev := d.pending[0]
		d.pending = d.pending[1:]
		return ev, nil
	}

	lead, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	body := &realtimeFilter{r: r, d: d}
	switch {
	case lead < 0x80:
		if d.running == 0 {
			return nil, nil
		}
		return readChannel(&prefixed{first: lead, r: body}, d.running)
	case lead < 0xF0:
		d.running = lead
		return readChannel(body, lead)
	case lead == 0xFF:
		return Reset{}, nil
	case lead >= 0xF8:
		return readSystem(r, lead)
	}

	// system common cancels running status
	d.running = 0
	switch lead {
	case 0xF1:
		b, err := readData(body, lead)
		if err != nil {
			return nil, err
		}
		return MTCQuarterFrame{MessageType: b >> 4 & 0x07, Value: b & 0x0F}, nil
	case 0xF7:
		return nil, nil
	}
	return readSystem(body, lead)
}

// realtimeFilter passes message bytes through and moves interleaved
// realtime bytes to the decoder's pending events. Undefined realtime
// bytes are dropped.
type realtimeFilter struct {
	r io.ByteReader
	d *LiveDecoder
}

func (f *realtimeFilter) ReadByte() (byte, error) {
	for {
		b, err := f.r.ReadByte()
		if err != nil || b < 0xF8 {
			return b, err
		}
		if ev, ok := realtime(b); ok {
			f.d.pending = append(f.d.pending, ev)
		}
	}
}

// prefixed replays one byte that was already consumed before reading r.
type prefixed struct {
	first byte
	used  bool
	r     io.ByteReader
}

func (p *prefixed) ReadByte() (byte, error) {
	if !p.used {
		p.used = true
		return p.first, nil
	}
	return p.r.ReadByte()
}
