package smf

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go-smf/debug"
	"go-smf/midi"
	"go-smf/vlq"
)

type decodeState int

const (
	expectChunkHeader decodeState = iota
	inHeaderChunk
	inTrackChunk
	done
)

// Decode parses a complete Standard MIDI File.
//
// Events that fail with a recoverable error (see midi.IsRecoverable) are
// skipped and the track carries on. Any other error aborts the decode.
// End of Track events are not stored; their tick is kept so TrackLength and
// the written file match the input.
func Decode(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	r := bytes.NewReader(data)
	dec := midi.Decoder{Text: d.text}

	var (
		state      = expectChunkHeader
		seenHeader bool
		track      int
	)
	for state != done {
		switch state {
		case expectChunkHeader:
			if r.Len() == 0 {
				state = done
				continue
			}
			tag, err := vlq.ReadBytes(r, 4)
			if err != nil {
				return nil, fmt.Errorf("chunk tag: %w", err)
			}
			switch string(tag) {
			case "MThd":
				state = inHeaderChunk
			case "MTrk":
				if !seenHeader {
					return nil, midi.ErrMissingHeader
				}
				state = inTrackChunk
			default:
				return nil, fmt.Errorf("chunk tag: %w", &midi.BytesError{Err: midi.ErrInvalidBytes, Bytes: tag})
			}

		case inHeaderChunk:
			length, err := vlq.ReadFixed(r, 4)
			if err != nil {
				return nil, fmt.Errorf("header: %w", err)
			}
			body, err := vlq.ReadBytes(r, length)
			if err != nil {
				return nil, fmt.Errorf("header: %w", err)
			}
			if len(body) < 6 {
				return nil, fmt.Errorf("header: %w", &midi.BytesError{Err: midi.ErrInvalidBytes, Bytes: body})
			}
			d.format = uint16(body[0])<<8 | uint16(body[1])
			// body[2:4] is the track count; it is derived on write
			d.division = Division(uint16(body[4])<<8 | uint16(body[5]))
			seenHeader = true
			debug.Log("smf", "MThd format=%d tracks=%d division=%s", d.format, uint16(body[2])<<8|uint16(body[3]), d.division)
			state = expectChunkHeader

		case inTrackChunk:
			length, err := vlq.ReadFixed(r, 4)
			if err != nil {
				return nil, fmt.Errorf("track %d: %w", track, err)
			}
			body, err := vlq.ReadBytes(r, length)
			if err != nil {
				return nil, fmt.Errorf("track %d: %w", track, err)
			}
			if err := d.decodeTrack(dec, track, body); err != nil {
				return nil, fmt.Errorf("track %d: %w", track, err)
			}
			track++
			state = expectChunkHeader
		}
	}
	return d, nil
}

// decodeTrack reads one MTrk body. Running status starts empty for every track.
func (d *Document) decodeTrack(dec midi.Decoder, track int, body []byte) error {
	if err := d.checkTrack(track); err != nil {
		return err
	}
	r := bytes.NewReader(body)
	var (
		tick    uint64
		running byte
		skipped int
	)
	for r.Len() > 0 {
		delta, err := vlq.Decode(r)
		if err != nil {
			return fmt.Errorf("delta at tick %d: %w", tick, err)
		}
		tick += delta

		ev, next, err := dec.Decode(r, running)
		running = next
		if err != nil {
			if midi.IsRecoverable(err) {
				skipped++
				debug.Log("smf", "track %d tick %d: skipped %v", track, tick, err)
				continue
			}
			return fmt.Errorf("event at tick %d: %w", tick, err)
		}

		if _, ok := ev.(midi.EndOfTrack); ok {
			d.ends[track] = max(d.ends[track], tick)
			continue
		}
		if _, err := d.InsertEvent(track, tick, ev); err != nil {
			return err
		}
	}
	debug.Log("smf", "MTrk %d: %d bytes, %d ticks, %d skipped", track, len(body), tick, skipped)
	return nil
}

// ReadFile decodes the file at path.
func ReadFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, midi.ErrPathNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %w", path, midi.ErrInvalidMIDIFile, err)
	}
	d, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
