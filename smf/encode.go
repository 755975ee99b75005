package smf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go-smf/midi"
	"go-smf/vlq"
)

// Bytes encodes the document as a Standard MIDI File.
//
// Every track index from 0 to CountTracks()-1 is written; unused ones hold
// only End of Track. Events within a track are ordered by tick, then id.
// Every event carries its own status byte. Stored EndOfTrack events are not
// written as such but can extend where the track ends.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the encoded file to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	ntracks := d.CountTracks()

	var out bytes.Buffer
	out.WriteString("MThd")
	out.Write(vlq.PutFixed(6, 4))
	out.Write(vlq.PutFixed(uint64(d.format), 2))
	out.Write(vlq.PutFixed(uint64(ntracks), 2))
	out.Write(vlq.PutFixed(uint64(d.division), 2))

	for track := 0; track < ntracks; track++ {
		body, err := d.encodeTrack(track)
		if err != nil {
			return 0, fmt.Errorf("track %d: %w", track, err)
		}
		out.WriteString("MTrk")
		out.Write(vlq.PutFixed(uint64(len(body)), 4))
		out.Write(body)
	}
	return out.WriteTo(w)
}

func (d *Document) encodeTrack(track int) ([]byte, error) {
	var (
		body bytes.Buffer
		prev uint64
		end  = d.ends[track]
	)
	for _, p := range d.track(track) {
		ev := d.events[p.id]
		if _, ok := ev.(midi.EndOfTrack); ok {
			end = max(end, p.tick)
			continue
		}
		b, err := midi.Encode(ev, d.text)
		if err != nil {
			return nil, fmt.Errorf("event at tick %d: %w", p.tick, err)
		}
		body.Write(vlq.Encode(p.tick - prev))
		body.Write(b)
		prev = p.tick
	}
	body.Write(vlq.Encode(max(end, prev) - prev))
	body.Write(midi.EndOfTrack{}.Bytes())
	return body.Bytes(), nil
}

// Save writes the encoded file to path.
func (d *Document) Save(path string) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
