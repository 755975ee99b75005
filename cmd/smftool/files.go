package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sinshu/go-meltysynth/meltysynth"
	gosmf "gitlab.com/gomidi/midi/v2/smf"

	"go-smf/config"
	"go-smf/midi"
	"go-smf/smf"
)

func documentFlags(name string, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cfg.Document.TextEncoding, "enc", cfg.Document.TextEncoding, "text meta charset (utf-8, shift_jis, latin1, windows-1252)")
	fs.IntVar(&cfg.Document.MaxTracks, "max-tracks", cfg.Document.MaxTracks, "track limit, 0 for none")
	return fs
}

func readDocument(cfg *config.Config, path string) (*smf.Document, error) {
	opts, err := cfg.DocumentOptions()
	if err != nil {
		return nil, err
	}
	return smf.ReadFile(path, opts...)
}

func dump(cfg *config.Config, args []string) error {
	fs := documentFlags("dump", cfg)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: smftool dump [-enc name] <file>")
	}

	d, err := readDocument(cfg, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("format %d  division %s  tracks %d  events %d\n",
		d.Format(), d.Division(), d.CountTracks(), d.CountEvents())
	for track := 0; track < d.CountTracks(); track++ {
		fmt.Printf("\n=== Track %d (length %d, %d ticks in use) ===\n",
			track, d.TrackLength(track), d.ActiveTickCount(track))
		for _, id := range d.TrackEvents(track) {
			ev, _ := d.Event(id)
			pos, _ := d.EventPosition(id)
			fmt.Printf("  %8d  #%-5d %-22s %s\n", pos.Tick, id, ev.Kind(), midi.Describe(ev))
		}
	}
	return nil
}

func roundtrip(cfg *config.Config, args []string) error {
	fs := documentFlags("roundtrip", cfg)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: smftool roundtrip <in> <out>")
	}

	d, err := readDocument(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := d.Save(fs.Arg(1)); err != nil {
		return err
	}

	in, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	out, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	if bytes.Equal(in, out) {
		fmt.Printf("%s: %d bytes, identical\n", fs.Arg(1), len(out))
	} else {
		fmt.Printf("%s: %d bytes (input %d), rewritten\n", fs.Arg(1), len(out), len(in))
	}
	return nil
}

// report is what verify found out about one file.
type report struct {
	Identical   bool
	Tracks      int
	Events      int
	OtherTracks int
	OtherEvents int
	Duration    time.Duration
	SynthErr    error
}

func (r report) ok() bool {
	return r.Tracks == r.OtherTracks && r.Events == r.OtherEvents
}

// verify re-encodes data and reads the result back with two independent
// SMF readers.
func verify(data []byte, opts ...smf.Option) (report, error) {
	var r report
	d, err := smf.Decode(data, opts...)
	if err != nil {
		return r, err
	}
	out, err := d.Bytes()
	if err != nil {
		return r, err
	}
	r.Identical = bytes.Equal(data, out)
	r.Tracks = d.CountTracks()
	r.Events = d.CountEvents()

	s, err := gosmf.ReadFrom(bytes.NewReader(out))
	if err != nil {
		return r, fmt.Errorf("gomidi: %w", err)
	}
	r.OtherTracks = len(s.Tracks)
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			if !ev.Message.Is(gosmf.MetaEndOfTrackMsg) {
				r.OtherEvents++
			}
		}
	}

	if d.Format() <= 1 && !d.Division().IsSMPTE() {
		mf, err := meltysynth.NewMidiFile(bytes.NewReader(out))
		if err != nil {
			r.SynthErr = err
		} else {
			r.Duration = mf.GetLength()
		}
	}
	return r, nil
}

func verifyCmd(cfg *config.Config, args []string) error {
	fs := documentFlags("verify", cfg)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: smftool verify <file>")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), midi.ErrPathNotFound)
	}
	opts, err := cfg.DocumentOptions()
	if err != nil {
		return err
	}

	r, err := verify(data, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("byte-identical rewrite: %v\n", r.Identical)
	fmt.Printf("tracks: %d (gomidi %d)\n", r.Tracks, r.OtherTracks)
	fmt.Printf("events: %d (gomidi %d)\n", r.Events, r.OtherEvents)
	if r.SynthErr != nil {
		fmt.Printf("meltysynth: %v\n", r.SynthErr)
	} else if r.Duration > 0 {
		fmt.Printf("duration: %v\n", r.Duration.Round(time.Millisecond))
	}
	if !r.ok() {
		return fmt.Errorf("readers disagree")
	}
	return nil
}

// demoDocument is a one bar arpeggio with a conductor track.
func demoDocument(d *smf.Document) error {
	ppqn := uint64(d.PPQN())
	conductor := []midi.Event{
		midi.TrackName("go-smf demo"),
		midi.TempoFromBPM(100),
		midi.TimeSignature{Numerator: 4, Denominator: 2, ClocksPerClick: 24, ThirtySecondsPerQuarter: 8},
		midi.NewKeySignature(0, 0),
	}
	for _, ev := range conductor {
		if _, err := d.InsertEvent(0, 0, ev); err != nil {
			return err
		}
	}

	lead := []midi.Event{midi.TrackName("lead"), midi.ProgramChange{Program: 0}}
	lead = append(lead, midi.Split14(midi.KindVolume, 0, 100<<7)...)
	for _, ev := range lead {
		if _, err := d.InsertEvent(1, 0, ev); err != nil {
			return err
		}
	}
	for _, note := range []uint8{60, 64, 67, 72} {
		if _, err := d.PushEvent(1, 0, midi.NoteOn{Note: note, Velocity: 96}); err != nil {
			return err
		}
		if _, err := d.PushEvent(1, ppqn, midi.NoteOff{Note: note, Velocity: 64}); err != nil {
			return err
		}
	}
	_, err := d.PushEvent(1, 0, midi.AllNotesOff(0))
	return err
}

func demo(cfg *config.Config, args []string) error {
	fs := documentFlags("demo", cfg)
	ppqn := fs.Uint("ppqn", uint(cfg.Document.PPQN), "ticks per quarter note")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: smftool demo [-ppqn n] <out>")
	}
	cfg.Document.PPQN = uint16(*ppqn)

	d, err := cfg.NewDocument()
	if err != nil {
		return err
	}
	if err := demoDocument(d); err != nil {
		return err
	}
	if err := d.Save(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d tracks, %d events\n", fs.Arg(0), d.CountTracks(), d.CountEvents())
	return nil
}
