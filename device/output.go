package device

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-smf/debug"
	"go-smf/midi"
)

// Output sends events to a system MIDI output port.
type Output struct {
	name  string
	send  func(msg gomidi.Message) error
	close func() error
}

// OpenOutput opens the first output whose name contains substr.
func OpenOutput(substr string) (*Output, error) {
	for _, out := range gomidi.GetOutPorts() {
		if !matchName(out.String(), substr) {
			continue
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", out.String(), err)
		}
		debug.Log("device", "output %s", out.String())
		return &Output{name: out.String(), send: send, close: out.Close}, nil
	}
	return nil, fmt.Errorf("output %q: %w", substr, midi.ErrPathNotFound)
}

func (o *Output) Name() string { return o.name }

// Send writes one event. Meta events only exist in files and are rejected.
func (o *Output) Send(ev midi.Event) error {
	if ev == nil {
		return nil
	}
	if midi.IsMeta(ev) {
		return fmt.Errorf("send %v: %w", ev.Kind(), midi.ErrInvalidBytes)
	}
	b, err := midi.Encode(ev, nil)
	if err != nil {
		return fmt.Errorf("send %v: %w", ev.Kind(), err)
	}
	return o.send(gomidi.Message(b))
}

// Panic sends All Notes Off on every channel.
func (o *Output) Panic() error {
	var errs []error
	for ch := uint8(0); ch < 16; ch++ {
		if err := o.Send(midi.AllNotesOff(ch)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *Output) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}
