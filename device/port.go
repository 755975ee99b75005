package device

import (
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-smf/midi"
)

// PortInput feeds the bytes of a system MIDI input port into a Queue.
// A driver must be registered by the program, for example by importing
// gitlab.com/gomidi/midi/v2/drivers/rtmididrv.
type PortInput struct {
	name  string
	queue *Queue
	stop  func()
}

// OpenPortInput starts listening on in. SysEx is delivered.
func OpenPortInput(in drivers.In) (*PortInput, error) {
	p := &PortInput{name: in.String(), queue: NewQueue()}
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		p.queue.Push(msg.Bytes()...)
	}, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", p.name, err)
	}
	p.stop = stop
	return p, nil
}

// FindInPort returns the first input whose name contains substr, ignoring
// case.
func FindInPort(substr string) (drivers.In, error) {
	for _, in := range gomidi.GetInPorts() {
		if matchName(in.String(), substr) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input %q: %w", substr, midi.ErrPathNotFound)
}

// InPortNames lists the current input ports.
func InPortNames() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// OutPortNames lists the current output ports.
func OutPortNames() []string {
	var names []string
	for _, out := range gomidi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

func matchName(name, substr string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(substr))
}

func (p *PortInput) Name() string { return p.name }

// SetPollInterval sets how often PollByte rechecks for new bytes.
func (p *PortInput) SetPollInterval(d time.Duration) { p.queue.SetPollInterval(d) }

func (p *PortInput) PollByte(timeout time.Duration) (byte, bool, error) {
	return p.queue.PollByte(timeout)
}

func (p *PortInput) Close() error {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
	p.queue.Close()
	return nil
}
