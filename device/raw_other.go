//go:build !linux

package device

import (
	"fmt"
	"time"

	"go-smf/midi"
)

// RawDevice is only available on linux.
type RawDevice struct{}

func RawPath(card, dev int) string {
	return fmt.Sprintf("/dev/snd/midiC%dD%d", card, dev)
}

func OpenRaw(card, dev int) (*RawDevice, error) {
	return OpenRawPath(RawPath(card, dev))
}

func OpenRawPath(path string) (*RawDevice, error) {
	return nil, fmt.Errorf("%s: %w", path, midi.ErrPathNotFound)
}

func (d *RawDevice) Path() string { return "" }

func (d *RawDevice) PollByte(time.Duration) (byte, bool, error) {
	return 0, false, midi.ErrPipeBroken
}

func (d *RawDevice) Close() error { return nil }
