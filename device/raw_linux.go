//go:build linux

package device

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"go-smf/midi"
)

// RawDevice reads an ALSA rawmidi device file such as /dev/snd/midiC1D0.
// Reads go through poll(2) so a quiet device never blocks a Listener
// past its read timeout.
type RawDevice struct {
	path    string
	fd      int
	pending []byte
	buf     [64]byte
}

// RawPath returns the device file for an ALSA card and device number.
func RawPath(card, dev int) string {
	return fmt.Sprintf("/dev/snd/midiC%dD%d", card, dev)
}

// OpenRaw opens a rawmidi device read-only.
func OpenRaw(card, dev int) (*RawDevice, error) {
	return OpenRawPath(RawPath(card, dev))
}

func OpenRawPath(path string) (*RawDevice, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%s: %w", path, midi.ErrPathNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &RawDevice{path: path, fd: fd}, nil
}

func (d *RawDevice) Path() string { return d.path }

func (d *RawDevice) PollByte(timeout time.Duration) (byte, bool, error) {
	if len(d.pending) == 0 {
		if err := d.fill(timeout); err != nil {
			return 0, false, err
		}
		if len(d.pending) == 0 {
			return 0, false, nil
		}
	}
	b := d.pending[0]
	d.pending = d.pending[1:]
	return b, true, nil
}

func (d *RawDevice) fill(timeout time.Duration) error {
	if d.fd < 0 {
		return midi.ErrPipeBroken
	}
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return nil
		}
		return fmt.Errorf("%w: poll %s: %w", midi.ErrPipeBroken, d.path, err)
	}
	if n == 0 {
		return nil
	}
	if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return fmt.Errorf("%w: %s hung up", midi.ErrPipeBroken, d.path)
	}

	r, err := unix.Read(d.fd, d.buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return nil
	case err != nil:
		return fmt.Errorf("%w: read %s: %w", midi.ErrPipeBroken, d.path, err)
	case r == 0:
		return fmt.Errorf("%w: %s closed", midi.ErrPipeBroken, d.path)
	}
	d.pending = d.buf[:r]
	return nil
}

func (d *RawDevice) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
