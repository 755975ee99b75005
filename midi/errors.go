package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMIDIFile is returned when a file cannot be opened or read.
	ErrInvalidMIDIFile = errors.New("invalid midi file")
	// ErrInvalidBytes is returned for a malformed chunk tag or an unparseable event.
	ErrInvalidBytes = errors.New("invalid bytes")
	// ErrUnknownMetaEvent marks a meta event with an unrecognised type. Recoverable.
	ErrUnknownMetaEvent = errors.New("unknown meta event")
	// ErrIllegibleString marks a text meta event whose payload cannot be decoded. Recoverable.
	ErrIllegibleString = errors.New("illegible string")
	// ErrIgnored marks bytes that were consumed but produce no event in this context. Recoverable.
	ErrIgnored = errors.New("ignored")
	// ErrEventNotFound is returned for an event id the document does not hold.
	ErrEventNotFound = errors.New("event not found")
	// ErrTrackOutOfBounds is returned when a track index exceeds the document limit.
	ErrTrackOutOfBounds = errors.New("track out of bounds")
	// ErrPathNotFound is returned when a file or device path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrPipeBroken is returned when a live byte source fails.
	ErrPipeBroken = errors.New("pipe broken")
	// ErrMissingHeader is returned when MTrk appears before MThd.
	ErrMissingHeader = errors.New("missing header chunk")
	// ErrKilled is returned by a listener that was stopped.
	ErrKilled = errors.New("listener killed")
	// ErrNoSuchProperty is returned for a property index an event does not have.
	ErrNoSuchProperty = errors.New("no such property")
)

// BytesError carries the offending bytes alongside an error kind.
type BytesError struct {
	Err   error
	Bytes []byte
}

func (e *BytesError) Error() string {
	return fmt.Sprintf("%v: % X", e.Err, e.Bytes)
}

func (e *BytesError) Unwrap() error {
	return e.Err
}

func bytesError(err error, b ...byte) error {
	return &BytesError{Err: err, Bytes: b}
}

// IsRecoverable reports whether err only affects a single event, so a track
// decode can skip it and carry on.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUnknownMetaEvent) ||
		errors.Is(err, ErrIllegibleString) ||
		errors.Is(err, ErrIgnored)
}
