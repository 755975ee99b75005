package midi

import (
	"fmt"
	"strings"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName spells a note number with middle C (60) as C4.
func NoteName(n uint8) string {
	n &= 0x7F
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n/12)-1)
}

// Describe renders the fields of ev for display. Channels are shown
// 1-based.
func Describe(ev Event) string {
	switch e := ev.(type) {
	case NoteOn:
		return fmt.Sprintf("ch%-2d %-4s vel %d", e.Channel&0x0F+1, NoteName(e.Note), e.Velocity)
	case NoteOff:
		return fmt.Sprintf("ch%-2d %-4s vel %d", e.Channel&0x0F+1, NoteName(e.Note), e.Velocity)
	case AfterTouch:
		return fmt.Sprintf("ch%-2d %-4s pressure %d", e.Channel&0x0F+1, NoteName(e.Note), e.Pressure)
	case ControlChange:
		return fmt.Sprintf("ch%-2d cc %d = %d", e.Channel&0x0F+1, e.Controller, e.Value)
	case Controller:
		if Invariable(e.Type) {
			return fmt.Sprintf("ch%-2d", e.Channel&0x0F+1)
		}
		return fmt.Sprintf("ch%-2d = %d", e.Channel&0x0F+1, e.Value)
	case ProgramChange:
		return fmt.Sprintf("ch%-2d program %d", e.Channel&0x0F+1, e.Program)
	case ChannelPressure:
		return fmt.Sprintf("ch%-2d pressure %d", e.Channel&0x0F+1, e.Pressure)
	case PitchWheelChange:
		return fmt.Sprintf("ch%-2d %+.3f", e.Channel&0x0F+1, e.Value)
	case SetTempo:
		return fmt.Sprintf("%d us/qn (%.2f bpm)", e.USPQN, e.BPM())
	case KeySignature:
		return e.Key
	case TimeSignature:
		return fmt.Sprintf("%d/%d", e.Numerator, 1<<e.Denominator)
	case SequenceNumber:
		return fmt.Sprint(uint16(e))
	case ChannelPrefix:
		return fmt.Sprintf("ch%d", e&0x0F+1)
	case SMPTEOffset:
		return fmt.Sprintf("%02d:%02d:%02d:%02d.%02d", e.Hour, e.Minute, e.Second, e.Frame, e.Subframe)
	case TimeCode:
		return fmt.Sprintf("%02d:%02d:%02d:%02d @%v", e.Hour, e.Minute, e.Second, e.Frame, e.Rate)
	case MTCQuarterFrame:
		return fmt.Sprintf("piece %d = %d", e.MessageType, e.Value)
	case SongPositionPointer:
		return fmt.Sprintf("beat %d", uint16(e))
	case SongSelect:
		return fmt.Sprintf("song %d", uint8(e))
	case SystemExclusive:
		return hexBytes(e)
	case SequencerSpecific:
		return hexBytes(e)
	}
	if _, s, ok := TextOf(ev); ok {
		return fmt.Sprintf("%q", s)
	}
	return ""
}

func hexBytes(b []byte) string {
	const limit = 16
	if len(b) > limit {
		return fmt.Sprintf("% X … (%d bytes)", b[:limit], len(b))
	}
	return strings.TrimSpace(fmt.Sprintf("% X", b))
}
