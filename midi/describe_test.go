package midi

import (
	"strings"
	"testing"
)

func TestNoteName(t *testing.T) {
	for n, want := range map[uint8]string{0: "C-1", 60: "C4", 61: "C#4", 69: "A4", 127: "G9"} {
		if got := NoteName(n); got != want {
			t.Errorf("NoteName(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NoteOn{Channel: 0, Note: 60, Velocity: 100}, "ch1  C4   vel 100"},
		{ControlChange{Channel: 9, Controller: 3, Value: 4}, "ch10 cc 3 = 4"},
		{Volume(1, 90), "ch2  = 90"},
		{AllNotesOff(15), "ch16"},
		{PitchWheelChange{Value: -1}, "ch1  -1.000"},
		{NewSetTempo(500000), "500000 us/qn (120.00 bpm)"},
		{TimeSignature{Numerator: 6, Denominator: 3}, "6/8"},
		{KeySignature{Key: "F#m"}, "F#m"},
		{Lyric("la"), `"la"`},
		{SystemExclusive{0x7E, 0x01}, "7E 01"},
		{MIDIClock{}, ""},
	}
	for _, tt := range tests {
		if got := Describe(tt.ev); got != tt.want {
			t.Errorf("Describe(%#v) = %q, want %q", tt.ev, got, tt.want)
		}
	}

	long := Describe(SystemExclusive(make([]byte, 40)))
	if !strings.HasSuffix(long, "(40 bytes)") {
		t.Errorf("long sysex = %q", long)
	}
}
