package midi

import (
	"math"
	"strings"
)

// MaxUSPQN is the largest tempo a SetTempo payload can carry.
const MaxUSPQN = 0xFFFFFF

// SetTempo is meta 0x51, in microseconds per quarter note.
type SetTempo struct {
	USPQN uint32
}

// NewSetTempo clamps uspqn to [1, MaxUSPQN].
func NewSetTempo(uspqn uint32) SetTempo {
	return SetTempo{USPQN: clampTempo(uspqn)}
}

// TempoFromBPM converts beats per minute to a clamped SetTempo.
func TempoFromBPM(bpm float64) SetTempo {
	if bpm <= 0 || math.IsNaN(bpm) {
		return SetTempo{USPQN: MaxUSPQN}
	}
	us := 60_000_000 / bpm
	if us >= MaxUSPQN {
		return SetTempo{USPQN: MaxUSPQN}
	}
	return NewSetTempo(uint32(us))
}

func clampTempo(us uint32) uint32 {
	if us < 1 {
		return 1
	}
	if us > MaxUSPQN {
		return MaxUSPQN
	}
	return us
}

// BPM returns the tempo in beats per minute.
func (e SetTempo) BPM() float64 {
	return 60_000_000 / float64(clampTempo(e.USPQN))
}

// SetBPM replaces the tempo, clamping to the representable range.
func (e *SetTempo) SetBPM(bpm float64) {
	*e = TempoFromBPM(bpm)
}

func (SetTempo) Kind() Kind { return KindSetTempo }
func (e SetTempo) Bytes() []byte {
	us := clampTempo(e.USPQN)
	return meta(0x51, []byte{byte(us >> 16), byte(us >> 8), byte(us)})
}

// PitchWheelToWire converts a value in [-1, 1] to the unsigned 14-bit wire
// value centred on 0x2000. Out of range inputs are clamped.
func PitchWheelToWire(v float64) uint16 {
	switch {
	case math.IsNaN(v) || v == 0:
		return 0x2000
	case v <= -1:
		return 0
	case v >= 1:
		return 0x3FFF
	case v < 0:
		return uint16(math.Floor(0x2000 * (1 + v)))
	}
	// the epsilon keeps k/0x1FFF from flooring to k-1
	return 0x2000 + uint16(math.Floor(v*0x1FFF+1e-9))
}

// PitchWheelFromWire is the inverse of PitchWheelToWire.
func PitchWheelFromWire(w uint16) float64 {
	w &= 0x3FFF
	if w < 0x2000 {
		return (float64(w) - 0x2000) / 0x2000
	}
	return float64(w-0x2000) / 0x1FFF
}

// KeySignature is meta 0x59, held as a key name such as "Eb" or "F#m".
type KeySignature struct {
	Key string
}

// Key names indexed by sharps/flats + 7.
var (
	majorKeys = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"}
	minorKeys = [15]string{"Abm", "Ebm", "Bbm", "Fm", "Cm", "Gm", "Dm", "Am", "Em", "Bm", "F#m", "C#m", "G#m", "D#m", "A#m"}
)

var enharmonic = map[string]string{
	"A#":  "Bb",
	"D#":  "Eb",
	"G#":  "Ab",
	"Gbm": "F#m",
	"Dbm": "C#m",
	"Cbm": "Bm",
	"Fb":  "E",
	"E#":  "F",
	"B#":  "C",
}

// KeyName returns the key for a sharps/flats count and mode (0 major,
// 1 minor). Anything outside the table is "C".
func KeyName(mi uint8, sf int8) string {
	if sf < -7 || sf > 7 {
		return "C"
	}
	switch mi {
	case 0:
		return majorKeys[int(sf)+7]
	case 1:
		return minorKeys[int(sf)+7]
	}
	return "C"
}

// NewKeySignature builds a KeySignature from its wire fields.
func NewKeySignature(mi uint8, sf int8) KeySignature {
	return KeySignature{Key: KeyName(mi, sf)}
}

// MiSf returns the mode and sharps/flats count for the key. Unknown names
// map to C major.
func (e KeySignature) MiSf() (mi uint8, sf int8) {
	key := strings.TrimSpace(e.Key)
	if alias, ok := enharmonic[key]; ok {
		key = alias
	}
	for i := range majorKeys {
		if majorKeys[i] == key {
			return 0, int8(i - 7)
		}
		if minorKeys[i] == key {
			return 1, int8(i - 7)
		}
	}
	return 0, 0
}

func (KeySignature) Kind() Kind { return KindKeySignature }
func (e KeySignature) Bytes() []byte {
	mi, sf := e.MiSf()
	return meta(0x59, []byte{byte(sf), mi})
}
