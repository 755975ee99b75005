package midi

import (
	"bytes"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPitchWheelBoundaries(t *testing.T) {
	tests := []struct {
		v    float64
		wire uint16
	}{
		{-1, 0},
		{-0.5, 0x1000},
		{0, 0x2000},
		{0.5, 0x2FFF},
		{1, 0x3FFF},
		{-2, 0},
		{2, 0x3FFF},
	}
	for _, tt := range tests {
		if got := PitchWheelToWire(tt.v); got != tt.wire {
			t.Errorf("PitchWheelToWire(%v) = %#x, want %#x", tt.v, got, tt.wire)
		}
	}
	for _, w := range []uint16{0, 0x1000, 0x2000, 0x3FFF} {
		if got := PitchWheelToWire(PitchWheelFromWire(w)); got != w {
			t.Errorf("wire %#x -> %v -> %#x", w, PitchWheelFromWire(w), got)
		}
	}
}

func TestTempo(t *testing.T) {
	tests := []struct {
		bpm  float64
		want uint32
	}{
		{120, 500000},
		{280, 214285},
		{60, 1000000},
		{1, MaxUSPQN},
		{3.5762788, MaxUSPQN},
		{0, MaxUSPQN},
		{60_000_000, 1},
		{1e12, 1},
	}
	for _, tt := range tests {
		var tempo SetTempo
		tempo.SetBPM(tt.bpm)
		if tempo.USPQN != tt.want {
			t.Errorf("SetBPM(%v) = %d, want %d", tt.bpm, tempo.USPQN, tt.want)
		}
	}
	if NewSetTempo(0).USPQN != 1 || NewSetTempo(0xFFFFFFFF).USPQN != MaxUSPQN {
		t.Error("NewSetTempo does not clamp")
	}
	if bpm := NewSetTempo(500000).BPM(); bpm != 120 {
		t.Errorf("BPM = %v, want 120", bpm)
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		mi   uint8
		sf   int8
		want string
	}{
		{0, 0, "C"},
		{0, 3, "A"},
		{0, -3, "Eb"},
		{0, 7, "C#"},
		{0, -7, "Cb"},
		{1, 0, "Am"},
		{1, 7, "A#m"},
		{1, -7, "Abm"},
		{1, -1, "Dm"},
		{0, 8, "C"},
		{2, 0, "C"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.mi, tt.sf); got != tt.want {
			t.Errorf("KeyName(%d, %d) = %q, want %q", tt.mi, tt.sf, got, tt.want)
		}
	}
	// 253 is -3 as a signed byte
	ev, _, err := Decode(bytes.NewReader([]byte{0xFF, 0x59, 0x02, 253, 0x00}), 0)
	if err != nil || ev != (KeySignature{Key: "Eb"}) {
		t.Errorf("decode sf=253: %#v, %v", ev, err)
	}
	for name, want := range map[string][2]int{"A#": {0, -2}, "Bb": {0, -2}, "Gbm": {1, 3}, "H": {0, 0}} {
		mi, sf := KeySignature{Key: name}.MiSf()
		if int(mi) != want[0] || int(sf) != want[1] {
			t.Errorf("%q MiSf = (%d, %d), want %v", name, mi, sf, want)
		}
	}
}

func TestNumericProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("pitch wheel wire values survive a float round trip", prop.ForAll(
		func(w uint16) bool {
			return PitchWheelToWire(PitchWheelFromWire(w)) == w
		},
		gen.UInt16Range(0, 0x3FFF),
	))

	properties.Property("pitch wheel mapping is monotonic", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return PitchWheelToWire(a) <= PitchWheelToWire(b)
		},
		gen.Float64Range(-1, 1),
		gen.Float64Range(-1, 1),
	))

	properties.Property("pitch wheel decodes near its input", prop.ForAll(
		func(v float64) bool {
			return math.Abs(PitchWheelFromWire(PitchWheelToWire(v))-v) <= 1.0/0x1FFF
		},
		gen.Float64Range(-1, 1),
	))

	properties.Property("tempo is always in range", prop.ForAll(
		func(bpm float64) bool {
			us := TempoFromBPM(bpm).USPQN
			return us >= 1 && us <= MaxUSPQN
		},
		gen.Float64Range(-100, 1e9),
	))

	properties.Property("key signatures round trip through the table", prop.ForAll(
		func(mi uint8, sf int8) bool {
			k := NewKeySignature(mi, sf)
			gotMi, gotSf := k.MiSf()
			return gotMi == mi && gotSf == sf
		},
		gen.UInt8Range(0, 1),
		gen.Int8Range(-7, 7),
	))

	properties.TestingRun(t)
}
