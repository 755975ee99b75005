package smf

import "fmt"

// Division is the MThd division word. With the high bit clear it is ticks
// per quarter note; with it set the high byte is a negative SMPTE frame rate
// and the low byte ticks per frame.
type Division uint16

// DefaultPPQN is the resolution of a new Document.
const DefaultPPQN = 120

// MetricDivision returns a ticks-per-quarter-note division.
func MetricDivision(ppqn uint16) Division {
	return Division(ppqn & 0x7FFF)
}

// SMPTEDivision returns a frame based division. fps is 24, 25, 29 or 30.
func SMPTEDivision(fps, ticksPerFrame uint8) Division {
	return Division(uint16(uint8(-int8(fps)))<<8 | uint16(ticksPerFrame) | 0x8000)
}

// IsSMPTE reports whether d is frame based.
func (d Division) IsSMPTE() bool {
	return d&0x8000 != 0
}

// PPQN returns ticks per quarter note, or 0 for a frame based division.
func (d Division) PPQN() uint16 {
	if d.IsSMPTE() {
		return 0
	}
	return uint16(d)
}

// SMPTE returns frames per second and ticks per frame, or 0, 0 for a
// metric division.
func (d Division) SMPTE() (fps, ticksPerFrame uint8) {
	if !d.IsSMPTE() {
		return 0, 0
	}
	return uint8(-int8(d >> 8)), uint8(d)
}

func (d Division) String() string {
	if d.IsSMPTE() {
		fps, tpf := d.SMPTE()
		return fmt.Sprintf("%d fps, %d ticks/frame", fps, tpf)
	}
	return fmt.Sprintf("%d ppqn", d.PPQN())
}
