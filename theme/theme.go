package theme

import (
	"github.com/charmbracelet/lipgloss"

	"go-smf/midi"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

// Symbols mark event rows in the monitor.
type Symbols struct {
	NoteOn   rune // ● key down
	NoteOff  rune // ○ key up
	Control  rune // ◆ controllers, program, pressure, pitch
	Meta     rune // ■ file-only events
	System   rune // ◇ sysex and system common
	Realtime rune // · clock and transport
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			NoteOn:   '●',
			NoteOff:  '○',
			Control:  '◆',
			Meta:     '■',
			System:   '◇',
			Realtime: '·',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleSurface = 0.1 // dark purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// RGB returns raw RGB for any normalized value
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

// Velocity colors a 7-bit value along the palette.
func (t *Theme) Velocity(v uint8) lipgloss.Color {
	if v >= 0x7F {
		return t.Success()
	}
	return t.Color(RoleMuted + (1-RoleMuted)*float64(v&0x7F)/127)
}

// Category returns the color for an event category.
func (t *Theme) Category(c midi.Category) lipgloss.Color {
	switch c {
	case midi.CategoryChannelVoice:
		return t.FG()
	case midi.CategoryChannelMode:
		return t.Warning()
	case midi.CategoryMeta:
		return t.Accent()
	case midi.CategorySystemExclusive, midi.CategorySystemCommon:
		return t.Cursor()
	case midi.CategorySystemRealtime:
		return t.Muted()
	}
	return t.FG()
}

// Symbol picks the row marker for ev.
func (t *Theme) Symbol(ev midi.Event) rune {
	switch ev.(type) {
	case midi.NoteOn:
		return t.Symbols.NoteOn
	case midi.NoteOff:
		return t.Symbols.NoteOff
	}
	switch ev.Kind().Category() {
	case midi.CategoryMeta:
		return t.Symbols.Meta
	case midi.CategorySystemRealtime:
		return t.Symbols.Realtime
	case midi.CategorySystemCommon, midi.CategorySystemExclusive:
		return t.Symbols.System
	}
	return t.Symbols.Control
}
