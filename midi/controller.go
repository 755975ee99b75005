package midi

// controllerNumbers maps each named controller kind to its control change
// number (the first data byte after 0xBn).
var controllerNumbers = map[Kind]uint8{
	KindBankSelect:                      0x00,
	KindModulationWheel:                 0x01,
	KindBreathController:                0x02,
	KindFootPedal:                       0x04,
	KindPortamentoTime:                  0x05,
	KindDataEntry:                       0x06,
	KindVolume:                          0x07,
	KindBalance:                         0x08,
	KindPan:                             0x0A,
	KindExpression:                      0x0B,
	KindEffectControl1:                  0x0C,
	KindEffectControl2:                  0x0D,
	KindGeneralPurpose1:                 0x10,
	KindGeneralPurpose2:                 0x11,
	KindGeneralPurpose3:                 0x12,
	KindGeneralPurpose4:                 0x13,
	KindBankSelectLSB:                   0x20,
	KindModulationWheelLSB:              0x21,
	KindBreathControllerLSB:             0x22,
	KindFootPedalLSB:                    0x24,
	KindPortamentoTimeLSB:               0x25,
	KindDataEntryLSB:                    0x26,
	KindVolumeLSB:                       0x27,
	KindBalanceLSB:                      0x28,
	KindPanLSB:                          0x2A,
	KindExpressionLSB:                   0x2B,
	KindEffectControl1LSB:               0x2C,
	KindEffectControl2LSB:               0x2D,
	KindGeneralPurpose1LSB:              0x30,
	KindGeneralPurpose2LSB:              0x31,
	KindGeneralPurpose3LSB:              0x32,
	KindGeneralPurpose4LSB:              0x33,
	KindHoldPedal:                       0x40,
	KindPortamento:                      0x41,
	KindSostenuto:                       0x42,
	KindSoftPedal:                       0x43,
	KindLegato:                          0x44,
	KindHold2Pedal:                      0x45,
	KindSoundVariation:                  0x46,
	KindSoundTimbre:                     0x47,
	KindSoundReleaseTime:                0x48,
	KindSoundAttack:                     0x49,
	KindSoundBrightness:                 0x4A,
	KindSoundControl1:                   0x4B,
	KindSoundControl2:                   0x4C,
	KindSoundControl3:                   0x4D,
	KindSoundControl4:                   0x4E,
	KindSoundControl5:                   0x4F,
	KindGeneralPurpose5:                 0x50,
	KindGeneralPurpose6:                 0x51,
	KindGeneralPurpose7:                 0x52,
	KindGeneralPurpose8:                 0x53,
	KindEffectsLevel:                    0x5B,
	KindTremoloLevel:                    0x5C,
	KindChorusLevel:                     0x5D,
	KindCelesteLevel:                    0x5E,
	KindPhaserLevel:                     0x5F,
	KindDataIncrement:                   0x60,
	KindDataDecrement:                   0x61,
	KindNonRegisteredParameterNumberLSB: 0x62,
	KindNonRegisteredParameterNumber:    0x63,
	KindRegisteredParameterNumberLSB:    0x64,
	KindRegisteredParameterNumber:       0x65,
	KindAllSoundOff:                     0x78,
	KindAllControllersOff:               0x79,
	KindLocalControl:                    0x7A,
	KindAllNotesOff:                     0x7B,
	KindOmniOff:                         0x7C,
	KindOmniOn:                          0x7D,
	KindMonophonicOperation:             0x7E,
	KindPolyphonicOperation:             0x7F,
}

var controllerKinds = func() map[uint8]Kind {
	m := make(map[uint8]Kind, len(controllerNumbers))
	for k, n := range controllerNumbers {
		m[n] = k
	}
	return m
}()

// invariable controllers carry no value; they are written with a zero data byte.
var invariable = map[Kind]bool{
	KindDataIncrement:       true,
	KindDataDecrement:       true,
	KindAllSoundOff:         true,
	KindAllControllersOff:   true,
	KindAllNotesOff:         true,
	KindOmniOff:             true,
	KindOmniOn:              true,
	KindPolyphonicOperation: true,
}

// fineHalf pairs each coarse 14-bit controller with its fine partner.
var fineHalf = map[Kind]Kind{
	KindBankSelect:                   KindBankSelectLSB,
	KindModulationWheel:              KindModulationWheelLSB,
	KindBreathController:             KindBreathControllerLSB,
	KindFootPedal:                    KindFootPedalLSB,
	KindPortamentoTime:               KindPortamentoTimeLSB,
	KindDataEntry:                    KindDataEntryLSB,
	KindVolume:                       KindVolumeLSB,
	KindBalance:                      KindBalanceLSB,
	KindPan:                          KindPanLSB,
	KindExpression:                   KindExpressionLSB,
	KindEffectControl1:               KindEffectControl1LSB,
	KindEffectControl2:               KindEffectControl2LSB,
	KindGeneralPurpose1:              KindGeneralPurpose1LSB,
	KindGeneralPurpose2:              KindGeneralPurpose2LSB,
	KindGeneralPurpose3:              KindGeneralPurpose3LSB,
	KindGeneralPurpose4:              KindGeneralPurpose4LSB,
	KindRegisteredParameterNumber:    KindRegisteredParameterNumberLSB,
	KindNonRegisteredParameterNumber: KindNonRegisteredParameterNumberLSB,
}

// ControllerNumber returns the control change number for a named controller kind.
func ControllerNumber(k Kind) (uint8, bool) {
	n, ok := controllerNumbers[k]
	return n, ok
}

// ControllerKind returns the named controller kind for a control change number.
func ControllerKind(number uint8) (Kind, bool) {
	k, ok := controllerKinds[number&0x7F]
	return k, ok
}

// Invariable reports whether k is a controller that carries no value.
func Invariable(k Kind) bool {
	return invariable[k]
}

// FineHalf returns the LSB partner of a coarse 14-bit controller.
func FineHalf(k Kind) (Kind, bool) {
	f, ok := fineHalf[k]
	return f, ok
}

// Split14 returns the messages that set a 14-bit controller value. The
// coarse message is always present; the fine message is omitted when the
// low 7 bits are zero. Kinds without a fine partner yield only the coarse
// message.
func Split14(k Kind, channel uint8, value uint16) []Event {
	value &= 0x3FFF
	out := []Event{Controller{Type: k, Channel: channel, Value: uint8(value >> 7)}}
	if fine, ok := fineHalf[k]; ok && value&0x7F != 0 {
		out = append(out, Controller{Type: fine, Channel: channel, Value: uint8(value & 0x7F)})
	}
	return out
}

// Join14 combines coarse and fine controller values into a 14-bit value.
func Join14(coarse, fine uint8) uint16 {
	return uint16(coarse&0x7F)<<7 | uint16(fine&0x7F)
}

// NewController builds a named controller event. Values of invariable
// controllers are dropped.
func NewController(k Kind, channel, value uint8) Controller {
	if invariable[k] {
		value = 0
	}
	return Controller{Type: k, Channel: channel & 0x0F, Value: value & 0x7F}
}

func BankSelect(ch, v uint8) Controller         { return NewController(KindBankSelect, ch, v) }
func BankSelectLSB(ch, v uint8) Controller      { return NewController(KindBankSelectLSB, ch, v) }
func ModulationWheel(ch, v uint8) Controller    { return NewController(KindModulationWheel, ch, v) }
func ModulationWheelLSB(ch, v uint8) Controller { return NewController(KindModulationWheelLSB, ch, v) }
func BreathController(ch, v uint8) Controller   { return NewController(KindBreathController, ch, v) }
func FootPedal(ch, v uint8) Controller          { return NewController(KindFootPedal, ch, v) }
func PortamentoTime(ch, v uint8) Controller     { return NewController(KindPortamentoTime, ch, v) }
func DataEntry(ch, v uint8) Controller          { return NewController(KindDataEntry, ch, v) }
func DataEntryLSB(ch, v uint8) Controller       { return NewController(KindDataEntryLSB, ch, v) }
func Volume(ch, v uint8) Controller             { return NewController(KindVolume, ch, v) }
func VolumeLSB(ch, v uint8) Controller          { return NewController(KindVolumeLSB, ch, v) }
func Balance(ch, v uint8) Controller            { return NewController(KindBalance, ch, v) }
func Pan(ch, v uint8) Controller                { return NewController(KindPan, ch, v) }
func Expression(ch, v uint8) Controller         { return NewController(KindExpression, ch, v) }
func HoldPedal(ch, v uint8) Controller          { return NewController(KindHoldPedal, ch, v) }
func Portamento(ch, v uint8) Controller         { return NewController(KindPortamento, ch, v) }
func Sostenuto(ch, v uint8) Controller          { return NewController(KindSostenuto, ch, v) }
func SoftPedal(ch, v uint8) Controller          { return NewController(KindSoftPedal, ch, v) }
func Legato(ch, v uint8) Controller             { return NewController(KindLegato, ch, v) }
func EffectsLevel(ch, v uint8) Controller       { return NewController(KindEffectsLevel, ch, v) }
func ChorusLevel(ch, v uint8) Controller        { return NewController(KindChorusLevel, ch, v) }
func RPN(ch, v uint8) Controller                { return NewController(KindRegisteredParameterNumber, ch, v) }
func RPNLSB(ch, v uint8) Controller             { return NewController(KindRegisteredParameterNumberLSB, ch, v) }
func NRPN(ch, v uint8) Controller               { return NewController(KindNonRegisteredParameterNumber, ch, v) }
func NRPNLSB(ch, v uint8) Controller            { return NewController(KindNonRegisteredParameterNumberLSB, ch, v) }
func LocalControl(ch, v uint8) Controller       { return NewController(KindLocalControl, ch, v) }
func MonophonicOperation(ch, v uint8) Controller {
	return NewController(KindMonophonicOperation, ch, v)
}

func DataIncrement(ch uint8) Controller       { return NewController(KindDataIncrement, ch, 0) }
func DataDecrement(ch uint8) Controller       { return NewController(KindDataDecrement, ch, 0) }
func AllControllersOff(ch uint8) Controller   { return NewController(KindAllControllersOff, ch, 0) }
func AllNotesOff(ch uint8) Controller         { return NewController(KindAllNotesOff, ch, 0) }
func AllSoundOff(ch uint8) Controller         { return NewController(KindAllSoundOff, ch, 0) }
func OmniOff(ch uint8) Controller             { return NewController(KindOmniOff, ch, 0) }
func OmniOn(ch uint8) Controller              { return NewController(KindOmniOn, ch, 0) }
func PolyphonicOperation(ch uint8) Controller { return NewController(KindPolyphonicOperation, ch, 0) }
