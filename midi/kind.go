package midi

import "fmt"

// Kind identifies an event variant. The numeric values are stable and are
// used as type codes by callers that address events through Property.
// KindNone (0) means "no event".
type Kind uint8

const (
	KindNone Kind = iota
	KindText
	KindCopyrightNotice
	KindTrackName
	KindInstrumentName
	KindLyric
	KindMarker
	KindCuePoint
	KindEndOfTrack
	KindChannelPrefix
	KindSetTempo
	KindSMPTEOffset
	KindTimeSignature
	KindKeySignature
	KindSequencerSpecific
	KindNoteOn
	KindNoteOff
	KindAfterTouch
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchWheelChange
	KindSequenceNumber
	KindSystemExclusive
	KindMTCQuarterFrame
	KindSongPositionPointer
	KindSongSelect
	KindTuneRequest
	KindMIDIClock
	KindMIDIStart
	KindMIDIContinue
	KindMIDIStop
	KindActiveSense
	KindReset
	KindBankSelect
	KindBankSelectLSB
	KindModulationWheel
	KindModulationWheelLSB
	KindBreathController
	KindBreathControllerLSB
	KindFootPedal
	KindFootPedalLSB
	KindPortamentoTime
	KindPortamentoTimeLSB
	KindDataEntry
	KindDataEntryLSB
	KindVolume
	KindVolumeLSB
	KindBalance
	KindBalanceLSB
	KindPan
	KindPanLSB
	KindExpression
	KindExpressionLSB
	KindEffectControl1
	KindEffectControl1LSB
	KindEffectControl2
	KindEffectControl2LSB
	KindHoldPedal
	KindPortamento
	KindSostenuto
	KindSoftPedal
	KindLegato
	KindHold2Pedal
	KindSoundVariation
	KindSoundTimbre
	KindSoundReleaseTime
	KindSoundAttack
	KindSoundBrightness
	KindSoundControl1
	KindSoundControl2
	KindSoundControl3
	KindSoundControl4
	KindSoundControl5
	KindGeneralPurpose1
	KindGeneralPurpose1LSB
	KindGeneralPurpose2
	KindGeneralPurpose2LSB
	KindGeneralPurpose3
	KindGeneralPurpose3LSB
	KindGeneralPurpose4
	KindGeneralPurpose4LSB
	KindGeneralPurpose5
	KindGeneralPurpose6
	KindGeneralPurpose7
	KindGeneralPurpose8
	KindEffectsLevel
	KindTremoloLevel
	KindChorusLevel
	KindCelesteLevel
	KindPhaserLevel
	KindDataIncrement
	KindDataDecrement
	KindRegisteredParameterNumber
	KindRegisteredParameterNumberLSB
	KindNonRegisteredParameterNumber
	KindNonRegisteredParameterNumberLSB
	KindAllControllersOff
	KindLocalControl
	KindAllNotesOff
	KindAllSoundOff
	KindOmniOff
	KindOmniOn
	KindMonophonicOperation
	KindPolyphonicOperation
	KindTimeCode

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:                            "None",
	KindText:                            "Text",
	KindCopyrightNotice:                 "CopyrightNotice",
	KindTrackName:                       "TrackName",
	KindInstrumentName:                  "InstrumentName",
	KindLyric:                           "Lyric",
	KindMarker:                          "Marker",
	KindCuePoint:                        "CuePoint",
	KindEndOfTrack:                      "EndOfTrack",
	KindChannelPrefix:                   "ChannelPrefix",
	KindSetTempo:                        "SetTempo",
	KindSMPTEOffset:                     "SMPTEOffset",
	KindTimeSignature:                   "TimeSignature",
	KindKeySignature:                    "KeySignature",
	KindSequencerSpecific:               "SequencerSpecific",
	KindNoteOn:                          "NoteOn",
	KindNoteOff:                         "NoteOff",
	KindAfterTouch:                      "AfterTouch",
	KindControlChange:                   "ControlChange",
	KindProgramChange:                   "ProgramChange",
	KindChannelPressure:                 "ChannelPressure",
	KindPitchWheelChange:                "PitchWheelChange",
	KindSequenceNumber:                  "SequenceNumber",
	KindSystemExclusive:                 "SystemExclusive",
	KindMTCQuarterFrame:                 "MTCQuarterFrame",
	KindSongPositionPointer:             "SongPositionPointer",
	KindSongSelect:                      "SongSelect",
	KindTuneRequest:                     "TuneRequest",
	KindMIDIClock:                       "MIDIClock",
	KindMIDIStart:                       "MIDIStart",
	KindMIDIContinue:                    "MIDIContinue",
	KindMIDIStop:                        "MIDIStop",
	KindActiveSense:                     "ActiveSense",
	KindReset:                           "Reset",
	KindBankSelect:                      "BankSelect",
	KindBankSelectLSB:                   "BankSelectLSB",
	KindModulationWheel:                 "ModulationWheel",
	KindModulationWheelLSB:              "ModulationWheelLSB",
	KindBreathController:                "BreathController",
	KindBreathControllerLSB:             "BreathControllerLSB",
	KindFootPedal:                       "FootPedal",
	KindFootPedalLSB:                    "FootPedalLSB",
	KindPortamentoTime:                  "PortamentoTime",
	KindPortamentoTimeLSB:               "PortamentoTimeLSB",
	KindDataEntry:                       "DataEntry",
	KindDataEntryLSB:                    "DataEntryLSB",
	KindVolume:                          "Volume",
	KindVolumeLSB:                       "VolumeLSB",
	KindBalance:                         "Balance",
	KindBalanceLSB:                      "BalanceLSB",
	KindPan:                             "Pan",
	KindPanLSB:                          "PanLSB",
	KindExpression:                      "Expression",
	KindExpressionLSB:                   "ExpressionLSB",
	KindEffectControl1:                  "EffectControl1",
	KindEffectControl1LSB:               "EffectControl1LSB",
	KindEffectControl2:                  "EffectControl2",
	KindEffectControl2LSB:               "EffectControl2LSB",
	KindHoldPedal:                       "HoldPedal",
	KindPortamento:                      "Portamento",
	KindSostenuto:                       "Sostenuto",
	KindSoftPedal:                       "SoftPedal",
	KindLegato:                          "Legato",
	KindHold2Pedal:                      "Hold2Pedal",
	KindSoundVariation:                  "SoundVariation",
	KindSoundTimbre:                     "SoundTimbre",
	KindSoundReleaseTime:                "SoundReleaseTime",
	KindSoundAttack:                     "SoundAttack",
	KindSoundBrightness:                 "SoundBrightness",
	KindSoundControl1:                   "SoundControl1",
	KindSoundControl2:                   "SoundControl2",
	KindSoundControl3:                   "SoundControl3",
	KindSoundControl4:                   "SoundControl4",
	KindSoundControl5:                   "SoundControl5",
	KindGeneralPurpose1:                 "GeneralPurpose1",
	KindGeneralPurpose1LSB:              "GeneralPurpose1LSB",
	KindGeneralPurpose2:                 "GeneralPurpose2",
	KindGeneralPurpose2LSB:              "GeneralPurpose2LSB",
	KindGeneralPurpose3:                 "GeneralPurpose3",
	KindGeneralPurpose3LSB:              "GeneralPurpose3LSB",
	KindGeneralPurpose4:                 "GeneralPurpose4",
	KindGeneralPurpose4LSB:              "GeneralPurpose4LSB",
	KindGeneralPurpose5:                 "GeneralPurpose5",
	KindGeneralPurpose6:                 "GeneralPurpose6",
	KindGeneralPurpose7:                 "GeneralPurpose7",
	KindGeneralPurpose8:                 "GeneralPurpose8",
	KindEffectsLevel:                    "EffectsLevel",
	KindTremoloLevel:                    "TremoloLevel",
	KindChorusLevel:                     "ChorusLevel",
	KindCelesteLevel:                    "CelesteLevel",
	KindPhaserLevel:                     "PhaserLevel",
	KindDataIncrement:                   "DataIncrement",
	KindDataDecrement:                   "DataDecrement",
	KindRegisteredParameterNumber:       "RegisteredParameterNumber",
	KindRegisteredParameterNumberLSB:    "RegisteredParameterNumberLSB",
	KindNonRegisteredParameterNumber:    "NonRegisteredParameterNumber",
	KindNonRegisteredParameterNumberLSB: "NonRegisteredParameterNumberLSB",
	KindAllControllersOff:               "AllControllersOff",
	KindLocalControl:                    "LocalControl",
	KindAllNotesOff:                     "AllNotesOff",
	KindAllSoundOff:                     "AllSoundOff",
	KindOmniOff:                         "OmniOff",
	KindOmniOn:                          "OmniOn",
	KindMonophonicOperation:             "MonophonicOperation",
	KindPolyphonicOperation:             "PolyphonicOperation",
	KindTimeCode:                        "TimeCode",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsController reports whether k is one of the named controller variants.
func (k Kind) IsController() bool {
	return k >= KindBankSelect && k <= KindPolyphonicOperation
}

// Category is the MIDI 1.0 message class of a kind.
type Category int

const (
	CategoryNone Category = iota
	CategoryMeta
	CategoryChannelVoice
	CategoryChannelMode
	CategorySystemCommon
	CategorySystemRealtime
	CategorySystemExclusive
)

func (c Category) String() string {
	switch c {
	case CategoryMeta:
		return "meta"
	case CategoryChannelVoice:
		return "voice"
	case CategoryChannelMode:
		return "mode"
	case CategorySystemCommon:
		return "common"
	case CategorySystemRealtime:
		return "realtime"
	case CategorySystemExclusive:
		return "sysex"
	}
	return "none"
}

// Category returns the group k belongs to.
func (k Kind) Category() Category {
	switch {
	case k == KindNone || k >= kindCount:
		return CategoryNone
	case k <= KindSequencerSpecific, k == KindSequenceNumber:
		return CategoryMeta
	case k == KindSystemExclusive, k == KindTimeCode:
		return CategorySystemExclusive
	case k <= KindPitchWheelChange:
		return CategoryChannelVoice
	case k >= KindMIDIClock && k <= KindReset:
		return CategorySystemRealtime
	case k >= KindMTCQuarterFrame && k <= KindTuneRequest:
		return CategorySystemCommon
	case k.IsController():
		if n := controllerNumbers[k]; n >= 0x78 {
			return CategoryChannelMode
		}
		return CategoryChannelVoice
	}
	return CategoryNone
}
