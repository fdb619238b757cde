/*------------------------------------------------------------------------------
* catalog.go : gnss observation-code / signal-id / frequency catalog
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

import "strings"

// Code is an observation-code enumeration value. CodeNone (0) means "no
// code". The enumeration is the authoritative identity; obscodes holds the
// RINEX-style 2-character interchange strings.
type Code uint8

const CodeNone Code = 0

// Code values referenced by name elsewhere in this package (the GPS
// pre-remap table in toSigID, mainly). The rest of the catalog is only ever
// addressed by string via obs2Code/code2Obs.
const (
	CodeL1C Code = 1
	CodeL1P Code = 2
	CodeL1W Code = 3
	CodeL1Y Code = 4
	CodeL1M Code = 5
	CodeL1N Code = 6
	CodeL2D Code = 15
	CodeL2P Code = 19
	CodeL2W Code = 20
	CodeL2Y Code = 21
	CodeL2M Code = 22
	CodeL2N Code = 23
)

// obscodes is the RINEX 3.04 observation-code string table, index 0 and the
// final entry both the empty string (CodeNone and "one past MaxCode").
// Ported 1:1 from original_source/rtcmCnv.c's obscodes[] (the NFREQ=7
// configuration); see FengXuebin-gnssgo/src/common.go for the Go-idiom
// precedent this follows.
var obscodes = [...]string{
	"", "1C", "1P", "1W", "1Y", "1M", "1N", "1S", "1L", "1E",
	"1A", "1B", "1X", "1Z", "2C", "2D", "2S", "2L", "2X", "2P",
	"2W", "2Y", "2M", "2N", "5I", "5Q", "5X", "7I", "7Q", "7X",
	"6A", "6B", "6C", "6X", "6Z", "6S", "6L", "8L", "8Q", "8X",
	"2I", "2Q", "6I", "6Q", "3I", "3Q", "3X", "1I", "1Q", "5A",
	"5B", "5C", "9A", "9B", "9C", "9X", "1D", "5D", "5P", "5Z",
	"6E", "7D", "7P", "7Z", "8D", "8P", "4A", "4B", "4X", "",
}

const maxCode = Code(len(obscodes) - 2)

// code2Obs returns the RINEX code string for code, or "" if code is out of
// range.
func code2Obs(code Code) string {
	if code <= CodeNone || maxCode < code {
		return ""
	}
	return obscodes[code]
}

// obs2Code returns the Code for a RINEX code string, or CodeNone if obs is
// not a known code.
func obs2Code(obs string) Code {
	for i := 1; obscodes[i] != ""; i++ {
		if obscodes[i] == obs {
			return Code(i)
		}
	}
	return CodeNone
}

// gloFCN is the static GLONASS frequency-channel-number table indexed by
// slot (prn-1); -8 would mean "no data", though every entry here holds a
// channel. Ported from original_source/rtcmCnv.c's glo_fcn[32].
var gloFCN = [32]int{
	1, -4, 5, 6, 1, -4, 5, 6,
	2, -7, 0, -1, -2, -7, 0, -1,
	4, -3, 3, 2, 4, -3, 3, 2,
	-5, 1, 1, 1, 1, 1, 1, 1,
}

// msmSig<C> map an MSM signal id (1-based, index 0 unused) to its RINEX code
// string for constellation C. Ported from original_source/rtcmCnv.c's
// msm_sig_gps/glo/gal/cmp/sbs/qzs/irn[32] tables.
var msmSigGPS = [32]string{
	"", "1C", "1P", "1W", "", "", "", "2C", "2P", "2W", "", "",
	"", "", "2S", "2L", "2X", "", "", "", "", "5I", "5Q", "5X",
	"", "", "", "", "", "1S", "1L", "1X",
}

var msmSigGLO = [32]string{
	"", "1C", "1P", "", "", "", "", "2C", "2P", "", "", "",
	"", "", "", "", "", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
}

var msmSigGAL = [32]string{
	"", "1C", "1A", "1B", "1X", "1Z", "", "6C", "6A", "6B", "6X", "6Z",
	"", "7I", "7Q", "7X", "", "8I", "8Q", "8X", "", "5I", "5Q", "5X",
	"", "", "", "", "", "", "", "",
}

var msmSigCMP = [32]string{
	"", "2I", "2Q", "2X", "", "", "", "6I", "6Q", "6X", "", "",
	"", "7I", "7Q", "7X", "", "", "", "", "", "5D", "5P", "5X",
	"7D", "", "", "", "", "1D", "1P", "1X",
}

var msmSigSBS = [32]string{
	"", "1C", "", "", "", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "", "", "5I", "5Q", "5X",
	"", "", "", "", "", "", "", "",
}

var msmSigQZS = [32]string{
	"", "1C", "", "", "", "", "", "", "6S", "6L", "6X", "",
	"", "", "2S", "2L", "2X", "", "", "", "", "5I", "5Q", "5X",
	"", "", "", "", "", "1S", "1L", "1X",
}

var msmSigIRN = [32]string{
	"", "", "", "", "", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "", "", "5A", "", "",
	"", "", "", "", "", "", "", "",
}

func msmSigTable(sys Constellation) *[32]string {
	switch sys {
	case SysGPS:
		return &msmSigGPS
	case SysGLO:
		return &msmSigGLO
	case SysGAL:
		return &msmSigGAL
	case SysQZS:
		return &msmSigQZS
	case SysSBS:
		return &msmSigSBS
	case SysCMP:
		return &msmSigCMP
	case SysIRN:
		return &msmSigIRN
	}
	return nil
}

// toSigID converts an observation code to its 1-based MSM signal id for the
// given constellation, or 0 if sys is not one of the seven handled
// constellations or the code has no MSM signal slot (this mirrors
// original_source/rtcmCnv.c's to_sigid, which also just returns 0 for an
// unmatched constellation rather than failing).
func toSigID(sys Constellation, code Code) int {
	// Signal remap for codes RTCM has no distinct MSM signal id for.
	if sys == SysGPS {
		switch code {
		case CodeL1Y, CodeL1M, CodeL1N:
			code = CodeL1P
		case CodeL2D, CodeL2Y, CodeL2M, CodeL2N:
			code = CodeL2P
		}
	}
	obs := code2Obs(code)
	if obs == "" {
		return 0
	}
	table := msmSigTable(sys)
	if table == nil {
		return 0
	}
	for i, s := range table {
		if s == obs {
			return i + 1
		}
	}
	return 0
}

// codePriority is the per-constellation, per-frequency-index code priority
// string: for code "Xy", priority = 14 - position(y in the string), or 0 if
// y is absent. Ported from original_source/rtcmCnv.c's codepris[7][MAXFREQ]
// (the NFREQ=7/NEXOBS=3 configuration — wider than the teacher's own
// narrower NFREQ=3 RTKLIB port; see DESIGN.md).
var codePriority = [7][NFREQ]string{
	{"CPYWMNSLX", "PYWCMNDLSX", "IQX", "", "", "", ""},   // GPS
	{"CPABX", "CPABX", "IQX", "CPABX", "CPABX", "", ""},  // GLO
	{"CABXZ", "IQX", "IQX", "ABCXZ", "IQX", "", ""},      // GAL
	{"CLSXZ", "LSX", "IQXDPZ", "LSXEZ", "", "", ""},      // QZS
	{"C", "IQX", "", "", "", "", ""},                     // SBS
	{"IQXDPAN", "IQXDPZ", "DPX", "DPX", "DPX", "IQX", "DPZX"}, // BDS
	{"ABCX", "ABCX", "", "", "", "", ""},                 // IRN
}

// codePriorityOf returns the priority (0 = unknown/lowest) of code within
// the given constellation and frequency-index slot.
func codePriorityOf(sys Constellation, freqIdx int, code Code) int {
	obs := code2Obs(code)
	if obs == "" || len(obs) < 2 {
		return 0
	}
	i := sys.index()
	if i < 0 || i >= len(codePriority) || freqIdx < 0 || freqIdx >= NFREQ {
		return 0
	}
	pri := codePriority[i][freqIdx]
	pos := strings.IndexByte(pri, obs[1])
	if pos < 0 {
		return 0
	}
	return 14 - pos
}

// obsFreqStr holds the canonical logical-band names per constellation, in
// frequency-index order. Ported from original_source/rtcmCnv.c's
// obsfrqstr[8][MAXFREQ] (GPS, GLO, GAL, QZS, SBS, BDS, IRN; the 8th row, LEO,
// is not a supported constellation and is omitted here).
var obsFreqStr = [7][NFREQ]string{
	{"L1", "L2", "L5", "", "", "", ""},                // GPS
	{"G1", "G2", "G3", "G1a", "G2a", "", ""},          // GLO
	{"E1", "E5b", "E5a", "E6", "E5ab", "", ""},        // GAL
	{"L1", "L2", "L5", "L6", "", "", ""},              // QZS
	{"L1", "L5", "", "", "", "", ""},                  // SBS
	{"B1I", "B3I", "B2a", "B1C", "B2ab", "B2I", "B2b"}, // BDS
	{"L5", "S", "", "", "", "", ""},                   // IRN
}
