/*------------------------------------------------------------------------------
* constellation.go : gnss constellation identity and satellite numbering
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

// Constellation identifies one of the seven GNSS systems this transcoder
// understands. The zero value is not a valid constellation.
type Constellation int

const (
	SysNone Constellation = iota
	SysGPS
	SysGLO
	SysGAL
	SysQZS
	SysSBS
	SysCMP
	SysIRN
)

func (c Constellation) String() string {
	switch c {
	case SysGPS:
		return "GPS"
	case SysGLO:
		return "GLO"
	case SysGAL:
		return "GAL"
	case SysQZS:
		return "QZS"
	case SysSBS:
		return "SBS"
	case SysCMP:
		return "CMP"
	case SysIRN:
		return "IRN"
	}
	return "NONE"
}

// index maps a Constellation to the 0..6 index used by
// freqSpec, codePriority, obsFreqStr and the selector.
func (c Constellation) index() int {
	return int(c) - 1
}

// RTCM message types for the MSM4 family, one per constellation (GPS, GLO,
// GAL, SBS, QZS, CMP, IRN), as mapped by msgTypeOf/constellationOf.
const (
	MsgTypeMSM4GPS = 1074
	MsgTypeMSM4GLO = 1084
	MsgTypeMSM4GAL = 1094
	MsgTypeMSM4SBS = 1104
	MsgTypeMSM4QZS = 1114
	MsgTypeMSM4CMP = 1124
	MsgTypeMSM4IRN = 1134
)

// msgTypeOf returns the MSM4 message type for a constellation, or 0 if the
// constellation has no MSM4 message type.
func msgTypeOf(c Constellation) int {
	switch c {
	case SysGPS:
		return MsgTypeMSM4GPS
	case SysGLO:
		return MsgTypeMSM4GLO
	case SysGAL:
		return MsgTypeMSM4GAL
	case SysSBS:
		return MsgTypeMSM4SBS
	case SysQZS:
		return MsgTypeMSM4QZS
	case SysCMP:
		return MsgTypeMSM4CMP
	case SysIRN:
		return MsgTypeMSM4IRN
	}
	return 0
}

// constellationOf returns the constellation for an MSM4 message type, or
// SysNone if the type is not one of the seven MSM4 types this transcoder
// supports.
func constellationOf(msgType int) Constellation {
	switch msgType {
	case MsgTypeMSM4GPS:
		return SysGPS
	case MsgTypeMSM4GLO:
		return SysGLO
	case MsgTypeMSM4GAL:
		return SysGAL
	case MsgTypeMSM4SBS:
		return SysSBS
	case MsgTypeMSM4QZS:
		return SysQZS
	case MsgTypeMSM4CMP:
		return SysCMP
	case MsgTypeMSM4IRN:
		return SysIRN
	}
	return SysNone
}

// PRN ranges and the cumulative offset into the global satellite number
// space, in the exact order original_source/rtcmCnv.c's satno/satsys use:
// GPS, GLO, GAL, QZS, CMP, IRN, SBS.
const (
	minPRNGPS, maxPRNGPS = 1, 32
	minPRNGLO, maxPRNGLO = 1, 27
	minPRNGAL, maxPRNGAL = 1, 36
	minPRNQZS, maxPRNQZS = 193, 202
	minPRNCMP, maxPRNCMP = 1, 63
	minPRNIRN, maxPRNIRN = 1, 14
	minPRNSBS, maxPRNSBS = 120, 158

	nsatGPS = maxPRNGPS - minPRNGPS + 1
	nsatGLO = maxPRNGLO - minPRNGLO + 1
	nsatGAL = maxPRNGAL - minPRNGAL + 1
	nsatQZS = maxPRNQZS - minPRNQZS + 1
	nsatCMP = maxPRNCMP - minPRNCMP + 1
	nsatIRN = maxPRNIRN - minPRNIRN + 1
	nsatSBS = maxPRNSBS - minPRNSBS + 1

	// MaxSat is the size of the global satellite number space.
	MaxSat = nsatGPS + nsatGLO + nsatGAL + nsatQZS + nsatCMP + nsatIRN + nsatSBS
)

// satNo converts a constellation + PRN/slot number into the global satellite
// number this package uses as the observation store's key. Returns 0 if prn
// is outside the constellation's range.
func satNo(sys Constellation, prn int) int {
	if prn <= 0 {
		return 0
	}
	switch sys {
	case SysGPS:
		if prn < minPRNGPS || maxPRNGPS < prn {
			return 0
		}
		return prn - minPRNGPS + 1
	case SysGLO:
		if prn < minPRNGLO || maxPRNGLO < prn {
			return 0
		}
		return nsatGPS + prn - minPRNGLO + 1
	case SysGAL:
		if prn < minPRNGAL || maxPRNGAL < prn {
			return 0
		}
		return nsatGPS + nsatGLO + prn - minPRNGAL + 1
	case SysQZS:
		if prn < minPRNQZS || maxPRNQZS < prn {
			return 0
		}
		return nsatGPS + nsatGLO + nsatGAL + prn - minPRNQZS + 1
	case SysCMP:
		if prn < minPRNCMP || maxPRNCMP < prn {
			return 0
		}
		return nsatGPS + nsatGLO + nsatGAL + nsatQZS + prn - minPRNCMP + 1
	case SysIRN:
		if prn < minPRNIRN || maxPRNIRN < prn {
			return 0
		}
		return nsatGPS + nsatGLO + nsatGAL + nsatQZS + nsatCMP + prn - minPRNIRN + 1
	case SysSBS:
		if prn < minPRNSBS || maxPRNSBS < prn {
			return 0
		}
		return nsatGPS + nsatGLO + nsatGAL + nsatQZS + nsatCMP + nsatIRN + prn - minPRNSBS + 1
	}
	return 0
}

// satSys is the inverse of satNo: it recovers the constellation and PRN from
// a global satellite number. Returns SysNone if sat is out of range.
func satSys(sat int) (Constellation, int) {
	if sat <= 0 || MaxSat < sat {
		return SysNone, 0
	}
	if sat <= nsatGPS {
		return SysGPS, sat + minPRNGPS - 1
	}
	sat -= nsatGPS
	if sat <= nsatGLO {
		return SysGLO, sat + minPRNGLO - 1
	}
	sat -= nsatGLO
	if sat <= nsatGAL {
		return SysGAL, sat + minPRNGAL - 1
	}
	sat -= nsatGAL
	if sat <= nsatQZS {
		return SysQZS, sat + minPRNQZS - 1
	}
	sat -= nsatQZS
	if sat <= nsatCMP {
		return SysCMP, sat + minPRNCMP - 1
	}
	sat -= nsatCMP
	if sat <= nsatIRN {
		return SysIRN, sat + minPRNIRN - 1
	}
	sat -= nsatIRN
	if sat <= nsatSBS {
		return SysSBS, sat + minPRNSBS - 1
	}
	return SysNone, 0
}

// toSatID converts a global satellite number into its MSM satellite id
// (1-based, within the constellation's own satellite mask) for the given
// constellation. Returns 0 if sat does not belong to sys.
func toSatID(sys Constellation, sat int) int {
	gotSys, prn := satSys(sat)
	if gotSys != sys {
		return 0
	}
	switch sys {
	case SysQZS:
		prn -= minPRNQZS - 1
	case SysSBS:
		prn -= minPRNSBS - 1
	}
	return prn
}

// fromSatID converts an MSM satellite id (1-based, as read from a satellite
// mask) back into PRN space for the given constellation.
func fromSatID(sys Constellation, satID int) int {
	switch sys {
	case SysQZS:
		return satID + minPRNQZS - 1
	case SysSBS:
		return satID + minPRNSBS - 1
	}
	return satID
}
