/*------------------------------------------------------------------------------
* bits.go : big-endian bit-field codec and rtcm3 crc-24q framing
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

import "github.com/goblimey/go-crc24q/crc24q"

// getBitU extracts an unsigned bit field of length bitLen starting at bit
// offset pos (bit 0 = MSB of buf[0]). Ported from
// FengXuebin-gnssgo/src/common.go's GetBitU / original_source/rtcmCnv.c's
// getbitu.
func getBitU(buf []byte, pos, bitLen int) uint32 {
	var bits uint32
	for i := pos; i < pos+bitLen; i++ {
		bits = (bits << 1) + uint32((buf[i/8]>>(7-uint(i%8)))&1)
	}
	return bits
}

// getBits extracts a signed bit field, sign-extending from bit bitLen-1. If
// bitLen is out of (0,32) the raw unsigned value is returned verbatim,
// matching the degenerate case in the source.
func getBits(buf []byte, pos, bitLen int) int32 {
	bits := getBitU(buf, pos, bitLen)
	if bitLen <= 0 || bitLen >= 32 || bits&(1<<uint(bitLen-1)) == 0 {
		return int32(bits)
	}
	return int32(bits | (^uint32(0) << uint(bitLen)))
}

// setBitU writes an unsigned bit field of length bitLen at bit offset pos.
// No-op if bitLen is not in (0,32].
func setBitU(buf []byte, pos, bitLen int, data uint32) {
	if bitLen <= 0 || bitLen > 32 {
		return
	}
	mask := uint32(1) << uint(bitLen-1)
	for i := pos; i < pos+bitLen; i, mask = i+1, mask>>1 {
		if data&mask != 0 {
			buf[i/8] |= 1 << uint(7-i%8)
		} else {
			buf[i/8] &^= 1 << uint(7-i%8)
		}
	}
}

// setBits writes a signed bit field: the sign of data is folded into bit
// bitLen-1 before delegating to setBitU.
func setBits(buf []byte, pos, bitLen int, data int32) {
	if data < 0 {
		data |= 1 << uint(bitLen-1)
	} else {
		data &^= 1 << uint(bitLen-1)
	}
	setBitU(buf, pos, bitLen, uint32(data))
}

// crc24qOf computes the RTCM3 CRC-24Q parity of buf using the third-party
// goblimey/go-crc24q package (polynomial 0x1864CFB, seed 0) rather than a
// hand-transcribed 256-entry table — see DESIGN.md.
func crc24qOf(buf []byte) uint32 {
	return crc24q.Hash(buf)
}

// appendCRC24 appends the 3-byte big-endian CRC-24Q of buf to buf.
func appendCRC24(buf []byte) []byte {
	sum := crc24qOf(buf)
	return append(buf, crc24q.HiByte(sum), crc24q.MiByte(sum), crc24q.LoByte(sum))
}

// verifyCRC24 reports whether the last 3 bytes of buf are the CRC-24Q of the
// preceding bytes.
func verifyCRC24(buf []byte) bool {
	if len(buf) < 3 {
		return false
	}
	body := buf[:len(buf)-3]
	sum := crc24qOf(body)
	return crc24q.HiByte(sum) == buf[len(buf)-3] &&
		crc24q.MiByte(sum) == buf[len(buf)-2] &&
		crc24q.LoByte(sum) == buf[len(buf)-1]
}
