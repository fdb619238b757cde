/*------------------------------------------------------------------------------
* convert.go : top-level single-message MSM4 filtering transcoder
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

// Status reports the outcome of a Convert call, per SPEC_FULL.md §6's
// three-way contract (mirroring spec.md's 1/0/-1 design): StatusOK (output
// written), StatusEmpty (encoder produced nothing, out is nil — this also
// covers output overflow, per SPEC_FULL.md §7), StatusDecodeError (decode
// failure).
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusDecodeError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusDecodeError:
		return "decode-error"
	}
	return "unknown"
}

// ErrorKind classifies a DecodeError, per SPEC_FULL.md §7.
type ErrorKind int

const (
	ErrBadPreamble ErrorKind = iota
	ErrBadCRC
	ErrUnsupportedType
	ErrTruncated
	ErrMalformedHeader
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBadPreamble:
		return "bad preamble"
	case ErrBadCRC:
		return "bad crc"
	case ErrUnsupportedType:
		return "unsupported message type"
	case ErrTruncated:
		return "truncated frame"
	case ErrMalformedHeader:
		return "malformed msm header"
	}
	return "unknown error"
}

// DecodeError reports why an input frame could not be decoded.
type DecodeError struct {
	Kind ErrorKind
}

func (e *DecodeError) Error() string { return "rtcmmsm: decode: " + e.Kind.String() }

const frameHeaderBits = 3 * 8
const frameCRCBytes = 3

// Convert is the package's single entry point: given one complete RTCM3
// frame (preamble through CRC-24Q trailer) carrying an MSM4 message, it
// decodes the observations, applies the caller's frequency-band selection,
// and re-encodes a filtered MSM4 frame for the same constellation. sync sets
// the multiple-message bit on the re-encoded frame. freqSpec is indexed
// SysGPS-1..SysIRN-1 (see NewSelector); an empty string for a constellation
// keeps that constellation's record but drops all its signals (no bands
// selected). Per SPEC_FULL.md §1, exactly one message is processed per call:
// no framing/resync over a byte stream, no cross-call state.
func Convert(sync bool, in []byte, freqSpec [7]string) (out []byte, status Status, err error) {
	if len(in) < 6 {
		return nil, StatusDecodeError, &DecodeError{Kind: ErrTruncated}
	}
	if in[0] != 0xD3 {
		return nil, StatusDecodeError, &DecodeError{Kind: ErrBadPreamble}
	}
	payloadLen := int(getBitU(in, 14, 10))
	want := frameHeaderBits/8 + payloadLen + frameCRCBytes
	if len(in) < want {
		return nil, StatusDecodeError, &DecodeError{Kind: ErrTruncated}
	}
	frame := in[:want]
	if !verifyCRC24(frame) {
		return nil, StatusDecodeError, &DecodeError{Kind: ErrBadCRC}
	}

	msgType := int(getBitU(frame, 24, 12))
	sys := constellationOf(msgType)
	if sys == SysNone {
		Trace(1, "rtcm msm: unsupported message type=%d\n", msgType)
		return nil, StatusDecodeError, &DecodeError{Kind: ErrUnsupportedType}
	}

	sel := NewSelector(freqSpec)
	var store ObsStore
	if !DecodeMSM4(frame, sys, sel, &store) {
		return nil, StatusDecodeError, &DecodeError{Kind: ErrMalformedHeader}
	}
	if store.N() == 0 {
		return nil, StatusEmpty, nil
	}

	encoded, ok := EncodeMSM4(sys, sync, sel, &store)
	if !ok {
		// No observations survived selection, or the encoded body would
		// overflow 1024 bytes: the encoder produced nothing, not an error
		// (SPEC_FULL.md §7 "Output overflow ... return StatusEmpty, no error").
		return nil, StatusEmpty, nil
	}
	// Carry the input's station id, epoch and session fields over unchanged
	// (EncodeMSM4 writes only message type and sync), then redo the CRC.
	setBitU(encoded, 36, 12, getBitU(frame, 36, 12))
	setBitU(encoded, 48, 30, getBitU(frame, 48, 30))
	setBitU(encoded, 79, 18, getBitU(frame, 79, 18))
	encoded = appendCRC24(encoded[:len(encoded)-3])
	Trace(3, "rtcmmsm: converted type=%d sys=%s nobs=%d\n", msgType, sys, store.N())
	return encoded, StatusOK, nil
}
