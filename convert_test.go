package rtcmmsm

import "testing"

// buildGPSMSM4Frame constructs a minimal, well-formed RTCM3 MSM4 GPS frame
// carrying one satellite (PRN 1) and one signal (1C), for use as fixture
// input across the decode/encode/convert tests. This mirrors, at the wire
// level, what decode_msm4/encode_msm4 in original_source/rtcmCnv.c consume
// and produce.
func buildGPSMSM4Frame(t *testing.T, rngInt uint32, prVal, cpVal int32, lock uint32, half uint32, cnr uint32) []byte {
	t.Helper()
	const totalBits = 288 // 36 bytes, byte-aligned, comfortably covers the fixed fields below
	buf := make([]byte, totalBits/8+3)

	i := 24
	setBitU(buf, i, 12, uint32(MsgTypeMSM4GPS))
	i += 12
	i += 12 // station id
	i += 30 // epoch
	setBitU(buf, i, 1, 0)
	i++ // sync
	i += 3 + 7 + 2 + 2 + 1 + 3

	// satellite mask: PRN 1 only.
	satMaskPos := i
	setBitU(buf, satMaskPos, 1, 1)
	i += 64

	// signal mask: signal id for "1C" in msm_sig_gps is 2 (1-based).
	sigMaskPos := i
	setBitU(buf, sigMaskPos+1, 1, 1)
	i += 32

	// cell mask: nsat=1, nsig=1.
	setBitU(buf, i, 1, 1)
	i++

	setBitU(buf, i, 8, rngInt)
	i += 8
	setBitU(buf, i, 10, 0)
	i += 10

	setBits(buf, i, 15, prVal)
	i += 15
	setBits(buf, i, 22, cpVal)
	i += 22
	setBitU(buf, i, 4, lock)
	i += 4
	setBitU(buf, i, 1, half)
	i++
	setBitU(buf, i, 6, cnr)
	i += 6

	payloadBytes := totalBits/8 - 3
	setBitU(buf, 0, 8, 0xD3)
	setBitU(buf, 8, 6, 0)
	setBitU(buf, 14, 10, uint32(payloadBytes))
	return appendCRC24(buf[:totalBits/8])
}

func TestDecodeMSM4OneSatOneSignal(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	spec := [7]string{}
	spec[SysGPS.index()] = "L1"
	sel := NewSelector(spec)
	var store ObsStore
	if !DecodeMSM4(frame, SysGPS, sel, &store) {
		t.Fatalf("DecodeMSM4 failed")
	}
	if store.N() != 1 {
		t.Fatalf("expected 1 observation record, got %d", store.N())
	}
	rec := store.Record(0)
	wantSat := satNo(SysGPS, 1)
	if rec.Sat != wantSat {
		t.Fatalf("rec.Sat = %d, want %d", rec.Sat, wantSat)
	}
	if rec.Code[0] != obs2Code("1C") {
		t.Fatalf("rec.Code[0] = %d, want code for 1C", rec.Code[0])
	}
	if rec.P[0] == 0 {
		t.Fatalf("expected nonzero pseudorange")
	}
	if rec.SNR[0] == 0 {
		t.Fatalf("expected nonzero SNR")
	}
}

func TestDecodeMSM4TruncatedFrameRejected(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	sel := NewSelector([7]string{})
	var store ObsStore
	if DecodeMSM4(frame[:10], SysGPS, sel, &store) {
		t.Fatalf("expected DecodeMSM4 to reject a truncated frame")
	}
}

func TestConvertRoundTripPreservesSelectedBand(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	spec := [7]string{}
	spec[SysGPS.index()] = "L1"

	out, status, err := Convert(false, frame, spec)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	if !verifyCRC24(out) {
		t.Fatalf("re-encoded frame has invalid CRC")
	}
	if out[0] != 0xD3 {
		t.Fatalf("re-encoded frame missing RTCM3 preamble")
	}
	gotType := int(getBitU(out, 24, 12))
	if gotType != MsgTypeMSM4GPS {
		t.Fatalf("re-encoded message type = %d, want %d", gotType, MsgTypeMSM4GPS)
	}

	var store ObsStore
	sel := NewSelector(spec)
	if !DecodeMSM4(out, SysGPS, sel, &store) {
		t.Fatalf("failed to decode re-encoded frame")
	}
	if store.N() != 1 {
		t.Fatalf("expected 1 observation after round trip, got %d", store.N())
	}
}

func TestConvertDropsUnselectedBand(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	spec := [7]string{}
	spec[SysGPS.index()] = "L2" // 1C (L1) is not selected

	_, status, err := Convert(false, frame, spec)
	if status != StatusEmpty || err != nil {
		t.Fatalf("status = %v, err=%v; want StatusEmpty, nil when no selected signal survives", status, err)
	}
}

func TestConvertBadPreambleRejected(t *testing.T) {
	bad := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, status, err := Convert(false, bad, [7]string{})
	if status != StatusDecodeError || err == nil {
		t.Fatalf("expected decode error for bad preamble, got status=%v err=%v", status, err)
	}
}

func TestConvertBadCRCRejected(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	frame[len(frame)-1] ^= 0xFF
	_, status, err := Convert(false, frame, [7]string{})
	if status != StatusDecodeError || err == nil {
		t.Fatalf("expected decode error for bad crc, got status=%v err=%v", status, err)
	}
}

func TestConvertUnsupportedTypeRejected(t *testing.T) {
	frame := buildGPSMSM4Frame(t, 100, 500, 2000, 5, 0, 45)
	setBitU(frame, 24, 12, 9999)
	recomputed := appendCRC24(frame[:len(frame)-3])
	_, status, err := Convert(false, recomputed, [7]string{})
	if status != StatusDecodeError || err == nil {
		t.Fatalf("expected decode error for unsupported type, got status=%v err=%v", status, err)
	}
}
