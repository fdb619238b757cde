package rtcmmsm

import "testing"

func TestGetSetBitURoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	setBitU(buf, 3, 10, 0x2AB)
	if got := getBitU(buf, 3, 10); got != 0x2AB {
		t.Fatalf("got %#x, want %#x", got, 0x2AB)
	}
}

func TestGetSetBitsSignExtend(t *testing.T) {
	buf := make([]byte, 4)
	setBits(buf, 0, 15, -16384)
	if got := getBits(buf, 0, 15); got != -16384 {
		t.Fatalf("got %d, want -16384", got)
	}
	setBits(buf, 0, 22, -2097152)
	if got := getBits(buf, 0, 22); got != -2097152 {
		t.Fatalf("got %d, want -2097152", got)
	}
	setBits(buf, 0, 22, 12345)
	if got := getBits(buf, 0, 22); got != 12345 {
		t.Fatalf("got %d, want 12345", got)
	}
}

func TestCRC24QRoundTrip(t *testing.T) {
	body := []byte{0xD3, 0x00, 0x04, 0xDE, 0xAD, 0xBE, 0xEF}
	framed := appendCRC24(append([]byte{}, body...))
	if len(framed) != len(body)+3 {
		t.Fatalf("unexpected length %d", len(framed))
	}
	if !verifyCRC24(framed) {
		t.Fatalf("expected valid crc")
	}
	framed[len(framed)-1] ^= 0xFF
	if verifyCRC24(framed) {
		t.Fatalf("expected invalid crc after corruption")
	}
}

func TestVerifyCRC24TooShort(t *testing.T) {
	if verifyCRC24([]byte{0x01, 0x02}) {
		t.Fatalf("expected false for short buffer")
	}
}
