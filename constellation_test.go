package rtcmmsm

import "testing"

func TestSatNoSatSysRoundTrip(t *testing.T) {
	cases := []struct {
		sys Constellation
		prn int
	}{
		{SysGPS, 1}, {SysGPS, 32},
		{SysGLO, 1}, {SysGLO, 27},
		{SysGAL, 1}, {SysGAL, 36},
		{SysQZS, 193}, {SysQZS, 202},
		{SysCMP, 1}, {SysCMP, 63},
		{SysIRN, 1}, {SysIRN, 14},
		{SysSBS, 120}, {SysSBS, 158},
	}
	for _, c := range cases {
		sat := satNo(c.sys, c.prn)
		if sat == 0 {
			t.Fatalf("satNo(%s, %d) = 0", c.sys, c.prn)
		}
		gotSys, gotPRN := satSys(sat)
		if gotSys != c.sys || gotPRN != c.prn {
			t.Fatalf("satSys(%d) = (%s, %d), want (%s, %d)", sat, gotSys, gotPRN, c.sys, c.prn)
		}
	}
}

func TestSatNoOutOfRange(t *testing.T) {
	if satNo(SysGPS, 33) != 0 {
		t.Fatalf("expected 0 for out-of-range PRN")
	}
	if satNo(SysGPS, 0) != 0 {
		t.Fatalf("expected 0 for prn<=0")
	}
}

func TestSatNoOrdering(t *testing.T) {
	// GPS block must precede GLO block in the global numbering space.
	if satNo(SysGPS, 32) >= satNo(SysGLO, 1) {
		t.Fatalf("expected GPS satellites to be numbered before GLONASS")
	}
	if satNo(SysCMP, 1) >= satNo(SysIRN, 1) {
		t.Fatalf("expected CMP satellites to be numbered before IRN")
	}
	if satNo(SysIRN, 1) >= satNo(SysSBS, 120) {
		t.Fatalf("expected IRN satellites to be numbered before SBS")
	}
}

func TestToSatIDFromSatID(t *testing.T) {
	sat := satNo(SysQZS, 195)
	id := toSatID(SysQZS, sat)
	if id != 3 {
		t.Fatalf("toSatID = %d, want 3", id)
	}
	if fromSatID(SysQZS, id) != 195 {
		t.Fatalf("fromSatID round-trip failed")
	}
}

func TestMsgTypeRoundTrip(t *testing.T) {
	for _, sys := range []Constellation{SysGPS, SysGLO, SysGAL, SysQZS, SysSBS, SysCMP, SysIRN} {
		mt := msgTypeOf(sys)
		if mt == 0 {
			t.Fatalf("msgTypeOf(%s) = 0", sys)
		}
		if got := constellationOf(mt); got != sys {
			t.Fatalf("constellationOf(%d) = %s, want %s", mt, got, sys)
		}
	}
}
