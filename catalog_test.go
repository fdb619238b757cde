package rtcmmsm

import "testing"

func TestObsCodeRoundTrip(t *testing.T) {
	for _, s := range []string{"1C", "2W", "5X", "7D", "1I"} {
		code := obs2Code(s)
		if code == CodeNone {
			t.Fatalf("obs2Code(%q) = CodeNone", s)
		}
		if got := code2Obs(code); got != s {
			t.Fatalf("code2Obs(%d) = %q, want %q", code, got, s)
		}
	}
}

func TestObs2CodeUnknown(t *testing.T) {
	if obs2Code("ZZ") != CodeNone {
		t.Fatalf("expected CodeNone for unknown obs string")
	}
}

func TestToSigIDGPSRemap(t *testing.T) {
	// L1Y/L1M/L1N all remap to the L1P MSM slot.
	want := toSigID(SysGPS, CodeL1P)
	for _, c := range []Code{CodeL1Y, CodeL1M, CodeL1N} {
		if got := toSigID(SysGPS, c); got != want {
			t.Fatalf("toSigID(GPS, %d) = %d, want %d", c, got, want)
		}
	}
}

func TestCodePriorityOfKnownAndUnknown(t *testing.T) {
	if codePriorityOf(SysGPS, 0, obs2Code("1C")) == 0 {
		t.Fatalf("expected nonzero priority for GPS L1C")
	}
	if codePriorityOf(SysGPS, 0, CodeNone) != 0 {
		t.Fatalf("expected zero priority for CodeNone")
	}
}

func TestBDSCodePriorityHasSevenBands(t *testing.T) {
	idx := SysCMP.index()
	row := codePriority[idx]
	if row[6] == "" {
		t.Fatalf("expected BDS B2b priority column (index 6) to be populated")
	}
}
