package rtcmmsm

import "testing"

func TestNewSelectorSingleBand(t *testing.T) {
	spec := [7]string{}
	spec[SysGPS.index()] = "L1"
	sel := NewSelector(spec)
	if sel.slot(SysGPS, 0) != 0 {
		t.Fatalf("expected L1 (band 0) to land in slot 0")
	}
	if sel.slot(SysGPS, 1) != NFREQ {
		t.Fatalf("expected L2 (band 1) to be unselected")
	}
}

func TestNewSelectorMultiBandOrderPreserved(t *testing.T) {
	spec := [7]string{}
	spec[SysGPS.index()] = "L2+L1"
	sel := NewSelector(spec)
	if sel.slot(SysGPS, 1) != 0 {
		t.Fatalf("expected L2 to be assigned slot 0 (first token)")
	}
	if sel.slot(SysGPS, 0) != 1 {
		t.Fatalf("expected L1 to be assigned slot 1 (second token)")
	}
}

func TestNewSelectorUnknownTokenDropped(t *testing.T) {
	spec := [7]string{}
	spec[SysGPS.index()] = "L1+BOGUS+L2"
	sel := NewSelector(spec)
	if sel.slot(SysGPS, 0) != 0 {
		t.Fatalf("expected L1 to still resolve to slot 0")
	}
	if sel.slot(SysGPS, 1) != 1 {
		t.Fatalf("expected L2 to resolve to slot 1, skipping the bogus token")
	}
}

func TestResolveFrequencyGPS(t *testing.T) {
	spec := [7]string{}
	spec[SysGPS.index()] = "L1+L2"
	sel := NewSelector(spec)
	freq, band, slot, ok := resolveFrequency(SysGPS, obs2Code("1C"), 0, sel)
	if !ok || band != 0 || slot != 0 || freq != freq1 {
		t.Fatalf("unexpected result: freq=%v band=%v slot=%v ok=%v", freq, band, slot, ok)
	}
}

func TestResolveFrequencyGLOOutOfRangeFCN(t *testing.T) {
	sel := NewSelector([7]string{})
	if _, _, _, ok := resolveFrequency(SysGLO, obs2Code("1C"), 10, sel); ok {
		t.Fatalf("expected failure for out-of-range GLONASS fcn")
	}
}

func TestResolveFrequencyBDSB2Split(t *testing.T) {
	sel := NewSelector([7]string{})
	_, bandI, _, okI := resolveFrequency(SysCMP, obs2Code("7I"), 0, sel)
	_, bandB, _, okB := resolveFrequency(SysCMP, obs2Code("7D"), 0, sel)
	if !okI || !okB {
		t.Fatalf("expected both 7I and 7D to resolve")
	}
	if bandI == bandB {
		t.Fatalf("expected B2I (7I) and B2b (7D) to resolve to different bands")
	}
}

func TestSigIndexArbitratesOnPriority(t *testing.T) {
	// Two GPS L1 codes competing for the same primary slot: 1C should win
	// over 1N (lower priority char in codePriority's GPS L1 row), and 1N
	// should be pushed into an extended slot rather than dropped.
	codes := []Code{obs2Code("1C"), obs2Code("1N")}
	slots := []int{0, 0}
	idx := sigIndex(SysGPS, codes, slots)
	if idx[0] != 0 {
		t.Fatalf("expected 1C to keep primary slot 0, got %d", idx[0])
	}
	if idx[1] < NFREQ {
		t.Fatalf("expected 1N to be displaced into an extended slot, got %d", idx[1])
	}
}

func TestSigIndexOverflowDropsSignal(t *testing.T) {
	// NEXOBS=3 extended slots; a fourth same-slot loser must be dropped (-1).
	codes := []Code{
		obs2Code("1C"), obs2Code("1P"), obs2Code("1W"), obs2Code("1Y"), obs2Code("1M"),
	}
	slots := []int{0, 0, 0, 0, 0}
	idx := sigIndex(SysGPS, codes, slots)
	dropped := 0
	for _, v := range idx {
		if v == -1 {
			dropped++
		}
	}
	if dropped == 0 {
		t.Fatalf("expected at least one signal to overflow NEXOBS and be dropped")
	}
}
