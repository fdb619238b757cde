/*------------------------------------------------------------------------------
* decode.go : msm4 header and payload decoding
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

// rangeMS is the one-way range light travels in one millisecond (m).
const rangeMS = clight * 0.001
const clight = 299792458.0
const p2_10 = 0.0009765625
const p2_24 = 5.960464477539063e-08
const p2_29 = 1.862645149230957e-09
const snrUnit = 0.001

// msmHeader holds the satellite and signal masks decoded from an MSM
// message header, ported from original_source/rtcmCnv.c's msm_h_con.
type msmHeader struct {
	sync     bool
	nsat     int
	nsig     int
	sats     [64]int // 1-based satellite ids, in mask order
	sigs     [32]int // 1-based signal ids, in mask order
	cellMask [64 * 32]int
}

// decodeMSMHead parses the common MSM header starting at byte offset 3 of
// buf (after the 3-byte RTCM3 frame header), returning the cell count and
// the bit offset immediately after the header (hsize). Ported from
// decode_msm_head; the station id, epoch and session-state fields between
// the sync bit and the satellite mask are present in the wire format but are
// skipped, per SPEC_FULL.md §1's Non-goals (no time-tagging, no per-station
// state).
func decodeMSMHead(buf []byte, lenBits int) (h msmHeader, hsize int, ncell int, ok bool) {
	i := 24
	i += 12 // message type (already known by caller)
	if i+157 > lenBits {
		return h, 0, 0, false
	}
	i += 12 // reference station id
	i += 30 // epoch time
	h.sync = getBitU(buf, i, 1) != 0
	i++
	i += 3 // issue of data station
	i += 7 // reserved
	i += 2 // clock steering indicator
	i += 2 // external clock indicator
	i++   // smoothing indicator
	i += 3 // smoothing interval

	for j := 1; j <= 64; j++ {
		if getBitU(buf, i, 1) != 0 {
			h.sats[h.nsat] = j
			h.nsat++
		}
		i++
	}
	for j := 1; j <= 32; j++ {
		if getBitU(buf, i, 1) != 0 {
			h.sigs[h.nsig] = j
			h.nsig++
		}
		i++
	}
	if h.nsat*h.nsig > 64 {
		return h, 0, 0, false
	}
	if i+h.nsat*h.nsig > lenBits {
		return h, 0, 0, false
	}
	for j := 0; j < h.nsat*h.nsig; j++ {
		if getBitU(buf, i, 1) != 0 {
			h.cellMask[j] = 1
			ncell++
		}
		i++
	}
	return h, i, ncell, true
}

// lossOfLock derives the stateless loss-of-lock bit from a raw MSM
// lock-time indicator. The original's call-scoped comparison against a
// per-satellite running lock counter is gone in this one-shot transcoder
// (see SPEC_FULL.md §4.4); only "lock==0" is observable here.
func lossOfLock(lock int) int {
	if lock == 0 {
		return 1
	}
	return 0
}

// DecodeMSM4 parses one MSM4 message for constellation sys out of buf (a
// complete RTCM3 frame: 3-byte header, payload, 3-byte CRC — the CRC is not
// re-validated here, callers should call verifyCRC24 first) and records its
// observations into store. sel resolves each decoded signal to an output
// slot. Returns false if the message is structurally malformed.
func DecodeMSM4(buf []byte, sys Constellation, sel *Selector, store *ObsStore) bool {
	lenBits := len(buf) * 8
	h, i, ncell, ok := decodeMSMHead(buf, lenBits)
	if !ok {
		return false
	}
	if i+h.nsat*18+ncell*48 > lenBits {
		return false
	}

	r := make([]float64, h.nsat)
	pr := make([]float64, ncell)
	cp := make([]float64, ncell)
	lock := make([]int, ncell)
	half := make([]int, ncell)
	cnr := make([]float64, ncell)
	for j := range pr {
		pr[j] = -1e16
		cp[j] = -1e16
	}

	for j := 0; j < h.nsat; j++ {
		rng := int(getBitU(buf, i, 8))
		i += 8
		if rng != 255 {
			r[j] = float64(rng) * rangeMS
		}
	}
	for j := 0; j < h.nsat; j++ {
		rngM := int(getBitU(buf, i, 10))
		i += 10
		if r[j] != 0.0 {
			r[j] += float64(rngM) * p2_10 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		prv := int(getBits(buf, i, 15))
		i += 15
		if prv != -16384 {
			pr[j] = float64(prv) * p2_24 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		cpv := int(getBits(buf, i, 22))
		i += 22
		if cpv != -2097152 {
			cp[j] = float64(cpv) * p2_29 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		lock[j] = int(getBitU(buf, i, 4))
		i += 4
	}
	for j := 0; j < ncell; j++ {
		half[j] = int(getBitU(buf, i, 1))
		i++
	}
	for j := 0; j < ncell; j++ {
		cnr[j] = float64(getBitU(buf, i, 6))
		i += 6
	}

	saveMSM4Obs(sys, &h, r, pr, cp, cnr, lock, half, sel, store)
	return true
}

// saveMSM4Obs is the Go analogue of save_msm_obs, specialised to the MSM4
// fields this transcoder carries (no doppler/rate, no extended satellite
// info — see SPEC_FULL.md Non-goals).
func saveMSM4Obs(sys Constellation, h *msmHeader, r, pr, cp, cnr []float64, lock, half []int, sel *Selector, store *ObsStore) {
	codes := make([]Code, h.nsig)
	for i := 0; i < h.nsig; i++ {
		table := msmSigTable(sys)
		sig := ""
		if table != nil && h.sigs[i]-1 >= 0 && h.sigs[i]-1 < len(table) {
			sig = table[h.sigs[i]-1]
		}
		codes[i] = obs2Code(sig)
		if codes[i] == CodeNone {
			Trace(1, "rtcm msm: unknown signal id=%2d\n", h.sigs[i])
			observeDrop(sys, "unknown-signal")
		}
	}

	slots := make([]int, h.nsig)
	for i := 0; i < h.nsig; i++ {
		if codes[i] == CodeNone {
			slots[i] = NFREQ
			continue
		}
		fcn := 0
		_, _, slot, ok := resolveFrequency(sys, codes[i], fcn, sel)
		if !ok {
			slots[i] = NFREQ
			continue
		}
		if slot == NFREQ {
			observeDrop(sys, "not-selected")
		}
		slots[i] = slot
	}
	idx := sigIndex(sys, codes, slots)

	j := 0
	for i := 0; i < h.nsat; i++ {
		prn := h.sats[i]
		prn = fromSatID(sys, prn)
		sat := satNo(sys, prn)
		index := -1
		if sat != 0 {
			index = store.obsIndex(sat)
		} else {
			Trace(2, "rtcm msm: satellite error: prn=%d\n", prn)
		}

		fcn := 0
		if sys == SysGLO {
			fcn = -8
			if prn >= 1 && prn <= len(gloFCN) {
				fcn = gloFCN[prn-1]
			}
		}

		for k := 0; k < h.nsig; k++ {
			if h.cellMask[k+i*h.nsig] == 0 {
				continue
			}
			if sat != 0 && index >= 0 && idx[k] >= 0 {
				var freq float64
				if fcn >= -7 {
					freq, _, _, _ = resolveFrequency(sys, codes[k], fcn, sel)
				}
				rec := store.Record(index)
				slot := idx[k]
				if r[i] != 0.0 && pr[j] > -1e12 {
					rec.P[slot] = r[i] + pr[j]
				}
				if r[i] != 0.0 && cp[j] > -1e12 && freq > 0 {
					rec.L[slot] = (r[i] + cp[j]) * freq / clight
				}
				rec.LLI[slot] = uint8(lossOfLock(lock[j]) | boolBit(half[j] != 0, 2))
				rec.SNR[slot] = uint32(cnr[j]/snrUnit + 0.5)
				rec.Code[slot] = codes[k]
				rec.Locktime[slot] = uint32(lock[j])
			}
			j++
		}
	}
}

func boolBit(b bool, bit int) int {
	if b {
		return bit
	}
	return 0
}
