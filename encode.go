/*------------------------------------------------------------------------------
* encode.go : msm4 header and payload encoding
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

import "math"

// genMSMIndex builds the satellite/signal/cell index arrays encodeMSMHead
// needs from the current contents of store, for constellation sys. numBands
// bounds the per-record walk to the caller's selected primary slots
// (sel.numSelectedBands(sys)) rather than the full NFREQ+NEXOBS row: the
// NEXOBS extended slots hold signals that lost priority arbitration for a
// selected band, not signals from unselected bands, so walking past
// numBands would re-emit bands the caller never asked for. Ported from
// original_source/rtcmCnv.c's gen_msm_index, which was amended in-source
// from a bare NFREQ+NEXOBS bound to m_gnss_frq_num[sys_idx] for the same
// reason (see SPEC_FULL.md §4.3/§4.5).
func genMSMIndex(sys Constellation, store *ObsStore, numBands int) (nsat, nsig, ncell int, satInd [64]int, sigInd [32]int, cellInd [64 * 32]int) {
	for i := 0; i < store.N(); i++ {
		rec := store.Record(i)
		sat := toSatID(sys, rec.Sat)
		if sat == 0 {
			continue
		}
		for j := 0; j < numBands; j++ {
			sig := toSigID(sys, rec.Code[j])
			if sig == 0 {
				continue
			}
			satInd[sat-1] = 1
			sigInd[sig-1] = 1
		}
	}
	for i := 0; i < 64; i++ {
		if satInd[i] != 0 {
			nsat++
			satInd[i] = nsat
		}
	}
	for i := 0; i < 32; i++ {
		if sigInd[i] != 0 {
			nsig++
			sigInd[i] = nsig
		}
	}
	for i := 0; i < store.N(); i++ {
		rec := store.Record(i)
		sat := toSatID(sys, rec.Sat)
		if sat == 0 {
			continue
		}
		for j := 0; j < numBands; j++ {
			sig := toSigID(sys, rec.Code[j])
			if sig == 0 {
				continue
			}
			cell := sigInd[sig-1] - 1 + (satInd[sat-1]-1)*nsig
			cellInd[cell] = 1
		}
	}
	for i := 0; i < nsat*nsig && i < len(cellInd); i++ {
		if cellInd[i] != 0 {
			ncell++
			cellInd[i] = ncell
		}
	}
	return
}

// fcnGLO returns the RTCM-encoded GLONASS frequency channel number (fcn+7),
// or -1 if sat is not a GLONASS satellite or has no known channel.
func fcnGLO(sat int) int {
	sys, prn := satSys(sat)
	if sys != SysGLO || prn < 1 || prn > len(gloFCN) {
		return -1
	}
	if gloFCN[prn-1] > -8 {
		return gloFCN[prn-1] + 7
	}
	return -1
}

func roundF(v float64) float64 { return math.Round(v) }

// genMSMSat fills the per-satellite rough-range (and, for GLONASS, channel
// info) arrays. numBands bounds the walk the same way as in genMSMIndex.
// Ported from gen_msm_sat.
func genMSMSat(sys Constellation, store *ObsStore, satInd [64]int, numBands int) (rrng [64]float64, info [64]uint8) {
	for i := 0; i < store.N(); i++ {
		rec := store.Record(i)
		fcn := fcnGLO(rec.Sat)
		sat := toSatID(sys, rec.Sat)
		if sat == 0 {
			continue
		}
		for j := 0; j < numBands; j++ {
			if toSigID(sys, rec.Code[j]) == 0 {
				continue
			}
			k := satInd[sat-1] - 1
			if rrng[k] == 0.0 && rec.P[j] != 0.0 {
				rrng[k] = roundF(rec.P[j]/rangeMS/p2_10) * rangeMS * p2_10
			}
			if sys == SysGLO {
				if fcn < 0 {
					info[k] = 15
				} else {
					info[k] = uint8(fcn)
				}
			}
		}
	}
	return
}

// genMSMSig fills the per-cell fine pseudorange / phase-range / lock /
// half-cycle / CNR arrays. numBands bounds the walk the same way as in
// genMSMIndex. Ported from gen_msm_sig.
func genMSMSig(sys Constellation, sel *Selector, store *ObsStore, nsig, ncell int, satInd [64]int, sigInd [32]int, cellInd [64 * 32]int, rrng [64]float64, numBands int) (psrng, phrng, lock [64]float64, half [64]uint8, cnr [64]float64) {
	for i := 0; i < store.N(); i++ {
		rec := store.Record(i)
		fcn := fcnGLO(rec.Sat)
		sat := toSatID(sys, rec.Sat)
		if sat == 0 {
			continue
		}
		for j := 0; j < numBands; j++ {
			sig := toSigID(sys, rec.Code[j])
			if sig == 0 {
				continue
			}
			k := satInd[sat-1] - 1
			cell := cellInd[sigInd[sig-1]-1+k*nsig]
			if cell == 0 || cell > 64 {
				continue
			}
			freq, _, _, _ := resolveFrequency(sys, rec.Code[j], fcn-7, sel)
			lambda := 0.0
			if freq != 0.0 {
				lambda = clight / freq
			}
			psrngS := 0.0
			if rec.P[j] != 0.0 {
				psrngS = rec.P[j] - rrng[k]
			}
			phrngS := 0.0
			if rec.L[j] != 0.0 && lambda > 0.0 {
				phrngS = rec.L[j]*lambda - rrng[k]
			}
			if psrngS != 0.0 {
				psrng[cell-1] = psrngS
			}
			if phrngS != 0.0 {
				phrng[cell-1] = phrngS
			}
			lock[cell-1] = float64(rec.Locktime[j])
			if rec.LLI[j]&2 != 0 {
				half[cell-1] = 1
			}
			cnr[cell-1] = float64(rec.SNR[j]) * snrUnit
		}
	}
	return
}

// encodeMSMHead writes the MSM header (message type through cell mask) into
// out starting at its 3-byte RTCM3 frame header. Unlike the original's
// encode_msm_head, which copies the header prefix out of the INPUT buffer
// after already patching sync into it — making the sync parameter a no-op in
// the emitted frame — this writes sync directly into the output buffer, so
// the sync argument always takes effect. See SPEC_FULL.md §4.5 and DESIGN.md.
func encodeMSMHead(msgType int, out []byte, sys Constellation, sync bool, nsat, nsig, ncell int, satInd [64]int, sigInd [32]int, cellInd [64 * 32]int) (bitPos int) {
	i := 24
	setBitU(out, i, 12, uint32(msgType))
	i += 12
	i += 12 // reference station id (left zero here; Convert copies the input's)
	i += 30 // epoch time (left zero here; Convert copies the input's)
	setBitU(out, i, 1, boolU(sync))
	i++
	i += 3
	i += 7
	i += 2
	i += 2
	i++
	i += 3

	for j := 0; j < 64; j++ {
		setBitU(out, i, 1, boolU(satInd[j] != 0))
		i++
	}
	for j := 0; j < 32; j++ {
		setBitU(out, i, 1, boolU(sigInd[j] != 0))
		i++
	}
	for j := 0; j < nsat*nsig && j < 64; j++ {
		setBitU(out, i, 1, boolU(cellInd[j] != 0))
		i++
	}

	return i
}

func boolU(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func encodeIntRrng(out []byte, i int, rrng [64]float64, nsat int) int {
	for j := 0; j < nsat; j++ {
		var intMS uint32
		switch {
		case rrng[j] == 0.0:
			intMS = 255
		case rrng[j] < 0.0 || rrng[j] > rangeMS*255.0:
			intMS = 255
		default:
			intMS = uint32(roundF(rrng[j]/rangeMS/p2_10)) >> 10
		}
		setBitU(out, i, 8, intMS)
		i += 8
	}
	return i
}

func encodeModRrng(out []byte, i int, rrng [64]float64, nsat int) int {
	for j := 0; j < nsat; j++ {
		var modMS uint32
		if rrng[j] <= 0.0 || rrng[j] > rangeMS*255.0 {
			modMS = 0
		} else {
			modMS = uint32(roundF(rrng[j]/rangeMS/p2_10)) & 0x3FF
		}
		setBitU(out, i, 10, modMS)
		i += 10
	}
	return i
}

func encodePsrng(out []byte, i int, psrng [64]float64, ncell int) int {
	for j := 0; j < ncell; j++ {
		var v int32
		switch {
		case psrng[j] == 0.0:
			v = -16384
		case math.Abs(psrng[j]) > 292.7:
			v = -16384
		default:
			v = int32(roundF(psrng[j] / rangeMS / p2_24))
		}
		setBits(out, i, 15, v)
		i += 15
	}
	return i
}

func encodePhrng(out []byte, i int, phrng [64]float64, ncell int) int {
	for j := 0; j < ncell; j++ {
		var v int32
		switch {
		case phrng[j] == 0.0:
			v = -2097152
		case math.Abs(phrng[j]) > 1171.0:
			v = -2097152
		default:
			v = int32(roundF(phrng[j] / rangeMS / p2_29))
		}
		setBits(out, i, 22, v)
		i += 22
	}
	return i
}

func encodeLock(out []byte, i int, lock [64]float64, ncell int) int {
	for j := 0; j < ncell; j++ {
		setBitU(out, i, 4, uint32(lock[j]))
		i += 4
	}
	return i
}

func encodeHalfAmb(out []byte, i int, half [64]uint8, ncell int) int {
	for j := 0; j < ncell; j++ {
		setBitU(out, i, 1, uint32(half[j]))
		i++
	}
	return i
}

func encodeCNR(out []byte, i int, cnr [64]float64, ncell int) int {
	for j := 0; j < ncell; j++ {
		setBitU(out, i, 6, uint32(roundF(cnr[j])))
		i += 6
	}
	return i
}

// bitsToBytes rounds a bit count up to its containing byte count.
func bitsToBytes(bits int) int { return (bits + 7) / 8 }

// EncodeMSM4 serializes the observations currently in store, for
// constellation sys, as one complete RTCM3 MSM4 frame (preamble through
// CRC-24Q). sync sets the multiple-message bit. Returns false if sys has no
// MSM4 message type, no selected signal is left to encode, the message would
// need a cell count the header can't carry (nsat*nsig > 64), or the payload
// would exceed 1024 bytes.
func EncodeMSM4(sys Constellation, sync bool, sel *Selector, store *ObsStore) ([]byte, bool) {
	msgType := msgTypeOf(sys)
	if msgType == 0 {
		return nil, false
	}
	numBands := sel.numSelectedBands(sys)
	nsat, nsig, ncell, satInd, sigInd, cellInd := genMSMIndex(sys, store, numBands)
	if nsat == 0 || nsat*nsig > 64 {
		return nil, false
	}
	rrng, _ := genMSMSat(sys, store, satInd, numBands)
	psrng, phrng, lock, half, cnr := genMSMSig(sys, sel, store, nsig, ncell, satInd, sigInd, cellInd, rrng, numBands)

	// 1200 bytes is comfortably larger than any legal MSM4 frame (max
	// payload is 64 satellites * 18 bits + 64 cells * 48 bits plus header).
	buf := make([]byte, 1200)
	i := encodeMSMHead(msgType, buf, sys, sync, nsat, nsig, ncell, satInd, sigInd, cellInd)

	i = encodeIntRrng(buf, i, rrng, nsat)
	i = encodeModRrng(buf, i, rrng, nsat)
	i = encodePsrng(buf, i, psrng, ncell)
	i = encodePhrng(buf, i, phrng, ncell)
	i = encodeLock(buf, i, lock, ncell)
	i = encodeHalfAmb(buf, i, half, ncell)
	i = encodeCNR(buf, i, cnr, ncell)

	payloadBytes := bitsToBytes(i) - 3
	if payloadBytes > 1024 {
		Trace(1, "rtcm msm: length error sys=%s payload=%d\n", sys, payloadBytes)
		return nil, false
	}
	setBitU(buf, 0, 8, 0xD3)
	setBitU(buf, 8, 6, 0)
	setBitU(buf, 14, 10, uint32(payloadBytes))
	frame := buf[:3+payloadBytes]
	return appendCRC24(frame), true
}
