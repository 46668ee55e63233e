package ubx

import "ubxcore/navlib"

// nFreq and nExObs mirror ublox.go's NFREQ/NEXOBS constants: three
// primary frequency slots, no extended slots (this core tracks the
// signals u-blox actually reports, not a RINEX multi-code superset).
const (
	nFreq  = 3
	nExObs = 0
)

// classifySys maps a UBX gnssId to a navlib system identifier. Grounded
// on ublox.go's ubx_sys.
func classifySys(gnssID int) int {
	return navlib.UbxSys(gnssID)
}

// classifySig maps a (system, sigId) pair to an observation code, per the
// UBX interface description's signal identifier table. Grounded on
// ublox.go's ubx_sig.
func classifySig(sys, sigID int) uint8 {
	switch sys {
	case navlib.SysGPS:
		switch sigID {
		case 0:
			return navlib.CodeL1C
		case 3:
			return navlib.CodeL2L
		case 4:
			return navlib.CodeL2S
		}
	case navlib.SysGLO:
		switch sigID {
		case 0:
			return navlib.CodeL1C
		case 2:
			return navlib.CodeL2C
		}
	case navlib.SysGAL:
		switch sigID {
		case 0:
			return navlib.CodeL1C
		case 1:
			return navlib.CodeL1B
		case 5:
			return navlib.CodeL7I
		case 6:
			return navlib.CodeL7Q
		}
	case navlib.SysQZS:
		switch sigID {
		case 0:
			return navlib.CodeL1C
		case 1:
			return navlib.CodeL1Z
		case 4:
			return navlib.CodeL2S
		case 5:
			// L2CL on sigId 5 is undocumented for QZSS but observed in
			// the wild; kept rather than dropped.
			return navlib.CodeL2L
		}
	case navlib.SysCMP:
		switch sigID {
		case 0, 1:
			return navlib.CodeL2I
		case 2, 3:
			return navlib.CodeL7I
		}
	case navlib.SysSBS:
		if sigID == 0 {
			return navlib.CodeL1C
		}
	}
	return navlib.CodeNone
}

// sigIdx returns the frequency-slot index (0,1,2,...) an observation code
// occupies in ObsD.L/P/D/SNR/Code/LLI, or -1 if the code needs an
// extended slot this build does not carry (nExObs==0). Grounded on
// ublox.go's sig_idx.
func sigIdx(sys int, code uint8) int {
	idx := navlib.Code2Idx(sys, code)
	switch sys {
	case navlib.SysGPS:
		if code == navlib.CodeL2S {
			if nExObs < 1 {
				return -1
			}
			return nFreq
		}
	case navlib.SysGAL:
		if code == navlib.CodeL1B {
			if nExObs < 1 {
				return -1
			}
			return nFreq
		}
		if code == navlib.CodeL7I {
			if nExObs < 2 {
				return -1
			}
			return nFreq + 1
		}
	case navlib.SysQZS:
		if code == navlib.CodeL2S {
			if nExObs < 1 {
				return -1
			}
			return nFreq
		}
	}
	return idx
}
