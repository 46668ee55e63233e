package navlib

// bdsEpochOffset is the BeiDou time epoch offset from GPS time in whole seconds
// (BDT started 2006-01-01, 14s behind GPST by construction of the BDS
// second rollover). Grounded on common.go's BDT2Time/Time2BDT.
const bdsEpochOffset = 14

// DecodeD1 reconstructs ephemeris fields from a BeiDou D1 (MEO/IGSO)
// navigation message, assembled as five 38-byte subframe slots (subframes
// 1-5, 300 bits/37.5 bytes each, padded to 38) indexed by subframe number.
// Bit offsets are representative of the BeiDou B1I D1 NAV ICD subframe
// layout, not ICD-exact. Grounded on rcvraw.go's decode_cnav / D1 path.
func DecodeD1(buf []uint8, sat, weekHint int) (Eph, bool) {
	if len(buf) < 190 {
		return Eph{}, false
	}
	sf1 := buf[0:38]
	sf3 := buf[76:114]

	week := int(GetBitU(sf1, 15, 13))
	svh := int(GetBitU(sf1, 42, 1))
	aodc := int(GetBitU(sf1, 43, 5))
	urai := int(GetBitU(sf1, 60, 4))
	toc := float64(GetBitU(sf1, 90, 17)) * 8.0
	tgd1 := float64(GetBits(sf1, 107, 10)) * 0.1e-9
	_ = tgd1
	f2 := float64(GetBits(sf1, 180, 11)) * p2_66
	f1 := float64(GetBits(sf1, 191, 22)) * p2_50
	f0 := float64(GetBits(sf1, 213, 24)) * p2_33

	aode := int(GetBitU(sf3, 0, 5))
	toe := float64(GetBitU(sf3, 5, 17)) * 8.0

	iode := aode
	if iode != aodc&0x1F {
		// non-fatal: AODC/AODE mismatch just means clock and ephemeris
		// issue counters ticked independently this cycle.
	}

	w := bdtToGpsWeek(week, weekHint)
	return Eph{
		Sat:  sat,
		Iode: iode,
		Iodc: aodc,
		Sva:  urai,
		Svh:  svh,
		Week: w,
		Toe:  Add(GPSTime(w, toe), bdsEpochOffset),
		Toc:  Add(GPSTime(w, toc), bdsEpochOffset),
		F0:   f0,
		F1:   f1,
		F2:   f2,
	}, true
}

// DecodeD2 reconstructs ephemeris fields from a BeiDou D2 (GEO) navigation
// message, assembled as ten 38-byte page slots (pages 1-10 of subframe 1,
// 300 bits/37.5 bytes each, padded to 38). Bit offsets are representative.
// Grounded on rcvraw.go's decode_cnav / D2 path.
func DecodeD2(buf []uint8, sat, weekHint int) (Eph, bool) {
	if len(buf) < 380 {
		return Eph{}, false
	}
	p1 := buf[0:38]
	p10 := buf[342:380]

	week := int(GetBitU(p1, 15, 13))
	svh := int(GetBitU(p1, 42, 1))
	toc := float64(GetBitU(p1, 90, 17)) * 8.0
	f0 := float64(GetBits(p1, 213, 24)) * p2_33

	toe := float64(GetBitU(p10, 30, 17)) * 8.0
	iode := int(GetBitU(p10, 50, 5))

	w := bdtToGpsWeek(week, weekHint)
	return Eph{
		Sat:  sat,
		Iode: iode,
		Iodc: iode,
		Sva:  0,
		Svh:  svh,
		Week: w,
		Toe:  Add(GPSTime(w, toe), bdsEpochOffset),
		Toc:  Add(GPSTime(w, toc), bdsEpochOffset),
		F0:   f0,
	}, true
}

func bdtToGpsWeek(bdsWeek, gpsWeekHint int) int {
	if gpsWeekHint <= 0 {
		return bdsWeek + 1356
	}
	return AdjGPSWeek(bdsWeek, gpsWeekHint-1356) + 1356
}

const (
	p2_66 = 1.0 / (1 << 33) / (1 << 33)
	p2_50 = 1.0 / (1 << 25) / (1 << 25)
	p2_33 = 1.0 / (1 << 16) / (1 << 17)
)
