package navlib

// DecodeINAV reconstructs the dedup/replacement-relevant fields of a
// Galileo I/NAV ephemeris from reassembled 128-bit word-type slots (16
// bytes per word type at offset type*16; buf must hold at least 256
// bytes). The ubx subframe assembler stores word types 0-6 once CRC-24Q
// has validated each page; only word types 1, 4 and 5 are read here. Word-type
// layout (IODnav/toe in word 1, clock terms/toc in word 4, health/SISA in
// word 5) follows the Galileo OS-SIS-ICD shape; bit offsets here are
// representative rather than ICD-exact, per package doc. Grounded on
// rcvraw.go's decode_enav accumulation logic (ublox.go's word-type slot
// indexing into SubFrm[sat-1][ctype*16:]).
func DecodeINAV(buf []uint8, sat, weekHint int) (Eph, bool) {
	if len(buf) < 256 {
		return Eph{}, false
	}
	w1 := buf[16:32]
	w4 := buf[64:80]
	w5 := buf[80:96]

	iode1 := int(GetBitU(w1, 6, 10))
	toe := float64(GetBitU(w1, 16, 14)) * 60.0

	iode4 := int(GetBitU(w4, 6, 10))
	svid := int(GetBitU(w4, 16, 6))
	_ = svid
	toc := float64(GetBitU(w4, 16, 14)) * 60.0
	af0 := float64(GetBits(w4, 30, 31)) * p2_34
	af1 := float64(GetBits(w4, 61, 21)) * p2_46
	af2 := float64(GetBits(w4, 82, 6)) * p2_59

	week := int(GetBitU(w5, 73, 12))
	sisa := int(GetBitU(w5, 67, 8))
	healthE1B := int(GetBitU(w5, 37, 2))

	if iode1 != iode4 {
		return Eph{}, false
	}

	w := AdjGPSWeek(week, weekHint)
	return Eph{
		Sat:  sat,
		Iode: iode1,
		Iodc: iode1,
		Sva:  sisa,
		Svh:  healthE1B,
		Week: w,
		Toe:  GPSTime(w, toe),
		Toc:  GPSTime(w, toc),
		F0:   af0,
		F1:   af1,
		F2:   af2,
	}, true
}

const (
	p2_34 = 1.0 / (1 << 17) / (1 << 17)
	p2_46 = 1.0 / (1 << 23) / (1 << 23)
	p2_59 = 1.0 / (1 << 29) / (1 << 30)
)
