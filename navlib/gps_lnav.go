package navlib

// DecodeLNAV reconstructs the dedup/replacement-relevant fields of a
// GPS/QZSS LNAV ephemeris from three consecutive 24-bit-dewarped
// subframes (subframes 1,2,3 back to back, 30 bytes/240 bits each, so buf
// is 90 bytes). Bit offsets below are representative of ICD-GPS-200's
// subframe layout, not transcribed from a reference table; only the
// fields the dedup/replacement invariant (iode/iodc/toe/toc match) and
// clock-polynomial terms are extracted; full orbital terms are the
// caller's concern. Grounded on rcvraw.go's DecodeFrameEph.
//
// Returns ok=false if buf is shorter than 90 bytes or the three subframes
// are not self-consistent (subframe-id sequence wrong, iode mismatch
// between subframe 2 and 3, or iode not equal to the low 8 bits of iodc).
func DecodeLNAV(buf []uint8, sat, weekHint int) (Eph, bool) {
	if len(buf) < 90 {
		return Eph{}, false
	}
	sf1 := buf[0:30]
	sf2 := buf[30:60]
	sf3 := buf[60:90]

	id1 := int(GetBitU(sf1, 43, 3))
	id2 := int(GetBitU(sf2, 43, 3))
	id3 := int(GetBitU(sf3, 43, 3))
	if id1 != 1 || id2 != 2 || id3 != 3 {
		return Eph{}, false
	}

	week := int(GetBitU(sf1, 48, 10))
	code := int(GetBitU(sf1, 58, 2))
	_ = code
	sva := int(GetBitU(sf1, 60, 4))
	svh := int(GetBitU(sf1, 64, 6))
	iodcH := int(GetBitU(sf1, 70, 2))
	tgd := float64(GetBits(sf1, 160, 8)) * P2_32
	iodcL := int(GetBitU(sf1, 168, 8))
	iodc := iodcH<<8 | iodcL
	toc := float64(GetBitU(sf1, 176, 16)) * 16.0
	f2 := float64(GetBits(sf1, 192, 8)) * p2_55
	f1 := float64(GetBits(sf1, 200, 16)) * p2_43
	f0 := float64(GetBits(sf1, 216, 22)) * P2_32

	iode2 := int(GetBitU(sf2, 48, 8))
	toe := float64(GetBitU(sf2, 224, 16)) * 16.0
	iode3 := int(GetBitU(sf3, 232, 8))
	if iode2 != iode3 || iode2 != iodc&0xFF {
		return Eph{}, false
	}

	w := AdjGPSWeek(week, weekHint)
	return Eph{
		Sat:  sat,
		Iode: iode2,
		Iodc: iodc,
		Sva:  sva,
		Svh:  svh,
		Week: w,
		Toe:  GPSTime(w, toe),
		Toc:  GPSTime(w, toc),
		F0:   f0,
		F1:   f1,
		F2:   f2,
		Tgd:  tgd,
	}, true
}

const (
	p2_55 = 1.0 / (1 << 27) / (1 << 28)
	p2_43 = 1.0 / (1 << 21) / (1 << 22)
)

// AdjGPSWeek reseats a truncated (here, full 10-bit) broadcast week number
// against a hint week from the receiver's own clock, guarding against
// rollover when the hint itself is stale. Grounded on common.go's week
// adjustment helper used throughout DecodeFrameEph.
func AdjGPSWeek(week, hint int) int {
	if hint <= 0 {
		return week
	}
	w := week + (hint/1024)*1024
	if w < hint-512 {
		w += 1024
	} else if w > hint+512 {
		w -= 1024
	}
	return w
}
