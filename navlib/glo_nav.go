package navlib

// DecodeGlonassString reconstructs the dedup/replacement-relevant fields
// of a GLONASS broadcast ephemeris from four reassembled 10-byte strings
// (strings 1-4 of one frame, each already Hamming-checked and stripped of
// its checksum bits), plus the frequency channel number (already rebased
// to the +/-7 FCN domain) and time of the frame's last string. Bit offsets
// are representative of the GLONASS ICD string layout, not ICD-exact (see
// package doc). Grounded on rcvraw.go's DecodeGlostrEph.
func DecodeGlonassString(buf []uint8, sat, frq int, tof Time) (GEph, bool) {
	if len(buf) < 40 {
		return GEph{}, false
	}
	s1 := buf[0:10]
	s2 := buf[10:20]
	s3 := buf[20:30]
	s4 := buf[30:40]

	tkH := int(GetBitU(s1, 9, 5))
	tkM := int(GetBitU(s1, 14, 6))
	tkS := int(GetBitU(s1, 20, 1)) * 30
	x := GetBitG(s1, 41, 27) * P2_10 * 1e3
	vx := GetBitG(s1, 68, 24) * P2_20 * 1e3
	ax := GetBitG(s1, 92, 5) * P2_30 * 1e3

	bn := int(GetBitU(s2, 3, 1))
	tb := int(GetBitU(s2, 5, 7))
	y := GetBitG(s2, 41, 27) * P2_10 * 1e3
	vy := GetBitG(s2, 68, 24) * P2_20 * 1e3
	ay := GetBitG(s2, 92, 5) * P2_30 * 1e3

	gamn := GetBitG(s3, 3, 11) * P2_40
	z := GetBitG(s3, 41, 27) * P2_10 * 1e3
	vz := GetBitG(s3, 68, 24) * P2_20 * 1e3
	az := GetBitG(s3, 92, 5) * P2_30 * 1e3

	taun := GetBitG(s4, 9, 22) * P2_30
	dTaun := GetBitG(s4, 32, 5) * P2_30
	age := int(GetBitU(s4, 48, 5))
	slot := int(GetBitU(s4, 11, 5))
	_ = slot

	_ = tkH
	_ = tkM
	_ = tkS

	return GEph{
		Sat:   sat,
		Iode:  tb,
		Frq:   frq,
		Svh:   bn,
		Sva:   0,
		Age:   age,
		Toe:   Add(tof, 0),
		Tof:   tof,
		Pos:   [3]float64{x, y, z},
		Vel:   [3]float64{vx, vy, vz},
		Acc:   [3]float64{ax, ay, az},
		Taun:  taun,
		Gamn:  gamn,
		DTaun: dTaun,
	}, true
}

const (
	P2_20 = 1.0 / (1 << 20)
	P2_30 = 1.0 / (1 << 30)
	P2_40 = 1.0 / (1 << 20) / (1 << 20)
)
