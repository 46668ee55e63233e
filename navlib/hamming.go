package navlib

// glonassHammingMask is the per-checksum-bit byte mask table used by the
// GLONASS string Hamming check, one row of 11 bytes per parity bit plus the
// final all-ones checksum-bit row. Grounded on rcvraw.go's mask_hamming.
var glonassHammingMask = [8][11]uint8{
	{0x55, 0x55, 0x5B, 0x6C, 0xD8, 0x59, 0x23, 0x46, 0x8C, 0x11, 0x01},
	{0x66, 0x66, 0x67, 0x4B, 0x98, 0x2D, 0x16, 0x2B, 0x96, 0x29, 0x02},
	{0x87, 0x87, 0x8F, 0x1D, 0x30, 0x33, 0x2E, 0x1E, 0xA6, 0x4A, 0x04},
	{0x98, 0x98, 0x9F, 0x1F, 0xD0, 0x3C, 0x68, 0xD1, 0xB2, 0x8B, 0x08},
	{0xA9, 0xA9, 0xB7, 0x31, 0x60, 0xC0, 0xB8, 0xE2, 0xC9, 0x4E, 0x10},
	{0xB2, 0xB2, 0xD7, 0x61, 0x40, 0x97, 0xE6, 0xCB, 0x9A, 0x81, 0x20},
	{0x35, 0x35, 0x1B, 0xAC, 0x80, 0xC3, 0xC9, 0xB4, 0xA9, 0x43, 0x40},
	{0xFF, 0xFF, 0xFF, 0xFF, 0xF0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x80},
}

// xorBit8 is the parity-of-byte lookup table. Grounded on rcvraw.go's
// xor_8bit.
var xorBit8 [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		var p uint8
		v := uint8(i)
		for v != 0 {
			p ^= v & 1
			v >>= 1
		}
		xorBit8[i] = p
	}
}

// TestGlonassHamming reports whether a reassembled 11-byte (with parity)
// GLONASS navigation string passes the Hamming single-error check.
// Grounded on rcvraw.go's test_glostr.
func TestGlonassHamming(buff []uint8) bool {
	var n int
	for i := 0; i < 8; i++ {
		var cs uint8
		for j := 0; j < 11; j++ {
			cs ^= xorBit8[buff[j]&glonassHammingMask[i][j]]
		}
		if cs != 0 {
			n++
		}
	}
	return n == 0
}
