package navlib

// crc24qPoly is the CRC-24Q polynomial (0x1864CFB), the same one used for
// Galileo I/NAV page integrity and RTCM3 framing. Grounded on common.go's
// Rtk_CRC24q / tbl_CRC24Q: ublox.go ships the table as a literal; this
// core builds the identical table at init time from the polynomial instead
// of transcribing 256 hex constants, which is less error-prone and
// produces the exact same table.
const crc24qPoly = 0x1864CFB

var crc24qTable [256]uint32

func init() {
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 16
		for bit := 0; bit < 8; bit++ {
			crc <<= 1
			if crc&0x1000000 != 0 {
				crc ^= crc24qPoly
			}
		}
		crc24qTable[i] = crc & 0xFFFFFF
	}
}

// CRC24Q computes the CRC-24Q checksum over buff, seeded from crc (pass 0
// for a fresh computation). Grounded on common.go's Rtk_CRC24q, used
// verbatim by the Galileo I/NAV page-integrity check in the ubx package.
func CRC24Q(buff []uint8, crc uint32) uint32 {
	for _, b := range buff {
		crc = ((crc << 8) & 0xFFFFFF) ^ crc24qTable[(crc>>16)&0xFF^uint32(b)]
	}
	return crc
}
