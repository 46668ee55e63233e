// Package ubx implements the u-blox UBX binary protocol: stream framing
// and checksum, multi-GNSS observation decoding, per-constellation
// navigation-data decoding, the legacy undocumented tracking messages, and
// outbound CFG-* frame generation including the VALSET key/value catalog.
//
// Grounded throughout on ublox.go (a Go port of RTKLIB's rcv/ublox.c),
// generalized from a single fixed receiver-state global to a per-instance
// Decoder, with logging/metrics/config lifted out of the hot decode path
// per rxconfig and ubx.Metrics.
package ubx

import (
	"encoding/binary"
	"math"
)

// Little-endian field accessors, mirroring ublox.go's crescent.go/
// binex.go U2L/U4L/I2L/I4L/R4L/R8L helpers. U1/I1 need no endianness.
func u1(p []uint8) uint8   { return p[0] }
func i1(p []uint8) int8    { return int8(p[0]) }
func u2l(p []uint8) uint16 { return binary.LittleEndian.Uint16(p) }
func u4l(p []uint8) uint32 { return binary.LittleEndian.Uint32(p) }
func i2l(p []uint8) int16  { return int16(binary.LittleEndian.Uint16(p)) }
func i4l(p []uint8) int32  { return int32(binary.LittleEndian.Uint32(p)) }
func r4l(p []uint8) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p))
}
func r8l(p []uint8) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(p))
}

// i8l reconstructs a 64-bit accumulated-delta-range-style value from a
// 32-bit high part at p[4:] and a 32-bit low part at p[:4]. Grounded on
// ublox.go's I8L.
func i8l(p []uint8) float64 {
	return float64(i4l(p[4:]))*4294967296.0 + float64(u4l(p[:4]))
}

func setU1(p []uint8, v uint8)   { p[0] = v }
func setU2(p []uint8, v uint16)  { binary.LittleEndian.PutUint16(p, v) }
func setU4(p []uint8, v uint32)  { binary.LittleEndian.PutUint32(p, v) }
func setI1(p []uint8, v int8)    { p[0] = uint8(v) }
func setI2(p []uint8, v int16)   { binary.LittleEndian.PutUint16(p, uint16(v)) }
func setI4(p []uint8, v int32)   { binary.LittleEndian.PutUint32(p, uint32(v)) }
func setR4(p []uint8, v float32) { binary.LittleEndian.PutUint32(p, math.Float32bits(v)) }
func setR8(p []uint8, v float64) { binary.LittleEndian.PutUint64(p, math.Float64bits(v)) }

// UBX sync/class constants. Grounded on ublox.go.
const (
	sync1  = 0xB5
	sync2  = 0x62
	clsCFG = 0x06
)

// UBX message tags, (class<<8)|id. Grounded on ublox.go's ID_* constants.
const (
	idNAVSOL   = 0x0106
	idNAVTIME  = 0x0120
	idRXMRAW   = 0x0210
	idRXMSFRB  = 0x0211
	idRXMSFRBX = 0x0213
	idRXMRAWX  = 0x0215
	idTRKD5    = 0x030A
	idTRKMEAS  = 0x0310
	idTRKSFRBX = 0x030F
	idTIMTM2   = 0x0D03
)

// checksumValid reports whether buff[0:length] carries a valid Fletcher
// checksum in its final two bytes. Grounded on ublox.go's checksum_ublox.
func checksumValid(buff []uint8, length int) bool {
	var cka, ckb uint8
	for i := 2; i < length-2; i++ {
		cka += buff[i]
		ckb += cka
	}
	return cka == buff[length-2] && ckb == buff[length-1]
}

// setChecksum writes the Fletcher checksum into buff[length-2:length].
// Grounded on ublox.go's setcs.
func setChecksum(buff []uint8, length int) {
	var cka, ckb uint8
	for i := 2; i < length-2; i++ {
		cka += buff[i]
		ckb += cka
	}
	buff[length-2] = cka
	buff[length-1] = ckb
}
