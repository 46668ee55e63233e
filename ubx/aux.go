package ubx

import (
	"fmt"

	"ubxcore/navlib"
)

// decodeNAVSOL decodes UBX-NAV-SOL, updating the receiver clock only when
// both week and time-of-week validity flags are set. Grounded on
// ublox.go's decode_navsol.
func (d *Decoder) decodeNAVSOL() Status {
	const p = 6
	buff := d.buff[:]
	if d.outType {
		d.msgType = fmt.Sprintf("UBX NAV-SOL   (%4d):", d.length)
	}
	itow := int(u4l(buff[p : p+4]))
	ftow := int(i4l(buff[p+4 : p+8]))
	week := int(u2l(buff[p+8 : p+10]))
	if u1(buff[p+11:p+12])&0x0C == 0x0C {
		d.time = navlib.GPSTime(week, float64(itow)*1e-3+float64(ftow)*1e-9)
	}
	return StatusNone
}

// decodeNAVTIME decodes UBX-NAV-TIMEGPS. Grounded on ublox.go's
// decode_navtime.
func (d *Decoder) decodeNAVTIME() Status {
	const p = 6
	buff := d.buff[:]
	if d.outType {
		d.msgType = fmt.Sprintf("UBX NAV-TIME  (%4d):", d.length)
	}
	itow := int(u4l(buff[p : p+4]))
	ftow := int(i4l(buff[p+4 : p+8]))
	week := int(u2l(buff[p+8 : p+10]))
	if u1(buff[p+11:p+12])&0x03 == 0x03 {
		d.time = navlib.GPSTime(week, float64(itow)*1e-3+float64(ftow)*1e-9)
	}
	return StatusNone
}

// decodeTIMTM2 decodes UBX-TIM-TM2, a time-mark event on the receiver's
// external input pin. On a new falling edge, the current epoch is marked
// as an event: event time, receiver count and the time-mark counter are
// recorded. Grounded on ublox.go's decode_timtm2.
func (d *Decoder) decodeTIMTM2() Status {
	const p = 6
	buff := d.buff[:]
	if d.length < 34 {
		d.logger.Warn("ubx timtm2 length error")
		return StatusError
	}
	if d.outType {
		d.msgType = fmt.Sprintf("UBX TIM-TM2   (%4d):", d.length)
	}
	flags := u1(buff[p+1 : p+2])
	count := u2l(buff[p+2 : p+4])
	wnF := int(u2l(buff[p+6 : p+8]))
	towMsF := u4l(buff[p+16 : p+20])
	towSubMsF := u4l(buff[p+20 : p+24])

	newFallingEdge := flags>>2&1 != 0
	timeValid := flags>>6&1 != 0

	if newFallingEdge {
		d.obsData.Flag = 5
		d.ensureObsCap(1)
		d.obsData.Data[0].EventTime = navlib.GPSTime(wnF, float64(towMsF)*1e-3+float64(towSubMsF)*1e-9)
		d.obsData.Data[0].TimeValid = timeValid
		d.rcvCount = uint32(count)
		d.tmCount++
	} else {
		d.obsData.Flag = 0
	}
	return StatusNone
}
