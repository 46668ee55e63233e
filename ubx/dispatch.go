package ubx

import "fmt"

// decode verifies the checksum of the frame now sitting in d.buff[:d.length]
// and dispatches it by (class<<8)|id. Grounded on ublox.go's decode_ubx.
func (d *Decoder) decode() Status {
	tag := int(u1(d.buff[2:3]))<<8 | int(u1(d.buff[3:4]))

	if !checksumValid(d.buff[:], d.length) {
		d.logger.WithField("tag", fmt.Sprintf("0x%04x", tag)).Warn("ubx checksum error")
		d.metrics.incError()
		return StatusError
	}

	var st Status
	switch tag {
	case idRXMRAW:
		st = d.decodeRXMRAW()
	case idRXMRAWX:
		st = d.decodeRXMRAWX()
	case idRXMSFRB:
		st = d.decodeRXMSFRB()
	case idRXMSFRBX:
		st = d.decodeRXMSFRBX()
	case idNAVSOL:
		st = d.decodeNAVSOL()
	case idNAVTIME:
		st = d.decodeNAVTIME()
	case idTRKMEAS:
		st = d.decodeTRKMEAS()
	case idTRKD5:
		st = d.decodeTRKD5()
	case idTRKSFRBX:
		st = d.decodeTRKSFRBX()
	case idTIMTM2:
		st = d.decodeTIMTM2()
	default:
		if d.outType {
			d.msgType = fmt.Sprintf("UBX 0x%02X 0x%02X (%4d)", tag>>8, tag&0xFF, d.length)
		}
		d.metrics.incSilent()
		return StatusNone
	}
	switch st {
	case StatusObs:
		d.metrics.incObs(d.obsData.N)
	case StatusEph:
		d.metrics.incEph()
	case StatusSBAS:
		d.metrics.incSBAS()
	case StatusIonUtc:
		d.metrics.incIonUtc()
	case StatusError:
		d.metrics.incError()
	case StatusNone:
		d.metrics.incSilent()
	}
	return st
}
