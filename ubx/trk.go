package ubx

import (
	"fmt"

	"ubxcore/navlib"
)

// trkmAdjApplies reports whether the legacy TRK-MEAS/TRK-D5 GLOT-to-GPST
// time correction should be applied. Grounded on the -TRKM_ADJ option
// read by ublox.go's decode_trkmeas/decode_trkd5 callers (javad.go carries
// the equivalent adj_utcweek-style firmware gating); firmware major
// versions 2 and 3 are the only ones this core recognizes as GLOT-aware,
// so any other value (including the option's absence) leaves GLONASS
// pseudoranges uncorrected rather than risk a wrong offset.
func (d *Decoder) trkmAdjApplies() bool {
	return d.cfg.TrkmAdj != nil && (*d.cfg.TrkmAdj == 2 || *d.cfg.TrkmAdj == 3)
}

// pAdjFW2/pAdjFW3 are the GLONASS frequency-slot pseudorange bias tables
// (meters) for TRK-MEAS firmware 2.30 and 3.01 respectively, indexed by
// frq+7 where frq is the signed frequency channel number in [-7,7].
// Grounded on ublox.go's decode_trkmeas P_adj_fw2/P_adj_fw3.
var (
	pAdjFW2 = [15]float64{0, 0, 0, 0, 1, 3, 2, 0, -4, -3, -9, -8, -7, -4, 0}
	pAdjFW3 = [15]float64{11, 13, 13, 14, 14, 13, 12, 10, 8, 6, 5, 5, 5, 7, 0}
)

// decodeTRKMEAS decodes the legacy, undocumented UBX-TRK-MEAS message
// (NEO-M8N F/W 2.01). Grounded on ublox.go's decode_trkmeas.
func (d *Decoder) decodeTRKMEAS() Status {
	const p0 = 6
	buff := d.buff[:]
	if d.outType {
		d.msgType = fmt.Sprintf("UBX TRK-MEAS  (%4d):", d.length)
	}
	if d.time.Sec == 0 {
		return StatusNone
	}
	nch := int(u1(buff[p0+2 : p0+3]))
	if d.length < 112+nch*56 {
		d.logger.WithField("nch", nch).Warn("ubx trkmeas length error")
		return StatusError
	}

	tr := -1.0
	p := p0 + 110
	for i := 0; i < nch; i, p = i+1, p+56 {
		if u1(buff[p+1:p+2]) < 4 || classifySys(int(u1(buff[p+4:p+5]))) != navlib.SysGPS {
			continue
		}
		if t := i8l(buff[p+24:p+32]) * navlib.P2_32 / 1000.0; t > tr {
			tr = t
		}
	}
	if tr < 0 {
		return StatusNone
	}
	tr = float64(navlib.Round((tr+0.08)/0.1)) * 0.1

	week0, tow0 := navlib.ToGPSWeekTow(d.time)
	week := week0
	if tr < tow0-302400 {
		week++
	} else if tr > tow0+302400 {
		week--
	}
	t := navlib.GPSTime(week, tr)
	utcGpst := navlib.Sub(navlib.ToUTC(t), t)

	n := 0
	p = p0 + 110
	for i := 0; i < nch; i, p = i+1, p+56 {
		qi := int(u1(buff[p+1 : p+2]))
		if qi < 4 || qi > 7 {
			continue
		}
		sys := classifySys(int(u1(buff[p+4 : p+5])))
		if sys == navlib.SysNone {
			d.logger.Warn("ubx trkmeas system error")
			continue
		}
		prn := int(u1(buff[p+5 : p+6]))
		if sys == navlib.SysQZS {
			prn += 192
		}
		sat := navlib.SatNo(sys, prn)
		if sat == 0 {
			d.logger.WithField("prn", prn).Warn("ubx trkmeas sat number error")
			continue
		}
		ts := i8l(buff[p+24:p+32]) * navlib.P2_32 / 1000.0
		switch sys {
		case navlib.SysCMP:
			ts += 14.0
		case navlib.SysGLO:
			if d.trkmAdjApplies() {
				ts -= 10800.0 + utcGpst
			}
		}
		tau := tr - ts
		switch {
		case tau < -302400:
			tau += 604800
		case tau > 302400:
			tau -= 604800
		}

		frq := int(u1(buff[p+7:p+8])) - 7
		flag := int(u1(buff[p+8 : p+9]))
		lock2 := int(u1(buff[p+17 : p+18]))
		snr := float64(u2l(buff[p+20:p+22])) / 256.0
		var adr float64
		if flag&0x40 != 0 {
			adr = i8l(buff[p+32:p+40])*navlib.P2_32 + 0.5
		} else {
			adr = i8l(buff[p+32:p+40]) * navlib.P2_32
		}
		dop := float64(i4l(buff[p+40:p+44])) * navlib.P2_10 * 10.0

		if lock2 == 0 || float64(lock2) < d.lockTime[sat-1][0] {
			d.lockTime[sat-1][1] = 1.0
		}
		d.lockTime[sat-1][0] = float64(lock2)

		if flag&0x20 == 0 {
			continue
		}

		d.ensureObsCap(n + 1)
		rec := &d.obsData.Data[n]
		*rec = ObsD{Time: t, Sat: sat}
		rec.P[0] = tau * navlib.CLight
		rec.L[0] = -adr
		rec.D[0] = dop
		rec.SNR[0] = uint16(snr/navlib.SNRUnit + 0.5)
		if sys == navlib.SysCMP {
			rec.Code[0] = navlib.CodeL2I
		} else {
			rec.Code[0] = navlib.CodeL1C
		}
		if d.lockTime[sat-1][1] > 0 {
			rec.LLI[0] = 1
		}
		if sys == navlib.SysSBS {
			if lock2 <= 142 {
				rec.LLI[0] |= 2
			}
		} else if flag&0x80 == 0 {
			rec.LLI[0] |= 2
		}
		if sys == navlib.SysGLO && frq >= -7 && frq <= 7 && d.cfg.TrkmAdj != nil {
			switch *d.cfg.TrkmAdj {
			case 2:
				rec.P[0] += pAdjFW2[frq+7]
			case 3:
				rec.P[0] += pAdjFW3[frq+7]
			}
		}
		d.lockTime[sat-1][1] = 0
		n++
	}
	if n <= 0 {
		return StatusNone
	}
	d.time = t
	d.obsData.N = n
	d.obsData.Data = d.obsData.Data[:n]
	return StatusObs
}

// trkd5Layout describes the per-channel offset/stride for the legacy
// UBX-TRK-D5 message, which differs by the firmware-dependent ctype byte.
// Grounded on ublox.go's decode_trkd5 switch on ctype.
type trkd5Layout struct {
	off, length int
}

func trkD5Layout(ctype int) trkd5Layout {
	switch ctype {
	case 3:
		return trkd5Layout{86, 56}
	case 6:
		return trkd5Layout{86, 64} // u-blox 7
	default:
		return trkd5Layout{78, 56}
	}
}

// decodeTRKD5 decodes the legacy, undocumented UBX-TRK-D5 message
// (NEO-7N F/W 1.00). Grounded on ublox.go's decode_trkd5.
func (d *Decoder) decodeTRKD5() Status {
	const p0 = 6
	buff := d.buff[:]
	if d.outType {
		d.msgType = fmt.Sprintf("UBX TRK-D5    (%4d):", d.length)
	}
	if d.time.Sec == 0 {
		return StatusNone
	}
	utcGpst := navlib.Sub(navlib.ToUTC(d.time), d.time)

	ctype := int(u1(buff[p0 : p0+1]))
	layout := trkD5Layout(ctype)

	tr := -1.0
	for p := layout.off; p < d.length-2; p += layout.length {
		qi := int(u1(buff[p+41:p+42])) & 7
		if qi < 4 || qi > 7 {
			continue
		}
		t := i8l(buff[p:p+8]) * navlib.P2_32 / 1000.0
		if classifySys(int(u1(buff[p+56:p+57]))) == navlib.SysGLO && d.trkmAdjApplies() {
			t -= 10800.0 + utcGpst
		}
		if t > tr {
			tr = t
			break
		}
	}
	if tr < 0 {
		return StatusNone
	}
	tr = float64(navlib.Round((tr+0.08)/0.1)) * 0.1

	week0, tow0 := navlib.ToGPSWeekTow(d.time)
	week := week0
	if tr < tow0-302400 {
		week++
	} else if tr > tow0+302400 {
		week--
	}
	t := navlib.GPSTime(week, tr)

	n := 0
	for p := layout.off; p < d.length-2; p += layout.length {
		qi := int(u1(buff[p+41:p+42])) & 7
		if qi < 4 || qi > 7 {
			continue
		}
		var sys, prn int
		if ctype == 6 {
			sys = classifySys(int(u1(buff[p+56 : p+57])))
			if sys == navlib.SysNone {
				d.logger.Warn("ubx trkd5 system error")
				continue
			}
			prn = int(u1(buff[p+57 : p+58]))
			if sys == navlib.SysQZS {
				prn += 192
			}
		} else {
			prn = int(u1(buff[p+34 : p+35]))
			if prn < navlib.MinPRNSBS {
				sys = navlib.SysGPS
			} else {
				sys = navlib.SysSBS
			}
		}
		sat := navlib.SatNo(sys, prn)
		if sat == 0 {
			d.logger.WithField("prn", prn).Warn("ubx trkd5 sat number error")
			continue
		}
		ts := i8l(buff[p:p+8]) * navlib.P2_32 / 1000.0
		if sys == navlib.SysGLO && d.trkmAdjApplies() {
			ts -= 10800.0 + utcGpst
		}
		tau := tr - ts
		switch {
		case tau < -302400:
			tau += 604800
		case tau > 302400:
			tau -= 604800
		}

		flag := int(u1(buff[p+54 : p+55]))
		var adr float64
		if qi >= 6 {
			adr = i8l(buff[p+8:p+16]) * navlib.P2_32
		}
		if flag&0x01 == 0 {
			adr += 0.5
		}
		dop := float64(i4l(buff[p+16:p+20])) * navlib.P2_10 / 4.0
		snr := float64(u2l(buff[p+32:p+34])) / 256.0

		if snr <= 10.0 {
			d.lockTime[sat-1][1] = 1.0
		}

		if flag&0x08 == 0 {
			continue
		}

		d.ensureObsCap(n + 1)
		rec := &d.obsData.Data[n]
		*rec = ObsD{Time: t, Sat: sat}
		rec.P[0] = tau * navlib.CLight
		rec.L[0] = -adr
		rec.D[0] = dop
		rec.SNR[0] = uint16(snr/navlib.SNRUnit + 0.5)
		if sys == navlib.SysCMP {
			rec.Code[0] = navlib.CodeL2I
		} else {
			rec.Code[0] = navlib.CodeL1C
		}
		if d.lockTime[sat-1][1] > 0 {
			rec.LLI[0] = 1
		}
		d.lockTime[sat-1][1] = 0
		n++
	}
	if n <= 0 {
		return StatusNone
	}
	d.time = t
	d.obsData.N = n
	d.obsData.Data = d.obsData.Data[:n]
	return StatusObs
}
