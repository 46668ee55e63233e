package ubx

import (
	"fmt"
	"math"

	"ubxcore/navlib"
)

// decodeRXMRAW decodes the legacy single-frequency UBX-RXM-RAW message.
// Grounded on ublox.go's decode_rxmraw.
func (d *Decoder) decodeRXMRAW() Status {
	const p0 = 6
	buff := d.buff[:]

	nsat := int(u1(buff[p0+6 : p0+7]))
	if d.length < 12+24*nsat {
		d.logger.WithField("nsat", nsat).Warn("ubx rxmraw length error")
		return StatusError
	}
	if d.outType {
		d.msgType = fmt.Sprintf("UBX RXM-RAW   (%4d): nsat=%d", d.length, nsat)
	}

	tow := float64(u4l(buff[p0 : p0+4]))
	week := int(u2l(buff[p0+4 : p0+6]))
	t := navlib.GPSTime(week, tow*0.001)
	if week == 0 {
		return StatusNone
	}

	var toff float64
	if d.cfg.TAdj != nil && *d.cfg.TAdj > 0 {
		tadj := *d.cfg.TAdj
		_, tow2 := navlib.ToGPSWeekTow(t)
		tn := tow2 / tadj
		toff = (tn - math.Floor(tn+0.5)) * tadj
		t = navlib.Add(t, -toff)
	}
	tt := navlib.Sub(t, d.time)

	n := 0
	p := p0 + 8
	for i := 0; i < nsat && i < maxObs; i, p = i+1, p+24 {
		d.ensureObsCap(n + 1)
		rec := &d.obsData.Data[n]
		*rec = ObsD{Time: t}
		rec.L[0] = r8l(buff[p:p+8]) - toff*navlib.Freq1
		rec.P[0] = r8l(buff[p+8:p+16]) - toff*navlib.CLight
		rec.D[0] = float64(r4l(buff[p+16 : p+20]))
		prn := int(u1(buff[p+20 : p+21]))
		rec.SNR[0] = uint16(float64(i1(buff[p+22:p+23]))/navlib.SNRUnit + 0.5)
		rec.LLI[0] = u1(buff[p+23 : p+24])
		rec.Code[0] = navlib.CodeL1C

		if d.cfg.InvCP {
			rec.L[0] = -rec.L[0]
		}
		sys := navlib.SysGPS
		if prn >= navlib.MinPRNSBS {
			sys = navlib.SysSBS
		}
		sat := navlib.SatNo(sys, prn)
		if sat == 0 {
			d.logger.WithField("prn", prn).Warn("ubx rxmraw sat number error")
			continue
		}
		rec.Sat = sat

		switch {
		case rec.LLI[0]&1 != 0:
			d.lockTime[sat-1][0] = 0
		case tt < 1.0 || tt > 10.0:
			d.lockTime[sat-1][0] = 0
		default:
			d.lockTime[sat-1][0] += tt
		}
		n++
	}
	d.time = t
	d.obsData.N = n
	d.obsData.Data = d.obsData.Data[:n]
	return StatusObs
}

// decodeRXMRAWX decodes the multi-GNSS UBX-RXM-RAWX message: the core
// observation path, including slip detection, half-cycle bookkeeping and
// LLI composition. Grounded on ublox.go's decode_rxmrawx.
func (d *Decoder) decodeRXMRAWX() Status {
	const p0 = 6
	buff := d.buff[:]

	if d.length < 24 {
		d.logger.Warn("ubx rxmrawx length error")
		return StatusError
	}
	tow := r8l(buff[p0 : p0+8])
	week := int(u2l(buff[p0+8 : p0+10]))
	nmeas := int(u1(buff[p0+11 : p0+12]))
	ver := int(u1(buff[p0+13 : p0+14]))

	if d.length < 24+32*nmeas {
		d.logger.WithField("nmeas", nmeas).Warn("ubx rxmrawx length error")
		return StatusError
	}
	if week == 0 {
		return StatusNone
	}
	t := navlib.GPSTime(week, tow)
	if d.outType {
		d.msgType = fmt.Sprintf("UBX RXM-RAWX  (%4d): nmeas=%d ver=%d", d.length, nmeas, ver)
	}

	var toff float64
	if d.cfg.TAdj != nil && *d.cfg.TAdj > 0 {
		tadj := *d.cfg.TAdj
		_, tow2 := navlib.ToGPSWeekTow(t)
		tn := tow2 / tadj
		toff = (tn - math.Floor(tn+0.5)) * tadj
		t = navlib.Add(t, -toff)
	}

	n := 0
	p := p0 + 16
	for i := 0; i < nmeas && n < maxObs; i, p = i+1, p+32 {
		P := r8l(buff[p : p+8])
		L := r8l(buff[p+8 : p+16])
		D := float64(r4l(buff[p+16 : p+20]))
		gnss := int(u1(buff[p+20 : p+21]))
		svid := int(u1(buff[p+21 : p+22]))
		sigid := int(u1(buff[p+22 : p+23]))
		frqid := int(u1(buff[p+23 : p+24]))
		lockt := int(u2l(buff[p+24 : p+26]))
		cn0 := int(u1(buff[p+26 : p+27]))
		prstd := int(u1(buff[p+27:p+28])) & 15
		cpstd := int(u1(buff[p+28:p+29])) & 15
		prstd = 1 << max(prstd-5, 0)
		tstat := int(u1(buff[p+30 : p+31]))

		if tstat&1 == 0 {
			P = 0
		}
		if tstat&2 == 0 || L == -0.5 || cpstd > int(d.cfg.MaxStdCP) {
			L = 0
		}

		sys := classifySys(gnss)
		if sys == navlib.SysNone {
			d.logger.WithField("gnss", gnss).Warn("ubx rxmrawx system error")
			continue
		}
		prn := svid
		if sys == navlib.SysQZS {
			prn = svid + 192
		}
		sat := navlib.SatNo(sys, prn)
		if sat == 0 {
			if sys == navlib.SysGLO && prn == 255 {
				continue
			}
			d.logger.WithField("prn", prn).Warn("ubx rxmrawx sat number error")
			continue
		}
		if sys == navlib.SysGLO && d.navData.GloFCN[prn-1] == 0 {
			d.navData.GloFCN[prn-1] = frqid - 7 + 8
		}

		var code uint8
		if ver >= 1 {
			code = classifySig(sys, sigid)
		} else {
			switch sys {
			case navlib.SysCMP:
				code = navlib.CodeL2I
			case navlib.SysGAL:
				code = navlib.CodeL1X
			default:
				code = navlib.CodeL1C
			}
		}
		idx := sigIdx(sys, code)
		if idx < 0 {
			d.logger.WithField("sat", sat).Warn("ubx rxmrawx signal error")
			continue
		}

		if toff != 0 {
			P -= toff * navlib.CLight
			L -= toff * navlib.Code2Freq(sys, code, frqid-7)
		}
		if sys == navlib.SysCMP && (prn <= 5 || prn >= 59) && L != 0 {
			L += 0.5
		}

		var halfv bool
		if sys == navlib.SysSBS {
			halfv = lockt > 8000
		} else {
			halfv = tstat&4 != 0
		}
		halfc := tstat&8 != 0
		prevHalfc := d.halfc[sat-1][idx] != 0
		slip := lockt == 0 ||
			float64(lockt)*1e-3 < d.lockTime[sat-1][idx] ||
			halfc != prevHalfc ||
			cpstd >= int(d.cfg.StdSlip)
		if slip {
			d.lockFlag[sat-1][idx] = 1
		}
		d.lockTime[sat-1][idx] = float64(lockt) * 1e-3
		if halfc {
			d.halfc[sat-1][idx] = 1
		} else {
			d.halfc[sat-1][idx] = 0
		}

		var lli uint8
		if L != 0 && !halfv {
			lli |= navlib.LLIHalfC
		}
		if halfc != prevHalfc {
			lli |= navlib.LLISlip
		}
		if L != 0 && d.lockFlag[sat-1][idx] > 0 {
			lli |= navlib.LLISlip
		}

		j := 0
		for ; j < n; j++ {
			if d.obsData.Data[j].Sat == sat {
				break
			}
		}
		if j >= n {
			d.ensureObsCap(n + 1)
			d.obsData.Data[n] = ObsD{Time: t, Sat: sat}
			n++
		}
		d.obsData.Data[j].L[idx] = L
		d.obsData.Data[j].P[idx] = P
		d.obsData.Data[j].D[idx] = D
		d.obsData.Data[j].SNR[idx] = uint16(float64(cn0)/navlib.SNRUnit + 0.5)
		d.obsData.Data[j].LLI[idx] = lli
		d.obsData.Data[j].Code[idx] = code
		d.obsData.Data[j].QualP[idx] = uint8(min(prstd, 9))
		d.obsData.Data[j].QualL[idx] = uint8(min(cpstd, 9))
		if L != 0 {
			d.lockFlag[sat-1][idx] = 0
		}
	}
	d.time = t
	d.obsData.N = n
	d.obsData.Data = d.obsData.Data[:n]
	return StatusObs
}

// ensureObsCap grows d.obsData.Data to at least n entries.
func (d *Decoder) ensureObsCap(n int) {
	for len(d.obsData.Data) < n {
		d.obsData.Data = append(d.obsData.Data, ObsD{})
	}
}
