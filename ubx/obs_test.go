package ubx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/navlib"
	"ubxcore/rxconfig"
)

// rawxMeas describes one RXM-RAWX per-measurement block for test fixtures.
type rawxMeas struct {
	gnss, svid, sigid, freqid int
	lockt                     int
	cno                       int
	prstd, cpstd              int
	tstat                     int
	P, L                      float64
	D                         float32
}

func feedRXMRAWX(d *Decoder, week int, tow float64, meas []rawxMeas) Status {
	const p0 = 6
	length := 24 + 32*len(meas)
	buff := d.buff[:]
	setR8(buff[p0:], tow)
	setU2(buff[p0+8:], uint16(week))
	setU1(buff[p0+11:], uint8(len(meas)))
	setU1(buff[p0+13:], 1) // version

	p := p0 + 16
	for _, m := range meas {
		setR8(buff[p:], m.P)
		setR8(buff[p+8:], m.L)
		setR4(buff[p+16:], m.D)
		setU1(buff[p+20:], uint8(m.gnss))
		setU1(buff[p+21:], uint8(m.svid))
		setU1(buff[p+22:], uint8(m.sigid))
		setU1(buff[p+23:], uint8(m.freqid))
		setU2(buff[p+24:], uint16(m.lockt))
		setU1(buff[p+26:], uint8(m.cno))
		setU1(buff[p+27:], uint8(m.prstd))
		setU1(buff[p+28:], uint8(m.cpstd))
		setU1(buff[p+30:], uint8(m.tstat))
		p += 32
	}
	d.length = length
	return d.decodeRXMRAWX()
}

func TestRXMRAWXSBASHalfCycleUsesLockTime(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)

	st := feedRXMRAWX(d, 2200, 100000.0, []rawxMeas{{
		gnss: 1, svid: 120, sigid: 0, freqid: 0,
		lockt: 9000, cno: 160, prstd: 0, cpstd: 2, tstat: 3,
		P: 2.1e7, L: 1234.5, D: 0,
	}})
	assert.Equal(StatusObs, st)
	assert.Equal(1, d.Obs().N)

	rec := d.Obs().Data[0]
	assert.Equal(navlib.SatNo(navlib.SysSBS, 120), rec.Sat)
	// tstat bit 2 (0x04) is clear, which for every other constellation
	// means halfv=false and LLIHalfC would be set; SBAS instead derives
	// halfv from lockt>8000, so the bit must stay clear here.
	assert.Zero(rec.LLI[0] & navlib.LLIHalfC)
}

func TestRXMRAWXNonSBASHalfCycleUsesTrackStatBit(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)

	st := feedRXMRAWX(d, 2200, 100000.0, []rawxMeas{{
		gnss: 0, svid: 5, sigid: 0, freqid: 0,
		lockt: 9000, cno: 160, prstd: 0, cpstd: 2, tstat: 3,
		P: 2.1e7, L: 1234.5, D: 0,
	}})
	assert.Equal(StatusObs, st)
	rec := d.Obs().Data[0]
	// Same lock time as the SBAS case above, but GPS always reads halfv
	// off trkStat bit 2, which is clear here, so the bit must be set.
	assert.NotZero(rec.LLI[0] & navlib.LLIHalfC)
}

func TestRXMRAWXStddevClamped(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)

	st := feedRXMRAWX(d, 2200, 100000.0, []rawxMeas{{
		gnss: 0, svid: 5, sigid: 0, freqid: 0,
		lockt: 1000, cno: 160, prstd: 15, cpstd: 12, tstat: 3,
		P: 2.1e7, L: 1234.5, D: 0,
	}})
	assert.Equal(StatusObs, st)
	rec := d.Obs().Data[0]
	assert.Equal(uint8(9), rec.QualP[0])
	assert.Equal(uint8(9), rec.QualL[0])
}

func TestRXMRAWXSlipLatchesUntilPhaseReturns(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	sat := navlib.SatNo(navlib.SysGPS, 5)

	base := rawxMeas{gnss: 0, svid: 5, sigid: 0, freqid: 0, cno: 160, tstat: 3, P: 2.1e7, L: 1000.0}

	// Frame 1 establishes a one-second lock baseline.
	m1 := base
	m1.lockt = 1000
	st := feedRXMRAWX(d, 2200, 100000.0, []rawxMeas{m1})
	assert.Equal(StatusObs, st)
	assert.Zero(d.Obs().Data[0].LLI[0] & navlib.LLISlip)

	// Frame 2: lock time drops, declaring a slip. The phase is valid, so
	// the slip is reported at once and the latch is cleared again.
	m2 := base
	m2.lockt = 500
	st = feedRXMRAWX(d, 2200, 100001.0, []rawxMeas{m2})
	assert.Equal(StatusObs, st)
	assert.NotZero(d.Obs().Data[0].LLI[0] & navlib.LLISlip)
	assert.Zero(d.lockFlag[sat-1][0])

	// Frame 3: lock time drops again while there is no usable phase
	// (cpStdev over threshold blanks L); the slip latches, since only a
	// phase observation clears it.
	m3 := base
	m3.lockt = 200
	m3.cpstd = 6 // over MaxStdCP(5), under StdSlip(15): blanks phase without itself declaring a slip
	st = feedRXMRAWX(d, 2200, 100002.0, []rawxMeas{m3})
	assert.Equal(StatusObs, st)
	assert.NotZero(d.lockFlag[sat-1][0])

	// Frame 4: phase comes back; the still-latched flag must surface as
	// a slip, then clear.
	m4 := base
	m4.lockt = 2000
	st = feedRXMRAWX(d, 2200, 100003.0, []rawxMeas{m4})
	assert.Equal(StatusObs, st)
	assert.NotZero(d.Obs().Data[0].LLI[0] & navlib.LLISlip)
	assert.Zero(d.lockFlag[sat-1][0])

	// Frame 5: steady lock, latch stays clear, no slip bit.
	m5 := base
	m5.lockt = 2500
	st = feedRXMRAWX(d, 2200, 100004.0, []rawxMeas{m5})
	assert.Equal(StatusObs, st)
	assert.Zero(d.Obs().Data[0].LLI[0] & navlib.LLISlip)
}

func TestRXMRAWXSNRUsesQuarterDBHzUnits(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)

	st := feedRXMRAWX(d, 2200, 100000.0, []rawxMeas{{
		gnss: 0, svid: 5, sigid: 0, freqid: 0,
		lockt: 1000, cno: 40, tstat: 3, P: 2.1e7, L: 1000.0,
	}})
	assert.Equal(StatusObs, st)
	// 40 dB-Hz stored at 0.25 dB-Hz/count is 160.
	assert.Equal(uint16(160), d.Obs().Data[0].SNR[0])
}

func TestRXMRAWXLengthError(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	d.length = 10
	assert.Equal(StatusError, d.decodeRXMRAWX())
}
