package ubx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/navlib"
	"ubxcore/rxconfig"
)

// fillTRKMEASFrame lays out a two-channel TRK-MEAS payload: channel 0 is a
// plausible GPS channel whose transmission time anchors the epoch, channel
// 1 is the GLONASS channel under test.
func fillTRKMEASFrame(d *Decoder, glonassFreqIDRaw, glonassPRN int) {
	const p0 = 6
	buff := d.buff[:]
	nch := 2
	setU1(buff[p0+2:], uint8(nch))

	// Channel 0: GPS, quality 4, transmission time = 100.0s exactly
	// (low=0, high=100000: i8l*P2_32 == high when low==0, and /1000
	// turns milliseconds into seconds).
	p := p0 + 110
	setU1(buff[p+1:], 4)
	setU1(buff[p+4:], 0) // gnssId 0 = GPS
	setU4(buff[p+24:], 0)
	setI4(buff[p+28:], 100000)

	// Channel 1: GLONASS, quality 4, same transmission time, stored
	// (flag bit 0x20 set).
	p = p0 + 110 + 56
	setU1(buff[p+1:], 4)
	setU1(buff[p+4:], 6) // gnssId 6 = GLONASS
	setU1(buff[p+5:], uint8(glonassPRN))
	setU1(buff[p+7:], uint8(glonassFreqIDRaw))
	setU1(buff[p+8:], 0x20)
	setU1(buff[p+17:], 100)
	setU2(buff[p+20:], 2560)
	setU4(buff[p+24:], 0)
	setI4(buff[p+28:], 100000)
	setU4(buff[p+32:], 0)
	setI4(buff[p+36:], 0)
	setI4(buff[p+40:], 0)

	d.length = 112 + nch*56
}

func newTRKMEASDecoder(trkmAdj uint8) *Decoder {
	cfg := rxconfig.Default()
	cfg.TrkmAdj = &trkmAdj
	d := NewDecoder(cfg, nil, nil)
	d.time = navlib.GPSTime(2200, 100.0)
	return d
}

func TestTRKMEASGlonassBiasTableDiffersByFirmware(t *testing.T) {
	assert := assert.New(t)
	const freqIDRaw = 10 // frq = freqIDRaw-7 = 3

	dFW2 := newTRKMEASDecoder(2)
	fillTRKMEASFrame(dFW2, freqIDRaw, 1)
	st := dFW2.decodeTRKMEAS()
	assert.Equal(StatusObs, st)

	dFW3 := newTRKMEASDecoder(3)
	fillTRKMEASFrame(dFW3, freqIDRaw, 1)
	st = dFW3.decodeTRKMEAS()
	assert.Equal(StatusObs, st)

	assert.Equal(1, dFW2.Obs().N)
	assert.Equal(1, dFW3.Obs().N)

	wantDelta := pAdjFW3[freqIDRaw-7+7] - pAdjFW2[freqIDRaw-7+7]
	gotDelta := dFW3.Obs().Data[0].P[0] - dFW2.Obs().Data[0].P[0]
	assert.InDelta(wantDelta, gotDelta, 1e-6)
}

func TestTRKMEASNoGlonassBiasWithoutTrkmAdj(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	d.time = navlib.GPSTime(2200, 100.0)
	fillTRKMEASFrame(d, 10, 1)

	st := d.decodeTRKMEAS()
	assert.Equal(StatusObs, st)
	assert.Equal(1, d.Obs().N)
	assert.Equal(navlib.SatNo(navlib.SysGLO, 1), d.Obs().Data[0].Sat)
	// Epoch 100.1s, transmission time 100.0s: with neither the bias table
	// nor the GLONASS time shift applied, P is the bare 0.1s travel time.
	assert.InDelta(0.1*navlib.CLight, d.Obs().Data[0].P[0], 1e-3)
}

func TestTRKMEASNoTimeYieldsNone(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	fillTRKMEASFrame(d, 10, 1)
	assert.Equal(StatusNone, d.decodeTRKMEAS())
}
