package ubx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/navlib"
	"ubxcore/rxconfig"
)

func TestNAVSOLUpdatesTimeOnlyWhenValid(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	buff := d.buff[:]
	const p = 6
	setU4(buff[p:], 100000)  // iTOW ms
	setI4(buff[p+4:], 0)     // fTOW ns
	setU2(buff[p+8:], 2200)  // week
	setU1(buff[p+11:], 0x0C) // gpsFix/flags: week+tow valid

	got := d.decodeNAVSOL()
	assert.Equal(StatusNone, got)
	week, tow := navlib.ToGPSWeekTow(d.time)
	assert.Equal(2200, week)
	assert.InDelta(100.0, tow, 1e-9)
}

func TestNAVSOLLeavesTimeWhenInvalid(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	before := d.time
	buff := d.buff[:]
	const p = 6
	setU4(buff[p:], 100000)
	setU2(buff[p+8:], 2200)
	setU1(buff[p+11:], 0x00) // neither bit set

	d.decodeNAVSOL()
	assert.Equal(before, d.time)
}

func TestTIMTM2MarksEventOnFallingEdge(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	buff := d.buff[:]
	const p = 6
	d.length = 34

	flags := uint8(1<<2 | 1<<6) // newFallingEdge | timeValid
	setU1(buff[p+1:], flags)
	setU2(buff[p+2:], 7) // count
	setU2(buff[p+6:], 2200)
	setU4(buff[p+16:], 300000) // towMsF
	setU4(buff[p+20:], 0)      // towSubMsF

	st := d.decodeTIMTM2()
	assert.Equal(StatusNone, st)
	assert.Equal(5, d.Obs().Flag)

	rcvCount, tmCount := d.TimeMark()
	assert.Equal(uint32(7), rcvCount)
	assert.Equal(1, tmCount)
	assert.True(d.Obs().Data[0].TimeValid)

	week, tow := navlib.ToGPSWeekTow(d.Obs().Data[0].EventTime)
	assert.Equal(2200, week)
	assert.InDelta(300.0, tow, 1e-9)

	// A second falling edge increments the counter.
	st = d.decodeTIMTM2()
	assert.Equal(StatusNone, st)
	_, tmCount = d.TimeMark()
	assert.Equal(2, tmCount)
}

func TestTIMTM2NoEdgeLeavesFlagClear(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	d.length = 34
	buff := d.buff[:]
	const p = 6
	setU1(buff[p+1:], 0) // no edge flags

	st := d.decodeTIMTM2()
	assert.Equal(StatusNone, st)
	assert.Equal(0, d.Obs().Flag)

	_, tmCount := d.TimeMark()
	assert.Equal(0, tmCount)
}

func TestTIMTM2LengthError(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	d.length = 10
	assert.Equal(StatusError, d.decodeTIMTM2())
}
