package ubx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/navlib"
	"ubxcore/rxconfig"
)

func buildRXMRAWFrame() []byte {
	payloadLen := 8 + 24 // header fields + one SV block
	frame := make([]byte, 8+payloadLen)
	frame[0], frame[1], frame[2], frame[3] = sync1, sync2, 0x02, 0x10
	setU2(frame[4:], uint16(payloadLen))

	p0 := 6
	setU4(frame[p0:], 100000)       // iTOW
	setU2(frame[p0+4:], 2200)       // week
	setU1(frame[p0+6:], 1)          // numSV

	p := p0 + 8
	setR8(frame[p:], 0.0)             // carrier phase
	setR8(frame[p+8:], 2.1e7)         // pseudorange
	setR4(frame[p+16:], 0.0)          // doppler
	setU1(frame[p+20:], 5)            // prn
	setI1(frame[p+22:], 40)           // cno
	setU1(frame[p+23:], 0)            // LLI

	n := len(frame)
	setChecksum(frame, n)
	return frame
}

func TestFeedDecodesRXMRAWByteByByte(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	frame := buildRXMRAWFrame()

	var last Status
	for _, b := range frame {
		last = d.Feed(b)
	}
	assert.Equal(StatusObs, last)
	assert.Equal(1, d.Obs().N)
	assert.Equal(navlib.SatNo(navlib.SysGPS, 5), d.Obs().Data[0].Sat)
}

func TestFeedRejectsBadChecksum(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	frame := buildRXMRAWFrame()
	frame[len(frame)-1] ^= 0xFF

	var last Status
	for _, b := range frame {
		last = d.Feed(b)
	}
	assert.Equal(StatusError, last)
}

func TestReadFileDecodesSameFrame(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	frame := buildRXMRAWFrame()
	st := d.ReadFile(bytes.NewReader(frame))
	assert.Equal(StatusObs, st)
}
