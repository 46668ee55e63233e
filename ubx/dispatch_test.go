package ubx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/rxconfig"
)

func buildTIMTM2Frame() []byte {
	payloadLen := 28
	frame := make([]byte, 8+payloadLen)
	frame[0], frame[1], frame[2], frame[3] = sync1, sync2, 0x0D, 0x03
	setU2(frame[4:], uint16(payloadLen))

	const p = 6
	setU1(frame[p+1:], 1<<2) // newFallingEdge, time not marked valid
	setU2(frame[p+6:], 2200)
	setU4(frame[p+16:], 123000)

	n := len(frame)
	setChecksum(frame, n)
	return frame
}

func TestDispatchRoutesTIMTM2(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	frame := buildTIMTM2Frame()

	var last Status
	for _, b := range frame {
		last = d.Feed(b)
	}
	assert.Equal(StatusNone, last)
	assert.Equal(5, d.Obs().Flag)
	_, tmCount := d.TimeMark()
	assert.Equal(1, tmCount)
}

func TestDispatchUnknownTagIsSilent(t *testing.T) {
	assert := assert.New(t)
	d := NewDecoder(rxconfig.Default(), nil, nil)
	frame := make([]byte, 8)
	frame[0], frame[1], frame[2], frame[3] = sync1, sync2, 0xFF, 0xFF
	setU2(frame[4:], 0)
	setChecksum(frame, 8)

	var last Status
	for _, b := range frame {
		last = d.Feed(b)
	}
	assert.Equal(StatusNone, last)
}
