package navlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLNAVConsistentSubframes(t *testing.T) {
	assert := assert.New(t)
	buf := make([]uint8, 90)
	sf1, sf2, sf3 := buf[0:30], buf[30:60], buf[60:90]

	SetBitU(sf1, 43, 3, 1)
	SetBitU(sf2, 43, 3, 2)
	SetBitU(sf3, 43, 3, 3)

	SetBitU(sf1, 48, 10, 1500)
	SetBitU(sf1, 60, 4, 3)  // sva
	SetBitU(sf1, 64, 6, 0)  // svh
	SetBitU(sf1, 70, 2, 1)  // iodc high
	SetBitU(sf1, 168, 8, 0x23)
	SetBitU(sf1, 176, 16, 10) // toc raw -> 160s

	SetBitU(sf2, 48, 8, 0x23) // iode2, must match iodc low byte
	SetBitU(sf2, 224, 16, 20) // toe raw -> 320s

	SetBitU(sf3, 232, 8, 0x23) // iode3

	eph, ok := DecodeLNAV(buf, 1, 1500)
	if !assert.True(ok) {
		return
	}
	assert.Equal(1500, eph.Week)
	assert.Equal(0x123, eph.Iodc)
	assert.Equal(0x23, eph.Iode)
	assert.Equal(3, eph.Sva)
	_, toc := ToGPSWeekTow(eph.Toc)
	assert.InDelta(160.0, toc, 1e-9)
	_, toe := ToGPSWeekTow(eph.Toe)
	assert.InDelta(320.0, toe, 1e-9)
}

func TestDecodeLNAVRejectsMismatchedIode(t *testing.T) {
	assert := assert.New(t)
	buf := make([]uint8, 90)
	sf1, sf2, sf3 := buf[0:30], buf[30:60], buf[60:90]
	SetBitU(sf1, 43, 3, 1)
	SetBitU(sf2, 43, 3, 2)
	SetBitU(sf3, 43, 3, 3)
	SetBitU(sf2, 48, 8, 1)
	SetBitU(sf3, 232, 8, 2) // mismatched iode

	_, ok := DecodeLNAV(buf, 1, 1500)
	assert.False(ok)
}

func TestAdjGPSWeekRollover(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1500, AdjGPSWeek(1500%1024, 1500))
	assert.Equal(5, AdjGPSWeek(5, 0))
}
