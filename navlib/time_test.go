package navlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPSTimeRoundTrip(t *testing.T) {
	assert := assert.New(t)
	tm := GPSTime(2200, 123456.5)
	week, tow := ToGPSWeekTow(tm)
	assert.Equal(2200, week)
	assert.InDelta(123456.5, tow, 1e-9)
}

func TestAddSub(t *testing.T) {
	assert := assert.New(t)
	a := GPSTime(2200, 100.0)
	b := Add(a, 5.5)
	assert.InDelta(5.5, Sub(b, a), 1e-9)
}

func TestAdjUTCWeekNearbyEpoch(t *testing.T) {
	assert := assert.New(t)
	// week 2200 = 256*8 + 152; a broadcast weekT of 152 should re-seat to
	// 2200 exactly, not drift to a neighboring 256-week epoch.
	assert.Equal(2200, AdjUTCWeek(2200, 2200%256))
}

func TestAdjUTCWeekRollsToNeighboringEpoch(t *testing.T) {
	assert := assert.New(t)
	// current week just past an epoch boundary, weekT from just before it.
	week := 256*8 + 2
	weekT := 254 // belongs to epoch 256*7
	got := AdjUTCWeek(week, weekT)
	assert.Equal(256*7+254, got)
}

func TestRound(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Round(2.5))
	assert.Equal(-2, Round(-2.5))
}
