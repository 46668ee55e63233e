package rxconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	assert := assert.New(t)
	o := Parse("-EPHALL -INVCP -GALFNAV -TADJ=1.0 -STD_SLIP=10 -MAX_STD_CP=3 -TRKM_ADJ=2")
	assert.True(o.EPHAll)
	assert.True(o.InvCP)
	assert.True(o.GalFNav)
	if assert.NotNil(o.TAdj) {
		assert.InDelta(1.0, *o.TAdj, 1e-9)
	}
	assert.Equal(uint8(10), o.StdSlip)
	assert.Equal(uint8(3), o.MaxStdCP)
	if assert.NotNil(o.TrkmAdj) {
		assert.Equal(uint8(2), *o.TrkmAdj)
	}
}

func TestParseDefaultsWhenAbsent(t *testing.T) {
	assert := assert.New(t)
	o := Parse("")
	assert.False(o.EPHAll)
	assert.Nil(o.TAdj)
	assert.Equal(MaxStdCPDefault, o.MaxStdCP)
}

func TestValidateAcceptsDefault(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(Validate(Default()))
}
