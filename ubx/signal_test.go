package ubx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ubxcore/navlib"
)

func TestClassifySys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(navlib.SysGPS, classifySys(0))
	assert.Equal(navlib.SysGLO, classifySys(6))
	assert.Equal(navlib.SysNone, classifySys(99))
}

func TestClassifySigGPS(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(navlib.CodeL1C, classifySig(navlib.SysGPS, 0))
	assert.Equal(navlib.CodeL2S, classifySig(navlib.SysGPS, 4))
	assert.Equal(navlib.CodeNone, classifySig(navlib.SysGPS, 9))
}

func TestSigIdxRejectsCodesNeedingExtendedSlot(t *testing.T) {
	assert := assert.New(t)
	// nExObs is 0 in this build, so any code that would need an extended
	// slot must report -1 rather than collide with a primary slot.
	assert.Equal(-1, sigIdx(navlib.SysGPS, navlib.CodeL2S))
	assert.Equal(0, sigIdx(navlib.SysGPS, navlib.CodeL1C))
}
