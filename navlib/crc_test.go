package navlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC24QKnownVector(t *testing.T) {
	assert := assert.New(t)
	// CRC-24Q of the empty message is 0.
	assert.Equal(uint32(0), CRC24Q(nil, 0))

	// A changed byte must change the checksum (collision would break
	// Galileo I/NAV page integrity checking).
	a := CRC24Q([]byte("123456789"), 0)
	b := CRC24Q([]byte("123456788"), 0)
	assert.NotEqual(a, b)
}

func TestCRC24QDeterministic(t *testing.T) {
	assert := assert.New(t)
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	assert.Equal(CRC24Q(buf, 0), CRC24Q(buf, 0))
}
