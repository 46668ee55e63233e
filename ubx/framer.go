package ubx

import (
	"errors"
	"io"
)

// syncShift slides the two-byte sync window and reports whether it now
// matches the UBX preamble. Grounded on ublox.go's sync_ubx.
func syncShift(buff []uint8, b uint8) bool {
	buff[0] = buff[1]
	buff[1] = b
	return buff[0] == sync1 && buff[1] == sync2
}

// Feed presents one stream byte to the decoder's framing state machine
// and returns the status of whatever frame completed, or StatusNone while
// still accumulating. Grounded on ublox.go's input_ubx.
func (d *Decoder) Feed(b uint8) Status {
	if d.numByte == 0 {
		if !syncShift(d.buff[:2], b) {
			return StatusNone
		}
		d.numByte = 2
		return StatusNone
	}
	d.buff[d.numByte] = b
	d.numByte++

	if d.numByte == 6 {
		length := int(u2l(d.buff[4:6])) + 8
		if length > maxRawLen {
			d.logger.WithField("len", length).Warn("ubx frame length exceeds maximum, resyncing")
			d.metrics.incError()
			d.numByte = 0
			return StatusError
		}
		d.length = length
	}
	if d.numByte < 6 || d.numByte < d.length {
		return StatusNone
	}
	d.numByte = 0
	return d.decode()
}

const resyncCap = 4096

// ReadFile drains r one message at a time, mirroring ublox.go's
// input_ubxf bulk-read shape: it scans for sync bytes one at a time (capped
// at resyncCap to bound worst-case garbage), then reads the header and
// payload in two bulk reads. Returns StatusEOF at end of stream.
func (d *Decoder) ReadFile(r io.Reader) Status {
	if d.numByte == 0 {
		var c [1]byte
		for i := 0; ; i++ {
			if _, err := io.ReadFull(r, c[:]); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return StatusEOF
				}
				return StatusEOF
			}
			if syncShift(d.buff[:2], c[0]) {
				break
			}
			if i >= resyncCap {
				return StatusNone
			}
		}
	}
	if _, err := io.ReadFull(r, d.buff[2:6]); err != nil {
		return StatusEOF
	}
	d.numByte = 6

	length := int(u2l(d.buff[4:6])) + 8
	if length > maxRawLen {
		d.logger.WithField("len", length).Warn("ubx frame length exceeds maximum, resyncing")
		d.metrics.incError()
		d.numByte = 0
		return StatusError
	}
	d.length = length
	if _, err := io.ReadFull(r, d.buff[6:length]); err != nil {
		return StatusEOF
	}
	d.numByte = 0
	return d.decode()
}
