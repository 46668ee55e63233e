package ubx

// subFrmSize mirrors ublox.go's per-satellite SubFrm scratch size (380
// bytes: enough for 10 BeiDou D2 pages of 38 bytes each, the largest of
// the per-constellation accumulators), plus 2 bytes of GLONASS frame-id
// bookkeeping at a fixed offset. Grounded on types.go's Raw.SubFrm
// ([MAXSAT][380]uint8).
const subFrmSize = 380

// gloFrameIDOffset is where the GLONASS string assembler stashes the last
// seen frame-id bytes, used to detect a frame rollover and flush the
// accumulated strings. Grounded on rcvraw.go/ublox.go's
// raw.SubFrm[sat-1][150:].
const gloFrameIDOffset = 150

// subFrm returns the per-satellite scratch buffer used to reassemble
// subframes/pages/strings/words, allocating and zeroing it on first use.
func (d *Decoder) subFrm(sat int) []uint8 {
	buf, ok := d.subFrmBuf[sat]
	if !ok {
		buf = make([]uint8, subFrmSize)
		d.subFrmBuf[sat] = buf
	}
	return buf
}
