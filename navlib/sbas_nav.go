package navlib

// ValidateSBAS performs the minimal structural check RTKLIB's SbsDecodeMsg
// applies before a caller trusts an SBAS message: message type in range
// and preamble byte present. Full SBAS message-type decoding (fast/long
// corrections, geo almanac, ...) is explicitly out of scope per the
// caller's spec; this only gates the dedup/forwarding decision. Grounded
// on sbas.go's SbsDecodeMsg (signature and preamble/type check only).
func ValidateSBAS(msg [29]uint8) (msgType int, ok bool) {
	const preamble0, preamble1, preamble2 = 0x53, 0x9A, 0xC6
	switch msg[0] {
	case preamble0, preamble1, preamble2:
	default:
		return 0, false
	}
	msgType = int(msg[1] >> 2)
	if msgType < 0 || msgType > 63 {
		return msgType, false
	}
	return msgType, true
}
