package ubx

import "strings"

// valType is the storage class a VALSET/VALGET/VALDEL key ID carries,
// mirroring the size group encoded in bits 28-30 of a real u-blox key ID.
type valType int

const (
	valL  valType = iota // 1-byte boolean
	valU1                // 1-byte unsigned
	valU2                // 2-byte unsigned
	valU4                // 4-byte unsigned
	valI1
	valI2
	valI4
	valR4 // 4-byte IEEE754
	valR8 // 8-byte IEEE754
)

// valKey is one entry of the configuration-interface key/value catalog:
// a dotted-path name, its 32-bit key ID and storage width. ublox.go's
// gen_ubx left CFG-VALSET as a flat 4-field positional table despite its
// own doc comment describing "key value [key value ...]" pairs; this
// catalog is the real key/value lookup that comment promised.
type valKey struct {
	id uint32
	t  valType
}

// valCatalog maps configuration item names to their key/value encoding.
// Key IDs and widths are representative of the public u-blox M8/M9
// interface description's CFG-* groups (UART, rate, navigation engine,
// signal enables, message output, time mode).
var valCatalog = map[string]valKey{
	"CFG-RATE-MEAS":     {0x30210001, valU2},
	"CFG-RATE-NAV":      {0x30210002, valU2},
	"CFG-RATE-TIMEREF":  {0x20210003, valU1},

	"CFG-UART1-BAUDRATE":    {0x40520001, valU4},
	"CFG-UART1INPROT-UBX":   {0x10730001, valL},
	"CFG-UART1INPROT-NMEA":  {0x10730002, valL},
	"CFG-UART1OUTPROT-UBX":  {0x10740001, valL},
	"CFG-UART1OUTPROT-NMEA": {0x10740002, valL},

	"CFG-NAVSPG-DYNMODEL": {0x20110021, valU1},
	"CFG-NAVSPG-FIXMODE":  {0x20110011, valU1},
	"CFG-NAVSPG-UTCSTANDARD": {0x2011001c, valU1},

	"CFG-SIGNAL-GPS_ENA":  {0x1031001f, valL},
	"CFG-SIGNAL-GAL_ENA":  {0x10310021, valL},
	"CFG-SIGNAL-BDS_ENA":  {0x10310022, valL},
	"CFG-SIGNAL-QZSS_ENA": {0x10310024, valL},
	"CFG-SIGNAL-GLO_ENA":  {0x10310025, valL},

	"CFG-MSGOUT-UBX_RXM_RAWX_UART1":  {0x209102a5, valU1},
	"CFG-MSGOUT-UBX_RXM_SFRBX_UART1": {0x20910232, valU1},
	"CFG-MSGOUT-UBX_NAV_PVT_UART1":   {0x20910007, valU1},

	"CFG-TMODE-MODE":     {0x20030001, valU1},
	"CFG-TMODE-POS_TYPE": {0x20030002, valU1},

	"CFG-SBAS-USE_TESTMODE": {0x10360011, valL},
}

// lookupValKey resolves a catalog name case-insensitively.
func lookupValKey(name string) (valKey, bool) {
	for k, v := range valCatalog {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return valKey{}, false
}

func valSize(t valType) int {
	switch t {
	case valL, valU1, valI1:
		return 1
	case valU2, valI2:
		return 2
	case valU4, valI4, valR4:
		return 4
	case valR8:
		return 8
	}
	return 0
}

func setVal(buff []byte, t valType, v int) {
	switch t {
	case valL, valU1, valI1:
		setU1(buff, uint8(v))
	case valU2, valI2:
		setU2(buff, uint16(v))
	case valU4, valI4:
		setU4(buff, uint32(v))
	case valR4:
		setR4(buff, float32(v))
	case valR8:
		setR8(buff, float64(v))
	}
}

// genValSet builds a UBX-CFG-VALSET message from
// "CFG-VALSET version layer key1 value1 [key2 value2 ...]", where each
// keyN is a catalog name (e.g. CFG-RATE-MEAS) rather than a raw integer.
func genValSet(args []string, buff []byte) int {
	if len(args) < 5 {
		return 0
	}
	q := 0
	buff[q], buff[q+1], buff[q+2], buff[q+3] = sync1, sync2, clsCFG, idVALSET
	q += 6
	setU1(buff[q:], uint8(stoi(args[1]))) // version
	setU1(buff[q+1:], uint8(stoi(args[2]))) // layer
	setU1(buff[q+2:], 0)                    // reserved0
	setU1(buff[q+3:], 0)                    // reserved1
	q += 4

	for i := 3; i+1 < len(args); i += 2 {
		key, ok := lookupValKey(args[i])
		if !ok {
			continue
		}
		setU4(buff[q:], key.id)
		q += 4
		setVal(buff[q:], key.t, stoi(args[i+1]))
		q += valSize(key.t)
	}
	n := q + 2
	setU2(buff[4:], uint16(n-8))
	setChecksum(buff, n)
	return n
}

// genValGet builds a UBX-CFG-VALGET message from
// "CFG-VALGET version layer position key1 [key2 ...]".
func genValGet(args []string, buff []byte) int {
	if len(args) < 5 {
		return 0
	}
	q := 0
	buff[q], buff[q+1], buff[q+2], buff[q+3] = sync1, sync2, clsCFG, idVALGET
	q += 6
	setU1(buff[q:], uint8(stoi(args[1])))  // version
	setU1(buff[q+1:], uint8(stoi(args[2]))) // layer
	setU2(buff[q+2:], uint16(stoi(args[3]))) // position
	q += 4

	for i := 4; i < len(args); i++ {
		key, ok := lookupValKey(args[i])
		if !ok {
			continue
		}
		setU4(buff[q:], key.id)
		q += 4
	}
	n := q + 2
	setU2(buff[4:], uint16(n-8))
	setChecksum(buff, n)
	return n
}

// genValDel builds a UBX-CFG-VALDEL message from
// "CFG-VALDEL version layer res0 res1 key1 [key2 ...]".
func genValDel(args []string, buff []byte) int {
	if len(args) < 6 {
		return 0
	}
	q := 0
	buff[q], buff[q+1], buff[q+2], buff[q+3] = sync1, sync2, clsCFG, idVALDEL
	q += 6
	setU1(buff[q:], uint8(stoi(args[1])))  // version
	setU1(buff[q+1:], uint8(stoi(args[2]))) // layer
	setU1(buff[q+2:], 0)
	setU1(buff[q+3:], 0)
	q += 4

	for i := 5; i < len(args); i++ {
		key, ok := lookupValKey(args[i])
		if !ok {
			continue
		}
		setU4(buff[q:], key.id)
		q += 4
	}
	n := q + 2
	setU2(buff[4:], uint16(n-8))
	setChecksum(buff, n)
	return n
}
