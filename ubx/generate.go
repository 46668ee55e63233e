package ubx

import (
	"fmt"
	"strconv"
	"strings"
)

// Positional field-type tags used by the legacy fixed-layout CFG-*
// messages. Grounded on ublox.go's FU1/FU2/.../FS32 constants.
const (
	fu1 = iota + 1
	fu2
	fu4
	fi1
	fi2
	fi4
	fr4
	fr8
	fs32
)

// cfgCmd names the legacy fixed-layout CFG-* sub-messages this generator
// supports, in ublox.go's order. Grounded on ublox.go's gen_ubx cmd/id
// tables.
var cfgCmd = []string{
	"PRT", "USB", "MSG", "NMEA", "RATE", "CFG", "TP", "NAV2", "DAT", "INF",
	"RST", "RXM", "ANT", "FXN", "SBAS", "LIC", "TM", "TM2", "TMODE", "EKF",
	"GNSS", "ITFM", "LOGFILTER", "NAV5", "NAVX5", "ODO", "PM2", "PWR", "RINV", "SMGR",
	"TMODE2", "TMODE3", "TPS", "TXSLOT",
}

var cfgID = []uint8{
	0x00, 0x1B, 0x01, 0x17, 0x08, 0x09, 0x07, 0x1A, 0x06, 0x02,
	0x04, 0x11, 0x13, 0x0E, 0x16, 0x80, 0x10, 0x19, 0x1D, 0x12,
	0x3E, 0x39, 0x47, 0x24, 0x23, 0x1E, 0x3B, 0x57, 0x34, 0x62,
	0x36, 0x71, 0x31, 0x53,
}

const (
	idVALDEL = 0x8c
	idVALGET = 0x8b
	idVALSET = 0x8a
)

var cfgPrm = [][]int{
	{fu1, fu1, fu2, fu4, fu4, fu2, fu2, fu2, fu2},    // PRT
	{fu2, fu2, fu2, fu2, fu2, fu2, fs32, fs32, fs32}, // USB
	{fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1},         // MSG
	{fu1, fu1, fu1, fu1},                             // NMEA
	{fu2, fu2, fu2},                                  // RATE
	{fu4, fu4, fu4, fu1},                             // CFG
	{fu4, fu4, fi1, fu1, fu2, fi2, fi2, fi4},         // TP
	{fu1, fu1, fu2, fu1, fu1, fu1, fu1, fi4, fu1, fu1, fu1, fu1, fu1, fu1, fu2, fu2, fu2, fu2,
		fu2, fu1, fu1, fu2, fu4, fu4}, // NAV2
	{fr8, fr8, fr4, fr4, fr4, fr4, fr4, fr4, fr4},      // DAT
	{fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1}, // INF
	{fu2, fu1, fu1},                                    // RST
	{fu1, fu1},                                         // RXM
	{fu2, fu2},                                         // ANT
	{fu4, fu4, fu4, fu4, fu4, fu4, fu4, fu4},           // FXN
	{fu1, fu1, fu1, fu1, fu4},                          // SBAS
	{fu2, fu2, fu2, fu2, fu2, fu2},                     // LIC
	{fu4, fu4, fu4},                                    // TM
	{fu1, fu1, fu2, fu4, fu4},                          // TM2
	{fu4, fi4, fi4, fi4, fu4, fu4, fu4},                // TMODE
	{fu1, fu1, fu1, fu1, fu4, fu2, fu2, fu1, fu1, fu2}, // EKF
	{fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu4},      // GNSS
	{fu4, fu4},                                         // ITFM
	{fu1, fu1, fu2, fu2, fu2, fu4},                     // LOGFILTER
	{fu2, fu1, fu1, fi4, fu4, fi1, fu1, fu2, fu2, fu2, fu2, fu1, fu1, fu1, fu1, fu1, fu1, fu2,
		fu1, fu1, fu1, fu1, fu1, fu1}, // NAV5
	{fu2, fu2, fu4, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu2, fu1, fu1, fu1, fu1,
		fu1, fu1, fu1, fu1, fu1, fu1, fu2}, // NAVX5
	{fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1, fu1},                // ODO
	{fu1, fu1, fu1, fu1, fu4, fu4, fu4, fu4, fu2, fu2},           // PM2
	{fu1, fu1, fu1, fu1, fu4},                                    // PWR
	{fu1, fu1},                                                   // RINV
	{fu1, fu1, fu2, fu2, fu1, fu1, fu2, fu2, fu2, fu2, fu4},      // SMGR
	{fu1, fu1, fu2, fi4, fi4, fi4, fu4, fu4, fu4},                // TMODE2
	{fu1, fu1, fu2, fi4, fi4, fi4, fu4, fu4, fu4},                // TMODE3
	{fu1, fu1, fu1, fu1, fi2, fi2, fu4, fu4, fu4, fu4, fi4, fu4}, // TPS
	{fu1, fu1, fu1, fu1, fu4, fu4, fu4, fu4, fu4},                // TXSLOT
}

// stoi parses a decimal or 0x-prefixed hex integer, returning 0 on a
// malformed token. Grounded on ublox.go's stoi.
func stoi(s string) int {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, _ := strconv.ParseInt(s[2:], 16, 64)
		return int(v)
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return int(v)
}

// Generate renders a "CFG-XXX a b c ..." command string into a binary UBX
// message, returning its length (0 on error). Grounded on ublox.go's
// gen_ubx, split between the legacy positional messages and the VALSET/
// VALGET/VALDEL key/value configuration interface.
func (d *Decoder) Generate(msg string, buff []byte) int {
	args := strings.Fields(msg)
	if len(args) < 1 || len(args[0]) < 4 || !strings.EqualFold(args[0][:4], "CFG-") {
		return 0
	}
	name := args[0][4:]

	switch {
	case strings.EqualFold(name, "VALSET"):
		return genValSet(args, buff)
	case strings.EqualFold(name, "VALGET"):
		return genValGet(args, buff)
	case strings.EqualFold(name, "VALDEL"):
		return genValDel(args, buff)
	}

	i := -1
	for k, c := range cfgCmd {
		if strings.EqualFold(name, c) {
			i = k
			break
		}
	}
	if i < 0 {
		d.logger.WithField("msg", name).Warn("ubx generate: unknown CFG message")
		return 0
	}

	q := 0
	buff[q] = sync1
	q++
	buff[q] = sync2
	q++
	buff[q] = clsCFG
	q++
	buff[q] = cfgID[i]
	q++
	q += 2 // length backpatched below

	for j, ftype := range cfgPrm[i] {
		arg := ""
		if j+1 < len(args) {
			arg = args[j+1]
		}
		switch ftype {
		case fu1:
			setU1(buff[q:], uint8(stoi(arg)))
			q++
		case fu2:
			setU2(buff[q:], uint16(stoi(arg)))
			q += 2
		case fu4:
			setU4(buff[q:], uint32(stoi(arg)))
			q += 4
		case fi1:
			setI1(buff[q:], int8(stoi(arg)))
			q++
		case fi2:
			setI2(buff[q:], int16(stoi(arg)))
			q += 2
		case fi4:
			setI4(buff[q:], int32(stoi(arg)))
			q += 4
		case fr4:
			v, _ := strconv.ParseFloat(arg, 32)
			setR4(buff[q:], float32(v))
			q += 4
		case fr8:
			v, _ := strconv.ParseFloat(arg, 64)
			setR8(buff[q:], v)
			q += 8
		case fs32:
			copy(buff[q:q+32], []byte(fmt.Sprintf("%-32.32s", arg)))
			q += 32
		}
	}

	n := q + 2
	setU2(buff[4:], uint16(n-8))
	setChecksum(buff, n)
	return n
}
