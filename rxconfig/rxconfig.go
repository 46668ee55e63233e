// Package rxconfig lifts the receiver's "-opt" string options into a typed
// configuration struct populated once at decoder construction, instead of
// being re-scanned by every decoder call as ublox.go's ublox.go does
// with strings.Index/fmt.Sscanf on raw.Opt. Grounded on ublox.go's option
// handling in decode_rxmrawx/decode_trkmeas/decode_trkd5 (the "-EPHALL",
// "-INVCP", "-TADJ=", "-STD_SLIP=", "-MAX_STD_CP=", "-GALFNAV" tokens) and
// on de-bkg-gognss's use of go-playground/validator/v10 for config
// structs.
package rxconfig

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxStdCPDefault is the default maximum carrier-phase stddev indicator
// accepted as a valid phase (MAX_CPSTD_VALID in ublox.go), used when
// -MAX_STD_CP is not present in the option string.
const MaxStdCPDefault uint8 = 5

// StdSlipDefault is the default carrier-phase-stddev slip threshold
// (CPSTD_SLIP in ublox.go), used when -STD_SLIP is not present in the
// option string.
const StdSlipDefault uint8 = 15

// Options is the typed receiver option set. All "-xxx" tokens are parsed
// once by Parse; every decoder in the ubx package reads these fields
// instead of re-scanning a string.
type Options struct {
	EPHAll   bool `validate:"-"`
	InvCP    bool `validate:"-"`
	TAdj     *float64
	StdSlip  uint8 `validate:"gte=0"`
	MaxStdCP uint8 `validate:"gte=0"`
	GalFNav  bool `validate:"-"`
	// TrkmAdj selects the legacy TRK-MEAS GLONASS pseudorange bias table
	// by firmware major version (2 or 3); values 2 and 3 also enable the
	// GLONASS-to-GPS time correction in TRK-MEAS and TRK-D5. A nil value
	// means the option was absent; then, as for any other value, neither
	// correction is applied.
	TrkmAdj *uint8
}

// Default returns the zero-value option set with MaxStdCP/StdSlip seeded
// to their documented defaults.
func Default() Options {
	return Options{MaxStdCP: MaxStdCPDefault, StdSlip: StdSlipDefault}
}

// Parse tokenizes opt (space-separated "-FLAG" / "-KEY=value" tokens, as
// accepted by raw.Opt in ublox.go) into an Options value. Unknown
// tokens are ignored, mirroring ublox.go's strings.Index semantics
// (absence of a flag is never an error).
func Parse(opt string) Options {
	o := Default()
	for _, tok := range strings.Fields(opt) {
		switch {
		case tok == "-EPHALL":
			o.EPHAll = true
		case tok == "-INVCP":
			o.InvCP = true
		case tok == "-GALFNAV":
			o.GalFNav = true
		case strings.HasPrefix(tok, "-TADJ="):
			if v, err := strconv.ParseFloat(strings.TrimPrefix(tok, "-TADJ="), 64); err == nil {
				o.TAdj = &v
			}
		case strings.HasPrefix(tok, "-STD_SLIP="):
			if v, err := strconv.ParseUint(strings.TrimPrefix(tok, "-STD_SLIP="), 10, 8); err == nil {
				o.StdSlip = uint8(v)
			}
		case strings.HasPrefix(tok, "-MAX_STD_CP="):
			if v, err := strconv.ParseUint(strings.TrimPrefix(tok, "-MAX_STD_CP="), 10, 8); err == nil {
				o.MaxStdCP = uint8(v)
			}
		case strings.HasPrefix(tok, "-TRKM_ADJ="):
			if v, err := strconv.ParseUint(strings.TrimPrefix(tok, "-TRKM_ADJ="), 10, 8); err == nil {
				u := uint8(v)
				o.TrkmAdj = &u
			}
		}
	}
	return o
}

var validate = validator.New()

// Validate runs struct-tag validation over o, for configs assembled by a
// caller (e.g. the CLI) outside of Parse.
func Validate(o Options) error {
	return validate.Struct(o)
}
