package ubx

import (
	"github.com/sirupsen/logrus"

	"ubxcore/navlib"
	"ubxcore/rxconfig"
)

// Status classifies the outcome of one decoded frame. Named int type per
// the external interface contract: the byte/file feed never returns a Go
// error, only this status code. Grounded on ublox.go's input_ubx/
// input_ubxf return-value convention.
type Status int

const (
	StatusError  Status = -1
	StatusNone   Status = 0
	StatusObs    Status = 1
	StatusEph    Status = 2
	StatusSBAS   Status = 3
	StatusIonUtc Status = 9
	StatusEOF    Status = -2
)

// maxRawLen bounds a single frame, mirroring ublox.go's MAXRAWLEN.
const maxRawLen = 16384

// maxObs bounds the number of satellites carried in one observation
// epoch, mirroring ublox.go's MAXOBS.
const maxObs = 96

// ObsD is one satellite's observation record within an epoch. Grounded on
// types.go's ObsD, trimmed to the fields this core populates.
type ObsD struct {
	Time navlib.Time
	Sat  int
	Rcv  int
	SNR  [nFreq + nExObs]uint16
	LLI  [nFreq + nExObs]uint8
	Code [nFreq + nExObs]uint8
	L    [nFreq + nExObs]float64
	P    [nFreq + nExObs]float64
	D    [nFreq + nExObs]float64
	// QualL/QualP are the phase/pseudorange stddev quality indicators
	// (clamped to <=9 for RINEX compatibility), per types.go's qualL/qualP.
	QualL [nFreq + nExObs]uint8
	QualP [nFreq + nExObs]uint8

	// EventTime and TimeValid carry a TIM-TM2 time-mark event attached to
	// this epoch's primary observation, per types.go's obsd_t.eventime/
	// timevalid.
	EventTime navlib.Time
	TimeValid bool
}

// Obs is one decoded observation epoch. Grounded on types.go's Obs.
type Obs struct {
	Data []ObsD
	N    int
	// Flag mirrors types.go's obs_t.flag: 5 marks the epoch as a TIM-TM2
	// time-mark event, 0 otherwise.
	Flag int
}

// NavData accumulates the navigation entities decoded so far, keyed by
// the dense satellite index navlib.SatNo produces. Grounded on types.go's
// Nav struct, trimmed to what this core tracks.
type NavData struct {
	Eph    map[int]navlib.Eph
	GEph   map[int]navlib.GEph
	GloFCN [navlib.NSatGLO]int
	UtcGPS navlib.UTCParam
	UtcGAL navlib.UTCParam
	UtcCMP navlib.UTCParam
	UtcQZS navlib.UTCParam
}

// Decoder is a single receiver's UBX decode session. It replaces the
// receiver's global Raw struct / raw.Opt string-scanning with an
// explicitly constructed, per-instance state carrying a typed option set,
// a structured logger, and optional metrics sink. Grounded on types.go's
// Raw struct.
type Decoder struct {
	cfg     rxconfig.Options
	logger  logrus.FieldLogger
	metrics *Metrics

	buff    [maxRawLen]uint8
	numByte int
	length  int

	time    navlib.Time
	outType bool
	msgType string

	obsData Obs
	navData NavData
	sbsMsg  navlib.SbsMsg

	lockTime [navlib.MaxSat][nFreq + nExObs]float64
	halfc    [navlib.MaxSat][nFreq + nExObs]uint8
	// lockFlag is the latched cycle-slip marker per (sat,slot), set when a
	// slip is declared and cleared by any valid phase observation on that
	// slot, including the one that declared the slip; a slip declared
	// while phase is unavailable carries forward to the next observation
	// with phase. Grounded on types.go's raw.lockflag.
	lockFlag [navlib.MaxSat][nFreq + nExObs]uint8

	// rcvCount and tmCount track TIM-TM2's receiver time-mark count and
	// event counter, per types.go's raw.obs.rcvcount/tmcount.
	rcvCount uint32
	tmCount  int

	// subFrmBuf accumulates raw, not-yet-decoded subframe/page/string bytes
	// per satellite, keyed the same way ublox.go keys raw.SubFrm.
	subFrmBuf map[int][]uint8

	// resyncRun is not read or written by any decoder path; ReadFile
	// bounds its resync scan with a local counter against resyncCap.
	resyncRun int
}

// NewDecoder constructs a Decoder with the given options, logger and
// metrics sink. logger may be nil (a discard logger is installed);
// metrics may be nil (all increments become no-ops).
func NewDecoder(cfg rxconfig.Options, logger logrus.FieldLogger, metrics *Metrics) *Decoder {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(nullWriter{})
		logger = discard
	}
	return &Decoder{
		cfg:     cfg,
		logger:  logger.WithField("component", "ubx"),
		metrics: metrics,
		navData: NavData{
			Eph:  make(map[int]navlib.Eph),
			GEph: make(map[int]navlib.GEph),
		},
		subFrmBuf: make(map[int][]uint8),
	}
}

// Obs returns the most recently decoded observation epoch.
func (d *Decoder) Obs() Obs { return d.obsData }

// Nav returns the navigation data accumulated so far.
func (d *Decoder) Nav() NavData { return d.navData }

// SBASMsg returns the most recently accumulated SBAS message. Callers
// observing StatusSBAS read this to retrieve the message: 226 bits in 29
// bytes, the last byte masked to its top two bits, CRC not included.
func (d *Decoder) SBASMsg() navlib.SbsMsg { return d.sbsMsg }

// TimeMark returns the TIM-TM2 receiver time-mark count and event counter
// accumulated so far.
func (d *Decoder) TimeMark() (rcvCount uint32, tmCount int) {
	return d.rcvCount, d.tmCount
}

// MsgType returns a short human-readable description of the last frame
// seen, mirroring ublox.go's raw.MsgType diagnostic string.
func (d *Decoder) MsgType() string { return d.msgType }

// EnableMsgType turns on MsgType population (ublox.go's raw.OutType),
// which costs an allocation per frame and is off by default.
func (d *Decoder) EnableMsgType(on bool) { d.outType = on }

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }
