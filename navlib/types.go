package navlib

// Eph holds the subset of GPS/QZS/Galileo/BeiDou broadcast ephemeris
// fields that the replace-on-change/dedup invariants depend on: issue of
// data, health, time-of-ephemeris/clock, and clock polynomial terms.
// Orbital terms beyond what dedup needs are intentionally not modelled
// here (see package doc). Grounded on types.go's Eph struct, trimmed.
type Eph struct {
	Sat, Iode, Iodc int
	Sva, Svh        int
	Week            int
	Toe, Toc, Ttr   Time
	F0, F1, F2      float64
	Tgd             float64
}

// GEph holds the GLONASS broadcast ephemeris fields the dedup invariant
// needs. Grounded on types.go's GEph struct, trimmed.
type GEph struct {
	Sat, Iode, Frq, Svh, Sva, Age int
	Toe, Tof                     Time
	Pos, Vel, Acc                [3]float64
	Taun, Gamn, DTaun            float64
}

// SbsMsg is a raw SBAS message frame, byte-for-byte as broadcast.
// Grounded on types.go's SbsMsg struct.
type SbsMsg struct {
	Week, Tow int
	Prn       uint8
	Msg       [29]uint8
}

// UTCParam holds a decoded ion/utc parameter block's polynomial terms,
// common across GPS/Galileo/BeiDou/QZSS variants.
type UTCParam struct {
	A0, A1   float64
	Tot      int
	WeekT    int
	LeapSec  int
}
