package navlib

import "math"

// Time is an epoch expressed as integer seconds since the GPS time epoch
// plus a sub-second fraction, mirroring ublox.go's Gtime
// (common.go:Gtime). Kept integer-second/fraction split, not time.Time,
// because GpsT2Time/TimeAdd/TimeDiff need exact week-rollover arithmetic
// that the library's callers (week handover repair in TRK-MEAS/TRK-D5,
// RXM-RAWX time-tag adjustment) depend on bit-for-bit.
type Time struct {
	Sec  int64   // whole seconds since the GPS epoch (1980-01-06 00:00:00 GPST)
	Frac float64 // fractional second in [0,1)
}

// GPSTime converts a (week, tow) pair in GPS time to a Time. Grounded on
// common.go's GpsT2Time.
func GPSTime(week int, tow float64) Time {
	if tow < -1e9 || tow > 1e9 {
		tow = 0
	}
	whole := int64(86400*7*week) + int64(tow)
	return Time{Sec: whole, Frac: tow - math.Floor(tow)}
}

// ToGPSWeekTow is the inverse of GPSTime. Grounded on common.go's
// Time2GpsT.
func ToGPSWeekTow(t Time) (week int, tow float64) {
	week = int(t.Sec / (86400 * 7))
	tow = float64(t.Sec-int64(week)*86400*7) + t.Frac
	return
}

// Add returns t+sec. Grounded on common.go's TimeAdd.
func Add(t Time, sec float64) Time {
	frac := t.Frac + sec
	whole := math.Floor(frac)
	t.Sec += int64(whole)
	t.Frac = frac - whole
	return t
}

// Sub returns t1-t2 in seconds. Grounded on common.go's TimeDiff.
func Sub(t1, t2 Time) float64 {
	return float64(t1.Sec-t2.Sec) + (t1.Frac - t2.Frac)
}

// leapSeconds is the GPS-UTC leap second count assumed when no UTC
// parameter block has been decoded yet. adj_utcweek-style re-seating of the broadcast UTC
// parameters (javad.go:adj_utcweek) happens in the ubx package once the
// navigation decoder actually has a UTC block; this default only backs
// ToUTC for SBAS/TRK-MEAS time conversions that need an approximate
// GPST-UTC offset before any UTC block has arrived.
const leapSeconds = 18

// ToUTC subtracts the current leap-second count. Grounded on common.go's
// GpsT2Utc (simplified: ublox.go walks a historical leap-second table;
// this core only ever needs the current offset for the receiver-local
// session, so it is a fixed constant).
func ToUTC(t Time) Time {
	return Add(t, -float64(leapSeconds))
}

// Round rounds x to the nearest integer, ties rounded up toward +infinity
// (2.5 gives 3, -2.5 gives -2). Grounded on
// rtcm3e.go's ROUND_I.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// AdjUTCWeek re-seats an 8-bit broadcast UTC reference week against the
// receiver's current full GPS week, picking whichever 256-week epoch puts
// weekT within +/-127 weeks of week. Grounded on javad.go's adj_utcweek.
func AdjUTCWeek(week, weekT int) int {
	weekT += (week / 256) * 256
	switch {
	case weekT < week-127:
		weekT += 256
	case weekT > week+127:
		weekT -= 256
	}
	return weekT
}
