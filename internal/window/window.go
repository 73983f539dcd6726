// Package window derives the contribution window for a visit from its
// scheduled calendar date. The service timezone is a fixed UTC+5:30 offset
// with no daylight-saving rules, so the derivation is plain arithmetic and
// never consults the tz database.
package window

import "time"

// IST is the fixed service timezone, UTC+5:30.
var IST = time.FixedZone("IST", 5*3600+30*60)

// OpenDuration is how long a visit's window stays open once it opens.
const OpenDuration = 48 * time.Hour

// openHour is the local hour at which the window opens (noon).
const openHour = 12

// Clock supplies the current time. Injected so window-edge behavior is
// testable with a frozen clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Compute returns [start, end) for the visit scheduled on the given
// instant's IST calendar day. Only the year/month/day matter; time-of-day
// on the input is discarded. The result is deterministic for a given
// calendar day, which makes lazy backfill safe from any caller.
func Compute(scheduledDate time.Time) (start, end time.Time) {
	y, m, d := scheduledDate.In(IST).Date()
	start = time.Date(y, m, d, openHour, 0, 0, 0, IST)
	end = start.Add(OpenDuration)
	return start, end
}

// Contains reports whether now falls inside [start, end]. Both boundaries
// are accepted; strictly-before means not open yet, strictly-after closed.
func Contains(start, end, now time.Time) bool {
	return !now.Before(start) && !now.After(end)
}
