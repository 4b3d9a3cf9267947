// Package scoring converts raw interaction counts into the decayed exposure
// score used to rank and throttle the candidate pool. Every function is pure:
// configuration and the evaluation instant are passed in explicitly.
package scoring

import (
	"fmt"
	"time"
	_ "time/tzdata" // day keys are defined in Asia/Seoul regardless of host tz
)

const ymdLayout = "2006-01-02"

// Seoul is the calendar-day timezone for aggregation and scoring keys.
var Seoul = mustLoadSeoul()

func mustLoadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(fmt.Sprintf("scoring: load Asia/Seoul: %v", err))
	}
	return loc
}

// YMD returns the Asia/Seoul calendar-day key for an instant.
func YMD(t time.Time) string {
	return t.In(Seoul).Format(ymdLayout)
}

// DayBounds returns the half-open [start, end) interval of a ymd key in
// Asia/Seoul.
func DayBounds(ymd string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(ymdLayout, ymd, Seoul)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid ymd %q: %w", ymd, err)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// DayEnd returns the last instant of the aggregated day, the anchor the
// recency weight decays from.
func DayEnd(ymd string) (time.Time, error) {
	_, end, err := DayBounds(ymd)
	if err != nil {
		return time.Time{}, err
	}
	return end.Add(-time.Second), nil
}
