package overtime

import (
	"context"
	"time"

	"github.com/bizclock/bizclock/calendar"
)

// accumulateSeconds sums the whole seconds of [start, end] that fall
// inside shifts, walking the date range day by day. Both bounds must
// already be normalized by the calculator. The walk is a flat bounded
// loop, one source lookup per day.
func accumulateSeconds(ctx context.Context, r *calendar.Resolver, start, end time.Time, scheduleID string) (int64, error) {
	loc := r.Location()
	day := calendar.Midnight(start, loc)
	lastDay := calendar.Midnight(end, loc)

	var total int64
	for ; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		shifts, err := r.ShiftsOn(ctx, day, scheduleID)
		if err != nil {
			return 0, err
		}
		for _, s := range shifts {
			lo := s.Start.On(day, loc)
			hi := s.End.On(day, loc)
			// Clip to the interval; only the first and last day can shrink.
			if lo.Before(start) {
				lo = start
			}
			if hi.After(end) {
				hi = end
			}
			if sec := int64(hi.Sub(lo) / time.Second); sec > 0 {
				total += sec
			}
		}
	}
	return total, nil
}
